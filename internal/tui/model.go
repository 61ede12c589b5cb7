package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"xlingviz/internal/domain"
)

// DefaultNeighbors is the number of neighbours listed per match.
const DefaultNeighbors = 10

// NeighborPort is the TUI-facing subset of the neighbour index.
type NeighborPort interface {
	Lookup(primary string) []int
	Label(row int) (domain.LabelRecord, bool)
	SearchRow(row, topK int) ([]domain.Neighbor, error)
}

// Model is the Bubble Tea model for previewing an exported table pair.
type Model struct {
	index     NeighborPort
	input     textinput.Model
	viewport  viewport.Model
	matches   []int
	neighbors []domain.Neighbor
	summary   string
	status    string
	cursor    int
	ready     bool
	topK      int
}

// New creates a new TUI model instance.
func New(index NeighborPort, summary string, topK int) Model {
	if topK <= 0 {
		topK = DefaultNeighbors
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a word or topic and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{index: index, input: ti, viewport: vp, summary: summary, topK: topK, status: "Loaded. Type a label to find its neighbours."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 // header + summary
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentMatch())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.matches = m.index.Lookup(q)
				m.cursor = 0
				if len(m.matches) == 0 {
					m.neighbors = nil
					m.status = fmt.Sprintf("No row labelled %q", q)
				} else {
					m.status = fmt.Sprintf("%d row(s) labelled %q", len(m.matches), q)
					m.loadNeighbors()
				}
				m.viewport.SetContent(m.renderCurrentMatch())
				return m, nil
			}
		case "down":
			if len(m.matches) > 0 {
				m.cursor = (m.cursor + 1) % len(m.matches)
				m.loadNeighbors()
				m.viewport.SetContent(m.renderCurrentMatch())
				return m, nil
			}
		case "up":
			if len(m.matches) > 0 {
				m.cursor = (m.cursor - 1 + len(m.matches)) % len(m.matches)
				m.loadNeighbors()
				m.viewport.SetContent(m.renderCurrentMatch())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) loadNeighbors() {
	res, err := m.index.SearchRow(m.matches[m.cursor], m.topK)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.neighbors = nil
		return
	}
	m.neighbors = res
}

// View renders the TUI layout and current match.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Embedding Preview")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentMatch() string {
	if len(m.matches) == 0 {
		return "No results yet."
	}
	row := m.matches[m.cursor]
	label, _ := m.index.Label(row)
	title := fmt.Sprintf("Match %d/%d  %s (%s), row %d", m.cursor+1, len(m.matches), label.Primary, label.Secondary, row+1)
	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	for i, n := range m.neighbors {
		secondary := n.Label.Secondary
		if n.Label.Secondary != label.Secondary {
			secondary = highlightStyle.Render(secondary)
		}
		fmt.Fprintf(&sb, "%2d. %.4f  %s  %s\n", i+1, n.Score, n.Label.Primary, secondary)
	}
	return strings.TrimRight(sb.String(), "\n")
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
