package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"xlingviz/internal/domain"
)

// GridColumns is the number of confusion matrices per grid row.
const GridColumns = 4

// DefaultClasses abbreviates domain.DefaultTopics for matrix axes.
var DefaultClasses = []string{"C", "E", "G", "M"}

// ConfusionGrid lays out confusion matrices GridColumns per row.
type ConfusionGrid struct {
	title    string
	classes  []string
	matrices []domain.ConfusionMatrix
}

// NewConfusionGrid requires a non-zero multiple of GridColumns square
// matrices, each with one row per class and no negative counts.
func NewConfusionGrid(title string, classes []string, matrices []domain.ConfusionMatrix) (*ConfusionGrid, error) {
	if len(classes) == 0 {
		classes = DefaultClasses
	}
	if len(matrices) == 0 || len(matrices)%GridColumns != 0 {
		return nil, fmt.Errorf("confusion grid needs a multiple of %d matrices, got %d", GridColumns, len(matrices))
	}
	for _, m := range matrices {
		if len(m.Cells) != len(classes) {
			return nil, fmt.Errorf("matrix %q has %d rows for %d classes", m.Title, len(m.Cells), len(classes))
		}
		for i, row := range m.Cells {
			if len(row) != len(classes) {
				return nil, fmt.Errorf("matrix %q row %d has %d cells for %d classes", m.Title, i, len(row), len(classes))
			}
			for _, v := range row {
				if v < 0 {
					return nil, fmt.Errorf("matrix %q has a negative count", m.Title)
				}
			}
		}
	}
	return &ConfusionGrid{title: title, classes: classes, matrices: matrices}, nil
}

func (g *ConfusionGrid) Title() string { return g.title }

var (
	hotCell  = lipgloss.NewStyle().Background(lipgloss.Color("18")).Foreground(lipgloss.Color("15")).Bold(true)
	coldCell = lipgloss.NewStyle()
)

func matrixMax(m domain.ConfusionMatrix) int {
	mx := 0
	for _, row := range m.Cells {
		for _, v := range row {
			mx = max(mx, v)
		}
	}
	return mx
}

// renderMatrix draws one matrix; cells above half the maximum are highlighted.
func (g *ConfusionGrid) renderMatrix(m domain.ConfusionMatrix) string {
	cellW := 1
	for _, row := range m.Cells {
		for _, v := range row {
			cellW = max(cellW, len(fmt.Sprint(v)))
		}
	}
	for _, c := range g.classes {
		cellW = max(cellW, lipgloss.Width(c))
	}
	labelW := 0
	for _, c := range g.classes {
		labelW = max(labelW, lipgloss.Width(c))
	}
	thresh := float64(matrixMax(m)) / 2

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.Title) + "\n")
	sb.WriteString(strings.Repeat(" ", labelW))
	for _, c := range g.classes {
		fmt.Fprintf(&sb, " %*s", cellW, c)
	}
	sb.WriteString("\n")
	for i, row := range m.Cells {
		fmt.Fprintf(&sb, "%-*s", labelW, g.classes[i])
		for _, v := range row {
			style := coldCell
			if float64(v) > thresh {
				style = hotCell
			}
			sb.WriteString(" " + style.Render(fmt.Sprintf("%*d", cellW, v)))
		}
		if i < len(m.Cells)-1 {
			sb.WriteString("\n")
		}
	}
	return boxStyle.Render(sb.String())
}

// Render draws the grid followed by the score summary.
func (g *ConfusionGrid) Render() string {
	var rows []string
	for i := 0; i < len(g.matrices); i += GridColumns {
		cells := make([]string, 0, GridColumns)
		for _, m := range g.matrices[i : i+GridColumns] {
			cells = append(cells, g.renderMatrix(m))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	out := ""
	if g.title != "" {
		out = titleStyle.Render(g.title) + "\n"
	}
	out += mutedStyle.Render("rows: true label, columns: predicted label") + "\n"
	out += lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
	return out + g.ScoreTable()
}

// ScoreTable prints accuracy, macro precision, macro recall and micro F1,
// one line per metric with GridColumns values each, grouped like the grid.
func (g *ConfusionGrid) ScoreTable() string {
	scores := make([]Scores, len(g.matrices))
	for i, m := range g.matrices {
		scores[i] = ScoresOf(m)
	}
	var sb strings.Builder
	metrics := []struct {
		name string
		get  func(Scores) float64
	}{
		{"Accuracy", func(s Scores) float64 { return s.Accuracy }},
		{"Precision", func(s Scores) float64 { return s.MacroPrecision }},
		{"Recall", func(s Scores) float64 { return s.MacroRecall }},
		{"F1 (micro)", func(s Scores) float64 { return s.MicroF1 }},
	}
	for _, metric := range metrics {
		sb.WriteString(titleStyle.Render(metric.name+" summary:") + "\n")
		for i := 0; i < len(scores); i += GridColumns {
			vals := make([]string, 0, GridColumns)
			for _, s := range scores[i : i+GridColumns] {
				vals = append(vals, fmt.Sprintf("%.4f", metric.get(s)))
			}
			sb.WriteString(strings.Join(vals, " ") + "\n")
		}
	}
	return sb.String()
}

// Gnuplot emits a multiplot of heat maps with cell annotations.
func (g *ConfusionGrid) Gnuplot(output string) string {
	rows := len(g.matrices) / GridColumns
	var sb strings.Builder
	title := g.title
	if title == "" {
		title = "Confusion matrices"
	}
	gnuplotHeader(&sb, title, output, 400*GridColumns, 380*rows)
	n := len(g.classes)
	tics := make([]string, n)
	for i, c := range g.classes {
		tics[i] = fmt.Sprintf("%s %d", quote(c), i)
	}
	fmt.Fprintf(&sb, "set xtics (%s) rotate by 45 right\n", strings.Join(tics, ", "))
	fmt.Fprintf(&sb, "set ytics (%s)\n", strings.Join(tics, ", "))
	fmt.Fprintf(&sb, "set xrange [-0.5:%g]\n", float64(n)-0.5)
	fmt.Fprintf(&sb, "set yrange [%g:-0.5]\n", float64(n)-0.5)
	sb.WriteString("set xlabel 'Predicted label'\n")
	sb.WriteString("set ylabel 'True label'\n")
	sb.WriteString("set palette defined (0 '#f7fbff', 1 '#08306b')\n")
	sb.WriteString("unset key\n\n")

	for i, m := range g.matrices {
		fmt.Fprintf(&sb, "$m%d << EOD\n", i)
		for _, row := range m.Cells {
			vals := make([]string, len(row))
			for j, v := range row {
				vals[j] = fmt.Sprint(v)
			}
			sb.WriteString(strings.Join(vals, " ") + "\n")
		}
		sb.WriteString("EOD\n")
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "set multiplot layout %d,%d title %s\n", rows, GridColumns, quote(title))
	for i, m := range g.matrices {
		thresh := float64(matrixMax(m)) / 2
		fmt.Fprintf(&sb, "set title %s\n", quote(m.Title))
		fmt.Fprintf(&sb, "plot $m%d matrix with image, \\\n", i)
		fmt.Fprintf(&sb, "     $m%d matrix using 1:2:(sprintf('%%d', $3)):($3 > %g ? 0xffffff : 0x000000) with labels tc rgb variable\n", i, thresh)
	}
	sb.WriteString("unset multiplot\n")
	return sb.String()
}

// Scores summarises one confusion matrix.
type Scores struct {
	Accuracy       float64
	MacroPrecision float64
	MacroRecall    float64
	MicroF1        float64
}

// ScoresOf computes the summary scores of m. For single-label
// classification micro F1 equals accuracy. Classes with no predictions
// (or no true rows) contribute 0 to the macro averages.
func ScoresOf(m domain.ConfusionMatrix) Scores {
	n := len(m.Cells)
	if n == 0 {
		return Scores{}
	}
	total, diag := 0, 0
	rowSum := make([]int, n)
	colSum := make([]int, n)
	for i, row := range m.Cells {
		for j, v := range row {
			total += v
			rowSum[i] += v
			if j < n {
				colSum[j] += v
			}
		}
		if i < len(row) {
			diag += row[i]
		}
	}
	var s Scores
	if total > 0 {
		s.Accuracy = float64(diag) / float64(total)
	}
	for i := 0; i < n; i++ {
		tp := 0
		if i < len(m.Cells[i]) {
			tp = m.Cells[i][i]
		}
		if colSum[i] > 0 {
			s.MacroPrecision += float64(tp) / float64(colSum[i])
		}
		if rowSum[i] > 0 {
			s.MacroRecall += float64(tp) / float64(rowSum[i])
		}
	}
	s.MacroPrecision /= float64(n)
	s.MacroRecall /= float64(n)
	s.MicroF1 = s.Accuracy
	return s
}
