package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xlingviz/internal/domain"
	"xlingviz/internal/vectorstore/memory"
)

func newIndex(t *testing.T) *memory.Storage {
	t.Helper()
	s := memory.NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.LabelRecord{
			{Primary: "king", Secondary: "English"},
			{Primary: "国王", Secondary: "Chinese"},
			{Primary: "apple", Secondary: "English"},
			{Primary: "king", Secondary: "Chinese"},
		},
		[][]float64{{1, 0}, {0.9, 0.1}, {0, 1}, {0.1, 0.9}},
	))
	return s
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestModel_LookupAndCycle(t *testing.T) {
	m := New(newIndex(t), "4 rows", 2)
	assert.Equal(t, "Loading...", m.View())

	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m.input.SetValue("king")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []int{0, 3}, m.matches)
	require.Len(t, m.neighbors, 2)
	assert.Equal(t, "国王", m.neighbors[0].Label.Primary)
	view := m.View()
	assert.Contains(t, view, "Match 1/2")
	assert.Contains(t, view, "国王")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, "apple", m.neighbors[0].Label.Primary)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)
}

func TestModel_NoMatch(t *testing.T) {
	m := New(newIndex(t), "", 0)
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m.input.SetValue("queen")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, m.matches)
	assert.Contains(t, m.status, `No row labelled "queen"`)
	assert.Contains(t, m.View(), "No results yet.")
}

func TestModel_Quit(t *testing.T) {
	m := New(newIndex(t), "", 0)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
