// Package picker provides the interactive terminal selection surfaces:
// a filterable note picker, a tag multi-select, and a title prompt.
package picker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/starford/zkbridge/internal/zk"
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true)
	styleSubtle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
)

// noteItem adapts a candidate to the bubbles list item contract.
type noteItem struct {
	cand zk.Candidate
}

func (i noteItem) Title() string       { return i.cand.Display }
func (i noteItem) Description() string { return i.cand.Path }
func (i noteItem) FilterValue() string { return i.cand.Display }

type noteModel struct {
	list    list.Model
	chosen  zk.Candidate
	ok      bool
	quitted bool
}

func (m noteModel) Init() tea.Cmd { return nil }

func (m noteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(noteItem); ok {
				m.chosen = item.cand
				m.ok = true
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.quitted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m noteModel) View() string { return m.list.View() }

// SelectNote runs a filterable picker over the candidates and returns the
// chosen one. ok is false when the user abandoned the selection.
func SelectNote(title string, candidates []zk.Candidate) (zk.Candidate, bool, error) {
	items := make([]list.Item, len(candidates))
	for i, c := range candidates {
		items[i] = noteItem{cand: c}
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 0, 20)
	l.Title = title
	l.SetShowStatusBar(false)

	final, err := tea.NewProgram(noteModel{list: l}).Run()
	if err != nil {
		return zk.Candidate{}, false, fmt.Errorf("picker: %w", err)
	}
	m, ok := final.(noteModel)
	if !ok || m.quitted {
		return zk.Candidate{}, false, nil
	}
	return m.chosen, m.ok, nil
}
