package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// tagModel is a cursor-driven multi-select over the tag vocabulary.
type tagModel struct {
	vocab    []string
	cursor   int
	selected map[int]bool
	done     bool
	quitted  bool
}

func newTagModel(vocab []string) tagModel {
	return tagModel{
		vocab:    vocab,
		selected: make(map[int]bool),
	}
}

func (m tagModel) Init() tea.Cmd { return nil }

func (m tagModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(m.vocab) - 1
		}
	case "down", "j":
		m.cursor++
		if m.cursor >= len(m.vocab) {
			m.cursor = 0
		}
	case " ", "tab":
		if m.cursor >= 0 && m.cursor < len(m.vocab) {
			m.selected[m.cursor] = !m.selected[m.cursor]
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.quitted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m tagModel) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Filter by tags"))
	b.WriteString("\n\n")
	for i, tag := range m.vocab {
		cursor := "  "
		if i == m.cursor {
			cursor = styleCursor.Render("> ")
		}
		mark := "[ ]"
		if m.selected[i] {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, mark, tag)
	}
	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("space toggle · enter accept · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// values returns the selected tags in vocabulary order.
func (m tagModel) values() []string {
	var out []string
	for i, tag := range m.vocab {
		if m.selected[i] {
			out = append(out, tag)
		}
	}
	return out
}

// SelectTags runs a multi-select over the tag vocabulary. Cancelling
// yields an empty selection.
func SelectTags(vocab []string) ([]string, error) {
	if len(vocab) == 0 {
		return nil, nil
	}
	final, err := tea.NewProgram(newTagModel(vocab)).Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	m, ok := final.(tagModel)
	if !ok || m.quitted {
		return nil, nil
	}
	return m.values(), nil
}
