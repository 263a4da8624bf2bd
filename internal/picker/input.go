package picker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type inputModel struct {
	input   textinput.Model
	prompt  string
	done    bool
	quitted bool
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.quitted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	return styleTitle.Render(m.prompt) + "\n\n" + m.input.View() + "\n\n" +
		styleSubtle.Render("enter accept · esc cancel") + "\n"
}

// PromptTitle asks the user for a note title. ok is false on cancel.
func PromptTitle(prompt string) (string, bool, error) {
	ti := textinput.New()
	ti.Placeholder = "Note title"
	ti.Focus()

	final, err := tea.NewProgram(inputModel{input: ti, prompt: prompt}).Run()
	if err != nil {
		return "", false, fmt.Errorf("picker: %w", err)
	}
	m, ok := final.(inputModel)
	if !ok || m.quitted {
		return "", false, nil
	}
	return m.input.Value(), m.done, nil
}
