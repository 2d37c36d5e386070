package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user aborts a prompt or editor.
var ErrCancelled = errors.New("cancelled")

// PromptLine asks for one line of input. Secret input is masked.
func PromptLine(title, hint, placeholder string, secret bool) (string, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50
	if secret {
		ti.EchoMode = textinput.EchoPassword
	}

	p := tea.NewProgram(lineModel{title: title, hint: hint, textInput: ti})
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running prompt: %w", err)
	}

	result := finalModel.(lineModel)
	if result.quit {
		return "", ErrCancelled
	}
	return result.value, nil
}

type lineModel struct {
	title     string
	hint      string
	textInput textinput.Model
	value     string
	quit      bool
}

func (m lineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.value = m.textInput.Value()
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m lineModel) View() string {
	s := "\n" + StyleSelectTitle.Render(m.title) + "\n"
	if m.hint != "" {
		s += StyleSelectDim.Render(m.hint) + "\n"
	}
	s += "\n" + m.textInput.View() + "\n\n"
	s += StyleSelectDim.Render("Press Enter to confirm • Esc to cancel") + "\n"
	return s
}
