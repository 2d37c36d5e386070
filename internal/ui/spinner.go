package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type spinnerDoneMsg struct{ err error }

type spinnerModel struct {
	spinner spinner.Model
	label   string
	run     func() error
	err     error
	done    bool
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return spinnerDoneMsg{err: m.run()} })
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), m.label)
}

// RunWithSpinner shows a spinner next to label while fn runs. Keys are
// ignored; cancel through ctx. When interactive is false fn runs without
// any terminal output.
func RunWithSpinner(ctx context.Context, interactive bool, label string, fn func() error) error {
	if !interactive {
		return fn()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	p := tea.NewProgram(spinnerModel{spinner: s, label: label, run: fn}, tea.WithContext(ctx), tea.WithInput(nil))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run spinner: %w", err)
	}
	return final.(spinnerModel).err
}
