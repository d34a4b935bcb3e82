package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/juspay/airborne-cli/internal/style"
)

// spinnerDoneMsg signals that the background call finished.
type spinnerDoneMsg struct {
	result any
	err    error
}

// spinnerModel shows a spinner while fn runs.
type spinnerModel struct {
	spinner  spinner.Model
	title    string
	fn       func() (any, error)
	done     bool
	quitting bool
	result   any
	err      error
}

func newSpinnerModel(title string, fn func() (any, error)) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(style.SpinnerColor)
	return spinnerModel{spinner: s, title: title, fn: fn}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			result, err := m.fn()
			return spinnerDoneMsg{result: result, err: err}
		},
	)
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	case spinnerDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.done && m.err != nil:
		return style.Error.Render(fmt.Sprintf("✗ %s: %v", m.title, m.err)) + "\n"
	case m.done:
		return style.Success.Render("✓ "+m.title) + "\n"
	}
	return m.spinner.View() + " " + m.title + "...\n"
}

// ErrInterrupted is returned when the user presses ctrl+c under a spinner.
var ErrInterrupted = fmt.Errorf("interrupted")

// RunWithSpinner runs fn while showing a spinner and returns its result.
func RunWithSpinner[T any](title string, fn func() (T, error)) (T, error) {
	var zero T
	m := newSpinnerModel(title, func() (any, error) { return fn() })

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return zero, err
	}
	res := final.(spinnerModel)
	if res.quitting {
		return zero, ErrInterrupted
	}
	if res.err != nil {
		return zero, res.err
	}
	out, _ := res.result.(T)
	return out, nil
}
