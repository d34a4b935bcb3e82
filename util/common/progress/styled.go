package progress

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/juspay/airborne-cli/internal/style"
	"golang.org/x/term"
)

// StyledReporter prints themed lines. Concurrent uploads report through the
// same reporter, so writes are serialised.
type StyledReporter struct {
	mu sync.Mutex
}

// NewStyledReporter creates a reporter with lipgloss-styled output.
func NewStyledReporter() *StyledReporter {
	return &StyledReporter{}
}

// NewAutoReporter returns a StyledReporter when stdout is a TTY and colours
// are enabled, otherwise the plain ConsoleReporter.
func NewAutoReporter() Reporter {
	if term.IsTerminal(int(os.Stdout.Fd())) && style.Enabled {
		return NewStyledReporter()
	}
	return NewConsoleReporter()
}

var (
	startStyle   = lipgloss.NewStyle().Bold(true).Foreground(style.Cyan)
	stepStyle    = lipgloss.NewStyle().Foreground(style.Dim).PaddingLeft(2)
	skipStyle    = lipgloss.NewStyle().Foreground(style.Violet).PaddingLeft(2)
	errorStyle   = lipgloss.NewStyle().Foreground(style.Red).Bold(true).PaddingLeft(2)
	successStyle = lipgloss.NewStyle().Foreground(style.Green).Bold(true).PaddingLeft(2)
)

func (r *StyledReporter) println(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Println(s)
}

func (r *StyledReporter) Start(message string) {
	r.println(startStyle.Render("⚡ " + message + "..."))
}

func (r *StyledReporter) Step(message string) {
	r.println(stepStyle.Render("→ " + message))
}

func (r *StyledReporter) Skip(message string) {
	r.println(skipStyle.Render("≡ " + message))
}

func (r *StyledReporter) Error(message string) {
	r.println(errorStyle.Render("✗ " + message))
}

func (r *StyledReporter) Success(message string) {
	r.println(successStyle.Render("✓ " + message))
}

func (r *StyledReporter) End() {}
