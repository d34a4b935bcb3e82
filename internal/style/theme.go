// Package style defines the visual theme for the Airborne CLI.
// Colours, borders and text styles live here so that every TUI component and
// formatted table renders with the same look.
//
// Call Init(colorEnabled) once at startup.
package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ─── Colour palette ──────────────────────────────────────────────────────────

var (
	// Brand
	Sky    = lipgloss.Color("#0EA5E9")
	Cyan   = lipgloss.Color("#00B4D8")
	Violet = lipgloss.Color("#8B5CF6")

	// Semantic
	Green  = lipgloss.Color("#22C55E")
	Yellow = lipgloss.Color("#FACC15")
	Red    = lipgloss.Color("#EF4444")
	Orange = lipgloss.Color("#F97316")

	// Neutral
	White  = lipgloss.Color("#FAFAFA")
	Dim    = lipgloss.Color("#6B7280")
	Subtle = lipgloss.Color("#374151")
)

// ─── Text styles ─────────────────────────────────────────────────────────────

var (
	// Title is used for top-level headings and the menu banner.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Sky).
		PaddingBottom(1)

	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan)

	Success = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Yellow)

	Error = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	// DimText is used for hints and secondary info.
	DimText = lipgloss.NewStyle().
		Foreground(Dim)

	// Code renders ids, dimension names and file paths.
	Code = lipgloss.NewStyle().
		Foreground(Violet)

	Bold = lipgloss.NewStyle().Bold(true)
)

// ─── Component styles ────────────────────────────────────────────────────────

var (
	MenuTitle = lipgloss.NewStyle().
			Background(Sky).
			Foreground(White).
			Bold(true).
			Padding(0, 2)

	StatusBar = lipgloss.NewStyle().
			Foreground(Dim).
			PaddingTop(1)

	// Box frames forms and detail views.
	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(1, 2)

	HelpKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Dim)

	SpinnerColor = Cyan
)

// ─── Banner ──────────────────────────────────────────────────────────────────

// Banner returns the Airborne ASCII banner.
func Banner() string {
	banner := `
    _    _      _
   / \  (_)_ __| |__   ___  _ __ _ __   ___
  / _ \ | | '__| '_ \ / _ \| '__| '_ \ / _ \
 / ___ \| | |  | |_) | (_) | |  | | | |  __/
/_/   \_\_|_|  |_.__/ \___/|_|  |_| |_|\___|`

	return lipgloss.NewStyle().Foreground(Sky).Bold(true).Render(banner)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// Enabled tracks whether styles should render ANSI output.
var Enabled = true

// Init configures the style package. Call once at startup.
func Init(colorEnabled bool) {
	Enabled = colorEnabled
	if !colorEnabled {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// SuccessIcon returns a themed check mark.
func SuccessIcon() string {
	if Enabled {
		return Success.Render("✓")
	}
	return "OK"
}

// ErrorIcon returns a themed X mark.
func ErrorIcon() string {
	if Enabled {
		return Error.Render("✗")
	}
	return "ERROR"
}

// WarningIcon returns a themed warning indicator.
func WarningIcon() string {
	if Enabled {
		return Warning.Render("!")
	}
	return "WARN"
}

// Hint renders a "next step" hint message.
func Hint(msg string) string {
	return DimText.Render("→ " + msg)
}

// ReleaseStatus colours an experiment status: created is dim, in progress
// yellow, concluded green and discarded red. Unknown values are returned
// unchanged.
func ReleaseStatus(status string) string {
	if !Enabled || status == "" {
		return status
	}
	var s lipgloss.Style
	switch strings.ToUpper(strings.ReplaceAll(status, "_", "")) {
	case "CREATED":
		s = DimText
	case "INPROGRESS":
		s = Warning
	case "CONCLUDED":
		s = Success
	case "DISCARDED":
		s = Error
	default:
		return status
	}
	return s.Render(status)
}
