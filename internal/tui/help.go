package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/juspay/airborne-cli/internal/style"
)

// StyledHelpTemplate returns a Cobra usage template with coloured headings.
// Only the fixed chrome is styled; command and flag names are left to Cobra.
// Returns "" when colour is off so Cobra uses its default template.
func StyledHelpTemplate() string {
	if !style.Enabled {
		return ""
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(style.Cyan).Render
	dim := lipgloss.NewStyle().Foreground(style.Dim).Render

	return heading("Usage") + `:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}
` + `{{if gt (len .Aliases) 0}}
` + heading("Aliases") + `:
  {{.NameAndAliases}}
{{end}}` + `{{if .HasExample}}
` + heading("Examples") + `:
{{.Example}}
{{end}}` + `{{if .HasAvailableSubCommands}}
` + heading("Available Commands") + `:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }}  {{.Short}}{{end}}{{end}}
{{end}}` + `{{if .HasAvailableLocalFlags}}
` + heading("Flags") + `:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}` + `{{if .HasAvailableInheritedFlags}}
` + heading("Global Flags") + `:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}` + `{{if .HasAvailableSubCommands}}
` + dim(`Use "{{.CommandPath}} [command] --help" for more information about a command.`) + `
{{end}}`
}
