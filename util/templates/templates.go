// Package templates normalises the help text of commands.
package templates

import (
	"strings"

	"github.com/MakeNowJust/heredoc"
)

const indent = "  "

// LongDesc dedents a raw string literal and trims surrounding blank lines.
func LongDesc(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.TrimSpace(heredoc.Doc(s))
}

// Examples dedents s and indents every line by two spaces, the layout cobra
// prints under "Examples:".
func Examples(s string) string {
	if len(s) == 0 {
		return s
	}
	lines := strings.Split(strings.TrimSpace(heredoc.Doc(s)), "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n")
}
