// Package terminal decides how the CLI talks to the user: colour, prompts
// and output format all hang off the Info resolved once at startup.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Info holds the resolved terminal state for the current process.
type Info struct {
	// IsTerminal is true when stdout is connected to a TTY.
	IsTerminal bool
	// StdinIsTerminal is true when stdin can answer prompts.
	StdinIsTerminal bool
	// ColorEnabled is true when ANSI colours should be emitted.
	ColorEnabled bool
	// InteractiveEnabled is true when the menu and wizards may run.
	InteractiveEnabled bool
	// ForceJSON is true when --json was explicitly passed.
	ForceJSON bool
	// Width is the stdout width in columns, 0 when unknown.
	Width int
}

// Detect inspects the environment. NO_COLOR and AIRBORNE_NO_COLOR both
// disable colour; CI environments never get interactive prompts.
func Detect(noColor, interactive, forceJSON bool) Info {
	stdoutFd := int(os.Stdout.Fd())
	isTTY := term.IsTerminal(stdoutFd)
	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))

	envNoColor := os.Getenv("NO_COLOR") != "" || os.Getenv("AIRBORNE_NO_COLOR") != ""

	info := Info{
		IsTerminal:         isTTY,
		StdinIsTerminal:    stdinTTY,
		ColorEnabled:       isTTY && !noColor && !envNoColor && !IsDumb(),
		InteractiveEnabled: isTTY && stdinTTY && interactive && !IsCI(),
		ForceJSON:          forceJSON,
	}
	if isTTY {
		if w, _, err := term.GetSize(stdoutFd); err == nil {
			info.Width = w
		}
	}
	return info
}

// CanPrompt reports whether a confirmation or form can be shown.
func (i Info) CanPrompt() bool {
	return i.IsTerminal && i.StdinIsTerminal && !i.ForceJSON
}

// IsDumb returns true when the terminal is known to have no capabilities.
func IsDumb() bool {
	t := strings.ToLower(os.Getenv("TERM"))
	return t == "dumb" || t == ""
}

// IsCI returns true when a well-known CI environment variable is set.
func IsCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "JENKINS_URL", "GITLAB_CI", "CIRCLECI", "BUILDKITE", "BITRISE_IO"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}
