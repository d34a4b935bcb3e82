package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var ciVars = []string{"CI", "GITHUB_ACTIONS", "JENKINS_URL", "GITLAB_CI", "CIRCLECI", "BUILDKITE", "BITRISE_IO"}

func clearCI(t *testing.T) {
	for _, v := range ciVars {
		t.Setenv(v, "")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		noColor     bool
		interactive bool
		forceJSON   bool
		check       func(t *testing.T, info Info)
	}{
		{
			name:    "no color flag",
			noColor: true,
			check: func(t *testing.T, info Info) {
				assert.False(t, info.ColorEnabled)
			},
		},
		{
			name: "NO_COLOR env",
			env:  map[string]string{"NO_COLOR": "1"},
			check: func(t *testing.T, info Info) {
				assert.False(t, info.ColorEnabled)
			},
		},
		{
			name: "AIRBORNE_NO_COLOR env",
			env:  map[string]string{"AIRBORNE_NO_COLOR": "1"},
			check: func(t *testing.T, info Info) {
				assert.False(t, info.ColorEnabled)
			},
		},
		{
			name:      "force json never prompts",
			forceJSON: true,
			check: func(t *testing.T, info Info) {
				assert.True(t, info.ForceJSON)
				assert.False(t, info.CanPrompt())
			},
		},
		{
			name:        "interactive is off in CI",
			env:         map[string]string{"CI": "true"},
			interactive: true,
			check: func(t *testing.T, info Info) {
				assert.False(t, info.InteractiveEnabled)
			},
		},
		{
			name:        "interactive requires a tty",
			interactive: true,
			check: func(t *testing.T, info Info) {
				if !info.IsTerminal {
					assert.False(t, info.InteractiveEnabled)
					assert.Zero(t, info.Width)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearCI(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, Detect(tt.noColor, tt.interactive, tt.forceJSON))
		})
	}
}

func TestCanPrompt(t *testing.T) {
	assert.True(t, Info{IsTerminal: true, StdinIsTerminal: true}.CanPrompt())
	assert.False(t, Info{IsTerminal: true}.CanPrompt())
	assert.False(t, Info{StdinIsTerminal: true}.CanPrompt())
}

func TestIsDumb(t *testing.T) {
	t.Setenv("TERM", "dumb")
	assert.True(t, IsDumb())
	t.Setenv("TERM", "")
	assert.True(t, IsDumb())
	t.Setenv("TERM", "xterm-256color")
	assert.False(t, IsDumb())
}

func TestIsCI(t *testing.T) {
	clearCI(t)
	assert.False(t, IsCI())
	t.Setenv("BUILDKITE", "true")
	assert.True(t, IsCI())
}
