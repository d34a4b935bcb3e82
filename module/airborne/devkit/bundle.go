package devkit

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/juspay/airborne-cli/util/common/errors"
	"github.com/juspay/airborne-cli/util/common/fileutil"
)

// Runner executes an external command in dir and returns its combined
// output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// BundleArgs returns the npx arguments that bundle p into its build
// directory.
func (pr *Project) BundleArgs(p Platform) []string {
	build := filepath.ToSlash(BuildDir(p))
	args := []string{"react-native", "bundle"}
	if pr.Config.Expo {
		args = []string{"expo", "export:embed"}
	}
	return append(args,
		"--platform", string(p),
		"--dev", "false",
		"--entry-file", pr.Config.EntryFile(),
		"--bundle-output", build+"/"+pr.Config.IndexFile(p),
		"--assets-dest", build,
	)
}

// Bundle clears the build directory for p and runs the bundler into it.
func (pr *Project) Bundle(ctx context.Context, r Runner, p Platform) error {
	if r == nil {
		r = ExecRunner{}
	}
	if err := fileutil.ResetDir(pr.BuildPath(p)); err != nil {
		return errors.NewBundleError("prepare build directory", string(p), err)
	}
	args := pr.BundleArgs(p)
	log.Debug().
		Str("dir", pr.Dir).
		Str("command", "npx "+strings.Join(args, " ")).
		Msg("Bundling")
	out, err := r.Run(ctx, pr.Dir, "npx", args...)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			err = fmt.Errorf("%w: %s", err, lastLines(msg, 10))
		}
		return errors.NewBundleError("bundle", string(p), err)
	}
	return nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
