package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// ReleaseFormResult is what the release wizard collects.
type ReleaseFormResult struct {
	PackageKey           string
	BootTimeout          int
	ReleaseConfigTimeout int
	Dimensions           map[string]string
}

// ReleaseFormDefaults seeds the wizard. Packages are offered as package keys
// such as "version:7".
type ReleaseFormDefaults struct {
	Packages             []string
	Dimensions           []string
	BootTimeout          int
	ReleaseConfigTimeout int
}

// RunReleaseForm walks the user through a new release.
func RunReleaseForm(d ReleaseFormDefaults) (*ReleaseFormResult, error) {
	var (
		pkg      string
		boot     = strconv.Itoa(d.BootTimeout)
		rc       = strconv.Itoa(d.ReleaseConfigTimeout)
		dimInput string
	)

	pkgField := huh.Field(huh.NewInput().
		Title("Package").
		Description("version:N or tag:T").
		Validate(required("package")).
		Value(&pkg))
	if len(d.Packages) > 0 {
		opts := make([]huh.Option[string], len(d.Packages))
		for i, p := range d.Packages {
			opts[i] = huh.NewOption(p, p)
		}
		pkgField = huh.NewSelect[string]().
			Title("Package").
			Options(opts...).
			Value(&pkg)
	}

	dimHint := "key=value pairs separated by commas"
	if len(d.Dimensions) > 0 {
		dimHint += " (" + strings.Join(d.Dimensions, ", ") + ")"
	}

	form := huh.NewForm(
		huh.NewGroup(pkgField),
		huh.NewGroup(
			huh.NewInput().
				Title("Boot timeout (ms)").
				Validate(positiveInt).
				Value(&boot),
			huh.NewInput().
				Title("Release config timeout (ms)").
				Validate(positiveInt).
				Value(&rc),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Dimensions").
				Description(dimHint).
				Validate(func(s string) error {
					_, err := ParseDimensions(s)
					return err
				}).
				Value(&dimInput),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}

	out := &ReleaseFormResult{PackageKey: pkg}
	out.BootTimeout, _ = strconv.Atoi(boot)
	out.ReleaseConfigTimeout, _ = strconv.Atoi(rc)
	out.Dimensions, _ = ParseDimensions(dimInput)
	return out, nil
}

// ParseDimensions parses "os=android, app_version=1.2" into a map. Empty
// input yields an empty map.
func ParseDimensions(s string) (map[string]string, error) {
	out := map[string]string{}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid dimension %q, expected key=value", part)
		}
		out[k] = v
	}
	return out, nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive number of milliseconds")
	}
	return nil
}
