package command

import (
	"fmt"
	"strconv"

	"github.com/juspay/airborne-cli/internal/api/airborne"

	"github.com/spf13/cobra"
)

var releaseColumns = [][]string{
	{"id", "Release"},
	{"package.version", "Package"},
	{"config.version", "Config"},
	{"experiment.status", "Status"},
	{"experiment.traffic_percentage", "Traffic"},
	{"dimensions", "Dimensions"},
	{"created_at", "Created"},
}

// releaseFlags are the release body flags shared by create and update.
type releaseFlags struct {
	packageKey           string
	bootTimeout          int
	releaseConfigTimeout int
	properties           map[string]string
	packageProperties    map[string]string
	important            []string
	lazy                 []string
	dimensions           map[string]string
	resources            []string
	subPackages          []string
}

func (r *releaseFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&r.packageKey, "package", "", "package to release: version:N, tag:T or a version number")
	fs.IntVar(&r.bootTimeout, "boot-timeout", 0, "boot timeout in milliseconds")
	fs.IntVar(&r.releaseConfigTimeout, "release-config-timeout", 0, "release config timeout in milliseconds")
	fs.StringToStringVar(&r.properties, "property", nil, "config properties as key=value")
	fs.StringToStringVar(&r.packageProperties, "package-property", nil, "package properties as key=value")
	fs.StringSliceVar(&r.important, "important", nil, "files loaded before boot")
	fs.StringSliceVar(&r.lazy, "lazy", nil, "files loaded after boot")
	fs.StringToStringVar(&r.dimensions, "dimension", nil, "dimensions the release targets as key=value")
	fs.StringSliceVar(&r.resources, "resources", nil, "resource files")
	fs.StringSliceVar(&r.subPackages, "sub-packages", nil, "sub packages")
}

// apply overrides in with the flags set on cmd.
func (r *releaseFlags) apply(cmd *cobra.Command, in *airborne.CreateReleaseInput) error {
	fs := cmd.Flags()
	if fs.Changed("package") {
		key, err := airborne.ParsePackageKey(r.packageKey)
		if err != nil {
			return err
		}
		in.PackageID = key
	}
	if fs.Changed("boot-timeout") {
		in.Config.BootTimeout = r.bootTimeout
	}
	if fs.Changed("release-config-timeout") {
		in.Config.ReleaseConfigTimeout = r.releaseConfigTimeout
	}
	if fs.Changed("property") {
		in.Config.Properties = anyMap(r.properties)
	}
	if fs.Changed("package-property") || fs.Changed("important") || fs.Changed("lazy") {
		if in.Package == nil {
			in.Package = &airborne.ReleasePackageInput{}
		}
		if fs.Changed("package-property") {
			in.Package.Properties = anyMap(r.packageProperties)
		}
		if fs.Changed("important") {
			in.Package.Important = r.important
		}
		if fs.Changed("lazy") {
			in.Package.Lazy = r.lazy
		}
	}
	if fs.Changed("dimension") {
		in.Dimensions = make(map[string]any, len(r.dimensions))
		for k, v := range r.dimensions {
			in.Dimensions[k] = v
		}
	}
	if fs.Changed("resources") {
		in.Resources = r.resources
	}
	if fs.Changed("sub-packages") {
		in.SubPackages = r.subPackages
	}
	return nil
}

// anyMap converts property flag values, keeping numbers and booleans typed.
// Dimension values always stay strings.
func anyMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = scalar(v)
	}
	return out
}

func scalar(v string) any {
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

// inputFromRelease rebuilds the request body that describes r, so update
// only changes what its flags name.
func inputFromRelease(r *airborne.Release) (airborne.CreateReleaseInput, error) {
	in := airborne.CreateReleaseInput{
		Config: airborne.ReleaseConfigInput{
			BootTimeout:          r.Config.BootTimeout,
			ReleaseConfigTimeout: r.Config.ReleaseConfigTimeout,
			Properties:           r.Config.Properties,
		},
		Dimensions: r.Dimensions,
	}
	if r.Package.Version != "" {
		key, err := airborne.ParsePackageKey(r.Package.Version)
		if err != nil {
			return in, fmt.Errorf("release %s has package version %q: %w", r.ID, r.Package.Version, err)
		}
		in.PackageID = key
	}
	if r.Package.Properties != nil || len(r.Package.Important) > 0 || len(r.Package.Lazy) > 0 {
		in.Package = &airborne.ReleasePackageInput{
			Properties: r.Package.Properties,
			Important:  filePaths(r.Package.Important),
			Lazy:       filePaths(r.Package.Lazy),
		}
	}
	in.Resources = filePaths(r.Resources)
	return in, nil
}

func filePaths(files []airborne.ServeFile) []string {
	if len(files) == 0 {
		return nil
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.FilePath)
	}
	return out
}
