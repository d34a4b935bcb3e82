package devkit

import (
	"context"

	"github.com/juspay/airborne-cli/util/common/errors"
	"github.com/juspay/airborne-cli/util/common/fileutil"
)

// DefaultTimeout is the boot and release config timeout in milliseconds
// used when none is given.
const DefaultTimeout = 4000

// FileRef points at one bundle file. URL and Checksum are filled by the
// server when the release is served.
type FileRef struct {
	FilePath string `json:"file_path"`
	URL      string `json:"url"`
	Checksum string `json:"checksum"`
}

// LocalConfig is the config block of release_config.json.
type LocalConfig struct {
	Version              string         `json:"version"`
	BootTimeout          int            `json:"boot_timeout"`
	ReleaseConfigTimeout int            `json:"release_config_timeout"`
	Properties           map[string]any `json:"properties"`
}

// LocalPackage is the package block of release_config.json.
type LocalPackage struct {
	Name       string         `json:"name"`
	Version    string         `json:"version"`
	Properties map[string]any `json:"properties"`
	Index      FileRef        `json:"index"`
	Important  []FileRef      `json:"important"`
	Lazy       []FileRef      `json:"lazy"`
}

// LocalRelease is the release_config.json bundled into the app. It mirrors
// what the server returns from the serve endpoint.
type LocalRelease struct {
	Version   string       `json:"version"`
	Config    LocalConfig  `json:"config"`
	Package   LocalPackage `json:"package"`
	Resources []FileRef    `json:"resources"`
}

// ReleaseOptions tunes release config generation. Zero timeouts fall back to
// the existing value on update and DefaultTimeout on create.
type ReleaseOptions struct {
	BootTimeout          int
	ReleaseConfigTimeout int
	Runner               Runner
}

func (o ReleaseOptions) validate() error {
	if o.BootTimeout < 0 {
		return errors.NewValidationError("boot_timeout", "must be a positive number")
	}
	if o.ReleaseConfigTimeout < 0 {
		return errors.NewValidationError("release_config_timeout", "must be a positive number")
	}
	return nil
}

// HasReleaseConfig reports whether release_config.json exists for p.
func (pr *Project) HasReleaseConfig(p Platform) bool {
	return fileutil.IsFile(pr.ReleaseConfigPath(p))
}

// ReadReleaseConfig loads release_config.json for p.
func (pr *Project) ReadReleaseConfig(p Platform) (*LocalRelease, error) {
	path := pr.ReleaseConfigPath(p)
	if !fileutil.IsFile(path) {
		return nil, errors.Wrap(errors.ErrNotFound, "release config "+path)
	}
	var rc LocalRelease
	if err := fileutil.ReadJSON(path, &rc); err != nil {
		return nil, err
	}
	return &rc, nil
}

// WriteReleaseConfig stores rc as release_config.json for p.
func (pr *Project) WriteReleaseConfig(p Platform, rc *LocalRelease) error {
	return fileutil.WriteJSON(pr.ReleaseConfigPath(p), rc)
}

// CreateReleaseConfig bundles p and writes a fresh release_config.json. It
// fails if one already exists.
func (pr *Project) CreateReleaseConfig(ctx context.Context, p Platform, opts ReleaseOptions) (*LocalRelease, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if pr.HasReleaseConfig(p) {
		return nil, errors.Wrap(errors.ErrInvalidOperation, "release config already exists at "+pr.ReleaseConfigPath(p)+", use update")
	}
	index, important, err := pr.build(ctx, p, opts.Runner)
	if err != nil {
		return nil, err
	}
	rc := &LocalRelease{
		Config: LocalConfig{
			BootTimeout:          orDefault(opts.BootTimeout, DefaultTimeout),
			ReleaseConfigTimeout: orDefault(opts.ReleaseConfigTimeout, DefaultTimeout),
			Properties:           map[string]any{},
		},
		Package: LocalPackage{
			Name:       pr.Config.Namespace,
			Properties: map[string]any{},
			Index:      index,
			Important:  important,
			Lazy:       []FileRef{},
		},
		Resources: []FileRef{},
	}
	if err := pr.WriteReleaseConfig(p, rc); err != nil {
		return nil, err
	}
	return rc, nil
}

// UpdateReleaseConfig rebundles p and rewrites release_config.json, keeping
// versions, properties, timeouts not overridden in opts and resources that
// are not part of the new bundle.
func (pr *Project) UpdateReleaseConfig(ctx context.Context, p Platform, opts ReleaseOptions) (*LocalRelease, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	existing, err := pr.ReadReleaseConfig(p)
	if err != nil {
		return nil, err
	}
	index, important, err := pr.build(ctx, p, opts.Runner)
	if err != nil {
		return nil, err
	}

	bundled := map[string]bool{index.FilePath: true}
	for _, f := range important {
		bundled[f.FilePath] = true
	}
	resources := []FileRef{}
	for _, r := range existing.Resources {
		if !bundled[r.FilePath] {
			resources = append(resources, r)
		}
	}
	lazy := existing.Package.Lazy
	if lazy == nil {
		lazy = []FileRef{}
	}

	rc := &LocalRelease{
		Version: existing.Version,
		Config: LocalConfig{
			Version:              existing.Config.Version,
			BootTimeout:          orDefault(opts.BootTimeout, orDefault(existing.Config.BootTimeout, DefaultTimeout)),
			ReleaseConfigTimeout: orDefault(opts.ReleaseConfigTimeout, orDefault(existing.Config.ReleaseConfigTimeout, DefaultTimeout)),
			Properties:           nonNil(existing.Config.Properties),
		},
		Package: LocalPackage{
			Name:       pr.Config.Namespace,
			Version:    existing.Package.Version,
			Properties: nonNil(existing.Package.Properties),
			Index:      index,
			Important:  important,
			Lazy:       lazy,
		},
		Resources: resources,
	}
	if err := pr.WriteReleaseConfig(p, rc); err != nil {
		return nil, err
	}
	return rc, nil
}

// build bundles p and splits the output into the index file and the
// remaining important files.
func (pr *Project) build(ctx context.Context, p Platform, r Runner) (FileRef, []FileRef, error) {
	if err := pr.Bundle(ctx, r, p); err != nil {
		return FileRef{}, nil, err
	}
	entries, err := fileutil.Walk(pr.BuildPath(p), nil)
	if err != nil {
		return FileRef{}, nil, errors.NewBundleError("scan build output", string(p), err)
	}
	indexPath := pr.Config.IndexFile(p)
	index := FileRef{FilePath: indexPath}
	found := false
	important := []FileRef{}
	for _, e := range entries {
		if e.Path == indexPath {
			found = true
			continue
		}
		important = append(important, FileRef{FilePath: e.Path})
	}
	if !found {
		return FileRef{}, nil, errors.NewBundleError("scan build output", string(p),
			errors.Wrap(errors.ErrNotFound, "index file "+indexPath))
	}
	return index, important, nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func nonNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
