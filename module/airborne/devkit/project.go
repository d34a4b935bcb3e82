// Package devkit manages the Airborne files that live inside a React Native
// project: airborne-config.json, the per-platform release_config.json and the
// .airborne/mappings.json upload cache.
package devkit

import (
	"path/filepath"
	"strings"

	"github.com/juspay/airborne-cli/util/common/errors"
	"github.com/juspay/airborne-cli/util/common/fileutil"
)

const (
	// ProjectConfigFile is written at the project root by Init.
	ProjectConfigFile = "airborne-config.json"

	DefaultEntryFile    = "index.js"
	DefaultAndroidIndex = "index.android.bundle"
	DefaultIOSIndex     = "main.jsbundle"
)

// Platform is a React Native target platform.
type Platform string

const (
	Android Platform = "android"
	IOS     Platform = "ios"
)

// ParsePlatform accepts android or ios in any case.
func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(strings.ToLower(strings.TrimSpace(s))); p {
	case Android, IOS:
		return p, nil
	}
	return "", errors.NewValidationError("platform", "must be android or ios, got "+s)
}

// PlatformConfig holds per-platform bundle settings.
type PlatformConfig struct {
	IndexFilePath string `json:"index_file_path"`
}

// ProjectConfig is the content of airborne-config.json.
type ProjectConfig struct {
	Organisation string         `json:"organisation"`
	Namespace    string         `json:"namespace"`
	JSEntryFile  string         `json:"js_entry_file"`
	Android      PlatformConfig `json:"android"`
	IOS          PlatformConfig `json:"ios"`
	// Expo switches bundling to `expo export:embed`.
	Expo bool `json:"expo,omitempty"`
}

// IndexFile returns the bundle output name for p, falling back to the
// platform default.
func (c *ProjectConfig) IndexFile(p Platform) string {
	switch p {
	case Android:
		if c.Android.IndexFilePath != "" {
			return c.Android.IndexFilePath
		}
		return DefaultAndroidIndex
	case IOS:
		if c.IOS.IndexFilePath != "" {
			return c.IOS.IndexFilePath
		}
		return DefaultIOSIndex
	}
	return "index." + string(p) + ".bundle"
}

// EntryFile returns the JS entry file, defaulting to index.js.
func (c *ProjectConfig) EntryFile() string {
	if c.JSEntryFile != "" {
		return c.JSEntryFile
	}
	return DefaultEntryFile
}

// ApplyDefaults fills every empty optional field.
func (c *ProjectConfig) ApplyDefaults() {
	if c.JSEntryFile == "" {
		c.JSEntryFile = DefaultEntryFile
	}
	if c.Android.IndexFilePath == "" {
		c.Android.IndexFilePath = DefaultAndroidIndex
	}
	if c.IOS.IndexFilePath == "" {
		c.IOS.IndexFilePath = DefaultIOSIndex
	}
}

// Validate checks the fields the server needs.
func (c *ProjectConfig) Validate() error {
	if strings.TrimSpace(c.Organisation) == "" {
		return errors.NewValidationError("organisation", "is required")
	}
	if strings.TrimSpace(c.Namespace) == "" {
		return errors.NewValidationError("namespace", "is required")
	}
	return nil
}

// Project is a React Native project directory.
type Project struct {
	Dir    string
	Config ProjectConfig
}

// ProjectConfigPath returns the airborne-config.json path under dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectConfigFile)
}

// HasProjectConfig reports whether dir already has an airborne-config.json.
func HasProjectConfig(dir string) bool {
	return fileutil.IsFile(ProjectConfigPath(dir))
}

// Init writes airborne-config.json into dir. It refuses to overwrite an
// existing one.
func Init(dir string, cfg ProjectConfig) (*Project, error) {
	if HasProjectConfig(dir) {
		return nil, errors.Wrap(errors.ErrInvalidOperation, "airborne config already exists at "+ProjectConfigPath(dir))
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := fileutil.WriteJSON(ProjectConfigPath(dir), cfg); err != nil {
		return nil, err
	}
	return &Project{Dir: dir, Config: cfg}, nil
}

// Open loads the project rooted at dir.
func Open(dir string) (*Project, error) {
	path := ProjectConfigPath(dir)
	if !fileutil.IsFile(path) {
		return nil, errors.Wrap(errors.ErrNotConfigured, "no "+ProjectConfigFile+" in "+dir+", run 'airborne devkit init' first")
	}
	var cfg ProjectConfig
	if err := fileutil.ReadJSON(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Project{Dir: dir, Config: cfg}, nil
}

// BuildDir is where bundles for p are generated, relative to the project.
func BuildDir(p Platform) string {
	return filepath.Join(string(p), "build", "generated", "airborne")
}

// BuildPath returns the absolute-or-project-relative build directory for p.
func (pr *Project) BuildPath(p Platform) string {
	return filepath.Join(pr.Dir, BuildDir(p))
}

// ReleaseConfigPath returns where release_config.json lives for p.
func (pr *Project) ReleaseConfigPath(p Platform) string {
	if p == Android {
		return filepath.Join(pr.Dir, "android", "app", "src", "main", "assets", pr.Config.Namespace, "release_config.json")
	}
	return filepath.Join(pr.Dir, string(p), "release_config.json")
}
