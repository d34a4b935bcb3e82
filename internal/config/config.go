package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/juspay/airborne-cli/internal/api/airborne"
)

// ReleaseManifest describes a release in a YAML or TOML file so it can be
// kept under version control and created with `airborne release create
// --file`.
type ReleaseManifest struct {
	Organisation string            `yaml:"organisation" toml:"organisation"`
	Application  string            `yaml:"application" toml:"application"`
	PackageID    string            `yaml:"package_id" toml:"package_id"`
	Config       ManifestConfig    `yaml:"config" toml:"config"`
	Package      ManifestPackage   `yaml:"package" toml:"package"`
	Dimensions   map[string]string `yaml:"dimensions" toml:"dimensions"`
	Resources    []string          `yaml:"resources" toml:"resources"`
	SubPackages  []string          `yaml:"sub_packages" toml:"sub_packages"`
}

// ManifestConfig is the release config section.
type ManifestConfig struct {
	BootTimeout          int            `yaml:"boot_timeout" toml:"boot_timeout"`
	ReleaseConfigTimeout int            `yaml:"release_config_timeout" toml:"release_config_timeout"`
	Properties           map[string]any `yaml:"properties" toml:"properties"`
}

// ManifestPackage overrides package contents.
type ManifestPackage struct {
	Properties map[string]any `yaml:"properties" toml:"properties"`
	Important  []string       `yaml:"important" toml:"important"`
	Lazy       []string       `yaml:"lazy" toml:"lazy"`
}

// LoadReleaseManifest loads a manifest from a .yaml, .yml or .toml file.
// ${VAR} references are expanded from the environment before parsing.
func LoadReleaseManifest(path string) (*ReleaseManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest file: %w", err)
	}

	// Expand environment variables in the file
	expanded := expandEnv(string(data))

	var m ReleaseManifest
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal([]byte(expanded), &m); err != nil {
			return nil, fmt.Errorf("error parsing manifest file: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(expanded, &m); err != nil {
			return nil, fmt.Errorf("error parsing manifest file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q, use .yaml, .yml or .toml", ext)
	}

	if err := validateManifest(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func expandEnv(content string) string {
	return os.Expand(content, os.Getenv)
}

func validateManifest(m *ReleaseManifest) error {
	if m.PackageID != "" {
		key, err := airborne.ParsePackageKey(m.PackageID)
		if err != nil {
			return err
		}
		m.PackageID = key
	}
	if m.Config.BootTimeout < 0 {
		return fmt.Errorf("config.boot_timeout must not be negative")
	}
	if m.Config.ReleaseConfigTimeout < 0 {
		return fmt.Errorf("config.release_config_timeout must not be negative")
	}
	for k := range m.Dimensions {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("dimension keys must not be empty")
		}
	}
	return nil
}

// Input converts the manifest into a create release request.
func (m *ReleaseManifest) Input() airborne.CreateReleaseInput {
	in := airborne.CreateReleaseInput{
		Tenant: airborne.Tenant{Organisation: m.Organisation, Application: m.Application},
		Config: airborne.ReleaseConfigInput{
			BootTimeout:          m.Config.BootTimeout,
			ReleaseConfigTimeout: m.Config.ReleaseConfigTimeout,
			Properties:           m.Config.Properties,
		},
		PackageID:   m.PackageID,
		Resources:   m.Resources,
		SubPackages: m.SubPackages,
	}
	if m.Package.Properties != nil || len(m.Package.Important) > 0 || len(m.Package.Lazy) > 0 {
		in.Package = &airborne.ReleasePackageInput{
			Properties: m.Package.Properties,
			Important:  m.Package.Important,
			Lazy:       m.Package.Lazy,
		}
	}
	if len(m.Dimensions) > 0 {
		in.Dimensions = make(map[string]any, len(m.Dimensions))
		for k, v := range m.Dimensions {
			in.Dimensions[k] = v
		}
	}
	return in
}
