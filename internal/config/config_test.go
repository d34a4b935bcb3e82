package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const wantBody = `{
	"config": {"boot_timeout": 5000, "release_config_timeout": 3000, "properties": {"theme": "dark"}},
	"package_id": "version:7",
	"package": {"important": ["index.android.bundle"]},
	"dimensions": {"os": "android", "app_version": "1.2.0"},
	"resources": ["terms.html"]
}`

func TestLoadReleaseManifest(t *testing.T) {
	t.Setenv("AIRBORNE_TEST_VERSION", "1.2.0")

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "release.yaml",
			content: `
organisation: acme
application: shop
package_id: "7"
config:
  boot_timeout: 5000
  release_config_timeout: 3000
  properties:
    theme: dark
package:
  important: [index.android.bundle]
dimensions:
  os: android
  app_version: ${AIRBORNE_TEST_VERSION}
resources: [terms.html]
`,
		},
		{
			name: "toml",
			file: "release.toml",
			content: `
organisation = "acme"
application = "shop"
package_id = "version:7"
resources = ["terms.html"]

[config]
boot_timeout = 5000
release_config_timeout = 3000

[config.properties]
theme = "dark"

[package]
important = ["index.android.bundle"]

[dimensions]
os = "android"
app_version = "${AIRBORNE_TEST_VERSION}"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := LoadReleaseManifest(writeManifest(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, "version:7", m.PackageID)

			in := m.Input()
			assert.Equal(t, "acme", in.Organisation)
			assert.Equal(t, "shop", in.Application)
			body, err := json.Marshal(in)
			require.NoError(t, err)
			assert.JSONEq(t, wantBody, string(body))
		})
	}
}

func TestLoadReleaseManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{name: "unknown extension", file: "release.json", content: `{}`, wantErr: "unsupported manifest format"},
		{name: "bad package key", file: "release.yaml", content: "package_id: latest\n", wantErr: "package_id"},
		{name: "negative timeout", file: "release.yaml", content: "config:\n  boot_timeout: -1\n", wantErr: "boot_timeout"},
		{name: "malformed yaml", file: "release.yaml", content: "config: [\n", wantErr: "error parsing manifest file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReleaseManifest(writeManifest(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := LoadReleaseManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "error reading manifest file")
}
