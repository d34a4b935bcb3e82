package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juspay/airborne-cli/util/common/errors"
)

func TestJSONRoundTripCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "android", "app", "src", "main", "assets", "shop", "release_config.json")

	in := map[string]any{"version": "", "resources": []any{}}
	require.NoError(t, WriteJSON(path, in))
	assert.True(t, IsFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"resources\": [],\n  \"version\": \"\"\n}\n", string(data))

	var out map[string]any
	require.NoError(t, ReadJSON(path, &out))
	assert.Equal(t, "", out["version"])
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile("")
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	_, err = ReadFile(dir)
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	var v map[string]any
	err = ReadJSON(bad, &v)
	var fErr *errors.FileError
	require.True(t, errors.As(err, &fErr))
	assert.Equal(t, "parse", fErr.Op)
}

func TestResetDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "build", "generated", "airborne")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.bundle"), []byte("x"), 0644))

	require.NoError(t, ResetDir(dir))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("release.YAML", ".yaml", ".yml"))
	assert.True(t, HasExtension("release.toml", ".toml"))
	assert.False(t, HasExtension("release.json", ".yaml", ".toml"))
	assert.False(t, HasExtension("release", ".yaml"))
}
