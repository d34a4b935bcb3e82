package fileutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		path    string
		want    bool
	}{
		{name: "no patterns", path: "a/b.png", want: true},
		{name: "star stays in directory", include: []string{"*.png"}, path: "a/b.png", want: false},
		{name: "double star crosses directories", include: []string{"**.png"}, path: "a/b.png", want: true},
		{name: "exclude wins", include: []string{"**"}, exclude: []string{"**.map"}, path: "index.bundle.map", want: false},
		{name: "alternatives", include: []string{"*.{bundle,jsbundle}"}, path: "main.jsbundle", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.include, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Match(tt.path))
		})
	}
}

func TestWalk(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"index.android.bundle", "drawable/logo.png", "drawable/logo.png.map"} {
		require.NoError(t, WriteFile(filepath.Join(dir, filepath.FromSlash(p)), []byte("x")))
	}

	f, err := NewFilter(nil, []string{"**.map"})
	require.NoError(t, err)
	entries, err := Walk(dir, f)
	require.NoError(t, err)

	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
		assert.Equal(t, int64(1), e.Size)
	}
	assert.Equal(t, []string{"drawable/logo.png", "index.android.bundle"}, paths)

	entries, err = Walk(filepath.Join(dir, "missing"), nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
