package fileutil

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"github.com/juspay/airborne-cli/util/common/errors"
)

// Filter selects slash separated relative paths by glob. An empty include
// list matches everything; excludes always win.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewFilter compiles include and exclude patterns. '/' is the separator so
// "*" stays within one directory and "**" crosses directories.
func NewFilter(include, exclude []string) (*Filter, error) {
	f := &Filter{}
	for _, p := range include {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.NewValidationError("include", "invalid pattern "+p+": "+err.Error())
		}
		f.include = append(f.include, g)
	}
	for _, p := range exclude {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.NewValidationError("exclude", "invalid pattern "+p+": "+err.Error())
		}
		f.exclude = append(f.exclude, g)
	}
	return f, nil
}

// Match reports whether rel is selected.
func (f *Filter) Match(rel string) bool {
	if f == nil {
		return true
	}
	for _, g := range f.exclude {
		if g.Match(rel) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Entry is a regular file found by Walk.
type Entry struct {
	// Path is relative to the walked root, slash separated.
	Path     string
	FullPath string
	Size     int64
}

// Walk lists the regular files under root that f selects, sorted by path.
// A missing root yields no entries.
func Walk(root string, f *Filter) ([]Entry, error) {
	if !IsDir(root) {
		return nil, nil
	}
	var out []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.NewFileError(path, "walk", err)
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.NewFileError(path, "walk", err)
		}
		rel = filepath.ToSlash(rel)
		if !f.Match(rel) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return errors.NewFileError(path, "stat", err)
		}
		out = append(out, Entry{Path: rel, FullPath: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
