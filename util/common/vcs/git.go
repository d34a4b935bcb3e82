// Package vcs reads git provenance for a React Native project without
// shelling out to git.
package vcs

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/juspay/airborne-cli/util/common/errors"
	"github.com/juspay/airborne-cli/util/common/fileutil"

	"gopkg.in/ini.v1"
)

// GitInfo is the provenance recorded on files created by the devkit.
type GitInfo struct {
	Remote string `json:"git_remote,omitempty"`
	Branch string `json:"git_branch,omitempty"`
	Commit string `json:"git_commit,omitempty"`
}

// Metadata returns the non-empty fields as a file metadata map.
func (g *GitInfo) Metadata() map[string]any {
	if g == nil {
		return nil
	}
	out := map[string]any{}
	if g.Remote != "" {
		out["git_remote"] = g.Remote
	}
	if g.Branch != "" {
		out["git_branch"] = g.Branch
	}
	if g.Commit != "" {
		out["git_commit"] = g.Commit
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FindRoot walks up from dir to the first directory containing .git.
func FindRoot(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		if fileutil.IsDir(filepath.Join(abs, ".git")) {
			return abs, true
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", false
		}
		abs = parent
	}
}

// Repository is a git work tree on disk.
type Repository struct {
	path string
}

// Open returns the repository enclosing dir.
func Open(dir string) (*Repository, error) {
	root, ok := FindRoot(dir)
	if !ok {
		return nil, errors.NewVCSError("open", dir, errors.ErrNotFound)
	}
	return &Repository{path: root}, nil
}

func (r *Repository) gitDir() string { return filepath.Join(r.path, ".git") }

func (r *Repository) head() (string, error) {
	data, err := fileutil.ReadFile(filepath.Join(r.gitDir(), "HEAD"))
	if err != nil {
		return "", errors.NewVCSError("read HEAD", r.path, err)
	}
	head := strings.TrimSpace(string(data))
	if head == "" {
		return "", errors.NewVCSError("read HEAD", r.path, errors.ErrInvalidOperation)
	}
	return head, nil
}

// Info reads the current branch, commit and origin remote. A missing remote
// is not an error.
func (r *Repository) Info() (*GitInfo, error) {
	branch, err := r.Branch()
	if err != nil {
		return nil, err
	}
	commit, err := r.Commit()
	if err != nil {
		return nil, err
	}
	remote, err := r.RemoteURL("origin")
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}
	return &GitInfo{Remote: remote, Branch: branch, Commit: commit}, nil
}

// Branch returns the checked out branch, or "" on a detached HEAD.
func (r *Repository) Branch() (string, error) {
	head, err := r.head()
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(head, "ref: ") {
		return "", nil
	}
	return strings.TrimPrefix(strings.TrimPrefix(head, "ref: "), "refs/heads/"), nil
}

// Commit resolves HEAD to a commit hash, consulting packed-refs when the
// loose ref is missing.
func (r *Repository) Commit() (string, error) {
	head, err := r.head()
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(head, "ref: ") {
		if !isValidSHA(head) {
			return "", errors.NewVCSError("resolve HEAD", r.path, errors.ErrInvalidOperation)
		}
		return head, nil
	}
	ref := strings.TrimPrefix(head, "ref: ")

	if data, err := os.ReadFile(filepath.Join(r.gitDir(), filepath.FromSlash(ref))); err == nil {
		sha := strings.TrimSpace(string(data))
		if isValidSHA(sha) {
			return sha, nil
		}
	}
	sha, err := r.packedRef(ref)
	if err != nil {
		return "", err
	}
	// unborn branch
	if sha == "" {
		return "", nil
	}
	return sha, nil
}

func (r *Repository) packedRef(ref string) (string, error) {
	f, err := os.Open(filepath.Join(r.gitDir(), "packed-refs"))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.NewVCSError("read packed-refs", r.path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == '#' || line[0] == '^' {
			continue
		}
		sha, name, ok := strings.Cut(line, " ")
		if ok && name == ref && isValidSHA(sha) {
			return sha, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", errors.NewVCSError("read packed-refs", r.path, err)
	}
	return "", nil
}

// RemoteURL returns the url of the named remote from .git/config.
func (r *Repository) RemoteURL(name string) (string, error) {
	configPath := filepath.Join(r.gitDir(), "config")
	if !fileutil.IsFile(configPath) {
		return "", errors.NewVCSError("read config", r.path, errors.ErrNotFound)
	}
	cfg, err := ini.Load(configPath)
	if err != nil {
		return "", errors.NewVCSError("read config", r.path, err)
	}
	section, err := cfg.GetSection(`remote "` + name + `"`)
	if err != nil {
		return "", errors.NewVCSError("remote "+name, r.path, errors.ErrNotFound)
	}
	return section.Key("url").String(), nil
}

func isValidSHA(hash string) bool {
	if len(hash) != 40 && len(hash) != 64 {
		return false
	}
	for _, c := range hash {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return false
		}
	}
	return true
}
