package vcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juspay/airborne-cli/util/common/errors"
)

const sha = "0123456789abcdef0123456789abcdef01234567"

func writeGit(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, ".git", filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func TestInfoFromLooseRef(t *testing.T) {
	root := t.TempDir()
	writeGit(t, root, map[string]string{
		"HEAD":            "ref: refs/heads/main\n",
		"refs/heads/main": sha + "\n",
		"config":          "[core]\n\tbare = false\n[remote \"origin\"]\n\turl = git@github.com:acme/shop.git\n",
	})
	sub := filepath.Join(root, "android", "app")
	require.NoError(t, os.MkdirAll(sub, 0755))

	repo, err := Open(sub)
	require.NoError(t, err)
	info, err := repo.Info()
	require.NoError(t, err)
	assert.Equal(t, &GitInfo{Remote: "git@github.com:acme/shop.git", Branch: "main", Commit: sha}, info)
	assert.Equal(t, map[string]any{
		"git_remote": "git@github.com:acme/shop.git",
		"git_branch": "main",
		"git_commit": sha,
	}, info.Metadata())
}

func TestInfoFromPackedRefsWithoutRemote(t *testing.T) {
	root := t.TempDir()
	writeGit(t, root, map[string]string{
		"HEAD":        "ref: refs/heads/release/1.2\n",
		"packed-refs": "# pack-refs with: peeled fully-peeled sorted\n" + sha + " refs/heads/release/1.2\n",
		"config":      "[core]\n\tbare = false\n",
	})

	repo, err := Open(root)
	require.NoError(t, err)
	info, err := repo.Info()
	require.NoError(t, err)
	assert.Equal(t, "release/1.2", info.Branch)
	assert.Equal(t, sha, info.Commit)
	assert.Empty(t, info.Remote)
}

func TestDetachedHead(t *testing.T) {
	root := t.TempDir()
	writeGit(t, root, map[string]string{"HEAD": sha + "\n"})

	repo, err := Open(root)
	require.NoError(t, err)
	branch, err := repo.Branch()
	require.NoError(t, err)
	assert.Empty(t, branch)
	commit, err := repo.Commit()
	require.NoError(t, err)
	assert.Equal(t, sha, commit)
}

func TestOpenOutsideRepository(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	var nilInfo *GitInfo
	assert.Nil(t, nilInfo.Metadata())
}
