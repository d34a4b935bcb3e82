package devkit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juspay/airborne-cli/internal/api/airborne"
	cerrors "github.com/juspay/airborne-cli/util/common/errors"
	"github.com/juspay/airborne-cli/util/common/fileutil"
	"github.com/juspay/airborne-cli/util/common/vcs"
)

// fakeBundler writes a bundle and its assets instead of running npx.
type fakeBundler struct {
	assets map[string]string
	calls  [][]string
	err    error
}

func (f *fakeBundler) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return []byte("error: unable to resolve module"), f.err
	}
	var out, dest string
	for i := 0; i < len(args)-1; i++ {
		switch args[i] {
		case "--bundle-output":
			out = args[i+1]
		case "--assets-dest":
			dest = args[i+1]
		}
	}
	if err := fileutil.WriteFile(filepath.Join(dir, out), []byte("bundle")); err != nil {
		return nil, err
	}
	for p, body := range f.assets {
		if err := fileutil.WriteFile(filepath.Join(dir, dest, p), []byte(body)); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func newProject(t *testing.T, expo bool) *Project {
	t.Helper()
	pr, err := Init(t.TempDir(), ProjectConfig{Organisation: "acme", Namespace: "shop", Expo: expo})
	require.NoError(t, err)
	return pr
}

func TestInitAndOpen(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(dir)
	assert.True(t, errors.Is(err, cerrors.ErrNotConfigured))

	_, err = Init(dir, ProjectConfig{Namespace: "shop"})
	var vErr *cerrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "organisation", vErr.Field)

	_, err = Init(dir, ProjectConfig{Organisation: "acme", Namespace: "shop"})
	require.NoError(t, err)

	pr, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultEntryFile, pr.Config.JSEntryFile)
	assert.Equal(t, DefaultAndroidIndex, pr.Config.IndexFile(Android))
	assert.Equal(t, DefaultIOSIndex, pr.Config.IndexFile(IOS))

	_, err = Init(dir, ProjectConfig{Organisation: "acme", Namespace: "shop"})
	assert.True(t, errors.Is(err, cerrors.ErrInvalidOperation))
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform(" Android ")
	require.NoError(t, err)
	assert.Equal(t, Android, p)
	_, err = ParsePlatform("web")
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	pr := &Project{Dir: "/app", Config: ProjectConfig{Namespace: "shop"}}
	assert.Equal(t, filepath.FromSlash("/app/android/app/src/main/assets/shop/release_config.json"), pr.ReleaseConfigPath(Android))
	assert.Equal(t, filepath.FromSlash("/app/ios/release_config.json"), pr.ReleaseConfigPath(IOS))
	assert.Equal(t, filepath.FromSlash("/app/ios/build/generated/airborne"), pr.BuildPath(IOS))
	assert.Equal(t, filepath.FromSlash("/app/.airborne/mappings.json"), MappingsPath("/app"))
}

func TestBundleArgs(t *testing.T) {
	tests := []struct {
		name string
		expo bool
		want string
	}{
		{
			name: "react native",
			want: "react-native bundle --platform android --dev false --entry-file index.js --bundle-output android/build/generated/airborne/index.android.bundle --assets-dest android/build/generated/airborne",
		},
		{
			name: "expo",
			expo: true,
			want: "expo export:embed --platform android --dev false --entry-file index.js --bundle-output android/build/generated/airborne/index.android.bundle --assets-dest android/build/generated/airborne",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := newProject(t, tt.expo)
			assert.Equal(t, tt.want, strings.Join(pr.BundleArgs(Android), " "))
		})
	}
}

func TestBundleFailureIsReported(t *testing.T) {
	pr := newProject(t, false)
	_, err := pr.CreateReleaseConfig(context.Background(), Android, ReleaseOptions{Runner: &fakeBundler{err: errors.New("exit status 1")}})
	var bErr *cerrors.BundleError
	require.True(t, errors.As(err, &bErr))
	assert.Equal(t, "android", bErr.Platform)
	assert.Contains(t, err.Error(), "unable to resolve module")
	assert.False(t, pr.HasReleaseConfig(Android))
}

func TestCreateReleaseConfig(t *testing.T) {
	pr := newProject(t, false)
	runner := &fakeBundler{assets: map[string]string{
		"drawable-mdpi/logo.png": "png",
		"raw/font.ttf":           "ttf",
	}}

	rc, err := pr.CreateReleaseConfig(context.Background(), Android, ReleaseOptions{BootTimeout: 6000, Runner: runner})
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "npx", runner.calls[0][0])

	assert.Equal(t, 6000, rc.Config.BootTimeout)
	assert.Equal(t, DefaultTimeout, rc.Config.ReleaseConfigTimeout)
	assert.Equal(t, "shop", rc.Package.Name)
	assert.Equal(t, FileRef{FilePath: "index.android.bundle"}, rc.Package.Index)
	assert.Equal(t, []FileRef{{FilePath: "drawable-mdpi/logo.png"}, {FilePath: "raw/font.ttf"}}, rc.Package.Important)
	assert.Empty(t, rc.Package.Lazy)
	assert.Empty(t, rc.Resources)

	data, err := os.ReadFile(pr.ReleaseConfigPath(Android))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"version": "",
		"config": {"version": "", "boot_timeout": 6000, "release_config_timeout": 4000, "properties": {}},
		"package": {
			"name": "shop", "version": "", "properties": {},
			"index": {"file_path": "index.android.bundle", "url": "", "checksum": ""},
			"important": [
				{"file_path": "drawable-mdpi/logo.png", "url": "", "checksum": ""},
				{"file_path": "raw/font.ttf", "url": "", "checksum": ""}
			],
			"lazy": []
		},
		"resources": []
	}`, string(data))

	_, err = pr.CreateReleaseConfig(context.Background(), Android, ReleaseOptions{Runner: runner})
	assert.True(t, errors.Is(err, cerrors.ErrInvalidOperation))
}

func TestUpdateReleaseConfigKeepsVersionsAndResources(t *testing.T) {
	pr := newProject(t, false)
	require.NoError(t, pr.WriteReleaseConfig(IOS, &LocalRelease{
		Version: "12",
		Config: LocalConfig{
			Version:              "3",
			BootTimeout:          5000,
			ReleaseConfigTimeout: 7000,
			Properties:           map[string]any{"theme": "dark"},
		},
		Package: LocalPackage{
			Name:       "shop",
			Version:    "9",
			Properties: map[string]any{"flag": true},
			Index:      FileRef{FilePath: "main.jsbundle"},
			Important:  []FileRef{{FilePath: "stale.png"}},
			Lazy:       []FileRef{{FilePath: "lazy.js"}},
		},
		Resources: []FileRef{{FilePath: "terms.html"}, {FilePath: "assets/new.png"}},
	}))

	// Stale output from the previous bundle is cleared.
	require.NoError(t, fileutil.WriteFile(filepath.Join(pr.BuildPath(IOS), "stale.png"), []byte("old")))

	rc, err := pr.UpdateReleaseConfig(context.Background(), IOS, ReleaseOptions{
		ReleaseConfigTimeout: 9000,
		Runner:               &fakeBundler{assets: map[string]string{"assets/new.png": "png"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "12", rc.Version)
	assert.Equal(t, "3", rc.Config.Version)
	assert.Equal(t, 5000, rc.Config.BootTimeout)
	assert.Equal(t, 9000, rc.Config.ReleaseConfigTimeout)
	assert.Equal(t, map[string]any{"theme": "dark"}, rc.Config.Properties)
	assert.Equal(t, "9", rc.Package.Version)
	assert.Equal(t, map[string]any{"flag": true}, rc.Package.Properties)
	assert.Equal(t, []FileRef{{FilePath: "assets/new.png"}}, rc.Package.Important)
	assert.Equal(t, []FileRef{{FilePath: "lazy.js"}}, rc.Package.Lazy)
	assert.Equal(t, []FileRef{{FilePath: "terms.html"}}, rc.Resources)

	onDisk, err := pr.ReadReleaseConfig(IOS)
	require.NoError(t, err)
	assert.Equal(t, rc.Package.Important, onDisk.Package.Important)
}

func TestUpdateWithoutConfig(t *testing.T) {
	pr := newProject(t, false)
	_, err := pr.UpdateReleaseConfig(context.Background(), IOS, ReleaseOptions{Runner: &fakeBundler{}})
	assert.True(t, errors.Is(err, cerrors.ErrNotFound))
}

func TestChecksums(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, fileutil.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello")))
	require.NoError(t, fileutil.WriteFile(filepath.Join(dir, "nested", "b.txt"), []byte("")))

	entries, err := fileutil.Walk(dir, nil)
	require.NoError(t, err)
	sums, err := Checksums(context.Background(), entries, 2)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"a.txt":        "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		"nested/b.txt": "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
	}, sums)

	b64, err := HexToBase64(sums["a.txt"])
	require.NoError(t, err)
	assert.Equal(t, "LPJNul+wow4m6DsqxbninhsWHlwfp0JecwQzYpOLmCQ=", b64)

	_, err = HexToBase64("zz")
	assert.Error(t, err)
}

func TestMappings(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadMappings(dir)
	require.NoError(t, err)

	require.NoError(t, m.Set("", "index.android.bundle", Mapping{ID: "f1", Checksum: "c1"}))
	require.NoError(t, m.Set("beta", "index.android.bundle", Mapping{ID: "f2", Checksum: "c2"}))

	reloaded, err := LoadMappings(dir)
	require.NoError(t, err)
	got, ok := reloaded.Get("", "index.android.bundle")
	require.True(t, ok)
	assert.Equal(t, Mapping{ID: "f1", Checksum: "c1"}, got)
	got, ok = reloaded.Get("beta", "index.android.bundle")
	require.True(t, ok)
	assert.Equal(t, "f2", got.ID)
	_, ok = reloaded.Get("beta", "missing.png")
	assert.False(t, ok)

	data, err := os.ReadFile(MappingsPath(dir))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"__default__"`)
}

// fakeFiles records file and package calls. It returns no checksum so the
// local sha256 is what gets recorded in the mappings.
type fakeFiles struct {
	mu       sync.Mutex
	created  []airborne.CreateFileInput
	uploaded []string
	packages []airborne.CreatePackageInput
	failOn   string
}

func (f *fakeFiles) CreateFile(_ context.Context, in airborne.CreateFileInput) (*airborne.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.FilePath == f.failOn {
		return nil, errors.New("bad gateway")
	}
	f.created = append(f.created, in)
	return &airborne.File{ID: "id-" + in.FilePath, FilePath: in.FilePath}, nil
}

func (f *fakeFiles) UploadFile(_ context.Context, in airborne.UploadFileInput) (*airborne.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.FilePath == f.failOn {
		return nil, errors.New("bad gateway")
	}
	f.uploaded = append(f.uploaded, in.FilePath+"="+in.Checksum)
	return &airborne.File{ID: "id-" + in.FilePath, FilePath: in.FilePath}, nil
}

func (f *fakeFiles) CreatePackage(_ context.Context, in airborne.CreatePackageInput) (*airborne.Package, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.packages = append(f.packages, in)
	return &airborne.Package{Version: 5, Index: in.Index, Files: in.Files}, nil
}

func setupRelease(t *testing.T) *Project {
	t.Helper()
	pr := newProject(t, false)
	_, err := pr.CreateReleaseConfig(context.Background(), Android, ReleaseOptions{
		Runner: &fakeBundler{assets: map[string]string{"logo.png": "png"}},
	})
	require.NoError(t, err)
	return pr
}

func TestRemoteFilesCreate(t *testing.T) {
	pr := setupRelease(t)
	c := &fakeFiles{}
	git := &vcs.GitInfo{Branch: "main", Commit: "abc"}

	res, err := pr.RemoteFiles(context.Background(), c, Android, SyncOptions{
		Tenant:  airborne.Tenant{Organisation: "acme", Application: "shop"},
		BaseURL: "https://cdn.example.com/shop",
		Git:     git,
	})
	require.NoError(t, err)
	assert.Equal(t, &SyncResult{Created: 2}, res)

	require.Len(t, c.created, 2)
	assert.Equal(t, "https://cdn.example.com/shop/logo.png", c.created[0].URL)
	assert.Equal(t, "https://cdn.example.com/shop/index.android.bundle", c.created[1].URL)
	assert.Equal(t, map[string]any{"git_branch": "main", "git_commit": "abc"}, c.created[0].Metadata)

	m, err := LoadMappings(pr.Dir)
	require.NoError(t, err)
	got, ok := m.Get("", "logo.png")
	require.True(t, ok)
	assert.Equal(t, "id-logo.png", got.ID)
}

func TestRemoteFilesUploadSkipsUnchanged(t *testing.T) {
	pr := setupRelease(t)
	c := &fakeFiles{}
	opts := SyncOptions{Upload: true, Tag: "v1", Concurrency: 2}

	res, err := pr.RemoteFiles(context.Background(), c, Android, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Uploaded)
	sort.Strings(c.uploaded)
	assert.Equal(t, []string{
		"index.android.bundle=" + mustB64(t, filepath.Join(pr.BuildPath(Android), "index.android.bundle")),
		"logo.png=" + mustB64(t, filepath.Join(pr.BuildPath(Android), "logo.png")),
	}, c.uploaded)

	res, err = pr.RemoteFiles(context.Background(), c, Android, opts)
	require.NoError(t, err)
	assert.Equal(t, &SyncResult{Existing: 2}, res)
	assert.Len(t, c.uploaded, 2)

	// A different tag has its own mappings.
	res, err = pr.RemoteFiles(context.Background(), c, Android, SyncOptions{Upload: true, Tag: "v2"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Uploaded)
}

func mustB64(t *testing.T, path string) string {
	t.Helper()
	sum, err := SHA256File(path)
	require.NoError(t, err)
	b64, err := HexToBase64(sum)
	require.NoError(t, err)
	return b64
}

func TestRemoteFilesCountsFailures(t *testing.T) {
	pr := setupRelease(t)
	c := &fakeFiles{failOn: "logo.png"}

	res, err := pr.RemoteFiles(context.Background(), c, Android, SyncOptions{Upload: true})
	require.Error(t, err)
	assert.Equal(t, 1, res.Uploaded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "logo.png", res.Errors[0].FilePath)
	assert.EqualError(t, res.Errors[0].Err, "bad gateway")
}

func TestRemoteFilesValidation(t *testing.T) {
	pr := setupRelease(t)
	_, err := pr.RemoteFiles(context.Background(), &fakeFiles{}, Android, SyncOptions{})
	assert.True(t, errors.Is(err, cerrors.ErrInvalidArgument))
	_, err = pr.RemoteFiles(context.Background(), &fakeFiles{}, Android, SyncOptions{Upload: true, Tag: airborne.DefaultTag})
	assert.True(t, errors.Is(err, cerrors.ErrInvalidArgument))
}

func TestRemotePackage(t *testing.T) {
	pr := setupRelease(t)
	c := &fakeFiles{}

	_, err := pr.RemotePackage(context.Background(), c, Android, PackageOptions{})
	assert.True(t, errors.Is(err, cerrors.ErrNotFound))

	_, err = pr.RemoteFiles(context.Background(), c, Android, SyncOptions{Upload: true})
	require.NoError(t, err)

	pkg, err := pr.RemotePackage(context.Background(), c, Android, PackageOptions{
		Tenant: airborne.Tenant{Organisation: "acme", Application: "shop"},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, pkg.Version)
	require.Len(t, c.packages, 1)
	assert.Equal(t, "id-index.android.bundle", c.packages[0].Index)
	assert.Equal(t, []string{"id-logo.png"}, c.packages[0].Files)

	rc, err := pr.ReadReleaseConfig(Android)
	require.NoError(t, err)
	assert.Equal(t, "5", rc.Package.Version)
}
