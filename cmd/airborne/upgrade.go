package main

import (
	"archive/tar"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/internal/terminal"
	"github.com/juspay/airborne-cli/internal/tui"
	"github.com/juspay/airborne-cli/module/airborne/devkit"
	"github.com/juspay/airborne-cli/util/common/progress"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/zhyee/zipstream"
)

const binaryName = "airborne"

// releasesURL lists the CLI releases on GitHub.
var releasesURL = "https://api.github.com/repos/juspay/airborne/releases"

// GitHubRelease represents a GitHub release
type GitHubRelease struct {
	TagName    string        `json:"tag_name"`
	Name       string        `json:"name"`
	Draft      bool          `json:"draft"`
	Prerelease bool          `json:"prerelease"`
	Assets     []GitHubAsset `json:"assets"`
	HTMLURL    string        `json:"html_url"`
}

// GitHubAsset represents a release asset
type GitHubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

func upgradeCmd() *cobra.Command {
	var preRelease bool

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade airborne to the latest version",
		Long:  "Check for the latest version of airborne and upgrade if a newer version is available",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpgrade(cmd, preRelease)
		},
	}

	cmd.Flags().BoolVar(&preRelease, "pre-release", false, "Include pre-release versions")

	return cmd
}

func newDownloadClient() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.Logger = nil
	c.HTTPClient.Timeout = 5 * time.Minute
	return c
}

func runUpgrade(cmd *cobra.Command, includePreRelease bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Checking for updates...")

	if version == "dev" && terminal.Detect(false, true, false).CanPrompt() {
		ok, err := tui.ConfirmAction("Development build detected", "Upgrading will overwrite your local build.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, style.DimText.Render("Upgrade cancelled."))
			return nil
		}
	}

	client := newDownloadClient()
	release, err := getLatestRelease(ctx, client, includePreRelease)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if version == release.TagName {
		fmt.Fprintln(out, style.Success.Render("✓ You are already using the latest version: "+version))
		return nil
	}
	fmt.Fprintf(out, "Current version: %s\n", version)
	fmt.Fprintf(out, "Latest version:  %s\n", release.TagName)
	if release.Prerelease {
		fmt.Fprintln(out, style.Warning.Render("This is a pre-release version"))
	}

	asset, checksums, err := findAssetForPlatform(release, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return fmt.Errorf("no compatible release found: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "airborne-upgrade-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	archivePath := filepath.Join(tmpDir, asset.Name)
	if err := downloadFile(ctx, client, archivePath, asset); err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}

	if checksums != nil {
		if err := verifyChecksum(ctx, client, archivePath, checksums.BrowserDownloadURL); err != nil {
			return fmt.Errorf("checksum verification failed: %w", err)
		}
		fmt.Fprintln(out, style.Success.Render("✓ Checksum verified"))
	}

	binaryPath, err := extractBinary(archivePath, tmpDir)
	if err != nil {
		return fmt.Errorf("failed to extract: %w", err)
	}
	if err := replaceBinary(binaryPath); err != nil {
		return fmt.Errorf("failed to install: %w", err)
	}

	fmt.Fprintln(out, style.Success.Render("✓ Successfully upgraded to "+release.TagName))
	fmt.Fprintf(out, "Release notes: %s\n", release.HTMLURL)
	return nil
}

func get(ctx context.Context, c *retryablehttp.Client, url string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s returned status %d", url, resp.StatusCode)
	}
	return resp, nil
}

func getLatestRelease(ctx context.Context, c *retryablehttp.Client, includePreRelease bool) (*GitHubRelease, error) {
	url := releasesURL + "/latest"
	if includePreRelease {
		url = releasesURL
	}
	resp, err := get(ctx, c, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !includePreRelease {
		var release GitHubRelease
		if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
			return nil, err
		}
		return &release, nil
	}

	var releases []GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, err
	}
	for i := range releases {
		if !releases[i].Draft {
			return &releases[i], nil
		}
	}
	return nil, errors.New("no releases found")
}

// findAssetForPlatform picks the archive for goos/goarch, e.g.
// airborne_v1.4.0_mac-os_arm64.tar.gz, and the checksums.txt asset if any.
func findAssetForPlatform(release *GitHubRelease, goos, goarch string) (*GitHubAsset, *GitHubAsset, error) {
	osName := goos
	if goos == "darwin" {
		osName = "mac-os"
	}
	archName := goarch
	switch goarch {
	case "amd64":
		archName = "x86_64"
	case "386":
		archName = "i386"
	}
	ext := ".tar.gz"
	if goos == "windows" {
		ext = ".zip"
	}

	var target, checksums *GitHubAsset
	for i := range release.Assets {
		a := &release.Assets[i]
		if a.Name == "checksums.txt" {
			checksums = a
			continue
		}
		if strings.HasPrefix(a.Name, binaryName+"_") &&
			strings.Contains(a.Name, "_"+osName+"_") &&
			strings.HasSuffix(a.Name, "_"+archName+ext) {
			target = a
		}
	}
	if target == nil {
		return nil, nil, fmt.Errorf("no release found for %s/%s", goos, goarch)
	}
	return target, checksums, nil
}

func downloadFile(ctx context.Context, c *retryablehttp.Client, dst string, asset *GitHubAsset) error {
	resp, err := get(ctx, c, asset.BrowserDownloadURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	body, done := progress.Reader(resp.ContentLength, resp.Body, "Downloading "+asset.Name)
	defer done()
	_, err = io.Copy(out, body)
	return err
}

// checksumFor finds filename in a checksums.txt body ("<sha256>  <name>").
func checksumFor(sums, filename string) (string, bool) {
	for _, line := range strings.Split(sums, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && strings.TrimPrefix(fields[1], "*") == filename {
			return fields[0], true
		}
	}
	return "", false
}

func verifyChecksum(ctx context.Context, c *retryablehttp.Client, archivePath, checksumURL string) error {
	resp, err := get(ctx, c, checksumURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	name := filepath.Base(archivePath)
	want, ok := checksumFor(string(body), name)
	if !ok {
		return fmt.Errorf("checksum not found for %s", name)
	}
	got, err := devkit.SHA256File(archivePath)
	if err != nil {
		return err
	}
	if !strings.EqualFold(got, want) {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", want, got)
	}
	return nil
}

func isBinary(name string) bool {
	base := path.Base(name)
	return base == binaryName || base == binaryName+".exe"
}

func extractBinary(archivePath, destDir string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(archivePath, ".tar.gz"):
		return extractTarGz(f, destDir)
	case strings.HasSuffix(archivePath, ".zip"):
		return extractZip(f, destDir)
	}
	return "", fmt.Errorf("unsupported archive format")
}

func writeBinary(r io.Reader, destDir, name string) (string, error) {
	target := filepath.Join(destDir, path.Base(name))
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", err
	}
	return target, nil
}

func extractTarGz(r io.Reader, destDir string) (string, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return "", err
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if header.Typeflag == tar.TypeReg && isBinary(header.Name) {
			return writeBinary(tr, destDir, header.Name)
		}
	}
	return "", fmt.Errorf("binary not found in archive")
}

func extractZip(r io.Reader, destDir string) (string, error) {
	zr := zipstream.NewReader(r)
	for {
		entry, err := zr.GetNextEntry()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read zip entry: %w", err)
		}
		if !isBinary(entry.Name) {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open zip entry: %w", err)
		}
		defer rc.Close()
		return writeBinary(rc, destDir, entry.Name)
	}
	return "", fmt.Errorf("binary not found in archive")
}

func replaceBinary(newBinaryPath string) error {
	executable, err := os.Executable()
	if err != nil {
		return err
	}
	executable, err = filepath.EvalSymlinks(executable)
	if err != nil {
		return err
	}

	backupPath := executable + ".old"
	if err := os.Rename(executable, backupPath); err != nil {
		return fmt.Errorf("failed to backup current binary: %w", err)
	}
	if err := copyFile(newBinaryPath, executable); err != nil {
		if rerr := os.Rename(backupPath, executable); rerr != nil {
			log.Error().Err(rerr).Str("backup", backupPath).Msg("could not restore previous binary")
		}
		return fmt.Errorf("failed to install new binary: %w", err)
	}
	if err := os.Chmod(executable, 0o755); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	_ = os.Remove(backupPath)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
