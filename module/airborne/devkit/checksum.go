package devkit

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/juspay/airborne-cli/util/common/errors"
	"github.com/juspay/airborne-cli/util/common/fileutil"
)

// SHA256File returns the hex sha256 of the file at path.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.NewFileError(path, "open", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.NewFileError(path, "read", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HexToBase64 converts a hex digest into the base64 form the server expects
// in the x-checksum header.
func HexToBase64(digest string) (string, error) {
	raw, err := hex.DecodeString(digest)
	if err != nil {
		return "", errors.NewValidationError("checksum", "not a hex digest")
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Checksums hashes entries concurrently and returns hex digests keyed by
// entry path. workers <= 0 uses one worker per CPU.
func Checksums(ctx context.Context, entries []fileutil.Entry, workers int) (map[string]string, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var (
		mu  sync.Mutex
		out = make(map[string]string, len(entries))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, err := SHA256File(e.FullPath)
			if err != nil {
				return err
			}
			mu.Lock()
			out[e.Path] = sum
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
