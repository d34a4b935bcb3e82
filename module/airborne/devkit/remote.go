package devkit

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/module/airborne/engine"
	"github.com/juspay/airborne-cli/util/common/errors"
	"github.com/juspay/airborne-cli/util/common/progress"
	"github.com/juspay/airborne-cli/util/common/vcs"
)

// FileClient is the part of the API the devkit talks to. *airborne.Client
// satisfies it.
type FileClient interface {
	CreateFile(ctx context.Context, in airborne.CreateFileInput) (*airborne.File, error)
	UploadFile(ctx context.Context, in airborne.UploadFileInput) (*airborne.File, error)
	CreatePackage(ctx context.Context, in airborne.CreatePackageInput) (*airborne.Package, error)
}

// SyncOptions controls RemoteFiles.
type SyncOptions struct {
	Tenant airborne.Tenant
	Tag    string
	// Upload sends file bodies to the server. Otherwise files are registered
	// at BaseURL + file_path.
	Upload      bool
	BaseURL     string
	Concurrency int
	Reporter    progress.Reporter
	// Git is attached as metadata to registered files.
	Git *vcs.GitInfo
	// ShowProgress draws a progress bar per upload.
	ShowProgress bool
}

// FileFailure is one file that could not be synced.
type FileFailure struct {
	FilePath string
	Err      error
}

// SyncResult summarises RemoteFiles.
type SyncResult struct {
	Uploaded int
	Created  int
	Existing int
	Failed   int
	Errors   []FileFailure
}

// RemoteFiles registers or uploads the index and important files of p's
// release config. Files whose checksum matches the local mapping are
// skipped. Failures do not stop the remaining files; they are counted in
// the result and joined into the returned error.
func (pr *Project) RemoteFiles(ctx context.Context, c FileClient, p Platform, opts SyncOptions) (*SyncResult, error) {
	if err := validateSyncOptions(&opts); err != nil {
		return nil, err
	}
	rc, err := pr.ReadReleaseConfig(p)
	if err != nil {
		return nil, err
	}
	mappings, err := LoadMappings(pr.Dir)
	if err != nil {
		return nil, err
	}

	files := append([]FileRef{}, rc.Package.Important...)
	files = append(files, rc.Package.Index)

	res := &SyncResult{}
	var mu sync.Mutex
	jobs := make([]engine.Job, 0, len(files))
	for _, f := range files {
		jobs = append(jobs, &syncJob{
			client:   c,
			opts:     &opts,
			mappings: mappings,
			filePath: f.FilePath,
			fullPath: filepath.Join(pr.BuildPath(p), filepath.FromSlash(f.FilePath)),
			result:   res,
			mu:       &mu,
		})
	}

	opts.Reporter.Start(fmt.Sprintf("Syncing %d files for %s", len(files), p))
	err = engine.NewEngine(opts.Concurrency, jobs).Execute(ctx)
	opts.Reporter.End()
	return res, err
}

func validateSyncOptions(opts *SyncOptions) error {
	if opts.Tag == airborne.DefaultTag {
		return errors.NewValidationError("tag", "'"+airborne.DefaultTag+"' is reserved")
	}
	if !opts.Upload {
		if strings.TrimSpace(opts.BaseURL) == "" {
			return errors.NewValidationError("base_url", "is required unless uploading")
		}
		if !strings.HasSuffix(opts.BaseURL, "/") {
			opts.BaseURL += "/"
		}
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.NewNopReporter()
	}
	return nil
}

type syncJob struct {
	client   FileClient
	opts     *SyncOptions
	mappings *Mappings
	filePath string
	fullPath string

	checksum string
	skipped  bool
	file     *airborne.File

	result *SyncResult
	mu     *sync.Mutex
}

func (j *syncJob) Info() string { return j.filePath }

func (j *syncJob) Pre(ctx context.Context) (err error) {
	defer j.recordFailure(&err)
	j.checksum, err = SHA256File(j.fullPath)
	if err != nil {
		return err
	}
	if m, ok := j.mappings.Get(j.opts.Tag, j.filePath); ok && m.Checksum == j.checksum {
		j.skipped = true
	}
	return nil
}

func (j *syncJob) Run(ctx context.Context) (err error) {
	if j.skipped {
		return nil
	}
	defer j.recordFailure(&err)
	if j.opts.Upload {
		j.file, err = j.upload(ctx)
	} else {
		j.file, err = j.client.CreateFile(ctx, airborne.CreateFileInput{
			Tenant:   j.opts.Tenant,
			FilePath: j.filePath,
			URL:      j.opts.BaseURL + j.filePath,
			Tag:      j.opts.Tag,
			Metadata: j.opts.Git.Metadata(),
		})
	}
	if err != nil {
		return err
	}
	if j.file == nil || j.file.ID == "" || j.file.FilePath == "" {
		return stderrors.New("invalid response from server")
	}
	return nil
}

func (j *syncJob) upload(ctx context.Context) (*airborne.File, error) {
	sum, err := HexToBase64(j.checksum)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(j.fullPath)
	if err != nil {
		return nil, errors.NewFileError(j.fullPath, "open", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, errors.NewFileError(j.fullPath, "stat", err)
	}

	in := airborne.UploadFileInput{
		Tenant:   j.opts.Tenant,
		FilePath: j.filePath,
		Tag:      j.opts.Tag,
		Checksum: sum,
		Body:     f,
		Size:     info.Size(),
	}
	if j.opts.ShowProgress {
		body, done := progress.Reader(info.Size(), f, j.filePath)
		defer done()
		in.Body = body
	}
	return j.client.UploadFile(ctx, in)
}

func (j *syncJob) Post(context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.skipped {
		j.result.Existing++
		j.opts.Reporter.Skip(j.filePath + " (checksum matches)")
		return nil
	}

	checksum := j.file.Checksum
	if checksum == "" {
		checksum = j.checksum
	}
	if err := j.mappings.Set(j.opts.Tag, j.file.FilePath, Mapping{ID: j.file.ID, Checksum: checksum}); err != nil {
		j.fail(err)
		return err
	}

	switch {
	case !j.opts.Upload:
		j.result.Created++
		j.opts.Reporter.Success(j.filePath)
	case j.file.Checksum == "" || j.file.Checksum == j.checksum:
		j.result.Uploaded++
		j.opts.Reporter.Success(j.filePath)
	default:
		j.result.Existing++
		j.opts.Reporter.Skip(j.filePath + " (already on server)")
	}
	return nil
}

func (j *syncJob) recordFailure(err *error) {
	if *err == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fail(*err)
}

// fail must be called with mu held.
func (j *syncJob) fail(err error) {
	j.result.Failed++
	j.result.Errors = append(j.result.Errors, FileFailure{FilePath: j.filePath, Err: err})
	j.opts.Reporter.Error(j.filePath + ": " + err.Error())
}

// PackageOptions controls RemotePackage.
type PackageOptions struct {
	Tenant airborne.Tenant
	Tag    string
}

// RemotePackage creates a package from the files recorded in the mappings
// for p's release config and writes the new package version back into the
// release config.
func (pr *Project) RemotePackage(ctx context.Context, c FileClient, p Platform, opts PackageOptions) (*airborne.Package, error) {
	if opts.Tag == airborne.DefaultTag {
		return nil, errors.NewValidationError("tag", "'"+airborne.DefaultTag+"' is reserved")
	}
	rc, err := pr.ReadReleaseConfig(p)
	if err != nil {
		return nil, err
	}
	if rc.Package.Index.FilePath == "" {
		return nil, errors.NewValidationError("package.index", "index file missing in release config")
	}
	mappings, err := LoadMappings(pr.Dir)
	if err != nil {
		return nil, err
	}

	index, ok := mappings.Get(opts.Tag, rc.Package.Index.FilePath)
	if !ok {
		return nil, errors.Wrap(errors.ErrNotFound, "no upload recorded for index file "+rc.Package.Index.FilePath+", run 'airborne devkit remote-files' first")
	}

	var refs []FileRef
	refs = append(refs, rc.Package.Important...)
	refs = append(refs, rc.Package.Lazy...)
	refs = append(refs, rc.Resources...)
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		m, ok := mappings.Get(opts.Tag, r.FilePath)
		if !ok {
			return nil, errors.Wrap(errors.ErrNotFound, "no upload recorded for "+r.FilePath)
		}
		ids = append(ids, m.ID)
	}

	pkg, err := c.CreatePackage(ctx, airborne.CreatePackageInput{
		Tenant: opts.Tenant,
		Index:  index.ID,
		Tag:    opts.Tag,
		Files:  ids,
	})
	if err != nil {
		return nil, err
	}

	rc.Package.Version = strconv.Itoa(pkg.Version)
	if err := pr.WriteReleaseConfig(p, rc); err != nil {
		return pkg, err
	}
	return pkg, nil
}
