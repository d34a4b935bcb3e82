package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/module/airborne/devkit"
	"github.com/juspay/airborne-cli/module/airborne/engine"
	"github.com/juspay/airborne-cli/util/common"
	"github.com/juspay/airborne-cli/util/common/fileutil"
	"github.com/juspay/airborne-cli/util/common/progress"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type uploadOptions struct {
	tag         string
	prefix      string
	include     []string
	exclude     []string
	concurrency int
}

// uploadSummary collects the outcome of every upload job.
type uploadSummary struct {
	mu       sync.Mutex
	uploaded []airborne.File
	bytes    int64
}

func (s *uploadSummary) add(f airborne.File, size int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploaded = append(s.uploaded, f)
	s.bytes += size
}

type uploadJob struct {
	client   *airborne.Client
	entry    fileutil.Entry
	filePath string
	tag      string
	showBar  bool
	reporter progress.Reporter
	summary  *uploadSummary

	checksum string
	file     *airborne.File
}

func (j *uploadJob) Info() string { return j.filePath }

func (j *uploadJob) Pre(context.Context) error {
	digest, err := devkit.SHA256File(j.entry.FullPath)
	if err != nil {
		return err
	}
	j.checksum, err = devkit.HexToBase64(digest)
	return err
}

func (j *uploadJob) Run(ctx context.Context) error {
	f, err := os.Open(j.entry.FullPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var body io.Reader = f
	if j.showBar {
		r, done := progress.Reader(j.entry.Size, f, j.filePath)
		defer done()
		body = r
	}

	j.file, err = j.client.UploadFile(ctx, airborne.UploadFileInput{
		FilePath: j.filePath,
		Tag:      j.tag,
		Checksum: j.checksum,
		Body:     body,
		Size:     j.entry.Size,
	})
	if err != nil {
		j.reporter.Error(fmt.Sprintf("%s: %v", j.filePath, err))
		return err
	}
	return nil
}

func (j *uploadJob) Post(context.Context) error {
	j.summary.add(*j.file, j.entry.Size)
	j.reporter.Success(fmt.Sprintf("%s (%s)", j.filePath, common.GetSize(j.entry.Size)))
	return nil
}

// collect resolves the upload source into entries and their server paths.
func collect(src string, o uploadOptions) ([]fileutil.Entry, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", src, err)
	}
	if !info.IsDir() {
		return []fileutil.Entry{{
			Path:     filepath.Base(src),
			FullPath: src,
			Size:     info.Size(),
		}}, nil
	}
	filter, err := fileutil.NewFilter(o.include, o.exclude)
	if err != nil {
		return nil, err
	}
	return fileutil.Walk(src, filter)
}

func NewUploadFileCmd(f *cmdutils.Factory) *cobra.Command {
	var o uploadOptions
	cmd := &cobra.Command{
		Use:   "upload [file-or-directory]",
		Short: "Upload files",
		Long: templates.LongDesc(`
			Uploads a file, or every file under a directory, to the server. The
			sha256 of each body is sent so the server can verify it.

			Directory uploads use paths relative to the directory, optionally
			under --prefix. Use --include and --exclude glob patterns to select
			files; ** crosses directories and exclusions win.`),
		Example: templates.Examples(`
			# Upload a single bundle
			airborne file upload build/index.android.bundle --tag v42

			# Upload a bundle directory without source maps, four at a time
			airborne file upload android/build/generated/airborne --exclude '**.map' --concurrency 4`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := collect(args[0], o)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return errors.New("no files matched")
			}

			client := f.AirborneClient()
			reporter := progress.NewWriterReporter(cmd.OutOrStdout())
			summary := &uploadSummary{}
			showBar := cmdutils.IsTerminal() && o.concurrency <= 1

			jobs := make([]engine.Job, 0, len(entries))
			for _, e := range entries {
				jobs = append(jobs, &uploadJob{
					client:   client,
					entry:    e,
					filePath: path.Join(o.prefix, e.Path),
					tag:      o.tag,
					showBar:  showBar,
					reporter: reporter,
					summary:  summary,
				})
			}

			log.Debug().Int("files", len(jobs)).Int("concurrency", o.concurrency).Msg("uploading files")
			execErr := engine.NewEngine(o.concurrency, jobs).Execute(cmd.Context())

			out := cmd.OutOrStdout()
			failed := len(jobs) - len(summary.uploaded)
			line := fmt.Sprintf("Uploaded %d of %d files (%s)", len(summary.uploaded), len(jobs), common.GetSize(summary.bytes))
			if failed > 0 {
				fmt.Fprintln(out, style.Warning.Render(fmt.Sprintf("%s, %d failed", line, failed)))
				return execErr
			}
			fmt.Fprintln(out, style.Success.Render("✓ "+line))
			return nil
		},
	}

	cmd.Flags().StringVar(&o.tag, "tag", "", "tag to group the files under")
	cmd.Flags().StringVar(&o.prefix, "prefix", "", "path prefix for directory uploads")
	cmd.Flags().StringSliceVar(&o.include, "include", nil, "glob patterns of files to upload")
	cmd.Flags().StringSliceVar(&o.exclude, "exclude", nil, "glob patterns of files to skip")
	cmd.Flags().IntVar(&o.concurrency, "concurrency", 1, "number of parallel uploads")

	return cmd
}
