package command

import (
	"fmt"
	"strings"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/module/airborne/devkit"
	"github.com/juspay/airborne-cli/util/common/progress"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func openProject(platform string) (*devkit.Project, devkit.Platform, error) {
	p, err := devkit.ParsePlatform(platform)
	if err != nil {
		return nil, "", err
	}
	pr, err := devkit.Open(ProjectDir)
	if err != nil {
		return nil, "", err
	}
	return pr, p, nil
}

func tenantOf(pr *devkit.Project) airborne.Tenant {
	return airborne.Tenant{Organisation: pr.Config.Organisation, Application: pr.Config.Namespace}
}

type remoteFilesOptions struct {
	platform    string
	upload      bool
	baseURL     string
	tag         string
	concurrency int
}

func NewRemoteFilesCmd(f *cmdutils.Factory) *cobra.Command {
	var o remoteFilesOptions
	cmd := &cobra.Command{
		Use:   "remote-files",
		Short: "Register or upload the bundle files of a release config",
		Long: templates.LongDesc(`
			Registers every index and important file of release_config.json
			with the server, or uploads them with --upload. Files whose sha256
			matches .airborne/mappings.json are skipped.`),
		Example: templates.Examples(`
			# Register files already hosted on a CDN
			airborne devkit remote-files -p android --base-url https://cdn.example.com/shop/v42

			# Upload the files to Airborne, four at a time
			airborne devkit remote-files -p ios --upload --tag v42 --concurrency 4`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, p, err := openProject(o.platform)
			if err != nil {
				return err
			}

			var reporter progress.Reporter = progress.NewWriterReporter(cmd.OutOrStdout())
			if cmdutils.IsTerminal() {
				reporter = progress.NewAutoReporter()
			}

			res, syncErr := pr.RemoteFiles(cmd.Context(), f.AirborneClient(), p, devkit.SyncOptions{
				Tenant:       tenantOf(pr),
				Tag:          o.tag,
				Upload:       o.upload,
				BaseURL:      o.baseURL,
				Concurrency:  o.concurrency,
				Reporter:     reporter,
				Git:          cmdutils.GitInfo(pr.Dir),
				ShowProgress: o.upload && o.concurrency <= 1 && cmdutils.IsTerminal(),
			})
			if res == nil {
				return syncErr
			}

			done := res.Uploaded + res.Created
			verb := "Registered"
			if o.upload {
				verb = "Uploaded"
			}
			line := fmt.Sprintf("%s %d, %d already up to date", verb, done, res.Existing)
			out := cmd.OutOrStdout()
			if res.Failed > 0 {
				failed := make([]string, 0, len(res.Errors))
				for _, e := range res.Errors {
					failed = append(failed, e.FilePath)
				}
				log.Debug().Strs("files", failed).Msg("remote files failed")
				fmt.Fprintln(out, style.Warning.Render(fmt.Sprintf("%s, %d failed: %s", line, res.Failed, strings.Join(failed, ", "))))
				return syncErr
			}
			fmt.Fprintln(out, style.Success.Render("✓ "+line))
			return syncErr
		},
	}

	cmd.Flags().StringVarP(&o.platform, "platform", "p", "", "android or ios")
	cmd.Flags().BoolVar(&o.upload, "upload", false, "upload file bodies instead of registering URLs")
	cmd.Flags().StringVar(&o.baseURL, "base-url", "", "URL the files are hosted under, required without --upload")
	cmd.Flags().StringVar(&o.tag, "tag", "", "tag to group the files under")
	cmd.Flags().IntVar(&o.concurrency, "concurrency", 1, "number of parallel requests")
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}

func NewRemotePackageCmd(f *cmdutils.Factory) *cobra.Command {
	var platform, tag string
	cmd := &cobra.Command{
		Use:   "remote-package",
		Short: "Create a package from synced files",
		Long: templates.LongDesc(`
			Creates a package from the files recorded by remote-files and
			writes its version into release_config.json.`),
		Example: templates.Examples(`
			airborne devkit remote-package -p android --tag v42`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, p, err := openProject(platform)
			if err != nil {
				return err
			}
			pkg, err := pr.RemotePackage(cmd.Context(), f.AirborneClient(), p, devkit.PackageOptions{
				Tenant: tenantOf(pr),
				Tag:    tag,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.Success.Render(fmt.Sprintf("✓ Created package version %d (%s)",
				pkg.Version, airborne.PackageKeyForVersion(pkg.Version))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "", "android or ios")
	cmd.Flags().StringVar(&tag, "tag", "", "tag the files were synced under")
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}
