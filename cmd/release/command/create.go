package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/config"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/internal/terminal"
	"github.com/juspay/airborne-cli/internal/tui"
	"github.com/juspay/airborne-cli/module/airborne/devkit"
	"github.com/juspay/airborne-cli/module/airborne/priority"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// errNoPackage is returned when the first release of an application does
// not name a package.
var errNoPackage = errors.New("the first release of an application must name a package, use --package")

func NewCreateReleaseCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		rf           releaseFlags
		manifestPath string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a release",
		Long: templates.LongDesc(`
			Creates a release from flags or from a YAML or TOML manifest.

			Run without flags in a terminal to be walked through the release.
			A release without --package reuses the package of the latest release.`),
		Example: templates.Examples(`
			# Release package version 7 to Android users on app version 1.2.0
			airborne release create --package 7 --dimension os=android,app_version=1.2.0

			# Create the release described in a manifest
			airborne release create --file release.yaml`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := f.AirborneClient()

			var in airborne.CreateReleaseInput
			switch {
			case manifestPath != "":
				m, err := config.LoadReleaseManifest(manifestPath)
				if err != nil {
					return err
				}
				in = m.Input()
				if err := rf.apply(cmd, &in); err != nil {
					return err
				}
			case cmd.Flags().NFlag() == 0 && terminal.Detect(false, true, false).CanPrompt():
				res, err := runWizard(ctx, client)
				if err != nil {
					return err
				}
				in = airborne.CreateReleaseInput{
					PackageID: res.PackageKey,
					Config: airborne.ReleaseConfigInput{
						BootTimeout:          res.BootTimeout,
						ReleaseConfigTimeout: res.ReleaseConfigTimeout,
					},
					Dimensions: make(map[string]any, len(res.Dimensions)),
				}
				for k, v := range res.Dimensions {
					in.Dimensions[k] = v
				}
			default:
				in.Config.BootTimeout = devkit.DefaultTimeout
				in.Config.ReleaseConfigTimeout = devkit.DefaultTimeout
				if err := rf.apply(cmd, &in); err != nil {
					return err
				}
			}

			if in.PackageID == "" {
				if err := requireExistingRelease(ctx, client, in.Tenant); err != nil {
					return err
				}
			}

			rel, err := client.CreateRelease(ctx, in)
			if err != nil {
				return err
			}
			log.Info().Str("release", rel.ID).Msg("created release")
			if cmdutils.IsTerminal() {
				fmt.Fprintln(cmd.OutOrStdout(), style.Success.Render("✓ Created release "+rel.ID))
			}
			return cmdutils.PrintObject(cmd, rel, releaseColumns)
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&manifestPath, "file", "f", "", "release manifest (.yaml, .yml or .toml); flags override its values")

	return cmd
}

// requireExistingRelease fails when the application has no release yet, since
// a release without a package inherits it from the previous one.
func requireExistingRelease(ctx context.Context, c *airborne.Client, tenant airborne.Tenant) error {
	list, err := c.ListReleases(ctx, airborne.ListReleasesInput{Tenant: tenant, Page: 1, Count: 1})
	if err != nil {
		return err
	}
	if list.TotalItems == 0 && len(list.Data) == 0 {
		return errNoPackage
	}
	return nil
}

func runWizard(ctx context.Context, c *airborne.Client) (*tui.ReleaseFormResult, error) {
	defaults := tui.ReleaseFormDefaults{
		BootTimeout:          devkit.DefaultTimeout,
		ReleaseConfigTimeout: devkit.DefaultTimeout,
	}

	pkgs, err := tui.RunWithSpinner("Loading packages", func() (*airborne.PackageList, error) {
		return c.ListPackages(ctx, airborne.ListPackagesInput{Page: 1, Count: 20})
	})
	if err != nil {
		return nil, err
	}
	for _, p := range pkgs.Data {
		defaults.Packages = append(defaults.Packages, airborne.PackageKeyForVersion(p.Version))
		if p.Tag != "" {
			defaults.Packages = append(defaults.Packages, airborne.PackageKeyForTag(p.Tag))
		}
	}

	dims, err := c.ListDimensions(ctx, airborne.ListDimensionsInput{Page: 1, Count: 100})
	if err != nil {
		return nil, err
	}
	for _, d := range priority.Sort(dims.Data) {
		if d.Dimension != priority.VariantIDs {
			defaults.Dimensions = append(defaults.Dimensions, d.Dimension)
		}
	}

	return tui.RunReleaseForm(defaults)
}
