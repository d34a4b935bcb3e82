package command

import (
	"context"
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/module/airborne/devkit"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/spf13/cobra"
)

type releaseConfigOptions struct {
	platform             string
	bootTimeout          int
	releaseConfigTimeout int
}

func (o *releaseConfigOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.platform, "platform", "p", "", "android or ios")
	cmd.Flags().IntVar(&o.bootTimeout, "boot-timeout", 0, "boot timeout in milliseconds")
	cmd.Flags().IntVar(&o.releaseConfigTimeout, "release-config-timeout", 0, "release config timeout in milliseconds")
	_ = cmd.MarkFlagRequired("platform")
}

type releaseConfigFunc func(pr *devkit.Project, ctx context.Context, p devkit.Platform, opts devkit.ReleaseOptions) (*devkit.LocalRelease, error)

func newReleaseConfigSubCmd(f *cmdutils.Factory, use, short, verb string, run releaseConfigFunc) *cobra.Command {
	var o releaseConfigOptions
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := devkit.ParsePlatform(o.platform)
			if err != nil {
				return err
			}
			pr, err := devkit.Open(ProjectDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.DimText.Render("Bundling "+string(p)+"..."))
			rc, err := run(pr, cmd.Context(), p, devkit.ReleaseOptions{
				BootTimeout:          o.bootTimeout,
				ReleaseConfigTimeout: o.releaseConfigTimeout,
				Runner:               f.Runner(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.Success.Render(fmt.Sprintf("✓ %s %s (%d important files)",
				verb, pr.ReleaseConfigPath(p), len(rc.Package.Important))))
			return nil
		},
	}
	o.register(cmd)
	return cmd
}

// NewReleaseConfigCmd wires up:
//
//	airborne devkit release-config create
//	airborne devkit release-config update
func NewReleaseConfigCmd(f *cmdutils.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release-config",
		Short: "Bundle the project and write release_config.json",
		Long: templates.LongDesc(`
			Runs the React Native (or Expo) bundler into
			<platform>/build/generated/airborne and writes release_config.json
			from its output. Timeouts default to 4000 milliseconds.`),
		Example: templates.Examples(`
			airborne devkit release-config create --platform android
			airborne devkit release-config update --platform ios --boot-timeout 6000`),
	}

	cmd.AddCommand(newReleaseConfigSubCmd(f, "create", "Create release_config.json", "Wrote",
		(*devkit.Project).CreateReleaseConfig))
	cmd.AddCommand(newReleaseConfigSubCmd(f, "update", "Rebundle and update release_config.json", "Updated",
		(*devkit.Project).UpdateReleaseConfig))

	return cmd
}
