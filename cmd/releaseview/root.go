package releaseview

import (
	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/cmd/releaseview/command"

	"github.com/spf13/cobra"
)

func GetRootCmd(f *cmdutils.Factory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "release-view",
		Aliases: []string{"view"},
		Short:   "Manage release views",
		Long:    `Commands to manage release views, saved dimension filters used to browse releases`,
	}

	// Add subcommands
	rootCmd.AddCommand(command.NewListReleaseViewCmd(f))
	rootCmd.AddCommand(command.NewGetReleaseViewCmd(f))
	rootCmd.AddCommand(command.NewCreateReleaseViewCmd(f))
	rootCmd.AddCommand(command.NewUpdateReleaseViewCmd(f))
	rootCmd.AddCommand(command.NewDeleteReleaseViewCmd(f))

	return rootCmd
}
