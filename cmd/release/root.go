package release

import (
	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/cmd/release/command"

	"github.com/spf13/cobra"
)

func GetRootCmd(f *cmdutils.Factory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "release",
		Aliases: []string{"rel"},
		Short:   "Manage releases",
		Long:    `Commands to create, inspect and roll out releases`,
	}

	// Add subcommands
	rootCmd.AddCommand(command.NewListReleaseCmd(f))
	rootCmd.AddCommand(command.NewGetReleaseCmd(f))
	rootCmd.AddCommand(command.NewBrowseReleaseCmd(f))
	rootCmd.AddCommand(command.NewCreateReleaseCmd(f))
	rootCmd.AddCommand(command.NewUpdateReleaseCmd(f))
	rootCmd.AddCommand(command.NewRampReleaseCmd(f))
	rootCmd.AddCommand(command.NewConcludeReleaseCmd(f))
	rootCmd.AddCommand(command.NewDiscardReleaseCmd(f))
	rootCmd.AddCommand(command.NewServeReleaseCmd(f))

	return rootCmd
}
