package devkit

import (
	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/cmd/devkit/command"

	"github.com/spf13/cobra"
)

func GetRootCmd(f *cmdutils.Factory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "devkit",
		Aliases: []string{"dk"},
		Short:   "Prepare React Native projects for Airborne",
		Long:    `Commands that bundle a React Native project, sync its files and package them`,
	}

	rootCmd.PersistentFlags().StringVar(&command.ProjectDir, "dir", ".", "React Native project directory")

	// Add subcommands
	rootCmd.AddCommand(command.NewInitCmd(f))
	rootCmd.AddCommand(command.NewReleaseConfigCmd(f))
	rootCmd.AddCommand(command.NewRemoteFilesCmd(f))
	rootCmd.AddCommand(command.NewRemotePackageCmd(f))

	return rootCmd
}
