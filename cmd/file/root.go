package file

import (
	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/cmd/file/command"

	"github.com/spf13/cobra"
)

func GetRootCmd(f *cmdutils.Factory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "file",
		Short: "Manage release files",
		Long:  `Commands to register, upload and list the files packages are built from`,
	}

	// Add subcommands
	rootCmd.AddCommand(command.NewListFileCmd(f))
	rootCmd.AddCommand(command.NewCreateFileCmd(f))
	rootCmd.AddCommand(command.NewUploadFileCmd(f))

	return rootCmd
}
