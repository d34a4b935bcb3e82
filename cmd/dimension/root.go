package dimension

import (
	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/cmd/dimension/command"

	"github.com/spf13/cobra"
)

func GetRootCmd(f *cmdutils.Factory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "dimension",
		Aliases: []string{"dim"},
		Short:   "Manage targeting dimensions",
		Long:    `Commands to manage the dimensions releases are targeted on, and their priority`,
	}

	// Add subcommands
	rootCmd.AddCommand(command.NewListDimensionCmd(f))
	rootCmd.AddCommand(command.NewCreateDimensionCmd(f))
	rootCmd.AddCommand(command.NewUpdateDimensionCmd(f))
	rootCmd.AddCommand(command.NewDeleteDimensionCmd(f))
	rootCmd.AddCommand(command.NewReorderDimensionCmd(f))

	return rootCmd
}
