package organisation

import (
	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/cmd/organisation/command"

	"github.com/spf13/cobra"
)

func GetRootCmd(f *cmdutils.Factory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "organisation",
		Aliases: []string{"org"},
		Short:   "Manage Airborne organisations",
		Long:    `Commands to manage Airborne organisations`,
	}

	// Add subcommands
	rootCmd.AddCommand(command.NewListOrganisationCmd(f))
	rootCmd.AddCommand(command.NewCreateOrganisationCmd(f))
	rootCmd.AddCommand(command.NewRequestOrganisationCmd(f))

	return rootCmd
}
