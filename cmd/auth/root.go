package auth

import (
	"github.com/juspay/airborne-cli/cmd/cmdutils"

	"github.com/spf13/cobra"
)

// GetRootCmd returns the auth command
func GetRootCmd(f *cmdutils.Factory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands for the Airborne CLI",
		Long:  `Manage authentication with an Airborne server`,
	}

	// Add subcommands
	rootCmd.AddCommand(getLoginCmd())
	rootCmd.AddCommand(getLogoutCmd())
	rootCmd.AddCommand(getStatusCmd(f))

	return rootCmd
}
