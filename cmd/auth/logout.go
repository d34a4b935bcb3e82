package auth

import (
	"fmt"

	"github.com/juspay/airborne-cli/config"
	"github.com/juspay/airborne-cli/internal/style"

	"github.com/spf13/cobra"
)

func getLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Logout from Airborne",
		Long:  `Remove saved Airborne credentials`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.RemoveAuthConfig(); err != nil {
				return err
			}
			config.Global.AuthToken = ""

			fmt.Fprintln(cmd.OutOrStdout(), style.Success.Render("✓ Logged out from Airborne"))
			return nil
		},
	}

	return cmd
}
