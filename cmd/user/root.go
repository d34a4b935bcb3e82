package user

import (
	"github.com/juspay/airborne-cli/cmd/cmdutils"

	"github.com/spf13/cobra"
)

func GetRootCmd(f *cmdutils.Factory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "user",
		Short: "Show the authenticated user",
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Get the current user",
		Long:  "Prints the authenticated user and the organisations it belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := f.AirborneClient().GetUser(cmd.Context())
			if err != nil {
				return err
			}
			// never echo tokens back
			user.UserToken = nil
			return cmdutils.PrintObject(cmd, user, [][]string{
				{"user_id", "User"},
				{"organisations", "Organisations"},
			})
		},
	})

	return rootCmd
}
