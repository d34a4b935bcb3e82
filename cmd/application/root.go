package application

import (
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"

	"github.com/spf13/cobra"
)

func GetRootCmd(f *cmdutils.Factory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "application",
		Aliases: []string{"app"},
		Short:   "Manage Airborne applications",
		Long:    `Commands to manage applications inside an organisation`,
	}

	rootCmd.AddCommand(newCreateApplicationCmd(f))

	return rootCmd
}

func newCreateApplicationCmd(f *cmdutils.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new application",
		Long:  "Creates an application in the organisation given by --org",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := f.AirborneClient().CreateApplication(cmd.Context(), airborne.CreateApplicationInput{
				Application: args[0],
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				style.Success.Render(fmt.Sprintf("✓ Created application %s in %s", app.Application, app.Organisation)))
			return nil
		},
	}

	return cmd
}
