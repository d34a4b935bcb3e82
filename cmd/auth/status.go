package auth

import (
	"fmt"
	"strings"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/config"
	"github.com/juspay/airborne-cli/internal/style"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func getStatusCmd(f *cmdutils.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "status",
		Short:        "Check authentication status",
		Long:         `Display the current user and the organisations it can access by checking the saved credentials with the Airborne API`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if config.Global.APIBaseURL == "" || config.Global.AuthToken == "" {
				return fmt.Errorf("not logged in: no API token found. Please run 'airborne auth login' first")
			}

			user, err := f.AirborneClient().GetUser(cmd.Context())
			if err != nil {
				return fmt.Errorf("authentication check failed: %w", err)
			}

			fmt.Fprintln(out, "Authentication Status:", style.Success.Render("✓ Authenticated"))
			fmt.Fprintln(out, "API URL:      ", config.Global.APIBaseURL)
			fmt.Fprintln(out, "User:         ", user.UserID)
			if saved, err := config.LoadAuthConfig(); err == nil && !saved.Expiry.IsZero() {
				if saved.Expired() {
					fmt.Fprintln(out, "Token:        ", style.Warning.Render("expired "+humanize.Time(saved.Expiry)))
				} else {
					fmt.Fprintln(out, "Token:         expires", humanize.Time(saved.Expiry))
				}
			}
			if config.Global.Organisation != "" {
				fmt.Fprintln(out, "Organisation: ", config.Global.Organisation)
			}
			if config.Global.Application != "" {
				fmt.Fprintln(out, "Application:  ", config.Global.Application)
			}

			for _, org := range user.Organisations {
				apps := make([]string, 0, len(org.Applications))
				for _, a := range org.Applications {
					apps = append(apps, a.Application)
				}
				fmt.Fprintf(out, "  %s: %s\n", org.Name, strings.Join(apps, ", "))
			}

			return nil
		},
	}

	return cmd
}
