package command

import (
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/spf13/cobra"
)

// NewRequestOrganisationCmd asks the Airborne operators for a new organisation.
func NewRequestOrganisationCmd(f *cmdutils.Factory) *cobra.Command {
	var in airborne.RequestOrganisationInput

	cmd := &cobra.Command{
		Use:   "request [organisation-name]",
		Short: "Request a new organisation",
		Long: templates.LongDesc(`
			Sends a request for a new organisation. The operators of the server
			review it and contact you on the given email or phone.`),
		Example: templates.Examples(`
			airborne organisation request acme --name "Jane Doe" --email jane@acme.dev --phone 5550100 \
			  --play-store-link https://play.google.com/store/apps/details?id=dev.acme.shop`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.OrganisationName = args[0]
			res, err := f.AirborneClient().RequestOrganisation(cmd.Context(), in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, style.Success.Render("✓ Requested organisation "+res.OrganisationName))
			if res.Message != "" {
				fmt.Fprintln(out, res.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Contact name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Contact email")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&in.AppStoreLink, "app-store-link", "", "App Store link of the app")
	cmd.Flags().StringVar(&in.PlayStoreLink, "play-store-link", "", "Play Store link of the app")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
