package command

import (
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/style"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewCreateOrganisationCmd creates the create command for organisations
func NewCreateOrganisationCmd(f *cmdutils.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new organisation",
		Long:  "Creates a new organisation owned by the current user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := f.AirborneClient().CreateOrganisation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			log.Info().Str("organisation", org.Name).Msg("created organisation")
			if cmdutils.IsTerminal() {
				fmt.Fprintln(cmd.OutOrStdout(), style.Success.Render("✓ Created organisation "+org.Name))
				return nil
			}
			return cmdutils.PrintObject(cmd, org, [][]string{
				{"name", "Organisation"},
				{"access", "Access"},
			})
		},
	}

	return cmd
}
