package command

import (
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/internal/tui"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewDeleteDimensionCmd(f *cmdutils.Factory) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a dimension",
		Long:  "Deletes a targeting dimension from the application",
		Example: `  # Delete a dimension (with confirmation in a terminal)
  airborne dimension delete app_version

  # Skip confirmation in scripts
  airborne dimension delete app_version --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			out := cmd.OutOrStdout()

			// Interactive confirmation when running in a TTY (unless --force)
			if !force && cmdutils.IsTerminal() {
				confirmed, err := tui.ConfirmDeletion("dimension", name)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(out, style.DimText.Render("Deletion cancelled."))
					return nil
				}
			}

			if err := f.AirborneClient().DeleteDimension(cmd.Context(), airborne.DeleteDimensionInput{Dimension: name}); err != nil {
				return err
			}
			if cmdutils.IsTerminal() {
				fmt.Fprintln(out, style.Success.Render("✓ Deleted dimension "+name))
			} else {
				log.Info().Msgf("Deleted dimension %s", name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
