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

func NewDeleteReleaseViewCmd(f *cmdutils.Factory) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a release view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			out := cmd.OutOrStdout()

			if !force && cmdutils.IsTerminal() {
				confirmed, err := tui.ConfirmDeletion("release view", id)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(out, style.DimText.Render("Deletion cancelled."))
					return nil
				}
			}

			if err := f.AirborneClient().DeleteReleaseView(cmd.Context(), airborne.ReleaseViewInput{ID: id}); err != nil {
				return err
			}
			if cmdutils.IsTerminal() {
				fmt.Fprintln(out, style.Success.Render("✓ Deleted release view "+id))
			} else {
				log.Info().Msgf("Deleted release view %s", id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
