package command

import (
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"

	"github.com/spf13/cobra"
)

func NewUpdateReleaseViewCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		name       string
		dimensions map[string]string
	)
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a release view",
		Long:  "Replaces the name and filters of a release view. Flags left unset keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := f.AirborneClient()
			current, err := client.GetReleaseView(cmd.Context(), airborne.ReleaseViewInput{ID: args[0]})
			if err != nil {
				return err
			}

			in := airborne.UpdateReleaseViewInput{
				ID:         args[0],
				Name:       current.Name,
				Dimensions: current.Dimensions,
			}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("dimension") {
				in.Dimensions = viewDimensions(dimensions)
			}

			view, err := client.UpdateReleaseView(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.Success.Render("✓ Updated release view "+view.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringToStringVar(&dimensions, "dimension", nil, "dimension filters as key=value, replacing the current ones")

	return cmd
}
