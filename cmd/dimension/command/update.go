package command

import (
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/module/airborne/priority"

	"github.com/spf13/cobra"
)

func NewUpdateDimensionCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		position     int
		changeReason string
	)
	cmd := &cobra.Command{
		Use:   "update [name]",
		Short: "Set a dimension's position",
		Long:  "Sets the raw position of one dimension. Other dimensions are left as they are; prefer 'reorder' to keep positions dense.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dim, err := f.AirborneClient().UpdateDimension(cmd.Context(), airborne.UpdateDimensionInput{
				Dimension:    args[0],
				Position:     position,
				ChangeReason: changeReason,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				style.Success.Render(fmt.Sprintf("✓ Updated dimension %s to position %d", dim.Dimension, dim.Position)))
			return nil
		},
	}

	cmd.Flags().IntVar(&position, "position", 0, "new position")
	cmd.Flags().StringVar(&changeReason, "change-reason", priority.DefaultChangeReason, "reason recorded with the change")
	_ = cmd.MarkFlagRequired("position")

	return cmd
}
