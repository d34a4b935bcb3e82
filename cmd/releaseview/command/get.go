package command

import (
	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"

	"github.com/spf13/cobra"
)

func NewGetReleaseViewCmd(f *cmdutils.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get a release view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := f.AirborneClient().GetReleaseView(cmd.Context(), airborne.ReleaseViewInput{ID: args[0]})
			if err != nil {
				return err
			}
			return cmdutils.PrintObject(cmd, view, viewColumns)
		},
	}

	return cmd
}
