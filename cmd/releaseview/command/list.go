package command

import (
	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"

	"github.com/spf13/cobra"
)

func NewListReleaseViewCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		page  int
		count int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List release views",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := f.AirborneClient().ListReleaseViews(cmd.Context(), airborne.ListReleaseViewsInput{
				Page:  page,
				Count: count,
			})
			if err != nil {
				return err
			}
			return cmdutils.PrintList(cmd, res.Data, int64(page), res.TotalPages, res.TotalItems, viewColumns)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&count, "count", 20, "number of items per page")

	return cmd
}
