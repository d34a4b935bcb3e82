package command

import (
	"context"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/module/airborne/priority"

	"github.com/spf13/cobra"
)

var dimensionColumns = [][]string{
	{"position", "Position"},
	{"dimension", "Dimension"},
	{"dimension_type", "Type"},
	{"depends_on", "Depends On"},
	{"description", "Description"},
}

// NewListDimensionCmd wires up:
//
//	airborne dimension list
func NewListDimensionCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		page  int
		count int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dimensions",
		Long:  "Lists the application's dimensions ordered by priority, highest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := f.AirborneClient().ListDimensions(cmd.Context(), airborne.ListDimensionsInput{
				Page:  page,
				Count: count,
			})
			if err != nil {
				return err
			}
			return cmdutils.PrintList(cmd, priority.Sort(res.Data), int64(page), res.TotalPages, res.TotalItems, dimensionColumns)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&count, "count", 50, "number of items per page")

	return cmd
}

// listAllDimensions pages through every dimension of the application.
func listAllDimensions(ctx context.Context, c *airborne.Client) ([]airborne.Dimension, error) {
	const pageSize = 100
	var all []airborne.Dimension
	for page := 1; ; page++ {
		res, err := c.ListDimensions(ctx, airborne.ListDimensionsInput{Page: page, Count: pageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, res.Data...)
		if int64(page) >= res.TotalPages || len(res.Data) == 0 {
			return all, nil
		}
	}
}
