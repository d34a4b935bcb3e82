package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/config"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/terminal"
	"github.com/juspay/airborne-cli/internal/tui"

	"github.com/spf13/cobra"
)

type listOptions struct {
	page   int
	count  int
	all    bool
	status string
}

func (o *listOptions) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.count, "count", 10, "number of items per page")
	cmd.Flags().StringVar(&o.status, "status", "", "filter by status (created|inprogress|concluded|discarded)")
	cmd.Flags().StringToStringVar(&config.Global.Release.Dimensions, "dimension", nil,
		"only releases matching these dimensions, as key=value")
}

func (o *listOptions) input(page int) airborne.ListReleasesInput {
	return airborne.ListReleasesInput{
		Page:       page,
		Count:      o.count,
		All:        o.all,
		Status:     airborne.ReleaseStatus(o.status),
		Dimensions: config.Global.Release.Dimensions,
	}
}

// NewListReleaseCmd wires up:
//
//	airborne release list
func NewListReleaseCmd(f *cmdutils.Factory) *cobra.Command {
	var o listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := f.AirborneClient().ListReleases(cmd.Context(), o.input(o.page))
			if err != nil {
				return err
			}
			return cmdutils.PrintList(cmd, res.Data, int64(o.page), res.TotalPages, res.TotalItems, releaseColumns)
		},
	}

	o.register(cmd)
	cmd.Flags().IntVar(&o.page, "page", 1, "page number")
	cmd.Flags().BoolVar(&o.all, "all", false, "list every release without paging")

	return cmd
}

// NewBrowseReleaseCmd pages through releases in an interactive table and
// prints the one the user opens.
func NewBrowseReleaseCmd(f *cmdutils.Factory) *cobra.Command {
	var o listOptions
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse releases interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !terminal.Detect(false, true, false).CanPrompt() {
				return errors.New("release browse needs a terminal, use 'airborne release list' instead")
			}
			client := f.AirborneClient()
			id, err := tui.RunReleaseList(func(ctx context.Context, page int) (*airborne.ReleaseList, error) {
				return client.ListReleases(ctx, o.input(page))
			})
			if err != nil {
				return err
			}
			if id == "" {
				return nil
			}
			rel, err := client.GetRelease(cmd.Context(), airborne.GetReleaseInput{ReleaseID: id})
			if err != nil {
				return fmt.Errorf("failed to load release %s: %w", id, err)
			}
			return printRelease(cmd, rel)
		},
	}

	o.register(cmd)

	return cmd
}
