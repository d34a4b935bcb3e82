package command

import (
	"errors"
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/config"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/module/airborne/priority"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/spf13/cobra"
)

func NewReorderDimensionCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		to           int
		dryRun       bool
		all          bool
		changeReason string
	)
	cmd := &cobra.Command{
		Use:   "reorder [name]",
		Short: "Move a dimension to a new priority",
		Long: templates.LongDesc(`
			Moves a dimension to index --to in the priority order and renumbers the
			dimensions around it. One update is sent per dimension whose position
			changes. Index 0 is reserved for the experiment dimension.

			Updates are sent one at a time. If one fails, those before it have
			already been applied and the command prints the resulting order.`),
		Example: templates.Examples(`
			# Preview moving app_version to the top
			airborne dimension reorder app_version --to 1 --dry-run

			# Re-send every position, as the dashboard does
			airborne dimension reorder app_version --to 1 --all`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			client := f.AirborneClient()

			dims, err := listAllDimensions(cmd.Context(), client)
			if err != nil {
				return err
			}

			var opts []priority.PlanOption
			if all {
				opts = append(opts, priority.IncludeUnchanged())
			}
			plan, err := priority.Move(dims, args[0], to, opts...)
			if err != nil {
				return err
			}

			if len(plan.Changes) == 0 {
				fmt.Fprintln(out, style.DimText.Render("Nothing to reorder."))
				return nil
			}

			if dryRun {
				if config.Global.Format == "json" {
					return cmdutils.PrintObject(cmd, plan, nil)
				}
				fmt.Fprintln(out, style.Bold.Render("Planned updates:"))
				for _, c := range plan.Changes {
					fmt.Fprintf(out, "  %s: %d → %d\n", c.Dimension, c.From, c.To)
				}
				return nil
			}

			_, err = priority.Apply(cmd.Context(), client, plan, priority.ApplyOptions{
				ChangeReason: changeReason,
				OnUpdate: func(c priority.Change) {
					fmt.Fprintf(out, "%s %s: %d → %d\n", style.SuccessIcon(), c.Dimension, c.From, c.To)
				},
			})
			if err != nil {
				var applyErr *priority.ApplyError
				if errors.As(err, &applyErr) && len(applyErr.Applied) > 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), style.Warning.Render("Dimension order was partially updated; current order:"))
					if current, lerr := listAllDimensions(cmd.Context(), client); lerr == nil {
						for _, d := range priority.Sort(current) {
							fmt.Fprintf(cmd.ErrOrStderr(), "  %d %s\n", d.Position, d.Dimension)
						}
					}
				}
				return err
			}

			fmt.Fprintln(out, style.Success.Render(fmt.Sprintf("✓ Moved %s to position %d", args[0], to)))
			return nil
		},
	}

	cmd.Flags().IntVar(&to, "to", 0, "target index in the priority order (1 or more)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the planned updates without sending them")
	cmd.Flags().BoolVar(&all, "all", false, "send an update for every dimension, not only those that move")
	cmd.Flags().StringVar(&changeReason, "change-reason", priority.DefaultChangeReason, "reason recorded with each update")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
