package command

import (
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/internal/tui"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var actionColumns = [][]string{
	{"experiment_id", "Experiment"},
	{"success", "Success"},
	{"message", "Message"},
}

func printAction(cmd *cobra.Command, done string, res *airborne.ExperimentActionResponse) error {
	if cmdutils.IsTerminal() {
		fmt.Fprintln(cmd.OutOrStdout(), style.Success.Render("✓ "+done))
	} else {
		log.Info().Str("experiment", res.ExperimentID).Msg(done)
	}
	return cmdutils.PrintObject(cmd, res, actionColumns)
}

func NewRampReleaseCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		traffic      int
		changeReason string
	)
	cmd := &cobra.Command{
		Use:   "ramp [release-id]",
		Short: "Ramp a release to a share of traffic",
		Example: templates.Examples(`
			# Send half of the matching devices to the new release
			airborne release ramp 01J9Z3 --traffic 50`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := f.AirborneClient().RampRelease(cmd.Context(), airborne.RampReleaseInput{
				ReleaseID:         args[0],
				TrafficPercentage: traffic,
				ChangeReason:      changeReason,
			})
			if err != nil {
				return err
			}
			return printAction(cmd, fmt.Sprintf("Ramped release %s to %d%%", args[0], traffic), res)
		},
	}

	cmd.Flags().IntVar(&traffic, "traffic", 0, "traffic percentage between 0 and 100")
	cmd.Flags().StringVar(&changeReason, "change-reason", "", "reason recorded with the change")
	_ = cmd.MarkFlagRequired("traffic")

	return cmd
}

func NewConcludeReleaseCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		variant      string
		changeReason string
	)
	cmd := &cobra.Command{
		Use:   "conclude [release-id]",
		Short: "Conclude a release experiment",
		Example: templates.Examples(`
			# Keep the experimental variant for every matching device
			airborne release conclude 01J9Z3 --variant 7259413256-experimental`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := f.AirborneClient().ConcludeRelease(cmd.Context(), airborne.ConcludeReleaseInput{
				ReleaseID:     args[0],
				ChosenVariant: variant,
				ChangeReason:  changeReason,
			})
			if err != nil {
				return err
			}
			return printAction(cmd, "Concluded release "+args[0], res)
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "variant id to keep")
	cmd.Flags().StringVar(&changeReason, "change-reason", "", "reason recorded with the change")
	_ = cmd.MarkFlagRequired("variant")

	return cmd
}

func NewDiscardReleaseCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		force        bool
		changeReason string
	)
	cmd := &cobra.Command{
		Use:   "discard [release-id]",
		Short: "Discard a release that has not started ramping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !force && cmdutils.IsTerminal() {
				confirmed, err := tui.ConfirmAction("Discard release "+id+"?", "Devices will stop receiving it.")
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), style.DimText.Render("Discard cancelled."))
					return nil
				}
			}
			res, err := f.AirborneClient().DiscardRelease(cmd.Context(), airborne.DiscardReleaseInput{
				ReleaseID:    id,
				ChangeReason: changeReason,
			})
			if err != nil {
				return err
			}
			return printAction(cmd, "Discarded release "+id, res)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")
	cmd.Flags().StringVar(&changeReason, "change-reason", "", "reason recorded with the change")

	return cmd
}
