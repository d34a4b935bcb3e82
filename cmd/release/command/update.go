package command

import (
	"errors"
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/spf13/cobra"
)

func NewUpdateReleaseCmd(f *cmdutils.Factory) *cobra.Command {
	var rf releaseFlags
	cmd := &cobra.Command{
		Use:   "update [release-id]",
		Short: "Update a release",
		Long: templates.LongDesc(`
			Updates the overrides of a release that has not started ramping.

			The current release is fetched first and only the flags given
			are changed.`),
		Example: templates.Examples(`
			# Raise the boot timeout of a release
			airborne release update 01J9Z3 --boot-timeout 6000`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 {
				return errors.New("nothing to update, pass at least one flag")
			}
			ctx := cmd.Context()
			client := f.AirborneClient()

			current, err := client.GetRelease(ctx, airborne.GetReleaseInput{ReleaseID: args[0]})
			if err != nil {
				return err
			}
			in, err := inputFromRelease(current)
			if err != nil {
				return err
			}
			if err := rf.apply(cmd, &in); err != nil {
				return err
			}

			rel, err := client.UpdateRelease(ctx, args[0], in)
			if err != nil {
				return err
			}
			if cmdutils.IsTerminal() {
				fmt.Fprintln(cmd.OutOrStdout(), style.Success.Render("✓ Updated release "+rel.ID))
			}
			return cmdutils.PrintObject(cmd, rel, releaseColumns)
		},
	}

	rf.register(cmd)

	return cmd
}
