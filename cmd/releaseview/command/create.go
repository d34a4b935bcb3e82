package command

import (
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/spf13/cobra"
)

func NewCreateReleaseViewCmd(f *cmdutils.Factory) *cobra.Command {
	var dimensions map[string]string
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a release view",
		Long:  "Saves a named set of dimension filters",
		Example: templates.Examples(`
			airborne release-view create android-beta --dimension os=android,channel=beta`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := f.AirborneClient().CreateReleaseView(cmd.Context(), airborne.CreateReleaseViewInput{
				Name:       args[0],
				Dimensions: viewDimensions(dimensions),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.Success.Render(fmt.Sprintf("✓ Created release view %s (%s)", view.Name, view.ID)))
			return nil
		},
	}

	cmd.Flags().StringToStringVar(&dimensions, "dimension", nil, "dimension filters as key=value")

	return cmd
}
