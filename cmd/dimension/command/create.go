package command

import (
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/spf13/cobra"
)

func NewCreateDimensionCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		description   string
		dimensionType string
		dependsOn     string
	)
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a dimension",
		Long: templates.LongDesc(`
			Creates a targeting dimension. New dimensions get the lowest priority;
			use 'airborne dimension reorder' to move them.

			Cohort dimensions group the values of the dimension they depend on.`),
		Example: templates.Examples(`
			airborne dimension create app_version --description "Native app version"
			airborne dimension create beta_users --type cohort --depends-on user_id`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dim, err := f.AirborneClient().CreateDimension(cmd.Context(), airborne.CreateDimensionInput{
				Dimension:     args[0],
				Description:   description,
				DimensionType: airborne.DimensionType(dimensionType),
				DependsOn:     dependsOn,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				style.Success.Render(fmt.Sprintf("✓ Created dimension %s at position %d", dim.Dimension, dim.Position)))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "dimension description")
	cmd.Flags().StringVar(&dimensionType, "type", string(airborne.DimensionStandard), "dimension type (standard|cohort)")
	cmd.Flags().StringVar(&dependsOn, "depends-on", "", "dimension a cohort is computed from")

	return cmd
}
