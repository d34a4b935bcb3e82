package command

import (
	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/spf13/cobra"
)

var servedColumns = [][]string{
	{"version", "Version"},
	{"package.version", "Package"},
	{"package.index.file_path", "Index"},
	{"config.version", "Config"},
	{"config.boot_timeout", "Boot Timeout"},
	{"config.release_config_timeout", "Release Config Timeout"},
}

// NewServeReleaseCmd fetches the public release payload the way a device
// does, without credentials.
func NewServeReleaseCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		dimensions map[string]string
		v2         bool
		toss       string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Show the release a device would receive",
		Example: templates.Examples(`
			# What does an Android device on 1.2.0 get?
			airborne release serve --dimension os=android,app_version=1.2.0`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := f.AirborneClient()
			rel, err := client.ServeRelease(cmd.Context(), airborne.ServeReleaseInput{
				Organisation: client.Organisation(),
				Application:  client.Application(),
				V2:           v2,
				Toss:         toss,
				Dimensions:   dimensions,
			})
			if err != nil {
				return err
			}
			return cmdutils.PrintObject(cmd, rel, servedColumns)
		},
	}

	cmd.Flags().StringToStringVar(&dimensions, "dimension", nil, "device dimensions as key=value")
	cmd.Flags().BoolVar(&v2, "v2", false, "use the v2 payload with package groups")
	cmd.Flags().StringVar(&toss, "toss", "", "pin the experiment bucket")

	return cmd
}
