package command

import (
	"time"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/config"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/tui"

	"github.com/spf13/cobra"
)

// releaseDetails is the table view of one release.
type releaseDetails struct {
	*airborne.Release
	Created   string   `json:"created"`
	Important []string `json:"important"`
	Lazy      []string `json:"lazy"`
	Resources []string `json:"resources"`
}

var detailColumns = [][]string{
	{"id", "Release"},
	{"created", "Created"},
	{"package.version", "Package"},
	{"package.index.file_path", "Index"},
	{"important", "Important"},
	{"lazy", "Lazy"},
	{"resources", "Resources"},
	{"config.version", "Config"},
	{"config.boot_timeout", "Boot Timeout"},
	{"config.release_config_timeout", "Release Config Timeout"},
	{"config.properties", "Properties"},
	{"dimensions", "Dimensions"},
	{"experiment.experiment_id", "Experiment"},
	{"experiment.status", "Status"},
	{"experiment.traffic_percentage", "Traffic"},
}

func printRelease(cmd *cobra.Command, rel *airborne.Release) error {
	if config.Global.Format == "json" {
		return cmdutils.PrintObject(cmd, rel, nil)
	}
	return cmdutils.PrintObject(cmd, releaseDetails{
		Release:   rel,
		Created:   tui.RelativeTime(rel.CreatedAt, time.Now()),
		Important: filePaths(rel.Package.Important),
		Lazy:      filePaths(rel.Package.Lazy),
		Resources: filePaths(rel.Resources),
	}, detailColumns)
}

func NewGetReleaseCmd(f *cmdutils.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [release-id]",
		Short: "Get a release",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := f.AirborneClient().GetRelease(cmd.Context(), airborne.GetReleaseInput{ReleaseID: args[0]})
			if err != nil {
				return err
			}
			return printRelease(cmd, rel)
		},
	}

	return cmd
}
