package command

import (
	"strings"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/config"

	"github.com/spf13/cobra"
)

type organisationRow struct {
	Name         string   `json:"name"`
	Applications string   `json:"applications"`
	Access       []string `json:"access,omitempty"`
}

// NewListOrganisationCmd wires up:
//
//	airborne organisation list
func NewListOrganisationCmd(f *cmdutils.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List organisations",
		Long:  "Lists the organisations and applications the current user can access",
		RunE: func(cmd *cobra.Command, args []string) error {
			orgs, err := f.AirborneClient().ListOrganisations(cmd.Context())
			if err != nil {
				return err
			}
			if config.Global.Format == "json" {
				return cmdutils.PrintList(cmd, orgs, 1, 1, int64(len(orgs)), nil)
			}

			rows := make([]organisationRow, 0, len(orgs))
			for _, o := range orgs {
				apps := make([]string, 0, len(o.Applications))
				for _, a := range o.Applications {
					apps = append(apps, a.Application)
				}
				rows = append(rows, organisationRow{
					Name:         o.Name,
					Applications: strings.Join(apps, ", "),
					Access:       o.Access,
				})
			}
			return cmdutils.PrintList(cmd, rows, 1, 1, int64(len(rows)), [][]string{
				{"name", "Organisation"},
				{"applications", "Applications"},
				{"access", "Access"},
			})
		},
	}

	return cmd
}
