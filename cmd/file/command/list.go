package command

import (
	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/config"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/util/common"

	"github.com/spf13/cobra"
)

type fileRow struct {
	airborne.File
	Size string `json:"size"`
}

// NewListFileCmd wires up:
//
//	airborne file list
func NewListFileCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		page    int
		perPage int
		search  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List files",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := f.AirborneClient().ListFiles(cmd.Context(), airborne.ListFilesInput{
				Page:    page,
				PerPage: perPage,
				Search:  search,
			})
			if err != nil {
				return err
			}

			pages := int64(1)
			if res.PerPage > 0 {
				pages = (res.Total + res.PerPage - 1) / res.PerPage
			}
			if config.Global.Format == "json" {
				return cmdutils.PrintList(cmd, res.Files, res.Page, pages, res.Total, nil)
			}

			rows := make([]fileRow, 0, len(res.Files))
			for _, file := range res.Files {
				rows = append(rows, fileRow{File: file, Size: common.GetSize(file.Size)})
			}
			return cmdutils.PrintList(cmd, rows, res.Page, pages, res.Total, fileColumns)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "number of items per page")
	cmd.Flags().StringVar(&search, "search", "", "filter by file path")

	return cmd
}
