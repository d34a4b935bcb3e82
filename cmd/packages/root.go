// Package packages holds the `airborne package` commands.
package packages

import (
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/config"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/spf13/cobra"
)

var packageColumns = [][]string{
	{"version", "Version"},
	{"tag", "Tag"},
	{"index", "Index"},
	{"files", "Files"},
}

func GetRootCmd(f *cmdutils.Factory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "package",
		Aliases: []string{"pkg"},
		Short:   "Manage packages",
		Long:    `Commands to create and list packages, the versioned sets of files a release ships`,
	}

	rootCmd.AddCommand(newListPackageCmd(f))
	rootCmd.AddCommand(newCreatePackageCmd(f))

	return rootCmd
}

func newCreatePackageCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		index string
		tag   string
		files []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a package",
		Long: templates.LongDesc(`
			Creates a new package version from uploaded files. --index is the file
			id of the JS bundle; --files lists the ids of every other file.`),
		Example: templates.Examples(`
			airborne package create --index 4f0c... --files 9a1e...,77d2... --tag v42`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := f.AirborneClient().CreatePackage(cmd.Context(), airborne.CreatePackageInput{
				Index: index,
				Tag:   tag,
				Files: files,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.Success.Render(
				fmt.Sprintf("✓ Created package version %d (%s)", pkg.Version, airborne.PackageKeyForVersion(pkg.Version))))
			return nil
		},
	}

	cmd.Flags().StringVar(&index, "index", "", "file id of the index bundle")
	cmd.Flags().StringVar(&tag, "tag", "", "package tag")
	cmd.Flags().StringSliceVar(&files, "files", nil, "file ids included in the package")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}

func newListPackageCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		page   int
		count  int
		search string
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := f.AirborneClient().ListPackages(cmd.Context(), airborne.ListPackagesInput{
				Page:   page,
				Count:  count,
				Search: search,
				All:    all,
			})
			if err != nil {
				return err
			}
			type row struct {
				airborne.Package
				Files string `json:"files"`
			}
			var data any = res.Data
			if config.Global.Format != "json" {
				rows := make([]row, 0, len(res.Data))
				for _, p := range res.Data {
					rows = append(rows, row{Package: p, Files: fmt.Sprintf("%d files", len(p.Files))})
				}
				data = rows
			}
			return cmdutils.PrintList(cmd, data, int64(page), res.TotalPages, res.TotalItems, packageColumns)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&count, "count", 20, "number of items per page")
	cmd.Flags().StringVar(&search, "search", "", "filter by tag or version")
	cmd.Flags().BoolVar(&all, "all", false, "list every package without paging")

	return cmd
}
