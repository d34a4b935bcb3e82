package command

import (
	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/spf13/cobra"
)

var fileColumns = [][]string{
	{"id", "ID"},
	{"file_path", "File Path"},
	{"version", "Version"},
	{"tag", "Tag"},
	{"size", "Size"},
	{"checksum", "Checksum"},
	{"url", "URL"},
}

func NewCreateFileCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		url   string
		tag   string
		noGit bool
	)
	cmd := &cobra.Command{
		Use:   "create [file-path]",
		Short: "Register a hosted file",
		Long: templates.LongDesc(`
			Creates a file record for a file already hosted at --url. The server
			downloads it to compute its size and checksum.

			When run inside a git repository the remote, branch and commit are
			stored as file metadata.`),
		Example: templates.Examples(`
			airborne file create index.android.bundle --url https://cdn.example.com/v42/index.android.bundle --tag v42`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := airborne.CreateFileInput{
				FilePath: args[0],
				URL:      url,
				Tag:      tag,
			}
			if !noGit {
				in.Metadata = cmdutils.GitInfo(".").Metadata()
			}
			file, err := f.AirborneClient().CreateFile(cmd.Context(), in)
			if err != nil {
				return err
			}
			return cmdutils.PrintObject(cmd, file, fileColumns)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "URL the file is hosted at")
	cmd.Flags().StringVar(&tag, "tag", "", "tag to group the file under")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not attach git metadata")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}
