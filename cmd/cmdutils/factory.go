package cmdutils

import (
	"os"

	"github.com/juspay/airborne-cli/config"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/module/airborne/devkit"
	"github.com/juspay/airborne-cli/util/common/printer"
	"github.com/juspay/airborne-cli/util/common/vcs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type Factory struct {
	AirborneClient func() *airborne.Client
	// Runner executes the JS bundler for devkit commands
	Runner func() devkit.Runner
}

func NewFactory() *Factory {
	return &Factory{
		AirborneClient: func() *airborne.Client {
			client, err := airborne.NewClient(config.Global.APIBaseURL,
				airborne.WithToken(config.Global.AuthToken),
				airborne.WithOrganisation(config.Global.Organisation),
				airborne.WithApplication(config.Global.Application))
			if err != nil {
				log.Fatal().Msgf("Error creating client: %v", err)
			}
			return client
		},
		Runner: func() devkit.Runner {
			return devkit.ExecRunner{}
		},
	}
}

// PrintList prints a page of results to the command's output.
func PrintList(cmd *cobra.Command, res any, page, pages, items int64, mappings [][]string) error {
	opts := printer.DefaultPrintOptions()
	opts.Writer = cmd.OutOrStdout()
	opts.PageIndex = page
	opts.PageCount = pages
	opts.ItemCount = items
	opts.ColumnMapping = mappings
	return printer.PrintWithOptions(res, opts)
}

// PrintObject prints a single resource to the command's output.
func PrintObject(cmd *cobra.Command, res any, mappings [][]string) error {
	return printer.PrintObjectTo(cmd.OutOrStdout(), res, mappings)
}

// IsTerminal reports whether stdout is a TTY. Confirmation prompts and
// styled success lines are only used when it is.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// GitInfo returns the git provenance of dir, or nil outside a repository.
func GitInfo(dir string) *vcs.GitInfo {
	repo, err := vcs.Open(dir)
	if err != nil {
		return nil
	}
	info, err := repo.Info()
	if err != nil {
		log.Debug().Err(err).Str("dir", dir).Msg("could not read git info")
		return nil
	}
	return info
}
