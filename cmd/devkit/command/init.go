package command

import (
	"fmt"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/config"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/internal/terminal"
	"github.com/juspay/airborne-cli/internal/tui"
	"github.com/juspay/airborne-cli/module/airborne/devkit"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/spf13/cobra"
)

// ProjectDir is the project every devkit command works on.
var ProjectDir = "."

type initOptions struct {
	cfg devkit.ProjectConfig
}

// prompt asks for the values that were not given as flags.
func (o *initOptions) prompt() error {
	ask := []struct {
		value       *string
		title       string
		placeholder string
	}{
		{&o.cfg.Organisation, "Organisation", config.Global.Organisation},
		{&o.cfg.Namespace, "Namespace / application", config.Global.Application},
		{&o.cfg.JSEntryFile, "JS entry file", devkit.DefaultEntryFile},
		{&o.cfg.Android.IndexFilePath, "Android index file", devkit.DefaultAndroidIndex},
		{&o.cfg.IOS.IndexFilePath, "iOS index file", devkit.DefaultIOSIndex},
	}
	for _, a := range ask {
		if *a.value != "" {
			continue
		}
		v, err := tui.PromptInput(a.title, "", a.placeholder)
		if err != nil {
			return err
		}
		if v == "" {
			v = a.placeholder
		}
		*a.value = v
	}
	return nil
}

func NewInitCmd(f *cmdutils.Factory) *cobra.Command {
	var o initOptions
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write airborne-config.json for a project",
		Long: templates.LongDesc(`
			Writes airborne-config.json at the project root. Missing values are
			prompted for in a terminal; otherwise the organisation and namespace
			default to --org and --app.`),
		Example: templates.Examples(`
			airborne devkit init --organisation acme --namespace shop`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if devkit.HasProjectConfig(ProjectDir) {
				return fmt.Errorf("airborne config already exists at %s", devkit.ProjectConfigPath(ProjectDir))
			}
			if terminal.Detect(false, true, false).CanPrompt() {
				if err := o.prompt(); err != nil {
					return err
				}
			}
			if o.cfg.Organisation == "" {
				o.cfg.Organisation = config.Global.Organisation
			}
			if o.cfg.Namespace == "" {
				o.cfg.Namespace = config.Global.Application
			}

			pr, err := devkit.Init(ProjectDir, o.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.Success.Render("✓ Wrote "+devkit.ProjectConfigPath(pr.Dir)))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&o.cfg.Organisation, "organisation", "", "organisation name")
	fs.StringVar(&o.cfg.Namespace, "namespace", "", "application namespace")
	fs.StringVar(&o.cfg.JSEntryFile, "entry-file", "", "JS entry file (default index.js)")
	fs.StringVar(&o.cfg.Android.IndexFilePath, "android-index", "", "Android bundle name (default index.android.bundle)")
	fs.StringVar(&o.cfg.IOS.IndexFilePath, "ios-index", "", "iOS bundle name (default main.jsbundle)")
	fs.BoolVar(&o.cfg.Expo, "expo", false, "bundle with expo export:embed")

	return cmd
}
