package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/juspay/airborne-cli/cmd/application"
	"github.com/juspay/airborne-cli/cmd/auth"
	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/cmd/devkit"
	"github.com/juspay/airborne-cli/cmd/dimension"
	"github.com/juspay/airborne-cli/cmd/file"
	"github.com/juspay/airborne-cli/cmd/organisation"
	"github.com/juspay/airborne-cli/cmd/packages"
	"github.com/juspay/airborne-cli/cmd/release"
	"github.com/juspay/airborne-cli/cmd/releaseview"
	"github.com/juspay/airborne-cli/cmd/user"
	"github.com/juspay/airborne-cli/config"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/internal/terminal"
	"github.com/juspay/airborne-cli/internal/tui"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// version is set via ldflags during build
var version = "dev"

// Commands that run without a saved login. Paths are relative to the root.
var (
	noAuthCommands = map[string]bool{
		"version":                      true,
		"upgrade":                      true,
		"devkit init":                  true,
		"devkit release-config":        true,
		"devkit release-config create": true,
		"devkit release-config update": true,
	}
	// release serve is public but still needs a server
	urlOnlyCommands = map[string]bool{
		"release serve": true,
	}
)

// authRequirement reports what a command needs from the saved login.
func authRequirement(path string) (needURL, needToken bool) {
	path = strings.TrimSpace(strings.TrimPrefix(path, "airborne"))
	switch {
	case path == "auth" || strings.HasPrefix(path, "auth "):
		return false, false
	case noAuthCommands[path]:
		return false, false
	case urlOnlyCommands[path]:
		return true, false
	}
	return true, true
}

func main() {
	var (
		verbose     bool
		noColor     bool
		interactive bool
		jsonFlag    bool
	)
	factory := cmdutils.NewFactory()

	rootCmd := &cobra.Command{
		Use:           "airborne",
		Short:         "CLI for the Airborne OTA release platform",
		SilenceUsage:  true,
		SilenceErrors: true, //prevent duplicate printing of errors
		Long: templates.LongDesc(`
      Airborne CLI manages over-the-air releases of React Native and native
      bundles: organisations, dimensions, files, packages and releases.

      Run without arguments in a terminal for an interactive experience,
      or use subcommands for scripted / CI workflows.`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// ── Initialise terminal & style ─────────────────────────────
			termInfo := terminal.Detect(noColor, interactive, jsonFlag)
			style.Init(termInfo.ColorEnabled)

			// Override format to JSON when --json is explicitly passed
			if termInfo.ForceJSON {
				config.Global.Format = "json"
			}

			if verbose {
				logWriter := zerolog.ConsoleWriter{
					Out:        os.Stderr,
					TimeFormat: time.RFC3339,
					NoColor:    noColor,
				}
				log.Logger = log.Output(logWriter)
			} else {
				log.Logger = zerolog.Nop()
			}

			needURL, needToken := authRequirement(cmd.CommandPath())
			missing := (needURL && config.Global.APIBaseURL == "") || (needToken && config.Global.AuthToken == "")
			// Only show auth error if we're not displaying help or completion
			if missing && cmd.Name() != "help" && !cmd.IsAdditionalHelpTopicCommand() && cmd.Name() != "completion" {
				if termInfo.ColorEnabled {
					fmt.Fprintln(os.Stderr, style.Error.Render("Not logged in."))
					fmt.Fprintln(os.Stderr, style.Hint("Run 'airborne auth login' or set "+config.EnvAPIURL+" and "+config.EnvToken+"."))
				} else {
					fmt.Fprintln(os.Stderr, "Not logged in. Please run 'airborne auth login' first.")
				}
				os.Exit(1)
			}

			return initProfiling()
		},

		PersistentPostRunE: func(*cobra.Command, []string) error {
			return flushProfiling()
		},
	}

	// Persistent flags available to all commands - bind them directly to global config
	rootCmd.PersistentFlags().StringVar(&config.Global.APIBaseURL, "api-url", "",
		"Base URL for the API (overrides saved config)")
	rootCmd.PersistentFlags().StringVar(&config.Global.AuthToken, "token", "",
		"Authentication token (overrides saved config)")
	rootCmd.PersistentFlags().StringVar(&config.Global.Organisation, "org", "", "Organisation (overrides saved config)")
	rootCmd.PersistentFlags().StringVar(&config.Global.Application, "app", "", "Application (overrides saved config)")
	rootCmd.PersistentFlags().StringVar(&config.Global.Format, "format", "table", "Format of the result (table|json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to console")

	// Interactive / display flags
	rootCmd.PersistentFlags().BoolVarP(&interactive, "interactive", "i", false,
		"Force interactive TUI mode (requires a terminal)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colour output (also respects NO_COLOR env)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false,
		"Output results as JSON (equivalent to --format=json)")

	// Saved login, then environment; flags override both during Execute
	if authConfig, err := config.LoadAuthConfig(); err == nil {
		if authConfig.Expired() {
			fmt.Fprintln(os.Stderr, style.Hint("Saved token has expired, run 'airborne auth login' again."))
		}
		config.ApplyAuthConfig(authConfig)
	}
	config.ApplyEnv()

	// Add main command groups
	rootCmd.AddCommand(auth.GetRootCmd(factory))
	rootCmd.AddCommand(organisation.GetRootCmd(factory))
	rootCmd.AddCommand(application.GetRootCmd(factory))
	rootCmd.AddCommand(user.GetRootCmd(factory))
	rootCmd.AddCommand(dimension.GetRootCmd(factory))
	rootCmd.AddCommand(releaseview.GetRootCmd(factory))
	rootCmd.AddCommand(file.GetRootCmd(factory))
	rootCmd.AddCommand(packages.GetRootCmd(factory))
	rootCmd.AddCommand(release.GetRootCmd(factory))
	rootCmd.AddCommand(devkit.GetRootCmd(factory))
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(upgradeCmd())

	addProfilingFlags(rootCmd.PersistentFlags())

	// ── Enhanced help text ───────────────────────────────────────────────
	termPreCheck := terminal.Detect(noColor, false, false)
	style.Init(termPreCheck.ColorEnabled)
	if helpTpl := tui.StyledHelpTemplate(); helpTpl != "" {
		rootCmd.SetUsageTemplate(helpTpl)
	}

	// ── Interactive entry point ──────────────────────────────────────────
	// If the user runs `airborne` with no subcommand in a TTY (or passes -i),
	// launch the interactive main menu instead of printing help.
	if shouldLaunchInteractive(os.Args[1:], hasInteractiveFlag(os.Args[1:])) {
		style.Init(!noColor)
		runInteractiveMode(rootCmd)
		return
	}

	if err := rootCmd.Execute(); err != nil {
		termInfo := terminal.Detect(noColor, false, false)
		if termInfo.IsTerminal && termInfo.ColorEnabled {
			fmt.Fprintln(os.Stderr, style.Error.Render("Error: "+err.Error()))
		} else {
			fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		}
		os.Exit(1)
	}
}

// hasInteractiveFlag looks for -i/--interactive before cobra has parsed
// anything.
func hasInteractiveFlag(args []string) bool {
	for _, a := range args {
		if a == "-i" || a == "--interactive" {
			return true
		}
	}
	return false
}

// shouldLaunchInteractive returns true when the TUI main menu should be shown.
//   - explicit --interactive/-i flag → always (if TTY)
//   - no subcommand args and stdout is a TTY → auto-launch
func shouldLaunchInteractive(args []string, forceInteractive bool) bool {
	termInfo := terminal.Detect(false, forceInteractive, false)

	if !termInfo.IsTerminal {
		return false
	}
	if forceInteractive {
		return true
	}

	// Strip known global flags to see if a subcommand was given
	return len(stripGlobalFlags(args)) == 0
}

// stripGlobalFlags removes known flag tokens so we can detect bare `airborne` invocations.
func stripGlobalFlags(args []string) []string {
	// Flags that take a value (next token is the value)
	valueFlags := map[string]bool{
		"--api-url": true, "--token": true,
		"--org": true, "--app": true, "--format": true,
		"--profile": true, "--profile-output": true,
	}
	// Boolean flags (no value)
	boolFlags := map[string]bool{
		"--verbose": true, "-v": true,
		"--interactive": true, "-i": true,
		"--no-color": true, "--json": true,
	}

	var rest []string
	skip := false
	for _, a := range args {
		if skip {
			skip = false
			continue
		}
		if boolFlags[a] {
			continue
		}
		if valueFlags[a] {
			skip = true
			continue
		}
		// Handle --flag=value form
		if key, _, ok := strings.Cut(a, "="); ok && strings.HasPrefix(a, "--") {
			if valueFlags[key] || boolFlags[key] {
				continue
			}
		}
		rest = append(rest, a)
	}
	return rest
}

// runInteractiveMode launches the Bubble Tea main menu and dispatches the
// chosen command through the existing Cobra tree.
func runInteractiveMode(rootCmd *cobra.Command) {
	choice, err := tui.RunMenu()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if choice == "" {
		// User quit without choosing
		os.Exit(0)
	}

	rootCmd.SetArgs(strings.Fields(choice))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.Error.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// versionCmd returns the version command
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of airborne",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "airborne version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Built with %s\n", runtime.Version())
		},
	}
}

var (
	profileName   string
	profileOutput string
)

func addProfilingFlags(flags *pflag.FlagSet) {
	flags.StringVar(&profileName, "profile", "none",
		"Name of profile to capture. One of (none|cpu|heap|goroutine|threadcreate|block|mutex)")
	flags.StringVar(&profileOutput, "profile-output", "profile.pprof", "Name of the file to write the profile to")
}

func initProfiling() error {
	var (
		f   *os.File
		err error
	)
	switch profileName {
	case "none":
		return nil
	case "cpu":
		f, err = os.Create(profileOutput)
		if err != nil {
			return err
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			return err
		}
	// Block and mutex profiles need a call to Set{Block,Mutex}ProfileRate to
	// output anything. We choose to sample all events.
	case "block":
		runtime.SetBlockProfileRate(1)
	case "mutex":
		runtime.SetMutexProfileFraction(1)
	default:
		// Check the profile name is valid.
		if profile := pprof.Lookup(profileName); profile == nil {
			return fmt.Errorf("unknown profile '%s'", profileName)
		}
	}

	// If the command is interrupted before the end (ctrl-c), flush the
	// profiling files
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		if f != nil {
			f.Close()
		}
		_ = flushProfiling()
		os.Exit(0)
	}()

	return nil
}

func flushProfiling() error {
	switch profileName {
	case "none":
		return nil
	case "cpu":
		pprof.StopCPUProfile()
	case "heap":
		runtime.GC()
		fallthrough
	default:
		profile := pprof.Lookup(profileName)
		if profile == nil {
			return nil
		}
		f, err := os.Create(profileOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		return profile.WriteTo(f, 0)
	}
	return nil
}
