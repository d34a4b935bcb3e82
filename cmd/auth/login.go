package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/juspay/airborne-cli/config"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/internal/style"
	"github.com/juspay/airborne-cli/internal/tui"
	"github.com/juspay/airborne-cli/util/templates"

	"github.com/spf13/cobra"
)

// DefaultAPIURL is used when no server is given.
const DefaultAPIURL = "http://localhost:8081"

type loginOptions struct {
	apiURL         string
	token          string
	clientID       string
	clientSecret   string
	organisation   string
	application    string
	nonInteractive bool
}

// prompt asks for the values login still needs.
func (o *loginOptions) prompt() error {
	var err error
	if o.apiURL == "" {
		o.apiURL, err = tui.PromptInput("API URL", "Airborne server to log into", DefaultAPIURL)
		if err != nil {
			return err
		}
	}
	if o.token != "" {
		return nil
	}
	if o.clientID == "" {
		o.clientID, err = tui.PromptInput("Client ID", "Issued from the Airborne dashboard", "")
		if err != nil {
			return err
		}
	}
	if o.clientSecret == "" {
		o.clientSecret, err = tui.PromptSecret("Client secret")
		if err != nil {
			return err
		}
	}
	return nil
}

// login resolves a token and returns the config to save. With client
// credentials the token is issued by the server; a plain token is checked
// against the user endpoint.
func (o *loginOptions) login(ctx context.Context) (*config.AuthConfig, error) {
	cfg := &config.AuthConfig{
		BaseURL:      strings.TrimRight(o.apiURL, "/"),
		Organisation: o.organisation,
		Application:  o.application,
	}

	if o.token != "" {
		client, err := airborne.NewClient(cfg.BaseURL, airborne.WithToken(o.token))
		if err != nil {
			return nil, err
		}
		if _, err := client.GetUser(ctx); err != nil {
			return nil, fmt.Errorf("credential validation failed: %w", err)
		}
		cfg.Token = o.token
		return cfg, nil
	}

	if o.clientID == "" || o.clientSecret == "" {
		return nil, fmt.Errorf("client id and secret are required. Use --client-id and --client-secret, --api-token or interactive mode")
	}
	client, err := airborne.NewClient(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	user, err := client.IssueToken(ctx, airborne.IssueTokenInput{
		ClientID:     o.clientID,
		ClientSecret: o.clientSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	tok := user.UserToken
	cfg.Token = tok.AccessToken
	cfg.RefreshToken = tok.RefreshToken
	if tok.ExpiresIn > 0 {
		cfg.Expiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	return cfg, nil
}

func getLoginCmd() *cobra.Command {
	o := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Airborne",
		Long: templates.LongDesc(`
			Authenticate with an Airborne server and save credentials for future use.

			Client credentials are exchanged for a token. An existing token can be
			saved directly with --api-token.`),
		Example: templates.Examples(`
			# Exchange client credentials for a token
			airborne auth login --api-url https://airborne.example.com --client-id ID --client-secret SECRET

			# Save an existing token with a default organisation and application
			airborne auth login --api-token TOKEN --org acme --app shop`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			needInteractive := !o.nonInteractive && o.token == "" && (o.clientID == "" || o.clientSecret == "")
			if needInteractive {
				fmt.Fprintln(out, "Entering interactive login mode. Press Ctrl+C to cancel.")
				if err := o.prompt(); err != nil {
					return err
				}
			}
			if o.apiURL == "" {
				o.apiURL = DefaultAPIURL
			}

			fmt.Fprintln(out, "Validating credentials...")
			cfg, err := o.login(cmd.Context())
			if err != nil {
				return err
			}

			if err := config.SaveAuthConfig(*cfg); err != nil {
				return fmt.Errorf("failed to save authentication config: %w", err)
			}

			// Update the global config for the current session as well
			config.Global.APIBaseURL = cfg.BaseURL
			config.Global.AuthToken = cfg.Token
			config.Global.Organisation = cfg.Organisation
			config.Global.Application = cfg.Application

			fmt.Fprintln(out, style.Success.Render("✓ Successfully logged into Airborne"))
			fmt.Fprintln(out, "API URL:      ", cfg.BaseURL)
			if cfg.Organisation != "" {
				fmt.Fprintln(out, "Organisation: ", cfg.Organisation)
			}
			if cfg.Application != "" {
				fmt.Fprintln(out, "Application:  ", cfg.Application)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&o.apiURL, "api-url", "", "Airborne API URL (default: "+DefaultAPIURL+")")
	cmd.Flags().StringVar(&o.token, "api-token", "", "Existing access token")
	cmd.Flags().StringVar(&o.clientID, "client-id", "", "Client ID")
	cmd.Flags().StringVar(&o.clientSecret, "client-secret", "", "Client secret")
	cmd.Flags().StringVar(&o.organisation, "org", "", "Default organisation")
	cmd.Flags().StringVar(&o.application, "app", "", "Default application")
	cmd.Flags().BoolVar(&o.nonInteractive, "non-interactive", false,
		"Disable interactive prompts (requires all mandatory flags)")

	return cmd
}
