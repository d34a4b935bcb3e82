package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// AuthConfig is the saved login in ~/.airborne/auth.json.
type AuthConfig struct {
	BaseURL      string    `json:"base_url"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	Organisation string    `json:"organisation,omitempty"`
	Application  string    `json:"application,omitempty"`
}

// OAuthToken returns the saved credentials as an oauth2 token.
func (a *AuthConfig) OAuthToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  a.Token,
		TokenType:    "Bearer",
		RefreshToken: a.RefreshToken,
		Expiry:       a.Expiry,
	}
}

// Expired reports whether the saved token has a known expiry in the past.
func (a *AuthConfig) Expired() bool {
	return a.Token != "" && !a.OAuthToken().Valid()
}

// AuthConfigPath returns the auth file location. Global.ConfigPath overrides
// the default under the home directory.
func AuthConfigPath() (string, error) {
	if Global.ConfigPath != "" {
		return Global.ConfigPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".airborne", "auth.json"), nil
}

// LoadAuthConfig reads the saved login.
func LoadAuthConfig() (*AuthConfig, error) {
	path, err := AuthConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg AuthConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling auth config: %w", err)
	}
	return &cfg, nil
}

// SaveAuthConfig writes the login readable only by the current user.
func SaveAuthConfig(cfg AuthConfig) error {
	path, err := AuthConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling auth config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing auth config file: %w", err)
	}
	return nil
}

// RemoveAuthConfig deletes the saved login. A missing file is not an error.
func RemoveAuthConfig() error {
	path, err := AuthConfigPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing auth config file: %w", err)
	}
	return nil
}

// ApplyAuthConfig fills unset globals from the saved login.
func ApplyAuthConfig(cfg *AuthConfig) {
	if cfg == nil {
		return
	}
	if Global.APIBaseURL == "" {
		Global.APIBaseURL = cfg.BaseURL
	}
	if Global.AuthToken == "" {
		Global.AuthToken = cfg.Token
	}
	if Global.Organisation == "" {
		Global.Organisation = cfg.Organisation
	}
	if Global.Application == "" {
		Global.Application = cfg.Application
	}
}

// Environment variables read by ApplyEnv.
const (
	EnvAPIURL       = "AIRBORNE_API_URL"
	EnvToken        = "AIRBORNE_TOKEN"
	EnvOrganisation = "AIRBORNE_ORG"
	EnvApplication  = "AIRBORNE_APP"
)

// ApplyEnv overrides globals from AIRBORNE_* environment variables.
func ApplyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		Global.APIBaseURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		Global.AuthToken = v
	}
	if v := os.Getenv(EnvOrganisation); v != "" {
		Global.Organisation = v
	}
	if v := os.Getenv(EnvApplication); v != "" {
		Global.Application = v
	}
}
