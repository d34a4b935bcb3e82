package config

// GlobalFlags contains common flags used across commands
type GlobalFlags struct {
	// Connection and authentication
	APIBaseURL string
	AuthToken  string
	ConfigPath string

	// Tenancy sent as x-organisation / x-application
	Organisation string
	Application  string

	// Output format, "table" or "json"
	Format string

	// Command-specific configurations
	Release ReleaseConfig
}

// ReleaseConfig holds defaults for release commands
type ReleaseConfig struct {
	// Dimensions filter list and serve calls, sent as x-dimension
	Dimensions map[string]string
}

// Global is the shared instance of GlobalFlags
var Global = GlobalFlags{}
