// Package config holds the process-wide configuration for the linear CLI.
//
// All file paths, endpoint URLs, and storage identifiers live on a single
// Config struct built once at startup and passed by reference into the
// vault and API client. Tests substitute temporary paths instead of
// touching the process environment.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the canonical application name, used for config paths
	// and the platform secret store service name.
	AppName = "linear-cli"

	// DefaultAPIEndpoint is the Linear GraphQL API endpoint.
	DefaultAPIEndpoint = "https://api.linear.app/graphql"

	// DefaultAuthEndpoint is the Linear OAuth token endpoint used for
	// password-grant logins.
	DefaultAuthEndpoint = "https://api.linear.app/oauth/token"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second
)

// Config carries every path and identifier the CLI reads or writes.
type Config struct {
	// ConfigDir is the directory holding the encrypted credentials file,
	// the default-project record, and the optional config.yaml.
	ConfigDir string

	// CredentialsFile stores the encrypted session token.
	CredentialsFile string

	// APIKeyFile is the dedicated plaintext API key file in the user's
	// home directory. When present it wins over every other credential.
	APIKeyFile string

	// ProjectFile stores the default-project record.
	ProjectFile string

	// KeyringService and KeyringUser identify the platform secret store
	// entry for the session token.
	KeyringService string
	KeyringUser    string

	// APIEndpoint and AuthEndpoint are the remote service URLs.
	APIEndpoint  string
	AuthEndpoint string

	// Timeout applies to every remote call unless overridden per command.
	Timeout time.Duration
}

// Default builds a Config rooted at the current user's home directory.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the working directory; every consumer treats
		// unreadable paths as "not present".
		home = "."
	}
	configDir := filepath.Join(home, ".config", AppName)
	return &Config{
		ConfigDir:       configDir,
		CredentialsFile: filepath.Join(configDir, "credentials.json"),
		APIKeyFile:      filepath.Join(home, "."+AppName+"-auth"),
		ProjectFile:     filepath.Join(configDir, "project.json"),
		KeyringService:  AppName,
		KeyringUser:     "linear-user",
		APIEndpoint:     DefaultAPIEndpoint,
		AuthEndpoint:    DefaultAuthEndpoint,
		Timeout:         DefaultTimeout,
	}
}

// Load builds the default Config and applies overrides from the optional
// config.yaml in the config directory. A missing or unreadable file leaves
// the defaults untouched.
//
// Recognized keys:
//
//	api_endpoint: https://api.linear.app/graphql
//	auth_endpoint: https://api.linear.app/oauth/token
//	timeout: 30s
func Load() *Config {
	cfg := Default()
	cfg.applyFileOverrides(filepath.Join(cfg.ConfigDir, "config.yaml"))
	return cfg
}

func (c *Config) applyFileOverrides(path string) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return
	}
	if endpoint := v.GetString("api_endpoint"); endpoint != "" {
		c.APIEndpoint = endpoint
	}
	if endpoint := v.GetString("auth_endpoint"); endpoint != "" {
		c.AuthEndpoint = endpoint
	}
	if timeout := v.GetDuration("timeout"); timeout > 0 {
		c.Timeout = timeout
	}
}

// EnsureConfigDir creates the config directory if it does not exist.
func (c *Config) EnsureConfigDir() error {
	return os.MkdirAll(c.ConfigDir, 0o755)
}
