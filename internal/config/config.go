package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ylchen07/confluence-request/internal/confluence"
)

// Config represents the full application configuration loaded from file/env.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Confluence ConfluenceConfig `mapstructure:"confluence"`
}

// ServerConfig holds logging options shared by the CLI and MCP server.
type ServerConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// ConfluenceConfig identifies the site and account used for requests.
type ConfluenceConfig struct {
	Domain     string `mapstructure:"domain"`
	Username   string `mapstructure:"username"`
	APIToken   string `mapstructure:"api_token"`
	UseKeyring bool   `mapstructure:"use_keyring"`
}

// Connection converts the configuration into a library connection.
func (c ConfluenceConfig) Connection() confluence.Connection {
	return confluence.Connection{
		Username: c.Username,
		APIToken: c.APIToken,
		Domain:   c.Domain,
	}
}

// Host returns the Atlassian Cloud host name for the configured domain.
func (c ConfluenceConfig) Host() string {
	return c.Domain + ".atlassian.net"
}

var envBindings = map[string]string{
	"confluence.domain":      "CONFLUENCE_DOMAIN_NAME",
	"confluence.username":    "CONFLUENCE_USERNAME",
	"confluence.api_token":   "CONFLUENCE_API_TOKEN",
	"confluence.use_keyring": "CONFLUENCE_USE_KEYRING",
	"server.log_level":       "CONFLUENCE_LOG_LEVEL",
}

var flagBindings = map[string]string{
	"confluence.domain":   "domain",
	"confluence.username": "username",
	"server.log_level":    "log-level",
}

// dotEnvFiles are loaded before the environment is read. Variables that are
// already set are not overridden.
var dotEnvFiles = []string{".env.local", ".env"}

// Load reads the configuration and validates that a domain and credentials
// are present.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	cfg, err := Read(path, flags)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read reads configuration from the provided directory or file, .env files,
// environment variables and any bound flags, in increasing precedence.
// Missing credentials are filled from .netrc and, when enabled, the keyring.
func Read(path string, flags *pflag.FlagSet) (*Config, error) {
	for _, f := range dotEnvFiles {
		_ = godotenv.Load(f) // missing files are fine
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if path != "" {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			v.AddConfigPath(path)
		} else {
			v.SetConfigFile(path)
		}
	} else {
		v.AddConfigPath(".")
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("config: bind env %s: %w", env, err)
		}
	}

	if flags != nil {
		for key, name := range flagBindings {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetDefault("server.log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.Confluence.Domain = normalizeDomain(cfg.Confluence.Domain)

	if err := cfg.applyNetrcDefaults(); err != nil {
		return nil, err
	}

	if err := cfg.applyKeyringDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalizeDomain accepts "example", "example.atlassian.net" or a full site
// URL and returns "example".
func normalizeDomain(domain string) string {
	d := strings.TrimSpace(domain)
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d, _, _ = strings.Cut(d, "/")
	return strings.TrimSuffix(d, ".atlassian.net")
}

func (c *Config) validate() error {
	if c.Confluence.Domain == "" {
		return fmt.Errorf("config: confluence.domain is required")
	}

	if c.Confluence.Username == "" || c.Confluence.APIToken == "" {
		return fmt.Errorf("config: confluence requires username and api_token")
	}

	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}

	return nil
}
