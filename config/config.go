// Package config loads orinu configuration from orinu.yaml, .env and ORINU_* variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goddivor/Orinu-hub/utils/validator"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "ORINU"

// Config represents the complete orinu configuration
type Config struct {
	Kratos  KratosConfig  `mapstructure:"kratos"`
	Backend BackendConfig `mapstructure:"backend"`
	Auth    AuthConfig    `mapstructure:"auth"`
	OIDC    OIDCConfig    `mapstructure:"oidc"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// KratosConfig points at the Kratos public API.
type KratosConfig struct {
	PublicURL string `mapstructure:"public_url" json:"kratos.public_url" validate:"required,url"`
	// TokenizeTemplate is the Kratos session-to-JWT template used for proof tokens.
	// Kratos ignores an empty template and returns no token.
	TokenizeTemplate string `mapstructure:"tokenize_template" json:"kratos.tokenize_template" validate:"required"`
}

// BackendConfig points at the application backend receiving user syncs.
type BackendConfig struct {
	APIURL      string        `mapstructure:"api_url" json:"backend.api_url" validate:"required,url"`
	SyncTimeout time.Duration `mapstructure:"sync_timeout" json:"backend.sync_timeout" validate:"gt=0"`
}

// AuthConfig bounds provider calls and locates the persisted session.
type AuthConfig struct {
	ProviderTimeout  time.Duration `mapstructure:"provider_timeout" json:"auth.provider_timeout" validate:"gt=0"`
	FederatedTimeout time.Duration `mapstructure:"federated_timeout" json:"auth.federated_timeout" validate:"gt=0"`
	RefreshInterval  time.Duration `mapstructure:"refresh_interval" json:"auth.refresh_interval" validate:"gte=0"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl" json:"auth.cache_ttl" validate:"gt=0"`
	SessionFile      string        `mapstructure:"session_file" json:"auth.session_file" validate:"required"`
}

// OIDCConfig configures the federated popup. An empty ClientID disables it.
type OIDCConfig struct {
	Provider     string   `mapstructure:"provider" json:"oidc.provider" validate:"required"`
	IssuerURL    string   `mapstructure:"issuer_url" json:"oidc.issuer_url" validate:"required,url"`
	ClientID     string   `mapstructure:"client_id" json:"oidc.client_id"`
	ClientSecret string   `mapstructure:"client_secret" json:"-"`
	Scopes       []string `mapstructure:"scopes" json:"oidc.scopes"`
	ListenAddr   string   `mapstructure:"listen_addr" json:"oidc.listen_addr" validate:"required"`
}

// ServerConfig configures the local HTTP API.
type ServerConfig struct {
	Port      string  `mapstructure:"port" json:"server.port" validate:"required,numeric"`
	RateLimit float64 `mapstructure:"rate_limit" json:"server.rate_limit" validate:"gt=0"`
	RateBurst int     `mapstructure:"rate_burst" json:"server.rate_burst" validate:"gt=0"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"logging.level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" json:"logging.format" validate:"oneof=text json"`
}

// FederatedEnabled reports whether a federated client is configured.
func (c *Config) FederatedEnabled() bool {
	return c.OIDC.ClientID != ""
}

// Load reads configuration from file and environment variables.
// cfgFile overrides the orinu.yaml search path when set.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("orinu")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/orinu")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("backend.api_url", envPrefix+"_BACKEND_API_URL", "API_URL"); err != nil {
		return nil, fmt.Errorf("binding API_URL: %w", err)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if secret, err := readSecretFile(envPrefix + "_OIDC_CLIENT_SECRET_FILE"); err != nil {
		return nil, err
	} else if secret != "" {
		v.Set("oidc.client_secret", secret)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	return validator.New().Validate(c)
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("kratos.public_url", "http://localhost:4433")
	v.SetDefault("kratos.tokenize_template", "orinu_backend")

	v.SetDefault("backend.api_url", "http://localhost:5000")
	v.SetDefault("backend.sync_timeout", 10*time.Second)

	v.SetDefault("auth.provider_timeout", 15*time.Second)
	v.SetDefault("auth.federated_timeout", 3*time.Minute)
	v.SetDefault("auth.refresh_interval", time.Minute)
	v.SetDefault("auth.cache_ttl", 5*time.Minute)
	v.SetDefault("auth.session_file", defaultSessionFile())

	v.SetDefault("oidc.provider", "google")
	v.SetDefault("oidc.issuer_url", "https://accounts.google.com")
	v.SetDefault("oidc.client_id", "")
	v.SetDefault("oidc.client_secret", "")
	v.SetDefault("oidc.scopes", []string{"openid", "email", "profile"})
	v.SetDefault("oidc.listen_addr", "127.0.0.1:0")

	v.SetDefault("server.port", "8090")
	v.SetDefault("server.rate_limit", 1.0)
	v.SetDefault("server.rate_burst", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func defaultSessionFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "orinu", "session.json")
	}
	return filepath.Join(".orinu", "session.json")
}

// readSecretFile returns the trimmed content of the file named by the env var key.
func readSecretFile(key string) (string, error) {
	path := os.Getenv(key)
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return strings.TrimSpace(string(content)), nil
}
