// Package config loads the YAML configuration that describes which model
// providers a host registers and how remote sources are reached.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

// Config is the root configuration document.
type Config struct {
	// DefaultProvider names the registry key used when a lookup misses.
	// Empty keeps the process-wide JSON default.
	DefaultProvider string          `yaml:"default_provider" mapstructure:"default_provider"`
	FactorySuffixes []string        `yaml:"factory_suffixes" mapstructure:"factory_suffixes"`
	Providers       []ProviderEntry `yaml:"providers" mapstructure:"providers"`
	Log             LogConfig       `yaml:"log" mapstructure:"log"`
}

// LogConfig configures the logger handed to the registry.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// ProviderEntry describes one configured model provider.
type ProviderEntry struct {
	Type types.ProviderType `yaml:"type" mapstructure:"type"`
	// Name overrides the registry key. Empty uses the factory type name.
	Name string `yaml:"name" mapstructure:"name"`

	// Inline document or file path for json, xml and yaml entries.
	Data string `yaml:"data" mapstructure:"data"`
	File string `yaml:"file" mapstructure:"file"`

	// Remote source settings.
	URL               string                  `yaml:"url" mapstructure:"url"`
	Format            types.ProviderType      `yaml:"format" mapstructure:"format"`
	Headers           map[string]string       `yaml:"headers" mapstructure:"headers"`
	UserAgent         string                  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSeconds    int                     `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxRetries        int                     `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerMinute int                     `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	CacheTTLSeconds   int                     `yaml:"cache_ttl_seconds" mapstructure:"cache_ttl_seconds"`
	BearerToken       string                  `yaml:"bearer_token" mapstructure:"bearer_token"`
	ClientCredentials *ClientCredentialsEntry `yaml:"client_credentials" mapstructure:"client_credentials"`
}

// ClientCredentialsEntry holds OAuth2 client credentials for a remote source.
type ClientCredentialsEntry struct {
	ClientID     string   `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string   `yaml:"client_secret" mapstructure:"client_secret"`
	TokenURL     string   `yaml:"token_url" mapstructure:"token_url"`
	Scopes       []string `yaml:"scopes" mapstructure:"scopes"`
}

// Timeout returns the configured request timeout, zero when unset.
func (e ProviderEntry) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// CacheTTL returns the configured response cache lifetime, zero when unset.
func (e ProviderEntry) CacheTTL() time.Duration {
	return time.Duration(e.CacheTTLSeconds) * time.Second
}

// Defaults returns a configuration with no providers and info logging.
func Defaults() Config {
	return Config{
		Log: LogConfig{Level: "info"},
	}
}

// Load reads and parses a YAML configuration file.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration on top of Defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &cfg, nil
}

// Validate reports every problem in the configuration.
func (c *Config) Validate() error {
	var errs []error
	for i, entry := range c.Providers {
		if err := entry.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("providers[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks a single provider entry.
func (e ProviderEntry) Validate() error {
	var errs []error

	if !slices.Contains(types.KnownProviderTypes(), e.Type) {
		errs = append(errs, fmt.Errorf("unknown provider type %q", e.Type))
	}

	if e.Data != "" && e.File != "" {
		errs = append(errs, errors.New("data and file are mutually exclusive"))
	}

	if e.Type == types.ProviderTypeRemote {
		if e.URL == "" {
			errs = append(errs, errors.New("remote provider requires url"))
		}
		switch e.Format {
		case "", types.ProviderTypeJSON, types.ProviderTypeXML, types.ProviderTypeYAML:
		default:
			errs = append(errs, fmt.Errorf("unsupported remote format %q", e.Format))
		}
		if cc := e.ClientCredentials; cc != nil {
			if cc.ClientID == "" || cc.TokenURL == "" {
				errs = append(errs, errors.New("client_credentials requires client_id and token_url"))
			}
		}
	}

	if e.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("timeout_seconds must be non-negative, got %d", e.TimeoutSeconds))
	}
	if e.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("max_retries must be non-negative, got %d", e.MaxRetries))
	}
	if e.RequestsPerMinute < 0 {
		errs = append(errs, fmt.Errorf("requests_per_minute must be non-negative, got %d", e.RequestsPerMinute))
	}
	if e.CacheTTLSeconds < 0 {
		errs = append(errs, fmt.Errorf("cache_ttl_seconds must be non-negative, got %d", e.CacheTTLSeconds))
	}

	return errors.Join(errs...)
}
