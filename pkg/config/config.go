// Package config contains the runtime configuration of the autobahn MCP
// server and the logic to load it from the environment.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults for operation against the public Autobahn API. No environment
// variables are required; every field can be overridden via AUTOBAHN_MCP_*.
const (
	// DefaultBaseURL is the public Autobahn traffic API.
	DefaultBaseURL = "https://verkehr.autobahn.de/o/autobahn"

	// DefaultRequestTimeout bounds each individual upstream call.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultRetryInterval is the fixed backoff before the single retry
	// on upstream timeout or 5xx.
	DefaultRetryInterval = 500 * time.Millisecond

	// DefaultCatalogTTL is how long the highway identifier catalog is
	// served from memory before a refresh is attempted.
	DefaultCatalogTTL = 5 * time.Minute
)

// envPrefix namespaces the environment variables read by Load
// (e.g. AUTOBAHN_MCP_BASE_URL).
const envPrefix = "AUTOBAHN_MCP"

// Config represents the configuration of the server.
type Config struct {
	// BaseURL is the upstream traffic API root, without a trailing slash.
	BaseURL string

	// RequestTimeout applies per upstream call, not per composed operation.
	RequestTimeout time.Duration

	// RetryInterval is the fixed delay before the single automatic retry.
	RetryInterval time.Duration

	// CatalogTTL is the maximum age of the cached identifier catalog.
	CatalogTTL time.Duration
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: DefaultRequestTimeout,
		RetryInterval:  DefaultRetryInterval,
		CatalogTTL:     DefaultCatalogTTL,
	}
}

// Load builds the configuration from defaults overridden by AUTOBAHN_MCP_*
// environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("retry_interval", DefaultRetryInterval)
	v.SetDefault("catalog_ttl", DefaultCatalogTTL)

	cfg := &Config{
		BaseURL:        strings.TrimRight(v.GetString("base_url"), "/"),
		RequestTimeout: v.GetDuration("request_timeout"),
		RetryInterval:  v.GetDuration("retry_interval"),
		CatalogTTL:     v.GetDuration("catalog_ttl"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects configurations that cannot possibly work.
func (c *Config) validate() error {
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base URL %q must use http or https", c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.RetryInterval < 0 {
		return fmt.Errorf("retry interval must not be negative, got %s", c.RetryInterval)
	}
	if c.CatalogTTL <= 0 {
		return fmt.Errorf("catalog TTL must be positive, got %s", c.CatalogTTL)
	}
	return nil
}
