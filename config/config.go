// Package config loads per-provider client policy from a TOML file.
//
// The file holds one [provider.NAME] table per connector:
//
//	[provider.airtable]
//	rate_limit = 5.0
//
//	[provider.xero]
//	base_url = "https://api.xero.com/api.xro/2.0"
//
//	[provider.xero.retry]
//	base_delay_ms = 500
//	max_delay_ms = 60000
//	max_attempts = 10
//
// Credentials are never part of the file; they come from the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/porticolabs/connectors"
)

// DefaultPath is the config file location relative to the user home dir.
const DefaultPath = ".connectors/config.toml"

// Retry is the TOML shape of a retry policy. Zero fields fall back to the
// library default.
type Retry struct {
	// Transient lists the HTTP statuses treated as retryable. Empty
	// means the default set.
	Transient []int `toml:"transient,omitempty"`

	BaseDelayMS int     `toml:"base_delay_ms,omitempty"`
	MaxDelayMS  int     `toml:"max_delay_ms,omitempty"`
	Multiplier  float64 `toml:"multiplier,omitempty"`

	// MaxAttempts caps attempts; zero keeps retrying until the context
	// is cancelled.
	MaxAttempts int `toml:"max_attempts,omitempty"`
}

// Provider is the policy for one connector.
type Provider struct {
	// BaseURL overrides the provider's API root (regional or self-hosted
	// endpoints).
	BaseURL string `toml:"base_url,omitempty"`

	// RateLimit throttles outgoing requests, in requests per second.
	// Zero means no client-side throttle.
	RateLimit float64 `toml:"rate_limit,omitempty"`

	// Headers are added to every request.
	Headers map[string]string `toml:"headers,omitempty"`

	Retry *Retry `toml:"retry,omitempty"`
}

// Config is the full file.
type Config struct {
	Providers map[string]Provider `toml:"provider"`
}

// Load reads and parses a config file. A missing file is not an error and
// yields an empty config.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, DefaultPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Providers: map[string]Provider{}}, nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes TOML config bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Providers == nil {
		cfg.Providers = map[string]Provider{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	for name, p := range c.Providers {
		if p.RateLimit < 0 {
			return fmt.Errorf("config: provider %q: rate_limit must not be negative", name)
		}
		if p.Retry == nil {
			continue
		}
		if p.Retry.Multiplier != 0 && p.Retry.Multiplier < 1 {
			return fmt.Errorf("config: provider %q: retry multiplier must be >= 1", name)
		}
		if p.Retry.BaseDelayMS < 0 || p.Retry.MaxDelayMS < 0 || p.Retry.MaxAttempts < 0 {
			return fmt.Errorf("config: provider %q: retry fields must not be negative", name)
		}
		for _, s := range p.Retry.Transient {
			if s < 100 || s > 599 {
				return fmt.Errorf("config: provider %q: invalid transient status %d", name, s)
			}
		}
	}
	return nil
}

// Options translates the policy for one provider into client options.
// Unknown providers yield no options.
func (c *Config) Options(provider string) []connectors.Option {
	p, ok := c.Providers[provider]
	if !ok {
		return nil
	}

	var opts []connectors.Option
	if p.BaseURL != "" {
		opts = append(opts, connectors.WithBaseURL(p.BaseURL))
	}
	if p.RateLimit > 0 {
		opts = append(opts, connectors.WithRateLimit(p.RateLimit))
	}
	for k, v := range p.Headers {
		opts = append(opts, connectors.WithHeader(k, v))
	}
	if p.Retry != nil {
		opts = append(opts, connectors.WithRetryPolicy(p.Retry.Policy()))
	}
	return opts
}

// Policy materializes the TOML retry shape over the library default.
func (r *Retry) Policy() connectors.RetryPolicy {
	policy := connectors.DefaultRetryPolicy()
	if len(r.Transient) > 0 {
		policy.Transient = append([]int(nil), r.Transient...)
	}
	if r.BaseDelayMS > 0 {
		policy.BaseDelay = time.Duration(r.BaseDelayMS) * time.Millisecond
	}
	if r.MaxDelayMS > 0 {
		policy.MaxDelay = time.Duration(r.MaxDelayMS) * time.Millisecond
	}
	if r.Multiplier > 0 {
		policy.Multiplier = r.Multiplier
	}
	if r.MaxAttempts > 0 {
		policy.MaxAttempts = r.MaxAttempts
	}
	return policy
}
