package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultBaseURL     = "https://doc.sis.columbia.edu"
	DefaultDelay       = 2 * time.Second
	DefaultTimeout     = 30 * time.Second
	DefaultRetries     = 3
	DefaultConcurrency = 2
)

// Environment variable names.
const (
	EnvBaseURL = "LECTERN_BASE_URL"
	EnvTerm    = "LECTERN_TERM"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Fetch: FetchConfig{
			Delay:       DefaultDelay,
			Timeout:     DefaultTimeout,
			Retries:     DefaultRetries,
			Concurrency: DefaultConcurrency,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if base := os.Getenv(EnvBaseURL); base != "" {
		c.BaseURL = base
	}
	if term := os.Getenv(EnvTerm); term != "" {
		c.Term = term
	}
}
