package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// subjectCode matches the registrar's subject codes.
var subjectCode = regexp.MustCompile(`^[A-Z]{2,5}$`)

// termCode matches the compact term encoding, year plus semester digit.
var termCode = regexp.MustCompile(`^\d{5}$`)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if cfg.BaseURL == "" {
		return errors.New("base_url: a registrar base URL is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url: %q is not an absolute URL", cfg.BaseURL)
	}

	if cfg.Term == "" {
		return errors.New("term: a term code is required")
	}
	if !termCode.MatchString(cfg.Term) {
		return fmt.Errorf("term: %q is not a five-digit term code", cfg.Term)
	}

	for i, subj := range cfg.Subjects {
		if !subjectCode.MatchString(subj) {
			return fmt.Errorf("subjects[%d]: %q is not a subject code (2-5 uppercase letters)", i, subj)
		}
	}

	if err := validateFetch(&cfg.Fetch); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	// Calendar settings are optional, but validate if present
	if cfg.Calendar.WeekStart != "" {
		day, err := time.Parse("2006-01-02", cfg.Calendar.WeekStart)
		if err != nil {
			return fmt.Errorf("calendar.week_start: %q is not a YYYY-MM-DD date", cfg.Calendar.WeekStart)
		}
		if day.Weekday() != time.Monday {
			return fmt.Errorf("calendar.week_start: %s is a %s, must be a Monday", cfg.Calendar.WeekStart, day.Weekday())
		}
	}

	return nil
}

func validateFetch(fc *FetchConfig) error {
	if fc.Delay < 0 {
		return errors.New("delay must not be negative")
	}
	if fc.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if fc.Retries < 0 {
		return errors.New("retries must not be negative")
	}
	if fc.Concurrency < 1 {
		return errors.New("concurrency must be at least 1")
	}
	return nil
}

// WeekStart resolves the calendar anchor: the configured Monday, or the
// Monday of the current week when unset.
func (c *Config) WeekStart(now time.Time) time.Time {
	if c.Calendar.WeekStart != "" {
		day, err := time.Parse("2006-01-02", c.Calendar.WeekStart)
		if err == nil {
			return day
		}
	}
	offset := (int(now.Weekday()) + 6) % 7
	day := now.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}
