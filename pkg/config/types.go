// Package config provides configuration loading and validation for Lectern.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// BaseURL is the registrar site root the listing and detail URLs
	// hang off.
	BaseURL string `yaml:"base_url"`

	// Term is the registrar's compact term code (year + semester digit).
	Term string `yaml:"term"`

	// Subjects limits the scrape to specific subject codes. Empty means
	// discover the full subject index.
	Subjects []string `yaml:"subjects,omitempty"`

	Fetch    FetchConfig    `yaml:"fetch"`
	Calendar CalendarConfig `yaml:"calendar"`
}

// FetchConfig tunes the HTTP politeness policy.
type FetchConfig struct {
	// Delay is the backoff base before the first retry.
	Delay time.Duration `yaml:"delay"`

	// Timeout is the per-request limit.
	Timeout time.Duration `yaml:"timeout"`

	// Retries is how many times a failed request is retried.
	Retries int `yaml:"retries"`

	// Concurrency caps parallel detail-page fetches during linking.
	Concurrency int `yaml:"concurrency"`

	UserAgent string `yaml:"user_agent,omitempty"`
}

// CalendarConfig tunes iCalendar output.
type CalendarConfig struct {
	// WeekStart is the Monday (YYYY-MM-DD) the recurring events start
	// in. Empty defaults to the Monday of the current week.
	WeekStart string `yaml:"week_start,omitempty"`
}
