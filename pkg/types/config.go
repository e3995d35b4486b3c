// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// HarvestConfig holds settings for one OAI-PMH harvest run.
type HarvestConfig struct {
	HTTPConfig `yaml:",inline"`

	// Category is the arXiv set to harvest (e.g. "cs", "stat.ML"). Required.
	Category string `json:"category" yaml:"category"`

	// From and Until bound the harvest date range (YYYY-MM-DD, inclusive).
	// Both default to yesterday when empty.
	From  string `json:"from" yaml:"from"`
	Until string `json:"until" yaml:"until"`

	// RetryDelay is how long to wait before retrying a rate-limited (503)
	// request (default 30s).
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay"`

	// Budget bounds the total harvest wall-clock time (default 5m). It is
	// checked between pages only; a budget hit yields a partial result.
	Budget time.Duration `json:"budget" yaml:"budget"`

	// PageDelay is the minimum spacing between consecutive page requests
	// (politeness toward the export endpoint). Zero disables it.
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`

	// Filters maps record field names to keyword lists. A record is kept when
	// any keyword occurs (case-insensitively) in the named field. An empty map
	// keeps everything.
	Filters map[string][]string `json:"filters" yaml:"filters"`
}

// ApplyDefaults fills zero-valued fields with their documented defaults.
// The date defaults are resolved here, once, relative to now.
func (c *HarvestConfig) ApplyDefaults(now time.Time) {
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	if c.From == "" {
		c.From = yesterday
	}
	if c.Until == "" {
		c.Until = yesterday
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = 30 * time.Second
	}
	if c.Budget == 0 {
		c.Budget = 5 * time.Minute
	}
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "arxiv-digest/0.1"
	}
}

// RenderConfig holds settings for the HTML rendering stage.
type RenderConfig struct {
	// ListID is the id attribute of the container div.
	ListID string `json:"list_id" yaml:"list_id"`
}

// StoreConfig holds settings for the record archive.
type StoreConfig struct {
	// DigestDir is the base directory for the archive (contains index/).
	DigestDir string `json:"digest_dir" yaml:"digest_dir"`

	// MaxResults is the default maximum number of listed records (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
