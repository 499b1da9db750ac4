// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Default search settings.
const (
	DefaultDebounce        = 300 * time.Millisecond
	DefaultCacheCapacity   = 50
	DefaultRecentCapacity  = 5
	DefaultSuggestionLimit = 8
)

// Weights holds the per-field multipliers of the relevance scorer.
type Weights struct {
	Title       int `json:"title" yaml:"title"`
	Description int `json:"description" yaml:"description"`
	Category    int `json:"category" yaml:"category"`
	Keywords    int `json:"keywords" yaml:"keywords"`
}

// DefaultWeights returns the standard tiering: title matches dominate,
// description and category tie, keywords are a low-priority catch-all.
func DefaultWeights() Weights {
	return Weights{Title: 3, Description: 2, Category: 2, Keywords: 1}
}

// IsZero reports whether no weight is set.
func (w Weights) IsZero() bool {
	return w == Weights{}
}

// SearchConfig holds settings for the search engine.
type SearchConfig struct {
	// Debounce is the quiet interval before a keystroke commits a query (default 300ms).
	Debounce time.Duration `json:"debounce" yaml:"debounce"`

	// CacheCapacity bounds the FIFO result cache (default 50).
	CacheCapacity int `json:"cache_capacity" yaml:"cache_capacity"`

	// RecentCapacity bounds the recent-query list (default 5).
	RecentCapacity int `json:"recent_capacity" yaml:"recent_capacity"`

	// SuggestionLimit bounds the suggestion list (default 8).
	SuggestionLimit int `json:"suggestion_limit" yaml:"suggestion_limit"`

	// Weights are the scorer's field multipliers (default 3/2/2/1).
	Weights Weights `json:"weights" yaml:"weights"`
}

// WithDefaults returns a copy of c with zero or negative values replaced by
// the defaults.
func (c SearchConfig) WithDefaults() SearchConfig {
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	if c.CacheCapacity <= 0 {
		c.CacheCapacity = DefaultCacheCapacity
	}
	if c.RecentCapacity <= 0 {
		c.RecentCapacity = DefaultRecentCapacity
	}
	if c.SuggestionLimit <= 0 {
		c.SuggestionLimit = DefaultSuggestionLimit
	}
	if c.Weights.IsZero() {
		c.Weights = DefaultWeights()
	}
	return c
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default warn).
	Level string `json:"level" yaml:"level"`

	// Format is text or json (default text).
	Format string `json:"format" yaml:"format"`
}

// Config groups all sitesearch settings.
type Config struct {
	// Catalog is a path to a YAML or SQLite collection. Empty uses the
	// compiled-in collection.
	Catalog string       `json:"catalog" yaml:"catalog"`
	Color   string       `json:"color" yaml:"color"`
	Log     LogConfig    `json:"log" yaml:"log"`
	Search  SearchConfig `json:"search" yaml:"search"`
}
