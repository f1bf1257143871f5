// Package config provides file-backed configuration for the dispatcher and
// engine defaults.
package config

import (
	"fmt"
)

// Config holds the tunable engine and dispatcher settings.
// Zero values fall back to the defaults from Default().
type Config struct {
	// MaxTransitions bounds a single traversal. A well-formed decision
	// graph terminates in far fewer steps; exceeding the bound is an
	// engine fault.
	MaxTransitions int `yaml:"max_transitions" json:"max_transitions"`

	// DefaultContentType is used when a resource provides no content
	// types and no negotiation took place.
	DefaultContentType string `yaml:"default_content_type" json:"default_content_type"`

	// DefaultCharset is the charset parameter emitted when the resource
	// does not constrain charsets.
	DefaultCharset string `yaml:"default_charset" json:"default_charset"`

	// ValidatorCache selects the validator cache backing: "" disables it,
	// "memory" keeps validators in process, any other value is treated as
	// a SQLite database path.
	ValidatorCache string `yaml:"validator_cache" json:"validator_cache"`

	// Metrics enables OpenTelemetry metrics for traversals.
	Metrics bool `yaml:"metrics" json:"metrics"`

	// Tracing enables OpenTelemetry spans for traversals and decisions.
	Tracing bool `yaml:"tracing" json:"tracing"`
}

// Default returns the configuration used when nothing is supplied.
func Default() Config {
	return Config{
		MaxTransitions:     100,
		DefaultContentType: "application/json",
		DefaultCharset:     "ISO-8859-1",
	}
}

// Normalize fills zero values with defaults and validates the rest.
func (c Config) Normalize() (Config, error) {
	def := Default()
	if c.MaxTransitions == 0 {
		c.MaxTransitions = def.MaxTransitions
	}
	if c.MaxTransitions < 0 {
		return c, fmt.Errorf("max_transitions must be positive, got %d", c.MaxTransitions)
	}
	if c.DefaultContentType == "" {
		c.DefaultContentType = def.DefaultContentType
	}
	if c.DefaultCharset == "" {
		c.DefaultCharset = def.DefaultCharset
	}
	return c, nil
}
