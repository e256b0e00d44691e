// Package config provides configuration management for the oxoff CLI.
//
// Settings are layered from built-in defaults, an optional oxoff.yaml file,
// OXOFF_ environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"time"

	"github.com/leapstack-labs/oxoff/pkg/resolve"
	"github.com/leapstack-labs/oxoff/pkg/source"
)

// Config holds all CLI configuration options.
type Config struct {
	Output   string `koanf:"output"`
	LogLevel string `koanf:"log_level"`
	Verbose  bool   `koanf:"verbose"`

	WithNursery bool `koanf:"with_nursery"`
	TypeAware   bool `koanf:"type_aware"`

	// DefaultPlugins replace oxlint's defaults for documents without "plugins".
	DefaultPlugins []string `koanf:"default_plugins"`
	// DefaultCategories replace oxlint's defaults for documents without "categories".
	DefaultCategories map[string]string `koanf:"default_categories"`

	Server ServerConfig `koanf:"server"`
	Watch  WatchConfig  `koanf:"watch"`
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Port int `koanf:"port"`
}

// WatchConfig holds configuration for watch mode.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel    = "warn"
	DefaultPort        = 8790
	DefaultDebounce    = 100 * time.Millisecond
	DefaultOxlintrc    = ".oxlintrc.json"
	DefaultConfigName  = "oxoff.yaml"
	DefaultHiddenName  = ".oxoff.yaml"
	environmentPrefix  = "OXOFF_"
	nestedKeySeparator = "__"
)

// ResolveOptions returns the nursery and type-aware gates.
func (c *Config) ResolveOptions() resolve.Options {
	return resolve.Options{WithNursery: c.WithNursery, TypeAware: c.TypeAware}
}

// ResolveSettings returns resolver settings with the configured defaults
// applied. Unset fields keep oxlint's own defaults.
func (c *Config) ResolveSettings() resolve.Settings {
	settings := resolve.DefaultSettings()
	if len(c.DefaultPlugins) > 0 {
		settings.DefaultPlugins = c.DefaultPlugins
	}
	if len(c.DefaultCategories) > 0 {
		settings.DefaultCategories = source.CategoriesFromStrings(c.DefaultCategories)
	}
	return settings
}
