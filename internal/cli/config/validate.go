package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

var validOutputs = []string{"auto", "text", "markdown", "json", "yaml"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(validOutputs, c.Output) {
		return fmt.Errorf("invalid output %q (expected one of %s)", c.Output, strings.Join(validOutputs, ", "))
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative: %s", c.Watch.Debounce)
	}
	return nil
}

// Level returns the slog level for the configured log level. Verbose forces debug.
func (c *Config) Level() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
