package source

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// ReadFile reads and parses the config document at path.
// The returned error wraps ErrNotFound, ErrParse or ErrNotObject.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided config
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		if errors.Is(err, ErrParse) {
			return nil, fmt.Errorf("%w: %s", err, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Loader loads config documents and reports document-level failures as log
// diagnostics instead of errors.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a Loader. A nil logger discards diagnostics.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{logger: logger}
}

// Load reads path, returning nil if it cannot be read or parsed.
func (l *Loader) Load(path string) *Config {
	cfg, err := ReadFile(path)
	if err != nil {
		l.report(path, err)
		return nil
	}
	return cfg
}

func (l *Loader) report(path string, err error) {
	msg := ErrParse.Error()
	if errors.Is(err, ErrNotFound) {
		msg = ErrNotFound.Error()
	}
	l.logger.Error(msg, "path", path, "error", err)
}
