// Package resolve computes which ESLint rules to turn off for an oxlint config.
//
// Each stage takes its inputs by value and returns a new RuleSet, so stages can
// be tested and reused independently:
//
//	CategoryRules -> ApplyRules -> base fragment -> SplitIncompatible -> Overrides
package resolve

import (
	"log/slog"

	"github.com/leapstack-labs/oxoff/pkg/catalog"
)

// Options gate nursery and type-aware rules on every entry point.
type Options = catalog.Options

// Resolver resolves oxlint configs against a rule catalog.
// It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	catalog  *catalog.Catalog
	settings Settings
	logger   *slog.Logger
}

// New creates a Resolver. Zero-valued settings fields fall back to
// DefaultSettings and a nil logger discards diagnostics.
func New(cat *catalog.Catalog, settings Settings, logger *slog.Logger) *Resolver {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		catalog:  cat,
		settings: settings.withDefaults(),
		logger:   logger,
	}
}

// Catalog returns the catalog the resolver looks rules up in.
func (r *Resolver) Catalog() *catalog.Catalog {
	return r.catalog
}

// Settings returns a copy of the resolver settings.
func (r *Resolver) Settings() Settings {
	return r.settings.withDefaults()
}
