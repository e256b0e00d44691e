package resolve

import (
	"slices"

	"github.com/leapstack-labs/oxoff/pkg/source"
)

// Fragment names emitted by Build.
const (
	BaseFragmentName       = "oxlint/from-oxlint-config"
	OverrideFragmentPrefix = "oxlint/from-oxlint-config-override-"
	ExceptionsFragmentName = "oxlint/vue-svelte-exceptions"
)

// Settings holds the fixed inputs of a resolution that do not come from the
// config document itself.
type Settings struct {
	// DefaultPlugins apply when a document has no "plugins" key.
	DefaultPlugins []string
	// DefaultCategories apply when a document has no "categories" key.
	DefaultCategories source.Categories
	// IncompatibleRules misbehave on .vue and .svelte files because oxlint
	// only sees their script blocks.
	IncompatibleRules []string
	// IncompatibleIgnores are the flat config globs for those files.
	IncompatibleIgnores []string
	// IncompatibleExcludedFiles are the eslintrc globs for those files.
	IncompatibleExcludedFiles []string
}

// DefaultSettings returns the settings oxlint itself uses.
func DefaultSettings() Settings {
	return Settings{
		DefaultPlugins:            []string{"react", "unicorn", "typescript"},
		DefaultCategories:         source.Categories{"correctness": "warn"},
		IncompatibleRules:         []string{"no-unused-vars", "@typescript-eslint/no-unused-vars", "react-hooks/rules-of-hooks"},
		IncompatibleIgnores:       []string{"**/*.vue", "**/*.svelte"},
		IncompatibleExcludedFiles: []string{"*.vue", "*.svelte"},
	}
}

// withDefaults fills empty fields from DefaultSettings.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.DefaultPlugins == nil {
		s.DefaultPlugins = d.DefaultPlugins
	}
	if s.DefaultCategories == nil {
		s.DefaultCategories = d.DefaultCategories
	}
	if s.IncompatibleRules == nil {
		s.IncompatibleRules = d.IncompatibleRules
	}
	if s.IncompatibleIgnores == nil {
		s.IncompatibleIgnores = d.IncompatibleIgnores
	}
	if s.IncompatibleExcludedFiles == nil {
		s.IncompatibleExcludedFiles = d.IncompatibleExcludedFiles
	}
	s.DefaultPlugins = slices.Clone(s.DefaultPlugins)
	s.IncompatibleRules = slices.Clone(s.IncompatibleRules)
	return s
}
