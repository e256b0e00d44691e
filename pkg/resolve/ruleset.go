package resolve

import (
	"slices"
	"sort"
)

// Off is the only value a RuleSet holds.
const Off = "off"

// RuleSet maps canonical ESLint rule names to "off".
type RuleSet map[string]string

// Has reports whether name is in the set.
func (s RuleSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the rule names, sorted.
func (s RuleSet) Names() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clone returns a copy of the set. Cloning nil yields an empty set.
func (s RuleSet) Clone() RuleSet {
	out := make(RuleSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Fragment is one ESLint flat config object.
type Fragment struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Files   []string `json:"files,omitempty" yaml:"files,omitempty"`
	Ignores []string `json:"ignores,omitempty" yaml:"ignores,omitempty"`
	Rules   RuleSet  `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Clone returns a deep copy of the fragment.
func (f Fragment) Clone() Fragment {
	out := Fragment{
		Name:    f.Name,
		Files:   slices.Clone(f.Files),
		Ignores: slices.Clone(f.Ignores),
	}
	if f.Rules != nil {
		out.Rules = f.Rules.Clone()
	}
	return out
}

// LegacyOverride is an eslintrc "overrides" entry.
type LegacyOverride struct {
	Files         []string `json:"files" yaml:"files"`
	ExcludedFiles []string `json:"excludedFiles,omitempty" yaml:"excludedFiles,omitempty"`
	Rules         RuleSet  `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// LegacyConfig is an eslintrc style config.
type LegacyConfig struct {
	IgnorePatterns []string         `json:"ignorePatterns,omitempty" yaml:"ignorePatterns,omitempty"`
	Rules          RuleSet          `json:"rules,omitempty" yaml:"rules,omitempty"`
	Overrides      []LegacyOverride `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}
