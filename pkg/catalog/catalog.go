// Package catalog provides the static table of rules known to oxlint.
//
// The table is produced offline by a generator that scrapes the oxlint rule
// declarations and is shipped as a versioned YAML data file. A Catalog is
// immutable once loaded and is safe for concurrent use.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/rules.yaml
var defaultData []byte

// Errors returned when decoding catalog data.
var (
	ErrDuplicateRule = errors.New("duplicate rule in catalog")
	ErrInvalidRule   = errors.New("invalid rule in catalog")
)

// Rule describes one rule known to oxlint.
type Rule struct {
	// Name is the canonical ESLint-facing identifier, e.g. "@typescript-eslint/no-explicit-any".
	Name string `yaml:"name" json:"name"`
	// Scope is the oxlint scope that owns the rule, e.g. "typescript".
	Scope     string `yaml:"scope" json:"scope"`
	Category  string `yaml:"category" json:"category"`
	Nursery   bool   `yaml:"nursery,omitempty" json:"nursery,omitempty"`
	TypeAware bool   `yaml:"type_aware,omitempty" json:"type_aware,omitempty"`
}

// Prefix returns the plugin prefix of the canonical name, or "" for ESLint core rules.
func (r Rule) Prefix() string {
	if i := strings.LastIndex(r.Name, "/"); i >= 0 {
		return r.Name[:i]
	}
	return ""
}

// Options gate which rules are visible to lookups and expansions.
type Options struct {
	WithNursery bool `json:"with_nursery,omitempty" yaml:"with_nursery,omitempty"`
	TypeAware   bool `json:"type_aware,omitempty" yaml:"type_aware,omitempty"`
}

// Allows reports whether the rule passes the nursery and type-aware gates.
func (o Options) Allows(r Rule) bool {
	if r.Nursery && !o.WithNursery {
		return false
	}
	if r.TypeAware && !o.TypeAware {
		return false
	}
	return true
}

// document is the on-disk layout of the catalog data file.
type document struct {
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Catalog is an indexed, read-only rule table.
type Catalog struct {
	version    string
	rules      []Rule
	byName     map[string]int
	byCategory map[string][]string
}

// Load decodes catalog data. Rule order in the data is preserved and decides
// which rule wins when a bare rule name matches several plugins.
func Load(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c := &Catalog{
		version:    doc.Version,
		rules:      make([]Rule, 0, len(doc.Rules)),
		byName:     make(map[string]int, len(doc.Rules)),
		byCategory: make(map[string][]string),
	}

	for i, r := range doc.Rules {
		if r.Name == "" || r.Scope == "" || r.Category == "" {
			return nil, fmt.Errorf("%w: entry %d needs name, scope and category", ErrInvalidRule, i)
		}
		if _, ok := c.byName[r.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, r.Name)
		}
		c.byName[r.Name] = len(c.rules)
		c.rules = append(c.rules, r)
		c.byCategory[r.Category] = append(c.byCategory[r.Category], r.Name)
	}

	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(defaultData)
		if err != nil {
			// embedded data is checked by tests
			panic(fmt.Sprintf("catalog: embedded data is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Version returns the oxlint version the catalog was generated from.
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of rules.
func (c *Catalog) Len() int {
	return len(c.rules)
}

// Rule returns the rule with the given canonical name.
func (c *Catalog) Rule(name string) (Rule, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Rule{}, false
	}
	return c.rules[i], true
}

// Has reports whether a canonical name exists, regardless of gating.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// All returns every rule in catalog order.
func (c *Catalog) All() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// RulesInCategory returns the canonical names in a category, in catalog order.
func (c *Catalog) RulesInCategory(category string) []string {
	names := c.byCategory[category]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Categories returns the sorted category names present in the catalog.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.byCategory))
	for cat := range c.byCategory {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// Scopes returns the sorted oxlint scopes present in the catalog.
func (c *Catalog) Scopes() []string {
	seen := make(map[string]struct{})
	for _, r := range c.rules {
		seen[r.Scope] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Prefixes returns the sorted plugin prefixes used by canonical names.
// ESLint core rules are reported as "eslint".
func (c *Catalog) Prefixes() []string {
	seen := make(map[string]struct{})
	for _, r := range c.rules {
		p := r.Prefix()
		if p == "" {
			p = "eslint"
		}
		seen[p] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Filter returns the rules matching pred, in catalog order.
func (c *Catalog) Filter(pred func(Rule) bool) []Rule {
	var out []Rule
	for _, r := range c.rules {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
