// Package source reads oxlint configuration documents.
//
// Documents are JSON with comments and trailing commas allowed. Fields with an
// unexpected type are treated as absent rather than rejected, matching how
// oxlint itself tolerates partially valid configs.
package source

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/jsonc"
)

// Document-level errors.
var (
	ErrNotFound  = errors.New("could not find oxlint config file")
	ErrParse     = errors.New("could not parse oxlint config file")
	ErrNotObject = errors.New("oxlint config is not an object")
)

// Config is a parsed oxlint configuration document.
//
// A nil Plugins slice means the document has no "plugins" key; an empty,
// non-nil slice means it declares no plugins. The same holds for Categories
// and Rules.
type Config struct {
	Path           string     `json:"-" yaml:"-"`
	Extends        []string   `json:"extends,omitempty" yaml:"extends,omitempty"`
	Plugins        []string   `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	Categories     Categories `json:"categories,omitempty" yaml:"categories,omitempty"`
	Rules          *RuleMap   `json:"rules,omitempty" yaml:"rules,omitempty"`
	Overrides      []Override `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	IgnorePatterns []string   `json:"ignorePatterns,omitempty" yaml:"ignorePatterns,omitempty"`
}

// Override is a file-scoped block inside a Config.
type Override struct {
	Files   []string `json:"files" yaml:"files"`
	Plugins []string `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	Rules   *RuleMap `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// HasPlugins reports whether the document declared a "plugins" key.
func (c *Config) HasPlugins() bool { return c.Plugins != nil }

// HasPlugins reports whether the override declared a "plugins" key.
func (o Override) HasPlugins() bool { return o.Plugins != nil }

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	out := &Config{
		Path:           c.Path,
		Extends:        cloneStrings(c.Extends),
		Plugins:        cloneStrings(c.Plugins),
		IgnorePatterns: cloneStrings(c.IgnorePatterns),
	}
	if c.Categories != nil {
		out.Categories = make(Categories, len(c.Categories))
		for k, v := range c.Categories {
			out.Categories[k] = v
		}
	}
	if c.Rules != nil {
		out.Rules = c.Rules.Clone()
	}
	if c.Overrides != nil {
		out.Overrides = make([]Override, len(c.Overrides))
		for i, o := range c.Overrides {
			out.Overrides[i] = o.clone()
		}
	}
	return out
}

func (o Override) clone() Override {
	out := Override{
		Files:   cloneStrings(o.Files),
		Plugins: cloneStrings(o.Plugins),
	}
	if o.Rules != nil {
		out.Rules = o.Rules.Clone()
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Parse decodes a JSONC document.
func Parse(data []byte) (*Config, error) {
	stripped := jsonc.ToJSON(data)
	if !json.Valid(stripped) {
		return nil, ErrParse
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(stripped, &top); err != nil || top == nil {
		return nil, ErrNotObject
	}

	cfg := &Config{}
	if raw, ok := top["extends"]; ok {
		cfg.Extends, _ = decodeStrings(raw)
	}
	if raw, ok := top["plugins"]; ok {
		cfg.Plugins, _ = decodeStrings(raw)
	}
	if raw, ok := top["categories"]; ok {
		var cats map[string]any
		if err := json.Unmarshal(raw, &cats); err == nil && cats != nil {
			cfg.Categories = Categories(cats)
		}
	}
	if raw, ok := top["rules"]; ok {
		cfg.Rules = decodeRules(raw)
	}
	if raw, ok := top["overrides"]; ok {
		cfg.Overrides = decodeOverrides(raw)
	}
	if raw, ok := top["ignorePatterns"]; ok {
		cfg.IgnorePatterns, _ = decodeStrings(raw)
	}

	return cfg, nil
}

// decodeStrings reads a JSON array, keeping only string elements. It returns
// nil when raw is not an array.
func decodeStrings(raw json.RawMessage) ([]string, bool) {
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

func decodeRules(raw json.RawMessage) *RuleMap {
	rules := NewRuleMap()
	if err := rules.UnmarshalJSON(raw); err != nil {
		return nil
	}
	return rules
}

func decodeOverrides(raw json.RawMessage) []Override {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil
	}

	out := make([]Override, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		var o Override
		if raw, ok := fields["files"]; ok {
			o.Files, _ = decodeStrings(raw)
		}
		if raw, ok := fields["plugins"]; ok {
			o.Plugins, _ = decodeStrings(raw)
		}
		if raw, ok := fields["rules"]; ok {
			o.Rules = decodeRules(raw)
		}
		out = append(out, o)
	}
	return out
}
