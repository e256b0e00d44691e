package resolve

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/oxoff/pkg/catalog"
)

const presetPrefix = "flat/"

// presetScopeNames maps canonical prefixes to the preset name used for them.
var presetScopeNames = map[string]string{
	"":                   "eslint",
	"@typescript-eslint": "typescript",
	"@next/next":         "nextjs",
}

// Preset returns a ready-made fragment that turns off a group of rules:
// "flat/recommended" (correctness rules), "flat/all", "flat/<category>" or
// "flat/<plugin>". The legacy names "recommended" and "all" are accepted too.
// Nursery and type-aware rules are never part of a preset.
func (r *Resolver) Preset(name string) (Fragment, bool) {
	suffix := strings.TrimPrefix(name, presetPrefix)

	var pred func(catalog.Rule) bool
	switch {
	case suffix == "recommended":
		pred = func(rule catalog.Rule) bool { return rule.Category == "correctness" }
	case suffix == "all":
		pred = func(catalog.Rule) bool { return true }
	case r.hasCategory(suffix):
		pred = func(rule catalog.Rule) bool { return rule.Category == suffix }
	case r.hasScopePreset(suffix):
		pred = func(rule catalog.Rule) bool { return presetScope(rule) == suffix }
	default:
		return Fragment{}, false
	}

	rules := RuleSet{}
	for _, rule := range r.catalog.Filter(pred) {
		if rule.Nursery || rule.TypeAware {
			continue
		}
		rules[rule.Name] = Off
	}

	return Fragment{Name: "oxlint/" + suffix, Rules: rules}, true
}

// PresetNames returns every preset name, sorted.
func (r *Resolver) PresetNames() []string {
	seen := map[string]struct{}{
		presetPrefix + "recommended": {},
		presetPrefix + "all":         {},
	}
	for _, c := range r.catalog.Categories() {
		if c == nurseryCategory {
			continue
		}
		seen[presetPrefix+c] = struct{}{}
	}
	for _, rule := range r.catalog.All() {
		seen[presetPrefix+presetScope(rule)] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Presets returns every preset, each split for .vue and .svelte files.
func (r *Resolver) Presets() map[string][]Fragment {
	named := make(map[string]Fragment)
	for _, name := range r.PresetNames() {
		if f, ok := r.Preset(name); ok {
			named[name] = f
		}
	}
	return r.SplitIncompatibleDeep(named)
}

func (r *Resolver) hasCategory(name string) bool {
	if name == nurseryCategory {
		return false
	}
	for _, c := range r.catalog.Categories() {
		if c == name {
			return true
		}
	}
	return false
}

func (r *Resolver) hasScopePreset(name string) bool {
	for _, rule := range r.catalog.All() {
		if presetScope(rule) == name {
			return true
		}
	}
	return false
}

func presetScope(rule catalog.Rule) string {
	prefix := rule.Prefix()
	if name, ok := presetScopeNames[prefix]; ok {
		return name
	}
	return prefix
}
