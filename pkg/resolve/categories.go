package resolve

import (
	"slices"

	"github.com/leapstack-labs/oxoff/pkg/source"
)

const nurseryCategory = "nursery"

// CategoryRules returns every rule that belongs to an enabled category and to
// one of the effective plugins.
//
// The effective plugins are plugins plus "eslint", plus "react-hooks" when
// "react" is present. Categories set to "off" contribute nothing.
func (r *Resolver) CategoryRules(plugins []string, categories source.Categories, opts Options) RuleSet {
	out := RuleSet{}
	effective := EffectivePlugins(plugins)

	for _, category := range categories.Enabled() {
		if category == nurseryCategory && !opts.WithNursery {
			continue
		}
		for _, name := range r.catalog.RulesInCategory(category) {
			rule, _ := r.catalog.Rule(name)
			if !opts.Allows(rule) {
				continue
			}
			if r.ownedByAny(name, effective) {
				out[name] = Off
			}
		}
	}

	return out
}

// EffectivePlugins returns plugins with the implicit ones appended.
func EffectivePlugins(plugins []string) []string {
	out := slices.Clone(plugins)
	if !slices.Contains(out, "eslint") {
		out = append(out, "eslint")
	}
	if slices.Contains(out, "react") && !slices.Contains(out, "react-hooks") {
		out = append(out, "react-hooks")
	}
	return out
}

func (r *Resolver) ownedByAny(name string, plugins []string) bool {
	for _, p := range plugins {
		if r.catalog.IsOwnedByPlugin(name, p) {
			return true
		}
	}
	return false
}
