package resolve

import "slices"

// SplitIncompatible moves the rules that oxlint cannot check in .vue and
// .svelte files out of base into a second fragment that ignores those files.
// If base holds none of them it is returned alone and unchanged.
func (r *Resolver) SplitIncompatible(base Fragment) []Fragment {
	removed := r.incompatibleIn(base.Rules)
	if len(removed) == 0 {
		return []Fragment{base}
	}

	kept := base.Clone()
	for name := range removed {
		delete(kept.Rules, name)
	}

	return []Fragment{kept, {
		Name:    ExceptionsFragmentName,
		Ignores: slices.Clone(r.settings.IncompatibleIgnores),
		Rules:   removed,
	}}
}

// SplitIncompatibleDeep applies SplitIncompatible to every named fragment.
func (r *Resolver) SplitIncompatibleDeep(named map[string]Fragment) map[string][]Fragment {
	out := make(map[string][]Fragment, len(named))
	for name, f := range named {
		out[name] = r.SplitIncompatible(f)
	}
	return out
}

// LegacyIncompatible is the eslintrc variant of SplitIncompatible: the moved
// rules go into an override that matches every file except .vue and .svelte.
func (r *Resolver) LegacyIncompatible(rules RuleSet) LegacyConfig {
	removed := r.incompatibleIn(rules)
	if len(removed) == 0 {
		return LegacyConfig{Rules: rules.Clone()}
	}

	kept := rules.Clone()
	for name := range removed {
		delete(kept, name)
	}

	return LegacyConfig{
		Rules: kept,
		Overrides: []LegacyOverride{{
			Files:         []string{"*.*"},
			ExcludedFiles: slices.Clone(r.settings.IncompatibleExcludedFiles),
			Rules:         removed,
		}},
	}
}

func (r *Resolver) incompatibleIn(rules RuleSet) RuleSet {
	found := RuleSet{}
	for _, name := range r.settings.IncompatibleRules {
		if rules.Has(name) {
			found[name] = Off
		}
	}
	return found
}
