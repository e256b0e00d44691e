package resolve

import (
	"github.com/leapstack-labs/oxoff/pkg/catalog"
	"github.com/leapstack-labs/oxoff/pkg/source"
)

// ApplyRules layers an explicit rules map over base and returns the result.
//
// Entries are applied in document order. An active severity turns the
// canonical rule off in ESLint, along with its ESLint core or typescript-eslint
// counterpart. An inactive severity removes a rule that an earlier stage
// added, together with its counterpart. Unknown rules and unrecognised
// severities are skipped without a diagnostic.
func (r *Resolver) ApplyRules(base RuleSet, rules *source.RuleMap, opts Options) RuleSet {
	out := base.Clone()

	for _, written := range rules.Keys() {
		value, _ := rules.Get(written)
		sev, ok := source.ParseSeverity(value)
		if !ok {
			continue
		}

		canonical, found := r.catalog.Lookup(written, opts)
		if !found {
			continue
		}
		alias, hasAlias := catalog.AliasOf(canonical)

		if sev.Active() {
			out[canonical] = Off
			if hasAlias && r.visible(alias, opts) {
				out[alias] = Off
			}
			continue
		}

		if out.Has(canonical) {
			delete(out, canonical)
			if hasAlias {
				delete(out, alias)
			}
		}
	}

	return out
}

// visible reports whether a canonical name exists and passes the gates.
func (r *Resolver) visible(name string, opts Options) bool {
	rule, ok := r.catalog.Rule(name)
	return ok && opts.Allows(rule)
}
