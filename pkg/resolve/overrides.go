package resolve

import (
	"slices"
	"strconv"

	"github.com/leapstack-labs/oxoff/pkg/source"
)

// Overrides turns each override block into its own file-scoped fragment.
//
// A block starts from an empty rule set. Category expansion runs only when
// the block declares its own plugins, and then uses the base categories.
//
// A block without file globs is skipped: ESLint would apply an unscoped
// fragment to every file. Fragment names keep the block's position in the
// document, so a skipped block leaves a gap in the numbering.
func (r *Resolver) Overrides(overrides []source.Override, baseCategories source.Categories, opts Options) []Fragment {
	out := make([]Fragment, 0, len(overrides))

	for i, o := range overrides {
		if len(o.Files) == 0 {
			r.logger.Warn("skipping oxlint override without files", "index", i)
			continue
		}

		rules := RuleSet{}
		if o.HasPlugins() && baseCategories != nil {
			rules = r.CategoryRules(o.Plugins, baseCategories, opts)
		}
		if o.Rules != nil {
			rules = r.ApplyRules(rules, o.Rules, opts)
		}

		out = append(out, Fragment{
			Name:  OverrideFragmentPrefix + strconv.Itoa(i),
			Files: slices.Clone(o.Files),
			Rules: rules,
		})
	}

	return out
}
