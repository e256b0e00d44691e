package resolve

import (
	"slices"

	"github.com/leapstack-labs/oxoff/pkg/source"
)

// Build resolves an in-memory config into the ordered fragment list: the base
// fragment, the .vue/.svelte exception fragment when needed, then one fragment
// per override block. Extends entries are not followed; use BuildFile or
// LoadFile for that.
func (r *Resolver) Build(cfg *source.Config, opts Options) []Fragment {
	rules, categories := r.baseRules(cfg, opts)

	base := Fragment{
		Name:  BaseFragmentName,
		Rules: rules,
	}
	if cfg.IgnorePatterns != nil {
		base.Ignores = slices.Clone(cfg.IgnorePatterns)
	}

	out := r.SplitIncompatible(base)
	return append(out, r.Overrides(cfg.Overrides, categories, opts)...)
}

// BuildLegacy is the eslintrc variant of Build. Override blocks become
// eslintrc overrides after the .vue/.svelte exception override.
func (r *Resolver) BuildLegacy(cfg *source.Config, opts Options) LegacyConfig {
	rules, categories := r.baseRules(cfg, opts)

	out := r.LegacyIncompatible(rules)
	out.IgnorePatterns = slices.Clone(cfg.IgnorePatterns)
	for _, f := range r.Overrides(cfg.Overrides, categories, opts) {
		out.Overrides = append(out.Overrides, LegacyOverride{Files: f.Files, Rules: f.Rules})
	}
	return out
}

// baseRules runs category expansion and the explicit rules map, returning
// the rule set and the effective categories.
func (r *Resolver) baseRules(cfg *source.Config, opts Options) (RuleSet, source.Categories) {
	plugins := cfg.Plugins
	if plugins == nil {
		plugins = r.settings.DefaultPlugins
	}
	categories := cfg.Categories
	if categories == nil {
		categories = r.settings.DefaultCategories
	}

	rules := r.CategoryRules(plugins, categories, opts)
	if cfg.Rules != nil {
		rules = r.ApplyRules(rules, cfg.Rules, opts)
	}
	return rules, categories
}

// BuildFile loads path, folds in its extends chain and builds it.
//
// A document that cannot be read or parsed is logged and yields no
// fragments, so ESLint keeps all of its own rules. The only error returned
// is an extends cycle.
func (r *Resolver) BuildFile(path string, opts Options) ([]Fragment, error) {
	loader := source.NewLoader(r.logger)
	cfg := loader.Load(path)
	if cfg == nil {
		return []Fragment{}, nil
	}

	merged, err := r.flatten(loader, cfg, path)
	if err != nil {
		return nil, err
	}
	return r.Build(merged, opts), nil
}

// BuildLegacyFile is the eslintrc variant of BuildFile. A document that
// cannot be loaded yields an empty config.
func (r *Resolver) BuildLegacyFile(path string, opts Options) (LegacyConfig, error) {
	loader := source.NewLoader(r.logger)
	cfg := loader.Load(path)
	if cfg == nil {
		return LegacyConfig{}, nil
	}

	merged, err := r.flatten(loader, cfg, path)
	if err != nil {
		return LegacyConfig{}, err
	}
	return r.BuildLegacy(merged, opts), nil
}

// LoadFile reads path and folds in its extends chain, returning document
// errors to the caller instead of logging them.
func (r *Resolver) LoadFile(path string) (*source.Config, error) {
	cfg, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return r.flatten(source.NewLoader(r.logger), cfg, path)
}

// Sources returns path followed by every file in its extends chain. A
// document that cannot be read, or whose chain has a cycle, contributes
// only path.
func (r *Resolver) Sources(path string) []string {
	out := []string{path}
	cfg, err := source.ReadFile(path)
	if err != nil || len(cfg.Extends) == 0 {
		return out
	}
	chain, err := source.NewLoader(nil).ResolveChain(cfg, path)
	if err != nil {
		return out
	}
	for _, a := range chain {
		out = append(out, a.Path)
	}
	return out
}

// flatten merges the extends chain of cfg into it.
func (r *Resolver) flatten(loader *source.Loader, cfg *source.Config, path string) (*source.Config, error) {
	if len(cfg.Extends) == 0 {
		return cfg, nil
	}

	chain, err := loader.ResolveChain(cfg, path)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("resolved extends chain", "path", path, "ancestors", len(chain))

	return source.MergeAncestors(chain, cfg, r.settings.DefaultPlugins), nil
}
