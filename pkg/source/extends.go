package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrExtendsCycle is returned when config files extend each other in a loop.
var ErrExtendsCycle = errors.New("oxlint config extends itself")

// CycleError names the files that form an extends cycle.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrExtendsCycle, strings.Join(e.Chain, " -> "))
}

// Unwrap lets errors.Is match ErrExtendsCycle.
func (e *CycleError) Unwrap() error {
	return ErrExtendsCycle
}

// ResolveChain loads every ancestor of cfg, which was read from path.
//
// The chain is depth first: each ancestor is followed by its own ancestors
// before the next sibling. Relative extends entries resolve against the
// directory of the file that lists them. Entries that are not existing files
// are skipped. A file that is reached again while it is still being resolved
// yields a *CycleError; the same file reached through two separate branches
// is allowed.
func (l *Loader) ResolveChain(cfg *Config, path string) ([]*Config, error) {
	root := canonicalPath(path)
	return l.walk(cfg, root, []string{root})
}

func (l *Loader) walk(cfg *Config, file string, stack []string) ([]*Config, error) {
	var chain []*Config
	dir := filepath.Dir(file)

	for _, entry := range cfg.Extends {
		target := entry
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		if !isFile(target) {
			l.logger.Debug("skipping extends entry", "entry", entry, "from", file)
			continue
		}
		target = canonicalPath(target)

		if slices.Contains(stack, target) {
			return nil, &CycleError{Chain: append(slices.Clone(stack), target)}
		}

		ancestor := l.Load(target)
		if ancestor == nil {
			continue
		}
		chain = append(chain, ancestor)

		nested, err := l.walk(ancestor, target, append(slices.Clone(stack), target))
		if err != nil {
			return nil, err
		}
		chain = append(chain, nested...)
	}

	return chain, nil
}

// MergeAncestors folds an ancestor chain into local and returns the result as
// a new Config; neither input is modified.
//
// Plugins of every ancestor (or defaultPlugins when an ancestor declares
// none) are placed ahead of the local ones and deduplicated. Rule maps are
// layered so nearer documents win per key. Ancestor overrides come before
// local overrides. Categories and ignore patterns are never inherited.
func MergeAncestors(ancestors []*Config, local *Config, defaultPlugins []string) *Config {
	out := local.Clone()
	out.Extends = nil

	plugins := cloneStrings(local.Plugins)
	rules := local.Rules.Clone()
	overrides := cloneOverrides(local.Overrides)

	for _, a := range ancestors {
		inherited := a.Plugins
		if inherited == nil {
			inherited = defaultPlugins
		}
		plugins = append(cloneStrings(inherited), plugins...)
		rules = a.Rules.Merge(rules)
		overrides = append(cloneOverrides(a.Overrides), overrides...)
	}

	if len(plugins) > 0 {
		out.Plugins = dedupe(plugins)
	}
	if rules.Len() > 0 {
		out.Rules = rules
	}
	if len(overrides) > 0 {
		out.Overrides = overrides
	}
	return out
}

func cloneOverrides(in []Override) []Override {
	out := make([]Override, 0, len(in))
	for _, o := range in {
		out = append(out, o.clone())
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
