package catalog

import "strings"

// pluginAliases maps oxlint scope names to the ESLint plugin prefix where the
// two differ. ESLint core rules carry no prefix at all.
var pluginAliases = map[string]string{
	"eslint":     "",
	"typescript": "@typescript-eslint",
	"nextjs":     "@next/next",
	"react_perf": "react-perf",
	"jsx_a11y":   "jsx-a11y",
	"import-x":   "import",
}

// reactHookRules are exposed by oxlint under the react scope but live in
// eslint-plugin-react-hooks on the ESLint side.
var reactHookRules = map[string]struct{}{
	"rules-of-hooks":  {},
	"exhaustive-deps": {},
}

// PluginPrefix maps an oxlint plugin or scope name to its ESLint rule prefix.
func PluginPrefix(plugin string) string {
	if p, ok := pluginAliases[plugin]; ok {
		return p
	}
	return plugin
}

// Lookup canonicalizes a rule name as written in an oxlint config.
//
// A bare name matches the first rule in catalog order whose name equals it or
// ends with "/"+name. A prefixed name is split at its last slash, the prefix
// is mapped through the plugin alias table and the result must match exactly.
// Rules hidden by opts are reported as not found.
func (c *Catalog) Lookup(written string, opts Options) (string, bool) {
	r, ok := c.find(written)
	if !ok || !opts.Allows(r) {
		return "", false
	}
	return r.Name, true
}

func (c *Catalog) find(written string) (Rule, bool) {
	if written == "" {
		return Rule{}, false
	}

	if !strings.Contains(written, "/") {
		if i := c.firstSuffixMatch(written); i >= 0 {
			return c.rules[i], true
		}
		return Rule{}, false
	}

	// greedy: "@next/next/no-img-element" splits into "@next/next" and "no-img-element"
	i := strings.LastIndex(written, "/")
	prefix, name := PluginPrefix(written[:i]), written[i+1:]

	if prefix == "react" {
		if _, ok := reactHookRules[name]; ok {
			prefix = "react-hooks"
		}
	}

	expected := name
	if prefix != "" {
		expected = prefix + "/" + name
	}
	return c.Rule(expected)
}

// firstSuffixMatch returns the index of the first rule named name or ending
// in "/"+name, or -1.
func (c *Catalog) firstSuffixMatch(name string) int {
	suffix := "/" + name
	for i, r := range c.rules {
		if r.Name == name || strings.HasSuffix(r.Name, suffix) {
			return i
		}
	}
	return -1
}

// IsOwnedByPlugin reports whether the canonical rule belongs to the given
// oxlint plugin. The plugin name is mapped through the alias table first.
func (c *Catalog) IsOwnedByPlugin(canonical, plugin string) bool {
	prefix := PluginPrefix(plugin)
	if prefix == "" {
		return !strings.Contains(canonical, "/")
	}
	return strings.HasPrefix(canonical, prefix+"/")
}
