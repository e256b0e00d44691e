package catalog

import "strings"

const typescriptPrefix = "@typescript-eslint/"

// TypeScriptExtendsESLint lists ESLint core rules that typescript-eslint
// reimplements under the same name. oxlint runs them as one rule, so turning
// one off in ESLint must turn off the other.
var TypeScriptExtendsESLint = []string{
	"class-methods-use-this",
	"default-param-last",
	"init-declarations",
	"max-params",
	"no-array-constructor",
	"no-dupe-class-members",
	"no-empty-function",
	"no-invalid-this",
	"no-loop-func",
	"no-loss-of-precision",
	"no-magic-numbers",
	"no-redeclare",
	"no-restricted-imports",
	"no-shadow",
	"no-unused-expressions",
	"no-unused-vars",
	"no-use-before-define",
	"no-useless-constructor",
}

// VitestCompatibleJestRules are jest rules that oxlint also serves under the
// vitest scope. Both variants are catalog rules of their own.
var VitestCompatibleJestRules = []string{
	"consistent-test-it",
	"expect-expect",
	"max-expects",
	"max-nested-describe",
	"no-alias-methods",
	"no-commented-out-tests",
	"no-conditional-expect",
	"no-disabled-tests",
	"no-duplicate-hooks",
	"no-focused-tests",
	"no-hooks",
	"no-identical-title",
	"no-interpolation-in-snapshots",
	"no-restricted-matchers",
	"no-test-prefixes",
	"no-test-return-statement",
	"prefer-comparison-matcher",
	"prefer-each",
	"prefer-equality-matcher",
	"prefer-expect-resolves",
	"prefer-hooks-in-order",
	"prefer-hooks-on-top",
	"prefer-lowercase-title",
	"prefer-mock-promise-shorthand",
	"prefer-strict-equal",
	"prefer-to-have-length",
	"prefer-todo",
	"require-top-level-describe",
	"valid-describe-callback",
	"valid-expect",
}

// UnicornExtendsESLint lists ESLint core rules that unicorn reimplements.
var UnicornExtendsESLint = []string{"no-negated-condition"}

var (
	tsExtends      = nameSet(TypeScriptExtendsESLint)
	vitestJest     = nameSet(VitestCompatibleJestRules)
	unicornExtends = nameSet(UnicornExtendsESLint)
)

func nameSet(names []string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, name := range names {
		m[name] = struct{}{}
	}
	return m
}

// AliasOf returns the counterpart of a canonical rule between ESLint core and
// typescript-eslint, in either direction. It does not consult a catalog.
func AliasOf(canonical string) (string, bool) {
	if base, ok := strings.CutPrefix(canonical, typescriptPrefix); ok {
		if _, ok := tsExtends[base]; ok {
			return base, true
		}
		return "", false
	}
	if strings.Contains(canonical, "/") {
		return "", false
	}
	if _, ok := tsExtends[canonical]; ok {
		return typescriptPrefix + canonical, true
	}
	return "", false
}

// Related returns the other rule names oxlint backs with the same
// implementation as canonical, AliasOf first. Only the AliasOf pair is
// linked during resolution; the rest are turned off independently.
func Related(canonical string) []string {
	var out []string
	if alias, ok := AliasOf(canonical); ok {
		out = append(out, alias)
	}

	prefix, base, scoped := strings.Cut(canonical, "/")
	if !scoped {
		base, prefix = canonical, ""
	}
	if _, ok := vitestJest[base]; ok {
		switch prefix {
		case "jest":
			out = append(out, "vitest/"+base)
		case "vitest":
			out = append(out, "jest/"+base)
		}
	}
	if _, ok := unicornExtends[base]; ok {
		switch prefix {
		case "":
			out = append(out, "unicorn/"+base)
		case "unicorn":
			out = append(out, base)
		}
	}
	return out
}
