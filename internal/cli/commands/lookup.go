package commands

import (
	"fmt"

	"github.com/leapstack-labs/oxoff/internal/cli/output"
	"github.com/leapstack-labs/oxoff/pkg/catalog"
	"github.com/spf13/cobra"
)

// RuleInfo describes how a rule name, as written in a config, resolves.
type RuleInfo struct {
	Written   string `json:"written" yaml:"written"`
	Found     bool   `json:"found" yaml:"found"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Scope     string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Category  string `json:"category,omitempty" yaml:"category,omitempty"`
	Nursery   bool   `json:"nursery,omitempty" yaml:"nursery,omitempty"`
	TypeAware bool   `json:"type_aware,omitempty" yaml:"type_aware,omitempty"`
	// Alias is the ESLint core or typescript-eslint counterpart, when the
	// catalog has one.
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`
	// Related lists other catalog rules that share the implementation but
	// are configured separately, such as the vitest twin of a jest rule.
	Related []string `json:"related,omitempty" yaml:"related,omitempty"`
}

func (i RuleInfo) note() string {
	return ruleNote(catalog.Rule{Nursery: i.Nursery, TypeAware: i.TypeAware})
}

func describeRule(cat *catalog.Catalog, written string, opts catalog.Options) RuleInfo {
	info := RuleInfo{Written: written}
	name, ok := cat.Lookup(written, opts)
	if !ok {
		return info
	}
	rule, _ := cat.Rule(name)

	info.Found = true
	info.Name = rule.Name
	info.Scope = rule.Scope
	info.Category = rule.Category
	info.Nursery = rule.Nursery
	info.TypeAware = rule.TypeAware
	if alias, ok := catalog.AliasOf(name); ok && cat.Has(alias) {
		info.Alias = alias
	}
	for _, related := range catalog.Related(name) {
		if related != info.Alias && cat.Has(related) {
			info.Related = append(info.Related, related)
		}
	}
	return info
}

// NewLookupCommand creates the lookup command.
func NewLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <rule>...",
		Short: "Show the ESLint name oxlint uses for rule names",
		Long: `Resolve rule names the way oxlint reads them from a config file.

Names may be ESLint names (@typescript-eslint/no-explicit-any), oxlint
names (typescript/no-explicit-any) or bare names (no-explicit-any). Bare
names resolve to the first matching rule in catalog order.

The command fails when any name is not implemented by oxlint.`,
		Example: `  oxoff lookup eqeqeq typescript/no-explicit-any react/rules-of-hooks
  oxoff lookup no-floating-promises --type-aware -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args)
		},
	}
}

func runLookup(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	cat := cmdCtx.Resolver.Catalog()

	infos := make([]RuleInfo, 0, len(args))
	missing := 0
	for _, written := range args {
		info := describeRule(cat, written, cmdCtx.Options)
		if !info.Found {
			missing++
		}
		infos = append(infos, info)
	}

	var err error
	switch r.EffectiveMode() {
	case output.ModeJSON:
		err = r.JSON(infos)
	case output.ModeYAML:
		err = r.YAML(infos)
	case output.ModeMarkdown:
		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			name := info.Name
			if !info.Found {
				name = "not found"
			}
			rows = append(rows, []string{info.Written, name, info.Scope, info.Category})
		}
		r.Table([]string{"Rule", "ESLint name", "Scope", "Category"}, rows)
	default:
		for _, info := range infos {
			if !info.Found {
				r.StatusLine(info.Written, "failed", "not implemented by oxlint")
				continue
			}
			detail := fmt.Sprintf("%s (%s, %s)", info.Name, info.Scope, info.Category)
			r.StatusLine(info.Written, "success", detail)
		}
	}
	if err != nil {
		return err
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d rules are not implemented by oxlint", missing, len(infos))
	}
	return nil
}
