package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/oxoff/internal/cli/output"
	"github.com/leapstack-labs/oxoff/pkg/catalog"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Category string // Filter by category
	Scope    string // Filter by scope, e.g. eslint, typescript, react
	Format   string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule]",
		Short: "List the rules oxlint implements",
		Long: `List every rule in the oxlint rule catalog, grouped by category.

Nursery and type-aware rules are hidden unless --with-nursery or
--type-aware is given. Pass a rule name, in ESLint or oxlint spelling, to
see a single rule.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable format`,
		Example: `  # List all rules
  oxoff rules

  # Show one rule
  oxoff rules typescript/no-explicit-any

  # List the pedantic rules of the eslint scope
  oxoff rules --category pedantic --scope eslint

  # Output as JSON
  oxoff rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Filter by category")
	cmd.Flags().StringVarP(&opts.Scope, "scope", "s", "", "Filter by scope")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

var titleCase = cases.Title(language.English)

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Version string         `json:"version" yaml:"version"`
	Count   int            `json:"count" yaml:"count"`
	Rules   []catalog.Rule `json:"rules" yaml:"rules"`
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r, err := cmdCtx.RendererFor(cmd, opts.Format)
	if err != nil {
		return err
	}

	cat := cmdCtx.Resolver.Catalog()
	rules := cat.Filter(func(rule catalog.Rule) bool {
		if opts.Category != "" && rule.Category != opts.Category {
			return false
		}
		if opts.Scope != "" && rule.Scope != opts.Scope {
			return false
		}
		return cmdCtx.Options.Allows(rule)
	})

	// Group by category, keeping catalog order inside a category
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Category < rules[j].Category
	})

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(RulesJSONOutput{Version: cat.Version(), Count: len(rules), Rules: rules})
	case output.ModeYAML:
		return r.YAML(RulesJSONOutput{Version: cat.Version(), Count: len(rules), Rules: rules})
	case output.ModeMarkdown:
		listRulesMarkdown(r, rules)
		return nil
	default:
		listRulesText(r, rules)
		return nil
	}
}

// listRulesText outputs rules in styled text format.
func listRulesText(r *output.Renderer, rules []catalog.Rule) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("oxlint Rules (%d)", len(rules))))
	r.Println("")

	currentCategory := ""
	for _, rule := range rules {
		if rule.Category != currentCategory {
			if currentCategory != "" {
				r.Println("")
			}
			currentCategory = rule.Category
			r.Println(styles.Header2.Render(titleCase.String(currentCategory)))
		}

		line := fmt.Sprintf("  %s  %s", rule.Name, styles.Muted.Render(rule.Scope))
		if note := ruleNote(rule); note != "" {
			line += "  " + styles.Warning.Render(note)
		}
		r.Println(line)
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'oxoff rules <rule>' for a single rule"))
	r.Println("")
}

// listRulesMarkdown outputs one table per category.
func listRulesMarkdown(r *output.Renderer, rules []catalog.Rule) {
	r.Println("# oxlint Rules")
	r.Println("")

	var rows [][]string
	currentCategory := ""
	flush := func() {
		if len(rows) == 0 {
			return
		}
		r.Println("## " + titleCase.String(currentCategory))
		r.Println("")
		r.Table([]string{"Rule", "Scope", "Notes"}, rows)
		rows = nil
	}

	for _, rule := range rules {
		if rule.Category != currentCategory {
			flush()
			currentCategory = rule.Category
		}
		rows = append(rows, []string{rule.Name, rule.Scope, ruleNote(rule)})
	}
	flush()
}

func showRule(cmd *cobra.Command, written string, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r, err := cmdCtx.RendererFor(cmd, opts.Format)
	if err != nil {
		return err
	}

	info := describeRule(cmdCtx.Resolver.Catalog(), written, cmdCtx.Options)
	if !info.Found {
		return fmt.Errorf("rule %q is not implemented by oxlint", written)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeYAML:
		return r.YAML(info)
	case output.ModeMarkdown:
		r.Printf("# %s\n\n", info.Name)
		r.Println(output.FormatKeyValue("Scope", info.Scope))
		r.Println(output.FormatKeyValue("Category", info.Category))
		if note := info.note(); note != "" {
			r.Println(output.FormatKeyValue("Notes", note))
		}
		if info.Alias != "" {
			r.Println(output.FormatKeyValue("Counterpart", "`"+info.Alias+"`"))
		}
		if len(info.Related) > 0 {
			r.Println(output.FormatKeyValue("Related", "`"+strings.Join(info.Related, "`, `")+"`"))
		}
		r.Println("")
		return nil
	default:
		styles := r.Styles()
		r.Println("")
		r.Println(styles.Header1.Render(info.Name))
		r.Println("")
		r.Printf("  %s: %s\n", styles.Bold.Render("Scope"), info.Scope)
		r.Printf("  %s: %s\n", styles.Bold.Render("Category"), info.Category)
		if note := info.note(); note != "" {
			r.Printf("  %s: %s\n", styles.Bold.Render("Notes"), styles.Warning.Render(note))
		}
		if info.Alias != "" {
			r.Printf("  %s: %s\n", styles.Bold.Render("Counterpart"), info.Alias)
		}
		if len(info.Related) > 0 {
			r.Printf("  %s: %s\n", styles.Bold.Render("Related"), strings.Join(info.Related, ", "))
		}
		r.Println("")
		return nil
	}
}

func ruleNote(rule catalog.Rule) string {
	switch {
	case rule.Nursery && rule.TypeAware:
		return "nursery, type-aware"
	case rule.Nursery:
		return "nursery"
	case rule.TypeAware:
		return "type-aware"
	}
	return ""
}
