package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/oxoff/internal/cli/config"
	"github.com/leapstack-labs/oxoff/internal/cli/output"
	"github.com/leapstack-labs/oxoff/pkg/source"
	"github.com/spf13/cobra"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [oxlintrc]",
		Short: "Show an oxlint config with its extends chain folded in",
		Long: `Print the oxlint config that build actually resolves: the file with every
extends ancestor merged in. Unlike build, a file that cannot be read or
parsed is an error here.`,
		Example: `  oxoff inspect
  oxoff inspect packages/web/.oxlintrc.json -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultOxlintrc
			if len(args) > 0 {
				path = args[0]
			}
			return runInspect(cmd, path)
		},
	}
}

func runInspect(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	cfg, err := cmdCtx.Resolver.LoadFile(path)
	if err != nil {
		return err
	}
	chain := cmdCtx.Resolver.Sources(path)[1:]

	switch r.Mode() {
	case output.ModeYAML:
		return r.YAML(cfg)
	case output.ModeText, output.ModeMarkdown:
		inspectSummary(r, path, chain, cfg)
		return nil
	default:
		return r.JSON(cfg)
	}
}

func inspectSummary(r *output.Renderer, path string, chain []string, cfg *source.Config) {
	markdown := r.EffectiveMode() == output.ModeMarkdown
	styles := r.Styles()
	kv := func(key, value string) {
		if markdown {
			r.Println(output.FormatKeyValue(key, value))
			return
		}
		r.Printf("  %s: %s\n", styles.Bold.Render(key), value)
	}
	orNone := func(items []string) string {
		if len(items) == 0 {
			return "(none)"
		}
		return strings.Join(items, ", ")
	}

	r.Header(1, path)
	kv("Extends", orNone(chain))
	if cfg.HasPlugins() {
		kv("Plugins", orNone(cfg.Plugins))
	} else {
		kv("Plugins", "(defaults)")
	}
	if cfg.Categories != nil {
		kv("Categories", orNone(categoryPairs(cfg.Categories)))
	} else {
		kv("Categories", "(defaults)")
	}
	kv("Overrides", fmt.Sprintf("%d", len(cfg.Overrides)))
	kv("Ignore patterns", orNone(cfg.IgnorePatterns))
	r.Println("")

	if cfg.Rules.Len() == 0 {
		return
	}
	rows := make([][]string, 0, cfg.Rules.Len())
	for _, name := range cfg.Rules.Keys() {
		raw, _ := cfg.Rules.Get(name)
		severity := "invalid"
		if s, ok := source.ParseSeverity(raw); ok {
			severity = s.String()
		}
		rows = append(rows, []string{name, severity})
	}
	r.Header(2, fmt.Sprintf("Rules (%d)", len(rows)))
	r.Table([]string{"Rule", "Severity"}, rows)
}

func categoryPairs(c source.Categories) []string {
	out := make([]string, 0, len(c))
	for name, v := range c {
		s, ok := source.ParseSeverity(v)
		value := fmt.Sprint(v)
		if ok {
			value = s.String()
		}
		out = append(out, name+"="+value)
	}
	sort.Strings(out)
	return out
}
