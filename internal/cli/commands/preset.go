package commands

import (
	"fmt"

	"github.com/leapstack-labs/oxoff/internal/cli/output"
	"github.com/spf13/cobra"
)

// PresetsJSONOutput is the JSON output structure for the preset listing.
type PresetsJSONOutput struct {
	Presets []string `json:"presets" yaml:"presets"`
}

// NewPresetCommand creates the preset command.
func NewPresetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preset [name]",
		Short: "List presets or print one",
		Long: `Presets turn off a fixed group of rules without reading an oxlint config:
flat/recommended (correctness), flat/all, one per category (flat/pedantic)
and one per plugin (flat/typescript). Nursery and type-aware rules are
never part of a preset.

Without a name the available presets are listed.`,
		Example: `  oxoff preset
  oxoff preset flat/recommended
  oxoff preset flat/typescript -o yaml`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return NewCommandContext(cmd).Resolver.PresetNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listPresets(cmd)
			}
			return showPreset(cmd, args[0])
		},
	}
}

func listPresets(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	names := cmdCtx.Resolver.PresetNames()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(PresetsJSONOutput{Presets: names})
	case output.ModeYAML:
		return r.YAML(PresetsJSONOutput{Presets: names})
	case output.ModeMarkdown:
		r.Println("# Presets")
		r.Println("")
		for _, name := range names {
			r.Printf("- `%s`\n", name)
		}
		r.Println("")
	default:
		styles := r.Styles()
		r.Println(styles.Header1.Render(fmt.Sprintf("Presets (%d)", len(names))))
		r.Println("")
		for _, name := range names {
			r.Println("  " + name)
		}
		r.Println("")
		r.Println(styles.Muted.Render("Use 'oxoff preset <name>' to print one"))
	}
	return nil
}

func showPreset(cmd *cobra.Command, name string) error {
	cmdCtx := NewCommandContext(cmd)

	fragment, ok := cmdCtx.Resolver.Preset(name)
	if !ok {
		return fmt.Errorf("unknown preset %q (run 'oxoff preset' to list presets)", name)
	}
	fragments := cmdCtx.Resolver.SplitIncompatible(fragment)

	return writeResolved(cmdCtx.Renderer, "Preset "+name, fragments, fragmentRows(name, fragments))
}
