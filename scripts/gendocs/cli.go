package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/oxoff/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envVars documents the OXOFF_ variables the config loader reads.
var envVars = [][]string{
	{"OXOFF_OUTPUT", "Default output format"},
	{"OXOFF_LOG_LEVEL", "Log level"},
	{"OXOFF_WITH_NURSERY", "Include nursery rules"},
	{"OXOFF_TYPE_AWARE", "Include type-aware rules"},
	{"OXOFF_DEFAULT_PLUGINS", "Comma-separated plugins for configs without `plugins`"},
	{"OXOFF_DEFAULT_CATEGORIES", "`category=severity` pairs for configs without `categories`"},
	{"OXOFF_SERVER__PORT", "Port for `oxoff serve`"},
	{"OXOFF_WATCH__DEBOUNCE", "Debounce for watch mode, e.g. `250ms`"},
}

// generateCLIDocs writes an index page plus one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	commands := documented(root)

	if err := writePage(outDir, "index.md", cliIndex(root, commands)); err != nil {
		return err
	}
	for _, cmd := range commands {
		if err := writePage(outDir, cmd.Name()+".md", commandPage(cmd)); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
	}
	return nil
}

func documented(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.IsAvailableCommand() {
			out = append(out, cmd)
		}
	}
	return out
}

func writePage(outDir, name string, w *MarkdownWriter) error {
	if err := os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0o600); err != nil {
		return err
	}
	log.Printf("  Generated %s", name)
	return nil
}

func cliIndex(root *cobra.Command, commands []*cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for oxoff")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(root.Long)
	w.CodeBlock("bash", "go install github.com/leapstack-labs/oxoff/cmd/oxoff@latest")

	rows := make([][]string, 0, len(commands))
	for _, cmd := range commands {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Header(2, "Commands")
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Table(flagHeaders, flagRows(root.PersistentFlags()))

	env := make([][]string, 0, len(envVars))
	for _, v := range envVars {
		env = append(env, []string{InlineCode(v[0]), v[1]})
	}
	w.Header(2, "Environment Variables")
	w.Paragraph("Flags take precedence over environment variables, which take precedence over `oxoff.yaml`.")
	w.Table([]string{"Variable", "Description"}, env)

	return w
}

func commandPage(cmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}
	w.CodeBlock("bash", cmd.UseLine())

	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.Paragraph("Aliases: " + strings.Join(aliases, ", "))
	}
	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Options")
		w.Table(flagHeaders, flagRows(cmd.LocalFlags()))
	}
	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}
	return w
}

var flagHeaders = []string{"Option", "Short", "Default", "Description"}

func flagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = InlineCode("-" + f.Shorthand)
		}
		def := f.DefValue
		if def != "" && f.Value.Type() != "bool" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, cleanDescription(f.Usage)})
	})
	return rows
}

// dedent strips the indentation shared by every non-blank line.
func dedent(text string) string {
	lines := strings.Split(text, "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
