package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/leapstack-labs/oxoff/internal/cli/config"
	"github.com/leapstack-labs/oxoff/internal/cli/output"
	"github.com/leapstack-labs/oxoff/internal/watch"
	"github.com/leapstack-labs/oxoff/pkg/resolve"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// BuildOptions holds options for the build command.
type BuildOptions struct {
	Legacy   bool
	Write    string
	Watch    bool
	Debounce time.Duration
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	opts := &BuildOptions{}
	cmd := &cobra.Command{
		Use:     "build [oxlintrc...]",
		Aliases: []string{"resolve"},
		Short:   "Generate ESLint config that turns off rules oxlint already runs",
		Long: `Read one or more oxlint config files, fold in their extends chains and print
the ESLint flat config fragments that turn off every rule oxlint enforces.

Spread the fragments at the end of eslint.config.js so ESLint skips those rules.
With --legacy the result is a single eslintrc style config instead.

Output follows --output: auto and json print JSON, yaml prints YAML, text and
markdown print a summary table.`,
		Example: `  # Resolve ./.oxlintrc.json
  oxoff build

  # Write the fragments to a file and keep it in sync
  oxoff build .oxlintrc.json --write oxlint.eslint.json --watch

  # Resolve several packages at once
  oxoff build packages/*/.oxlintrc.json -o yaml

  # eslintrc output
  oxoff build --legacy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Legacy, "legacy", false, "Output an eslintrc config instead of flat config fragments")
	cmd.Flags().StringVarP(&opts.Write, "write", "w", "", "Write the result to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Rebuild when a config file or one of its extends changes")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", config.DefaultDebounce, "Quiet period before a watched change triggers a rebuild")

	return cmd
}

// buildResult is the resolution of one oxlint config file.
type buildResult struct {
	Path      string
	Fragments []resolve.Fragment
	Legacy    *resolve.LegacyConfig
}

func (b buildResult) value() any {
	if b.Legacy != nil {
		return b.Legacy
	}
	return b.Fragments
}

func (b buildResult) rows() [][]string {
	if b.Legacy != nil {
		return legacyRows(b.Path, *b.Legacy)
	}
	return fragmentRows(b.Path, b.Fragments)
}

type builder struct {
	cmdCtx *CommandContext
	cmd    *cobra.Command
	paths  []string
	opts   *BuildOptions
}

func runBuild(cmd *cobra.Command, args []string, opts *BuildOptions) error {
	cmdCtx := NewCommandContext(cmd)

	paths := args
	if len(paths) == 0 {
		paths = []string{config.DefaultOxlintrc}
	}

	b := &builder{cmdCtx: cmdCtx, cmd: cmd, paths: paths, opts: opts}
	if err := b.run(cmd.Context()); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}

	debounce := cmdCtx.Cfg.Watch.Debounce
	if cmd.Flags().Changed("debounce") {
		debounce = opts.Debounce
	}
	return b.watch(cmd.Context(), debounce)
}

// run resolves every path and writes the output once.
func (b *builder) run(ctx context.Context) error {
	results, err := b.resolveAll(ctx)
	if err != nil {
		return err
	}

	var v any
	if len(results) == 1 {
		v = results[0].value()
	} else {
		byPath := make(map[string]any, len(results))
		for _, res := range results {
			byPath[res.Path] = res.value()
		}
		v = byPath
	}

	var rows [][]string
	for _, res := range results {
		rows = append(rows, res.rows()...)
	}

	if b.opts.Write == "" {
		return writeResolved(b.cmdCtx.Renderer, "Resolved ESLint config", v, rows)
	}
	return b.writeFile(v)
}

// resolveAll resolves the paths concurrently, keeping argument order.
func (b *builder) resolveAll(ctx context.Context) ([]buildResult, error) {
	results := make([]buildResult, len(b.paths))
	eg, _ := errgroup.WithContext(ctx)

	for i, path := range b.paths {
		eg.Go(func() error {
			res, err := b.resolveOne(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (b *builder) resolveOne(path string) (buildResult, error) {
	resolver := b.cmdCtx.Resolver
	opts := b.cmdCtx.Options

	if b.opts.Legacy {
		legacy, err := resolver.BuildLegacyFile(path, opts)
		if err != nil {
			return buildResult{}, err
		}
		return buildResult{Path: path, Legacy: &legacy}, nil
	}

	fragments, err := resolver.BuildFile(path, opts)
	if err != nil {
		return buildResult{}, err
	}
	return buildResult{Path: path, Fragments: fragments}, nil
}

// writeFile writes v to the --write destination as YAML when the output
// mode asks for it and as JSON otherwise.
func (b *builder) writeFile(v any) error {
	var buf bytes.Buffer
	mode := output.ModeJSON
	if b.cmdCtx.Renderer.Mode() == output.ModeYAML {
		mode = output.ModeYAML
	}
	r := output.NewRenderer(&buf, b.cmd.ErrOrStderr(), mode)
	if err := r.Data(v); err != nil {
		return err
	}

	if err := os.WriteFile(b.opts.Write, buf.Bytes(), 0o644); err != nil { //nolint:gosec // generated config is meant to be readable
		return fmt.Errorf("failed to write %s: %w", b.opts.Write, err)
	}
	b.cmdCtx.Renderer.StatusLine(b.opts.Write, "success", fmt.Sprintf("%d config(s) resolved", len(b.paths)))
	return nil
}

// sources returns every file the build depends on.
func (b *builder) sources() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, path := range b.paths {
		for _, src := range b.cmdCtx.Resolver.Sources(path) {
			if _, ok := seen[src]; ok {
				continue
			}
			seen[src] = struct{}{}
			out = append(out, src)
		}
	}
	return out
}

// watch rebuilds after every change until interrupted.
func (b *builder) watch(ctx context.Context, debounce time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := b.cmdCtx.Renderer
	w := watch.New(b.sources, func(path string) {
		b.cmdCtx.Logger.Info("config changed, rebuilding", "path", path)
		if err := b.run(ctx); err != nil {
			r.Error(err.Error())
		}
	}, watch.Options{Debounce: debounce, Logger: b.cmdCtx.Logger})

	_, _ = fmt.Fprintf(r.ErrWriter(), "Watching %d file(s) for changes. Press Ctrl+C to stop.\n", len(b.sources()))
	return w.Run(ctx)
}

// summaryHeader is the table header for text and markdown summaries.
var summaryHeader = []string{"Config", "Fragment", "Files", "Ignores", "Rules"}

func fragmentRows(config string, fragments []resolve.Fragment) [][]string {
	rows := make([][]string, 0, len(fragments))
	for _, f := range fragments {
		rows = append(rows, []string{
			config,
			f.Name,
			strings.Join(f.Files, " "),
			strings.Join(f.Ignores, " "),
			strconv.Itoa(len(f.Rules)),
		})
	}
	return rows
}

func legacyRows(config string, l resolve.LegacyConfig) [][]string {
	rows := [][]string{{
		config,
		"(root)",
		"",
		strings.Join(l.IgnorePatterns, " "),
		strconv.Itoa(len(l.Rules)),
	}}
	for i, o := range l.Overrides {
		rows = append(rows, []string{
			config,
			fmt.Sprintf("overrides[%d]", i),
			strings.Join(o.Files, " "),
			strings.Join(o.ExcludedFiles, " "),
			strconv.Itoa(len(o.Rules)),
		})
	}
	return rows
}

// writeResolved renders a resolution result: JSON for auto and json, YAML
// for yaml, and a summary table for text and markdown. Markdown also carries
// the JSON in a fenced block.
func writeResolved(r *output.Renderer, title string, v any, rows [][]string) error {
	switch r.Mode() {
	case output.ModeYAML:
		return r.YAML(v)
	case output.ModeText:
		r.Header(1, title)
		r.Table(summaryHeader, rows)
		r.Println("")
		r.Muted(fmt.Sprintf("%d rules turned off in %d fragment(s). Use -o json for the config itself.", countRules(rows), len(rows)))
		return nil
	case output.ModeMarkdown:
		r.Header(1, title)
		r.Table(summaryHeader, rows)
		r.Println("```json")
		if err := r.JSON(v); err != nil {
			return err
		}
		r.Println("```")
		return nil
	default:
		return r.JSON(v)
	}
}

func countRules(rows [][]string) int {
	total := 0
	for _, row := range rows {
		n, _ := strconv.Atoi(row[len(row)-1])
		total += n
	}
	return total
}
