// Package cli provides the command-line interface for oxoff.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/leapstack-labs/oxoff/internal/cli/commands"
	"github.com/leapstack-labs/oxoff/internal/cli/config"
	"github.com/leapstack-labs/oxoff/internal/cli/output"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// rendererKey is used to store renderer in context.
type rendererKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "oxoff",
		Short: "oxoff - turn off ESLint rules oxlint already covers",
		Long: `oxoff reads oxlint configuration and produces ESLint flat-config
fragments that switch off every ESLint rule oxlint already enforces,
so both linters can run side by side without duplicate reports.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, configKey{}, cfg)
			ctx = config.WithLogger(ctx, config.NewLogger(cfg, cmd.ErrOrStderr()))

			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
			ctx = context.WithValue(ctx, rendererKey{}, renderer)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./oxoff.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json|yaml)")
	rootCmd.PersistentFlags().Bool("with-nursery", false, "Include oxlint nursery rules")
	rootCmd.PersistentFlags().Bool("type-aware", false, "Include rules that need type information")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		modes := make([]string, len(output.Modes))
		for i, m := range output.Modes {
			modes[i] = string(m)
		}
		return modes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewBuildCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewLookupCommand())
	rootCmd.AddCommand(commands.NewPresetCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	return &config.Config{
		Output:   config.DefaultOutput,
		LogLevel: config.DefaultLogLevel,
		Server:   config.ServerConfig{Port: config.DefaultPort},
		Watch:    config.WatchConfig{Debounce: config.DefaultDebounce},
	}
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	// Return default renderer if none in context
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for oxoff.

To load completions:

Bash:
  $ source <(oxoff completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ oxoff completion bash > /etc/bash_completion.d/oxoff
  # macOS:
  $ oxoff completion bash > $(brew --prefix)/etc/bash_completion.d/oxoff

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ oxoff completion zsh > "${fpath[1]}/_oxoff"

Fish:
  $ oxoff completion fish | source

  # To load completions for each session, execute once:
  $ oxoff completion fish > ~/.config/fish/completions/oxoff.fish

PowerShell:
  PS> oxoff completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
