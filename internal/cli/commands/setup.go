package commands

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/leapstack-labs/oxoff/internal/cli/config"
	"github.com/leapstack-labs/oxoff/internal/cli/output"
	"github.com/leapstack-labs/oxoff/pkg/catalog"
	"github.com/leapstack-labs/oxoff/pkg/resolve"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Resolver *resolve.Resolver
	Options  resolve.Options
}

// NewCommandContext creates a CommandContext with a resolver over the
// embedded catalog and a renderer for the configured output mode.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
		Resolver: resolve.New(catalog.Default(), cfg.ResolveSettings(), logger),
		Options:  cfg.ResolveOptions(),
	}
}

// RendererFor returns the context renderer, or a new one when format
// overrides the configured output mode.
func (c *CommandContext) RendererFor(cmd *cobra.Command, format string) (*output.Renderer, error) {
	if format == "" {
		return c.Renderer, nil
	}
	mode, err := output.ParseMode(format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode), nil
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		Output:      getEnvOrDefault("OXOFF_OUTPUT", config.DefaultOutput),
		LogLevel:    getEnvOrDefault("OXOFF_LOG_LEVEL", config.DefaultLogLevel),
		WithNursery: getEnvBool("OXOFF_WITH_NURSERY"),
		TypeAware:   getEnvBool("OXOFF_TYPE_AWARE"),
		Server:      config.ServerConfig{Port: config.DefaultPort},
		Watch:       config.WatchConfig{Debounce: config.DefaultDebounce},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}
