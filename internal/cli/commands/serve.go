package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/oxoff/internal/server"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port  int
	Watch string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rule lookup and resolution over HTTP",
		Long: `Start an HTTP server exposing the rule catalog and the resolver.

Endpoints:
  GET  /healthz               catalog version and rule count
  GET  /rules                 rules, filtered by ?category= and ?scope=
  GET  /rules/{name}          a single rule
  POST /resolve               resolve a posted oxlint config (?legacy=true for eslintrc)
  GET  /presets               preset names
  GET  /presets/{name}        a preset's fragments
  GET  /events                with --watch, a server-sent event stream of the
                              watched config's fragments`,
		Example: `  oxoff serve
  oxoff serve --port 9000 --watch .oxlintrc.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Port, "port", "p", 0, "Port to listen on (default from config, 8790)")
	cmd.Flags().StringVar(&opts.Watch, "watch", "", "oxlint config to watch and stream on /events")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)

	port := cmdCtx.Cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port = opts.Port
	}
	if opts.Watch != "" {
		if _, err := os.Stat(opts.Watch); err != nil {
			return fmt.Errorf("cannot watch %s: %w", opts.Watch, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Resolver:  cmdCtx.Resolver,
		Options:   cmdCtx.Options,
		Port:      port,
		WatchFile: opts.Watch,
		Debounce:  cmdCtx.Cfg.Watch.Debounce,
		Logger:    cmdCtx.Logger,
	})
	return srv.Serve(ctx)
}
