// Package server exposes the rule catalog and the resolver over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/oxoff/internal/watch"
	"github.com/leapstack-labs/oxoff/pkg/resolve"
	"golang.org/x/sync/errgroup"
)

// DefaultPort is used when Config.Port is zero.
const DefaultPort = 8790

// Server serves the HTTP API.
type Server struct {
	resolver  *resolve.Resolver
	opts      resolve.Options
	port      int
	watchFile string
	debounce  time.Duration
	logger    *slog.Logger
	notifier  *Notifier
}

// Config holds configuration for the server.
type Config struct {
	Resolver *resolve.Resolver
	// Options are the defaults for requests that do not set with_nursery or type_aware.
	Options resolve.Options
	Port    int
	// WatchFile enables GET /events for this oxlint config.
	WatchFile string
	Debounce  time.Duration
	Logger    *slog.Logger
}

// New creates a server. When a watch file is configured it is resolved once
// so /events has a snapshot to send before the first change.
func New(cfg Config) *Server {
	if cfg.Resolver == nil {
		cfg.Resolver = resolve.New(nil, resolve.DefaultSettings(), cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}

	s := &Server{
		resolver:  cfg.Resolver,
		opts:      cfg.Options,
		port:      cfg.Port,
		watchFile: cfg.WatchFile,
		debounce:  cfg.Debounce,
		logger:    cfg.Logger,
		notifier:  NewNotifier(),
	}
	if s.watchFile != "" {
		s.Refresh()
	}
	return s
}

// Notifier returns the notifier that feeds /events.
func (s *Server) Notifier() *Notifier {
	return s.notifier
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)
	r.Get("/rules", s.handleRules)
	r.Get("/rules/*", s.handleRule)
	r.Post("/resolve", s.handleResolve)
	r.Get("/presets", s.handlePresets)
	r.Get("/presets/*", s.handlePreset)
	if s.watchFile != "" {
		r.Get("/events", s.handleEvents)
	}
	return r
}

// Serve listens on the configured port and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down
// gracefully. The listener is closed on return.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting server", "addr", "http://"+ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watchFile != "" {
		w := watch.New(
			func() []string { return s.resolver.Sources(s.watchFile) },
			func(path string) {
				s.logger.Info("config changed", "path", path)
				s.Refresh()
			},
			watch.Options{Debounce: s.debounce, Logger: s.logger},
		)
		eg.Go(func() error {
			return w.Run(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Refresh re-resolves the watch file and publishes the result to /events
// subscribers. It is a no-op without a watch file.
func (s *Server) Refresh() {
	if s.watchFile == "" {
		return
	}
	snap := Snapshot{Path: s.watchFile}
	fragments, err := s.resolver.BuildFile(s.watchFile, s.opts)
	if err != nil {
		s.logger.Error("failed to resolve watched config", "path", s.watchFile, "error", err)
		snap.Error = err.Error()
	} else {
		snap.Fragments = fragments
	}
	published := s.notifier.Publish(snap)
	s.logger.Debug("published snapshot", "revision", published.Revision)
}
