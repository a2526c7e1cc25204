// Package server runs the pipeline validation HTTP service.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/leapstack-labs/leapflow/internal/api"
	"github.com/leapstack-labs/leapflow/internal/config"
	"github.com/leapstack-labs/leapflow/internal/registry"
	"golang.org/x/sync/errgroup"
)

// Server serves the pipeline API until its context is cancelled.
type Server struct {
	cfg     config.ServerConfig
	logger  *slog.Logger
	handler http.Handler
}

// Config holds the dependencies of a Server.
type Config struct {
	Server   config.ServerConfig
	Registry *registry.Registry
	Logger   *slog.Logger
	Version  string
}

// New creates a Server. Zero-valued server settings take their defaults.
func New(cfg Config) *Server {
	config.ApplyServerDefaults(&cfg.Server)
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		cfg:    cfg.Server,
		logger: cfg.Logger,
		handler: api.NewRouter(api.Options{
			Registry:       cfg.Registry,
			Logger:         cfg.Logger,
			Version:        cfg.Version,
			MaxBodyBytes:   cfg.Server.MaxBodyBytes,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		}),
	}
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Serve listens on the configured address and blocks until ctx is cancelled
// or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln, which it closes on return.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting pipeline server", "addr", ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down pipeline server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
