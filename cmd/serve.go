package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/okian/vlaboard/internal/adapters/http/api"
	"github.com/okian/vlaboard/internal/adapters/http/site"
	"github.com/okian/vlaboard/internal/adapters/http/swagger"
	"github.com/okian/vlaboard/internal/adapters/repository"
	"github.com/okian/vlaboard/internal/config"
	"github.com/okian/vlaboard/pkg/logger"
	"github.com/spf13/cobra"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the leaderboards and serve them over HTTP",
		Long: `serve builds the leaderboards, publishes them in memory and serves
the JSON API, the generated files and the API reference. With --watch the
leaderboards are rebuilt whenever the input sheet changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ln, err := net.Listen("tcp", c.cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", c.cfg.Addr, err)
			}
			return serve(cmd.Context(), c.cfg, ln)
		},
	}
	pipelineFlags(cmd)
	cmd.Flags().String("addr", "", "HTTP listen address")
	cmd.Flags().Bool("watch", false, "rebuild when the input sheet changes")
	return cmd
}

// serve runs the HTTP server on ln until ctx is done. The first build must
// succeed unless watching, in which case the server starts not ready and
// the next change to the sheet retries.
func serve(ctx context.Context, cfg *config.Config, ln net.Listener) error {
	log := logger.Get()
	store := repository.NewMemStore()
	svc, err := newService(cfg, store)
	if err != nil {
		_ = ln.Close()
		return err
	}

	if _, err := svc.Build(ctx, cfg.Input); err != nil {
		if !cfg.Watch {
			_ = ln.Close()
			return err
		}
		log.Warn(ctx, "initial build failed; waiting for the input to change", logger.Error(err))
	}

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(store, cfg.MaxLeaderboardLimit).Register(ctx, mux)
	site.Register(ctx, mux, cfg.OutputDir)

	srv := &http.Server{
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if cfg.Watch {
		go func() {
			if err := svc.Watch(ctx, cfg.Input, cfg.WatchDebounce); err != nil {
				log.Error(ctx, "watch stopped", logger.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info(ctx, "server stopped")
	return nil
}
