package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/internal/server"
	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/flowfile"
)

// shutdownTimeout bounds how long in-flight requests may run after Ctrl-C.
const shutdownTimeout = 5 * time.Second

// newServeCmd creates the serve command, which exposes a diagram over the
// HTTP editing API. With a file argument the diagram is loaded from disk;
// without one the server starts with an empty diagram.
func newServeCmd() *cobra.Command {
	var addr, configPath string

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a diagram over the HTTP editing API",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}

			s := flow.New()
			if len(args) == 1 {
				if s, err = flowfile.ReadFile(args[0]); err != nil {
					return err
				}
			}
			cfg.Apply(s)

			return runServe(cmd.Context(), addr, s)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (TOML)")

	return cmd
}

// runServe runs the HTTP server until ctx is cancelled, then drains in-flight
// requests.
func runServe(ctx context.Context, addr string, s *flow.Store) error {
	logger := loggerFromContext(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(s, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Serving on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
