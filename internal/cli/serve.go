package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ojavier0506-ui/golf-carts/internal/auth"
	"github.com/ojavier0506-ui/golf-carts/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the fleet-status HTTP server",
		Long: `Run the SunCarts HTTP server.

The server loads (or seeds) the cart snapshot from the configured storage
backend and serves the board page, the JSON API, and the PDF report.

Example:
  golf-carts serve --config suncarts.yaml
  golf-carts serve --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts)
		},
	}
	return cmd
}

func runServe(parent context.Context, opts *RootOptions) error {
	setupLogging(opts.Verbose)

	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.close(); closeErr != nil {
			slog.Error("error closing store", "error", closeErr)
		}
	}()

	ctx := parent
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l, err := a.openLedger(ctx)
	if err != nil {
		return err
	}
	slog.Info("ledger ready", "carts", l.Registry().Len(), "backend", a.cfg.Storage.Backend)

	users := auth.NewManager(a.users)
	if a.cfg.Auth.Enabled {
		n, err := users.Count(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read accounts", err)
		}
		if n == 0 {
			slog.Warn("login gate enabled but no accounts exist; add one with 'golf-carts users add'")
		}
	}

	srv, err := server.New(server.Config{
		Logger:      slog.Default(),
		Ledger:      l,
		Users:       users,
		Sessions:    auth.NewSessions(time.Duration(a.cfg.Auth.SessionTTLMinutes) * time.Minute),
		AuthEnabled: a.cfg.Auth.Enabled,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build server", err)
	}

	httpSrv := &http.Server{
		Addr:              a.cfg.Server.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", a.cfg.Server.Listen, "auth", a.cfg.Auth.Enabled)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return WrapExitError(ExitFailure, "shutdown failed", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return WrapExitError(ExitFailure, "http server failed", err)
	}
}
