package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ojavier0506-ui/golf-carts/internal/auth"
	"github.com/ojavier0506-ui/golf-carts/internal/config"
	"github.com/ojavier0506-ui/golf-carts/internal/fleet"
	"github.com/ojavier0506-ui/golf-carts/internal/ledger"
	"github.com/ojavier0506-ui/golf-carts/internal/storage"
	"github.com/ojavier0506-ui/golf-carts/internal/store"
)

// app bundles the collaborators every command wires up from the config:
// the selected storage backend, the account table, and the ledger inputs.
type app struct {
	cfg   config.Config
	store ledger.Store
	users auth.Users
	close func() error
}

// openApp loads the config and opens the configured backend.
func openApp(opts *RootOptions) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	a := &app{cfg: cfg, close: func() error { return nil }}
	retention := time.Duration(cfg.Storage.RetentionDays) * 24 * time.Hour

	switch cfg.Storage.Backend {
	case config.BackendJSON:
		fs, err := storage.NewFileStore(cfg.Storage.Dir, retention)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open data directory", err)
		}
		a.store = fs
		a.users = auth.NewFileUsers(filepath.Join(cfg.Storage.Dir, storage.UsersFile))
	case config.BackendSQLite:
		db, err := store.Open(cfg.Storage.DB, retention)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open database", err)
		}
		a.store = db
		a.users = db
		a.close = db.Close
	}

	return a, nil
}

// openLedger builds the registry and status set from the config and opens
// the ledger over the app's backend.
func (a *app) openLedger(ctx context.Context) (*ledger.Ledger, error) {
	registry, err := fleet.NewRegistry(a.cfg.CartNames())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid fleet registry", err)
	}
	statuses, err := fleet.NewStatusSet(a.cfg.Fleet.Statuses, a.cfg.Fleet.Fallback)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid status set", err)
	}

	l, err := ledger.Open(ctx, a.store, ledger.Config{
		Registry:      registry,
		Statuses:      statuses,
		DefaultStatus: a.cfg.Fleet.DefaultStatus,
		CommentMaxLen: a.cfg.Fleet.CommentMaxLen,
		Retention:     time.Duration(a.cfg.Storage.RetentionDays) * 24 * time.Hour,
	})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	return l, nil
}

// setupLogging configures the process-wide slog default.
func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
