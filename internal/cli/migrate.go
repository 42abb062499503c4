package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ojavier0506-ui/golf-carts/internal/auth"
	"github.com/ojavier0506-ui/golf-carts/internal/storage"
	"github.com/ojavier0506-ui/golf-carts/internal/store"
)

// MigrateOptions holds flags for the migrate command.
type MigrateOptions struct {
	*RootOptions
	DB string
}

// NewMigrateCommand creates the migrate command: flat-file data directory
// into a SQLite database.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy a JSON data directory into a SQLite database",
		Long: `Copy the snapshot, history, and accounts of a JSON data directory
into a SQLite database. The source files are left untouched.

Example:
  golf-carts migrate --config suncarts.yaml --db ./carts.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "target SQLite database path (required)")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}

func runMigrate(cmd *cobra.Command, opts *MigrateOptions) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.close()

	src, ok := a.store.(*storage.FileStore)
	if !ok {
		return NewExitError(ExitCommandError, "migrate requires the json storage backend in the config")
	}
	srcUsers, _ := a.users.(*auth.FileUsers)

	ctx := cmd.Context()
	snap, err := src.LoadSnapshot(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load snapshot", err)
	}
	hist, err := src.LoadHistory(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load history", err)
	}

	// Retention is zero here: migration copies, it does not prune.
	dst, err := store.Open(opts.DB, 0)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer dst.Close()

	if err := dst.SaveSnapshot(ctx, snap); err != nil {
		return WrapExitError(ExitFailure, "failed to write snapshot", err)
	}

	carts := make([]string, 0, len(hist))
	for cart := range hist {
		carts = append(carts, cart)
	}
	sort.Strings(carts)

	entries := 0
	for _, cart := range carts {
		for _, e := range hist[cart] {
			if err := dst.AppendHistory(ctx, cart, e); err != nil {
				return WrapExitError(ExitFailure, "failed to write history", err)
			}
			entries++
		}
	}

	if srcUsers != nil {
		users, err := srcUsers.LoadUsers(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load users", err)
		}
		if len(users) > 0 {
			if err := dst.SaveUsers(ctx, users); err != nil {
				return WrapExitError(ExitFailure, "failed to write users", err)
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "migrated %d carts, %d history entries to %s\n", len(snap), entries, opts.DB)
	return nil
}
