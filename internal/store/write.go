package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ojavier0506-ui/golf-carts/internal/fleet"
)

// SaveSnapshot durably replaces the carts table with the given snapshot in
// one transaction. The snapshot is a full replace by contract: rows for
// identifiers no longer in the registry do not survive.
func (s *Store) SaveSnapshot(ctx context.Context, snap map[string]fleet.Cart) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save snapshot: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := replaceSnapshot(ctx, tx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save snapshot: commit: %w", err)
	}
	return nil
}

// AppendHistory inserts one history entry, applying the retention window in
// the same transaction.
func (s *Store) AppendHistory(ctx context.Context, cart string, e fleet.HistoryEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append history: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.insertEntry(ctx, tx, cart, e); err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append history: commit: %w", err)
	}
	return nil
}

// ApplyUpdate commits the snapshot replace and the history append in a
// single transaction. This is the crash-safe variant of the two-step
// SaveSnapshot then AppendHistory sequence: a crash leaves either both
// writes or neither.
func (s *Store) ApplyUpdate(ctx context.Context, snap map[string]fleet.Cart, cart string, e fleet.HistoryEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("apply update: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := replaceSnapshot(ctx, tx, snap); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}
	if err := s.insertEntry(ctx, tx, cart, e); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("apply update: commit: %w", err)
	}
	return nil
}

func replaceSnapshot(ctx context.Context, tx *sql.Tx, snap map[string]fleet.Cart) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM carts`); err != nil {
		return fmt.Errorf("clear carts: %w", err)
	}
	for name, rec := range snap {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO carts (name, status, comment)
			VALUES (?, ?, ?)
		`, name, rec.Status, rec.Comment)
		if err != nil {
			return fmt.Errorf("insert cart %q: %w", name, err)
		}
	}
	return nil
}

func (s *Store) insertEntry(ctx context.Context, tx *sql.Tx, cart string, e fleet.HistoryEntry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO history
		(cart, ts, date, time, change_type, old_value, new_value, comment, comment_action, user)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		cart,
		e.TS,
		e.Date,
		e.Time,
		string(e.Change),
		e.OldValue,
		e.NewValue,
		e.Comment,
		string(e.CommentAction),
		e.User,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	// Retention is a filter applied at append time, never a later purge.
	if s.retention > 0 {
		cutoff := s.now().Add(-s.retention).Unix()
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM history WHERE cart = ? AND ts < ?
		`, cart, cutoff); err != nil {
			return fmt.Errorf("prune entries: %w", err)
		}
	}

	return nil
}
