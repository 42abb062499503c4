package store

import (
	"context"
	"fmt"

	"github.com/ojavier0506-ui/golf-carts/internal/fleet"
)

// LoadSnapshot reads the carts table. An empty table yields an empty map;
// the ledger synthesizes defaults in that case.
func (s *Store) LoadSnapshot(ctx context.Context) (map[string]fleet.Cart, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, status, comment FROM carts
	`)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer rows.Close()

	snap := make(map[string]fleet.Cart)
	for rows.Next() {
		var name string
		var rec fleet.Cart
		if err := rows.Scan(&name, &rec.Status, &rec.Comment); err != nil {
			return nil, fmt.Errorf("scan cart: %w", err)
		}
		snap[name] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate carts: %w", err)
	}

	return snap, nil
}

// LoadHistory reads the full history table keyed by cart, oldest-first.
// Ordering is deterministic: ts ascending, insertion id breaking ties.
func (s *Store) LoadHistory(ctx context.Context) (map[string][]fleet.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cart, ts, date, time, change_type, old_value, new_value, comment, comment_action, user
		FROM history
		ORDER BY cart ASC, ts ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	hist := make(map[string][]fleet.HistoryEntry)
	for rows.Next() {
		var cart string
		var e fleet.HistoryEntry
		var change, action string
		if err := rows.Scan(&cart, &e.TS, &e.Date, &e.Time, &change, &e.OldValue, &e.NewValue, &e.Comment, &action, &e.User); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Change = fleet.ChangeType(change)
		e.CommentAction = fleet.CommentAction(action)
		hist[cart] = append(hist[cart], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return hist, nil
}
