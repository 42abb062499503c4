package store

import (
	"context"
	"fmt"

	"github.com/ojavier0506-ui/golf-carts/internal/auth"
)

// LoadUsers reads the account table.
func (s *Store) LoadUsers(ctx context.Context) (map[string]auth.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, password_hash, role FROM users
	`)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	defer rows.Close()

	users := make(map[string]auth.User)
	for rows.Next() {
		var name, hash, role string
		if err := rows.Scan(&name, &hash, &role); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users[name] = auth.User{PasswordHash: hash, Role: auth.Role(role)}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// SaveUsers replaces the account table in one transaction.
func (s *Store) SaveUsers(ctx context.Context, users map[string]auth.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save users: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("save users: clear: %w", err)
	}
	for name, u := range users {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (username, password_hash, role)
			VALUES (?, ?, ?)
		`, name, u.PasswordHash, string(u.Role))
		if err != nil {
			return fmt.Errorf("save users: insert %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save users: commit: %w", err)
	}
	return nil
}
