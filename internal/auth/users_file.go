package auth

import (
	"context"
	"fmt"

	"github.com/ojavier0506-ui/golf-carts/internal/storage"
)

// FileUsers persists the account table as one JSON file, written with the
// same atomic-replace mechanism as the ledger's stores.
type FileUsers struct {
	path string
}

// NewFileUsers returns a file-backed account table at path.
func NewFileUsers(path string) *FileUsers {
	return &FileUsers{path: path}
}

// LoadUsers reads the account file. Missing file means no accounts yet.
func (f *FileUsers) LoadUsers(ctx context.Context) (map[string]User, error) {
	users := make(map[string]User)
	if _, err := storage.ReadJSON(f.path, &users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

// SaveUsers atomically replaces the account file.
func (f *FileUsers) SaveUsers(ctx context.Context, users map[string]User) error {
	if err := storage.WriteJSONAtomic(f.path, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
