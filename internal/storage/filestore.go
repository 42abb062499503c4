package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ojavier0506-ui/golf-carts/internal/fleet"
)

// Canonical file names within the data directory.
const (
	SnapshotFile = "carts.json"
	HistoryFile  = "history.json"
	UsersFile    = "users.json"
)

// FileStore persists the ledger's snapshot and history as two JSON files.
// There is no cross-file transaction; callers order the two writes so the
// snapshot (authoritative state) lands first.
type FileStore struct {
	dir       string
	retention time.Duration

	// now is injected for retention tests; defaults to time.Now.
	now func() time.Time
}

// NewFileStore creates the data directory if needed and returns a store over
// it. retention > 0 prunes history entries older than the window at append
// time; zero keeps everything.
func NewFileStore(dir string, retention time.Duration) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file store: create data directory: %w", err)
	}
	return &FileStore{dir: dir, retention: retention, now: time.Now}, nil
}

// SnapshotPath returns the canonical snapshot file path.
func (fs *FileStore) SnapshotPath() string {
	return filepath.Join(fs.dir, SnapshotFile)
}

// HistoryPath returns the canonical history file path.
func (fs *FileStore) HistoryPath() string {
	return filepath.Join(fs.dir, HistoryFile)
}

// LoadSnapshot reads the snapshot file. Missing file means no prior
// snapshot; an empty map is returned and the ledger seeds defaults.
func (fs *FileStore) LoadSnapshot(ctx context.Context) (map[string]fleet.Cart, error) {
	snap := make(map[string]fleet.Cart)
	if _, err := ReadJSON(fs.SnapshotPath(), &snap); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

// SaveSnapshot atomically replaces the snapshot file.
func (fs *FileStore) SaveSnapshot(ctx context.Context, snap map[string]fleet.Cart) error {
	if err := WriteJSONAtomic(fs.SnapshotPath(), snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadHistory reads the history file, oldest-first per cart.
func (fs *FileStore) LoadHistory(ctx context.Context) (map[string][]fleet.HistoryEntry, error) {
	hist := make(map[string][]fleet.HistoryEntry)
	if _, err := ReadJSON(fs.HistoryPath(), &hist); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return hist, nil
}

// AppendHistory reads the history file, appends the entry to the cart's
// list, applies the retention window, and atomically rewrites the file.
// This mirrors the read-append-write shape of the original flat-file log,
// with the rewrite made crash-safe.
func (fs *FileStore) AppendHistory(ctx context.Context, cart string, e fleet.HistoryEntry) error {
	hist, err := fs.LoadHistory(ctx)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	entries := append(hist[cart], e)
	if fs.retention > 0 {
		cutoff := fs.now().Add(-fs.retention).Unix()
		kept := entries[:0]
		for _, he := range entries {
			if he.TS >= cutoff {
				kept = append(kept, he)
			}
		}
		entries = kept
	}
	hist[cart] = entries

	if err := WriteJSONAtomic(fs.HistoryPath(), hist); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}
