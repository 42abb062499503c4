package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojavier0506-ui/golf-carts/internal/auth"
	"github.com/ojavier0506-ui/golf-carts/internal/fleet"
)

func openTestStore(t *testing.T, retention time.Duration) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), retention)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path, 0)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path, 0)
	require.NoError(t, err)
	defer s2.Close()

	var version int
	require.NoError(t, s2.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_Pragmas(t *testing.T) {
	s := openTestStore(t, 0)

	var journalMode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	var fk int
	require.NoError(t, s.DB().QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap)

	in := map[string]fleet.Cart{
		"Cart 1": {Status: "Charging", Comment: "battery ok"},
		"Cart 2": {Status: "Unassigned"},
	}
	require.NoError(t, s.SaveSnapshot(ctx, in))

	out, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

// TestSnapshot_FullReplace verifies rows absent from the new snapshot do not
// survive a save.
func TestSnapshot_FullReplace(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, s.SaveSnapshot(ctx, map[string]fleet.Cart{
		"Cart 1": {Status: "Charging"},
		"Cart 2": {Status: "Unassigned"},
	}))
	require.NoError(t, s.SaveSnapshot(ctx, map[string]fleet.Cart{
		"Cart 1": {Status: "Out of Service"},
	}))

	out, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]fleet.Cart{"Cart 1": {Status: "Out of Service"}}, out)
}

func TestHistory_AppendAndOrder(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, s.AppendHistory(ctx, "Cart 2", fleet.HistoryEntry{TS: 50, NewValue: "Charging"}))
	require.NoError(t, s.AppendHistory(ctx, "Cart 1", fleet.HistoryEntry{TS: 100, NewValue: "Charging"}))
	require.NoError(t, s.AppendHistory(ctx, "Cart 1", fleet.HistoryEntry{TS: 100, NewValue: "Unassigned"}))
	require.NoError(t, s.AppendHistory(ctx, "Cart 1", fleet.HistoryEntry{TS: 200, NewValue: "Out of Service"}))

	hist, err := s.LoadHistory(ctx)
	require.NoError(t, err)
	require.Len(t, hist["Cart 1"], 3)
	// Equal timestamps keep insertion order via the rowid tiebreak
	assert.Equal(t, "Charging", hist["Cart 1"][0].NewValue)
	assert.Equal(t, "Unassigned", hist["Cart 1"][1].NewValue)
	assert.Equal(t, "Out of Service", hist["Cart 1"][2].NewValue)
	require.Len(t, hist["Cart 2"], 1)
}

func TestHistory_FieldsSurvive(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	in := fleet.HistoryEntry{
		TS:            1717252205,
		Date:          "2024-06-01",
		Time:          "14:30:05",
		Change:        fleet.ChangeBoth,
		OldValue:      "Unassigned",
		NewValue:      "Charging",
		Comment:       "battery ok",
		CommentAction: fleet.CommentAdded,
		User:          "alice",
	}
	require.NoError(t, s.AppendHistory(ctx, "Cart 1", in))

	hist, err := s.LoadHistory(ctx)
	require.NoError(t, err)
	require.Len(t, hist["Cart 1"], 1)
	assert.Equal(t, in, hist["Cart 1"][0])
}

func TestHistory_Retention(t *testing.T) {
	s := openTestStore(t, 7*24*time.Hour)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	require.NoError(t, s.AppendHistory(ctx, "Cart 1", fleet.HistoryEntry{TS: base.Unix()}))

	later := base.Add(10 * 24 * time.Hour)
	s.now = func() time.Time { return later }
	require.NoError(t, s.AppendHistory(ctx, "Cart 1", fleet.HistoryEntry{TS: later.Unix()}))

	hist, err := s.LoadHistory(ctx)
	require.NoError(t, err)
	require.Len(t, hist["Cart 1"], 1)
	assert.Equal(t, later.Unix(), hist["Cart 1"][0].TS)
}

// TestApplyUpdate commits both writes together.
func TestApplyUpdate(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	snap := map[string]fleet.Cart{"Cart 1": {Status: "Charging", Comment: "ok"}}
	entry := fleet.HistoryEntry{TS: 100, Change: fleet.ChangeBoth, NewValue: "Charging"}
	require.NoError(t, s.ApplyUpdate(ctx, snap, "Cart 1", entry))

	outSnap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, outSnap)

	hist, err := s.LoadHistory(ctx)
	require.NoError(t, err)
	require.Len(t, hist["Cart 1"], 1)
}

func TestUsers_RoundTrip(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	users, err := s.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	in := map[string]auth.User{
		"alice": {PasswordHash: "$2a$10$abc", Role: auth.RoleAdmin},
		"bob":   {PasswordHash: "$2a$10$def", Role: auth.RoleUser},
	}
	require.NoError(t, s.SaveUsers(ctx, in))

	out, err := s.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// Save is a full replace
	delete(in, "bob")
	require.NoError(t, s.SaveUsers(ctx, in))
	out, err = s.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
