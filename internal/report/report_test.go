package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojavier0506-ui/golf-carts/internal/fleet"
	"github.com/ojavier0506-ui/golf-carts/internal/ledger"
	"github.com/ojavier0506-ui/golf-carts/internal/storage"
	"github.com/ojavier0506-ui/golf-carts/internal/testutil"
)

func testLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	fs, err := storage.NewFileStore(t.TempDir(), 0)
	require.NoError(t, err)
	registry, err := fleet.NewRegistry([]string{"Cart 1", "Cart 2", "Cart 10"})
	require.NoError(t, err)
	statuses, err := fleet.NewStatusSet([]string{"Unassigned", "Charging"}, "Unassigned")
	require.NoError(t, err)
	l, err := ledger.Open(context.Background(), fs, ledger.Config{
		Registry: registry,
		Statuses: statuses,
		Clock:    testutil.NewClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)),
	})
	require.NoError(t, err)
	return l
}

func TestBuild(t *testing.T) {
	l := testLedger(t)
	_, err := l.Update(context.Background(), "Cart 2", "Charging", "battery ok", "alice")
	require.NoError(t, err)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	d := Build(l, now)

	assert.Equal(t, now, d.GeneratedAt)
	assert.Equal(t, []StatusCount{
		{Status: "Unassigned", Count: 2},
		{Status: "Charging", Count: 1},
	}, d.Counts)
	// Registry order, numeric-aware
	assert.Equal(t, []CartRow{
		{Name: "Cart 1", Status: "Unassigned"},
		{Name: "Cart 2", Status: "Charging", Comment: "battery ok"},
		{Name: "Cart 10", Status: "Unassigned"},
	}, d.Carts)
}

func TestRender(t *testing.T) {
	l := testLedger(t)
	var buf bytes.Buffer
	err := Render(&buf, Build(l, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
	assert.Greater(t, buf.Len(), 500)
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 60))
	long := strings.Repeat("x", 80)
	got := clip(long, 60)
	assert.Len(t, []rune(got), 60)
	assert.True(t, strings.HasSuffix(got, "…"))
}
