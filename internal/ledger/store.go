package ledger

import (
	"context"

	"github.com/ojavier0506-ui/golf-carts/internal/fleet"
)

// Store is the durable persistence contract for the ledger's two logical
// stores: the snapshot (current state, authoritative) and the history log
// (write-only, never read back to reconstruct the snapshot).
//
// Load methods return an empty map when no prior data exists; the ledger
// synthesizes the initial snapshot from the registry in that case.
type Store interface {
	// LoadSnapshot reads the persisted cart-id -> record mapping.
	LoadSnapshot(ctx context.Context) (map[string]fleet.Cart, error)

	// SaveSnapshot durably replaces the snapshot. The write must be atomic:
	// a crash mid-write leaves the previous content fully intact.
	SaveSnapshot(ctx context.Context, snap map[string]fleet.Cart) error

	// LoadHistory reads the persisted cart-id -> entries mapping,
	// oldest-first within each cart.
	LoadHistory(ctx context.Context) (map[string][]fleet.HistoryEntry, error)

	// AppendHistory durably appends one entry to a cart's history,
	// applying any configured retention window at append time.
	AppendHistory(ctx context.Context, cart string, e fleet.HistoryEntry) error
}

// AtomicStore is implemented by backends that can commit the snapshot and
// the history entry in one transaction, closing the partial-commit window
// the two-file layout leaves open. The ledger uses it when available.
type AtomicStore interface {
	Store

	// ApplyUpdate durably replaces the snapshot and appends the entry
	// atomically.
	ApplyUpdate(ctx context.Context, snap map[string]fleet.Cart, cart string, e fleet.HistoryEntry) error
}
