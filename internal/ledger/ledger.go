package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ojavier0506-ui/golf-carts/internal/fleet"
)

// Config carries the fixed collaborators a Ledger is constructed with.
type Config struct {
	// Registry is the closed set of cart identifiers.
	Registry *fleet.Registry

	// Statuses is the closed status set with its fallback.
	Statuses *fleet.StatusSet

	// DefaultStatus seeds carts that have no persisted record.
	// Empty means the status set's fallback.
	DefaultStatus string

	// CommentMaxLen caps comments, in characters. Zero means unlimited.
	CommentMaxLen int

	// Retention drops history entries older than this window at append
	// time. Zero means keep everything.
	Retention time.Duration

	// Clock stamps history entries. Nil means the system clock.
	Clock Clock
}

// UpdateResult is what Update reports back: the values actually applied
// (after coercion and truncation), whether anything changed, and the
// per-status population counts across the whole registry.
type UpdateResult struct {
	Status  string
	Comment string
	Changed bool
	Counts  map[string]int
}

// Ledger owns the in-memory snapshot and history and their durable copies.
// All state is guarded by a single mutex; see the package comment.
type Ledger struct {
	mu       sync.Mutex
	store    Store
	registry *fleet.Registry
	statuses *fleet.StatusSet
	seed     fleet.Cart
	maxLen   int
	keep     time.Duration
	clock    Clock

	snapshot map[string]fleet.Cart
	history  map[string][]fleet.HistoryEntry
}

// Open constructs a Ledger over the given store, loading and read-repairing
// any persisted snapshot. Carts without a persisted record are seeded with
// the default status and an empty comment; persisted statuses outside the
// current set are coerced to the fallback. Read-repair never emits history.
// If anything was repaired or synthesized, the repaired snapshot is written
// back so durable state matches memory from the start.
func Open(ctx context.Context, store Store, cfg Config) (*Ledger, error) {
	if store == nil {
		return nil, fmt.Errorf("open ledger: store is required")
	}
	if cfg.Registry == nil || cfg.Registry.Len() == 0 {
		return nil, fmt.Errorf("open ledger: registry is required")
	}
	if cfg.Statuses == nil {
		return nil, fmt.Errorf("open ledger: status set is required")
	}
	seed := cfg.DefaultStatus
	if seed == "" {
		seed = cfg.Statuses.Fallback()
	}
	if !cfg.Statuses.Contains(seed) {
		return nil, fmt.Errorf("open ledger: default status %q is not in the status set", seed)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	l := &Ledger{
		store:    store,
		registry: cfg.Registry,
		statuses: cfg.Statuses,
		seed:     fleet.Cart{Status: seed},
		maxLen:   cfg.CommentMaxLen,
		keep:     cfg.Retention,
		clock:    clock,
	}

	loaded, err := store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("open ledger: load snapshot: %w", err)
	}

	l.snapshot = make(map[string]fleet.Cart, cfg.Registry.Len())
	dirty := len(loaded) != cfg.Registry.Len()
	for _, name := range cfg.Registry.Names() {
		rec, ok := loaded[name]
		if !ok {
			l.snapshot[name] = l.seed
			dirty = true
			continue
		}
		repaired := fleet.Cart{
			Status:  cfg.Statuses.Normalize(rec.Status),
			Comment: fleet.TruncateComment(rec.Comment, cfg.CommentMaxLen),
		}
		if repaired != rec {
			dirty = true
		}
		l.snapshot[name] = repaired
	}

	if dirty {
		if err := store.SaveSnapshot(ctx, l.snapshot); err != nil {
			return nil, fmt.Errorf("open ledger: persist repaired snapshot: %w", err)
		}
	}

	l.history, err = store.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("open ledger: load history: %w", err)
	}
	if l.history == nil {
		l.history = make(map[string][]fleet.HistoryEntry)
	}

	return l, nil
}

// Update applies one status/comment change to a cart.
//
// The status is coerced into the closed set and the comment is truncated
// before diffing, per the leniency policy. Exactly one combined history
// entry is appended when either field changed; none when neither did. The
// snapshot is persisted on every call (idempotent re-application still
// executes the write path), history only when something changed.
func (l *Ledger) Update(ctx context.Context, cartID, newStatus, newComment, actor string) (UpdateResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.registry.Contains(cartID) {
		return UpdateResult{}, fleet.NewUnknownCartError(cartID)
	}

	old := l.snapshot[cartID]
	applied := fleet.Cart{
		Status:  l.statuses.Normalize(newStatus),
		Comment: fleet.TruncateComment(newComment, l.maxLen),
	}
	changed := applied != old

	next := make(map[string]fleet.Cart, len(l.snapshot))
	for k, v := range l.snapshot {
		next[k] = v
	}
	next[cartID] = applied

	var entry fleet.HistoryEntry
	if changed {
		entry = fleet.NewHistoryEntry(l.clock.Now(), old, applied, actor)
	}

	// Single-transaction path when the backend supports it.
	if as, ok := l.store.(AtomicStore); ok && changed {
		if err := as.ApplyUpdate(ctx, next, cartID, entry); err != nil {
			return UpdateResult{}, fleet.NewPersistenceError(cartID, err)
		}
		l.snapshot = next
		l.appendLocked(cartID, entry)
		return l.resultLocked(applied, true), nil
	}

	// Snapshot first: on partial failure the system under-reports history
	// rather than misrepresenting current state.
	if err := l.store.SaveSnapshot(ctx, next); err != nil {
		return UpdateResult{}, fleet.NewPersistenceError(cartID, err)
	}
	l.snapshot = next

	if changed {
		if err := l.store.AppendHistory(ctx, cartID, entry); err != nil {
			return UpdateResult{}, fleet.NewPartialCommitError(cartID, err)
		}
		l.appendLocked(cartID, entry)
	}

	return l.resultLocked(applied, changed), nil
}

// GetAll returns a copy of the current snapshot.
func (l *Ledger) GetAll() map[string]fleet.Cart {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]fleet.Cart, len(l.snapshot))
	for k, v := range l.snapshot {
		out[k] = v
	}
	return out
}

// GetOne returns the current record for one cart.
func (l *Ledger) GetOne(cartID string) (fleet.Cart, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.registry.Contains(cartID) {
		return fleet.Cart{}, fleet.NewUnknownCartError(cartID)
	}
	return l.snapshot[cartID], nil
}

// GetHistory returns a copy of one cart's history, oldest-first.
// A non-empty date ("2006-01-02") filters to entries from that day.
func (l *Ledger) GetHistory(cartID, date string) ([]fleet.HistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.registry.Contains(cartID) {
		return nil, fleet.NewUnknownCartError(cartID)
	}

	entries := l.history[cartID]
	out := make([]fleet.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if date != "" && e.Date != date {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// CountsByStatus tallies the registry population per status. Every status
// in the set appears in the result, zero-valued when unpopulated, and the
// counts always sum to the registry size.
func (l *Ledger) CountsByStatus() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.countsLocked()
}

// Registry returns the fixed cart registry.
func (l *Ledger) Registry() *fleet.Registry {
	return l.registry
}

// Statuses returns the status set.
func (l *Ledger) Statuses() *fleet.StatusSet {
	return l.statuses
}

func (l *Ledger) appendLocked(cartID string, e fleet.HistoryEntry) {
	entries := append(l.history[cartID], e)
	if l.keep > 0 {
		cutoff := l.clock.Now().Add(-l.keep).Unix()
		kept := entries[:0]
		for _, he := range entries {
			if he.TS >= cutoff {
				kept = append(kept, he)
			}
		}
		entries = kept
	}
	l.history[cartID] = entries
}

func (l *Ledger) countsLocked() map[string]int {
	counts := make(map[string]int)
	for _, s := range l.statuses.Values() {
		counts[s] = 0
	}
	for _, rec := range l.snapshot {
		counts[rec.Status]++
	}
	return counts
}

func (l *Ledger) resultLocked(applied fleet.Cart, changed bool) UpdateResult {
	return UpdateResult{
		Status:  applied.Status,
		Comment: applied.Comment,
		Changed: changed,
		Counts:  l.countsLocked(),
	}
}
