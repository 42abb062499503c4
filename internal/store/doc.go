// Package store provides the SQLite-backed persistence backend - the
// relational form of the ledger's two logical stores.
//
//   - carts:   the snapshot, one row per registered cart
//   - history: the append-only change log, one row per history entry
//   - users:   the account table for the auth gate
//
// Unlike the flat-file backend, an update's snapshot write and history
// append share one transaction (ApplyUpdate), so the partial-commit window
// of the two-file layout does not exist here.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// History queries order by (cart, ts, id) so results are deterministic even
// when two entries share a wall-clock second.
package store
