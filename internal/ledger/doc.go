// Package ledger implements the Cart Ledger: the authoritative current
// status/comment for every registered cart plus an append-only per-cart
// change history.
//
// # Update semantics
//
// Update normalizes its inputs (status coerced into the closed set, comment
// truncated to the configured cap), diffs them against the current record,
// and appends exactly one combined history entry when anything changed -
// never zero entries for a real change, never an entry for a no-op.
//
// # Consistency
//
// The snapshot is written durably before the history append. On a snapshot
// write failure nothing is committed; on a history write failure the
// snapshot (authoritative state) is already durable and the update reports
// PARTIAL_COMMIT - history under-reports rather than current state lying.
// In-memory state matches durable state after every reported outcome.
//
// # Concurrency
//
// A single process-wide mutex serializes read-modify-write-persist across
// the whole ledger. Readers copy under the same lock, so they never observe
// a half-updated record. This is the single-writer discipline the workload
// calls for: tens of carts, human-paced updates.
package ledger
