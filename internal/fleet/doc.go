// Package fleet defines the SunCarts domain types: the fixed cart registry,
// the closed status set with its fallback value, cart records, history
// entries, and the ledger error taxonomy.
//
// The registry and status set are configuration, fixed at process start.
// Carts are never added or removed at runtime, and a cart's status is always
// a member of the current status set - unrecognized values (stale persisted
// data, malformed client input) are coerced to the fallback, never rejected.
package fleet
