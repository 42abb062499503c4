// Package auth provides the login gate: a small persisted account table
// (username -> password hash + role), bcrypt verification, and in-memory
// session tokens.
//
// The one invariant worth stating: at least one admin account exists at all
// times. It is enforced here, by the account manager, on delete and on role
// change - never by the ledger.
package auth
