// Package storage provides the flat-file persistence backend: one JSON file
// per logical store in a data directory, every write performed as an atomic
// replace (serialize to a temp file in the same directory, fsync, rename).
//
// A reader therefore always observes either the fully-old or the fully-new
// file content, never a partial write, assuming the filesystem's same-volume
// rename is atomic.
//
// Snapshot file layout: {"Cart 1": {"status": ..., "comment": ...}, ...}
// History file layout:  {"Cart 1": [entry, ...], ...}, oldest-first.
package storage
