// Package store provides a SQLite-backed cache of transform results.
//
// A record is keyed by the content hash of the input tree and the hash of
// the options it was transformed with. Records are written once: a second
// Put for the same key is silently ignored, so concurrent runs over the same
// input converge on a single row.
//
// # Ordering
//
// Every listing uses ORDER BY seq ASC, id COLLATE BINARY ASC. seq is a
// logical counter assigned by the writer, never a timestamp.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Hashes are computed by internal/ast using canonical JSON and SHA-256 with
// domain separation.
package store
