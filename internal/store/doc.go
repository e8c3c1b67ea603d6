// Package store implements the persistent-store simulator.
//
// A Log is an append-only sequence of encoded records backed by an
// in-memory SQLite database. The log is schema-agnostic: an entry is
// opaque bytes plus a sequence number and an opaque id, never a schema
// tag. Compatibility is enforced only at read time, by whichever
// revision the reader requests.
//
// ReadAll decodes every entry in insertion order and fails fast on the
// first entry that does not decode under the requested revision. This is
// the mechanism that demonstrates why stores punish schema changes that
// are not readable by deployed readers: one entry written under a
// revision that dropped a required field makes every older reader fail at
// that entry.
//
// Entries are never mutated or deleted. SQLite stands in for a real
// database; the :memory: DSN keeps each simulation isolated and
// disposable.
package store
