// Package schema models record revisions and the compatibility rules that
// follow from the wire codec policy.
//
// A Revision is a named field set for a logical record at one point in
// time. Diff computes the structural difference between two revisions as
// a list of Change values (fields added, fields dropped). Predict turns a
// change list into the expected directional compatibility under the fixed
// policy of internal/wire: unknown fields are ignored on decode, missing
// required fields are rejected. Under that policy adding a field is
// forward-compatible only, dropping a field is backward-compatible only,
// and a change that does both is compatible in neither direction.
//
// The table is derived, not assumed: internal/compat verifies every cell
// against real encode/decode runs over the fixture records.
//
// Revisions can also be declared in CUE files and loaded with
// LoadRevisions, which is how the audit CLI consumes them.
package schema
