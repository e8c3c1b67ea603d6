package schema

import (
	"fmt"
	"slices"
)

// Revision is a specific named field set for a logical record.
type Revision struct {
	// Record is the logical record name, shared by every revision of it.
	Record string

	// Version labels this revision (e.g. "v0", "v1").
	Version string

	// Fields lists the record's required field names. Order is not
	// significant; the wire codec emits keys sorted regardless.
	Fields []string
}

// NewRevision creates a Revision with its own copy of fields.
func NewRevision(record, version string, fields ...string) Revision {
	return Revision{
		Record:  record,
		Version: version,
		Fields:  slices.Clone(fields),
	}
}

// String returns "Record@version" for diagnostics.
func (r Revision) String() string {
	return fmt.Sprintf("%s@%s", r.Record, r.Version)
}

// Has reports whether the revision requires the named field.
func (r Revision) Has(field string) bool {
	return slices.Contains(r.Fields, field)
}

// A Change is one structural difference between two revisions of the same
// record. Only AddField and DropField implement it.
type Change interface {
	change() // sealed
	Field() string
}

// AddField describes a field present in the target revision but not the
// source revision.
type AddField struct {
	Name string
}

// DropField describes a field present in the source revision but not the
// target revision.
type DropField struct {
	Name string
}

func (AddField) change()  {}
func (DropField) change() {}

// Field returns the added field name.
func (c AddField) Field() string { return c.Name }

// Field returns the dropped field name.
func (c DropField) Field() string { return c.Name }

// Diff computes the structural changes going from revision a to revision b.
// Both revisions must belong to the same logical record. Changes are
// reported in sorted field order, drops before adds, for deterministic
// output.
func Diff(a, b Revision) ([]Change, error) {
	if a.Record != b.Record {
		return nil, fmt.Errorf("cannot diff %s against %s: different records", a, b)
	}

	var changes []Change
	dropped := make([]string, 0)
	added := make([]string, 0)

	for _, f := range a.Fields {
		if !b.Has(f) {
			dropped = append(dropped, f)
		}
	}
	for _, f := range b.Fields {
		if !a.Has(f) {
			added = append(added, f)
		}
	}
	slices.Sort(dropped)
	slices.Sort(added)

	for _, f := range dropped {
		changes = append(changes, DropField{Name: f})
	}
	for _, f := range added {
		changes = append(changes, AddField{Name: f})
	}
	return changes, nil
}

// Expectation is the predicted directional compatibility between two
// revisions.
//
// Backward means the newer revision can decode data encoded by the older
// one; Forward means the older revision can decode data encoded by the
// newer one.
type Expectation struct {
	Backward bool
	Forward  bool
}

// Predict derives the expected compatibility of a change list under the
// fixed wire policy (unknown fields ignored, missing required fields
// rejected):
//
//   - no changes: compatible both ways
//   - fields added only: forward-compatible, not backward-compatible
//     (the new revision requires the added field, which old data lacks;
//     the old revision ignores the surplus field in new data)
//   - fields dropped only: backward-compatible, not forward-compatible
//     (the new revision ignores the surplus field in old data; the old
//     revision requires the dropped field, which new data lacks)
//   - both added and dropped: compatible in neither direction
func Predict(changes []Change) Expectation {
	var added, dropped bool
	for _, c := range changes {
		switch c.(type) {
		case AddField:
			added = true
		case DropField:
			dropped = true
		}
	}
	return Expectation{
		Backward: !added,
		Forward:  !dropped,
	}
}
