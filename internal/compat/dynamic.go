package compat

import (
	"slices"

	"github.com/roach88/skew/internal/schema"
	"github.com/roach88/skew/internal/wire"
)

// SampleValue synthesizes a concrete value for a revision: one
// placeholder string per field. Field values never affect compatibility
// under the wire policy; only field presence does.
func SampleValue(rev schema.Revision) map[string]string {
	value := make(map[string]string, len(rev.Fields))
	for _, field := range rev.Fields {
		value[field] = "sample-" + field
	}
	return value
}

// CheckRevisions runs one directional check from revision descriptors
// alone: encode a sample value under encodeAs, then validate the bytes
// against decodeAs's field set. This is the descriptor-driven counterpart
// of Check for callers without Go fixture types, such as the audit CLI.
func CheckRevisions(encodeAs, decodeAs schema.Revision) Result {
	data := wire.Encode(SampleValue(encodeAs))

	required := slices.Clone(decodeAs.Fields)
	slices.Sort(required)

	if err := wire.DecodeFields(data, decodeAs.String(), required); err != nil {
		de, _ := wire.AsDecodeError(err)
		return Incompatible(de)
	}
	return Compatible
}

// AuditRevisions audits both directions between two revisions of the
// same record using synthesized sample values.
func AuditRevisions(oldRev, newRev schema.Revision) (Report, error) {
	changes, err := schema.Diff(oldRev, newRev)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Record:   oldRev.Record,
		Changes:  changes,
		Expected: schema.Predict(changes),
		Backward: CheckRevisions(oldRev, newRev),
		Forward:  CheckRevisions(newRev, oldRev),
	}, nil
}
