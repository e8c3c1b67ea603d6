package compat

import (
	"fmt"

	"github.com/roach88/skew/internal/schema"
	"github.com/roach88/skew/internal/wire"
)

// Result is the outcome of one directional compatibility check.
type Result struct {
	// Compatible reports whether the decode succeeded.
	Compatible bool

	// Err holds the decode failure when Compatible is false.
	Err *wire.DecodeError
}

// Incompatible creates a failed Result carrying the decode error.
func Incompatible(err *wire.DecodeError) Result {
	return Result{Compatible: false, Err: err}
}

// Compatible is the successful Result.
var Compatible = Result{Compatible: true}

// String renders the result for reports and traces.
func (r Result) String() string {
	if r.Compatible {
		return "compatible"
	}
	return fmt.Sprintf("incompatible (%v)", r.Err)
}

// Check encodes value under schema A and attempts to decode the bytes
// under schema B. The check is directional: it says nothing about B to A.
func Check[A, B any](value A) Result {
	data := wire.Encode(value)
	if _, err := wire.Decode[B](data); err != nil {
		de, ok := wire.AsDecodeError(err)
		if !ok {
			// The codec contract promises *DecodeError for every decode
			// failure; anything else is a bug in the adapter.
			panic(fmt.Sprintf("compat: decode returned non-DecodeError: %v", err))
		}
		return Incompatible(de)
	}
	return Compatible
}

// Report is the result of a full two-direction audit of one record's
// revision pair.
type Report struct {
	// Record is the logical record name.
	Record string

	// Changes is the structural diff going from the old revision to the
	// new one.
	Changes []schema.Change

	// Expected is the compatibility the schema model predicts from
	// Changes.
	Expected schema.Expectation

	// Backward is the observed outcome of decoding old-encoded data under
	// the new revision.
	Backward Result

	// Forward is the observed outcome of decoding new-encoded data under
	// the old revision.
	Forward Result
}

// Observed returns the directional compatibility the audit actually
// measured.
func (r Report) Observed() schema.Expectation {
	return schema.Expectation{
		Backward: r.Backward.Compatible,
		Forward:  r.Forward.Compatible,
	}
}

// Agrees reports whether the observed outcomes match the prediction
// derived from the structural diff.
func (r Report) Agrees() bool {
	return r.Observed() == r.Expected
}

// Audit checks both directions between two revisions of the same record.
// oldValue must be a concrete value of the old revision's type, newValue
// of the new revision's type; oldRev and newRev are their descriptors.
func Audit[Old, New any](oldValue Old, newValue New, oldRev, newRev schema.Revision) (Report, error) {
	changes, err := schema.Diff(oldRev, newRev)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Record:   oldRev.Record,
		Changes:  changes,
		Expected: schema.Predict(changes),
		Backward: Check[Old, New](oldValue),
		Forward:  Check[New, Old](newValue),
	}, nil
}
