package schema

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// Revision descriptors can be declared in CUE for consumption by the audit
// CLI. The expected shape:
//
//	records: {
//		GreetingRequest: {
//			v0: fields: ["favorite_thing", "name"]
//			v1: fields: ["favorite_song", "favorite_thing", "name"]
//		}
//	}

// LoadRevisions reads revision descriptors from a CUE file.
// Revisions are returned sorted by record name, then version label.
func LoadRevisions(path string) ([]Revision, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read revisions file: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile %s: %s", path, cueerrors.Details(err, nil))
	}

	return CompileRevisions(v)
}

// CompileRevisions parses revision descriptors out of a CUE value.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
func CompileRevisions(v cue.Value) ([]Revision, error) {
	recordsVal := v.LookupPath(cue.ParsePath("records"))
	if !recordsVal.Exists() {
		return nil, fmt.Errorf("records struct is required")
	}

	recordsIter, err := recordsVal.Fields()
	if err != nil {
		return nil, fmt.Errorf("records must be a struct: %w", err)
	}

	var revisions []Revision
	for recordsIter.Next() {
		record := recordsIter.Label()

		versionsIter, err := recordsIter.Value().Fields()
		if err != nil {
			return nil, fmt.Errorf("record %q must be a struct of versions: %w", record, err)
		}

		count := 0
		for versionsIter.Next() {
			version := versionsIter.Label()
			fields, err := parseFieldList(versionsIter.Value())
			if err != nil {
				return nil, fmt.Errorf("record %q version %q: %w", record, version, err)
			}
			revisions = append(revisions, NewRevision(record, version, fields...))
			count++
		}
		if count == 0 {
			return nil, fmt.Errorf("record %q declares no versions", record)
		}
	}

	if len(revisions) == 0 {
		return nil, fmt.Errorf("records struct declares no records")
	}

	slices.SortFunc(revisions, func(a, b Revision) int {
		if c := strings.Compare(a.Record, b.Record); c != 0 {
			return c
		}
		return strings.Compare(a.Version, b.Version)
	})
	return revisions, nil
}

// parseFieldList extracts the fields list from one version declaration.
func parseFieldList(v cue.Value) ([]string, error) {
	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, fmt.Errorf("fields list is required")
	}

	iter, err := fieldsVal.List()
	if err != nil {
		return nil, fmt.Errorf("fields must be a list: %w", err)
	}

	var fields []string
	seen := make(map[string]bool)
	for iter.Next() {
		f, err := iter.Value().String()
		if err != nil {
			return nil, fmt.Errorf("field names must be strings: %w", err)
		}
		if f == "" {
			return nil, fmt.Errorf("field names must be non-empty")
		}
		if seen[f] {
			return nil, fmt.Errorf("duplicate field %q", f)
		}
		seen[f] = true
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("fields list must be non-empty")
	}
	return fields, nil
}

// Find returns the revision with the given record and version labels.
func Find(revisions []Revision, record, version string) (Revision, bool) {
	for _, r := range revisions {
		if r.Record == record && r.Version == version {
			return r, true
		}
	}
	return Revision{}, false
}

// Records returns the distinct record names in revisions, sorted.
func Records(revisions []Revision) []string {
	var names []string
	for _, r := range revisions {
		if !slices.Contains(names, r.Record) {
			names = append(names, r.Record)
		}
	}
	slices.Sort(names)
	return names
}
