package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/skew/internal/wire"
)

// Snapshot renders a result as canonical JSON for golden comparison.
// Empty fields are omitted so snapshots stay readable; canonical key
// ordering makes them byte-stable across runs.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	trace := make([]any, len(result.Trace))
	for i, event := range result.Trace {
		m := map[string]any{
			"seq":     event.Seq,
			"kind":    event.Kind,
			"outcome": event.Outcome,
		}
		if event.Record != "" {
			m["record"] = event.Record
		}
		if event.Revision != "" {
			m["revision"] = event.Revision
		}
		if event.Encode != "" {
			m["encode"] = event.Encode
		}
		if event.Decode != "" {
			m["decode"] = event.Decode
		}
		if event.Client != "" {
			m["client"] = event.Client
		}
		if event.Server != "" {
			m["server"] = event.Server
		}
		if event.Detail != "" {
			m["detail"] = event.Detail
		}
		trace[i] = m
	}

	snapshot := map[string]any{
		"scenario_name": scenarioName,
		"run_token":     result.RunToken,
		"pass":          result.Pass,
		"trace":         trace,
	}
	if len(result.Errors) > 0 {
		errs := make([]any, len(result.Errors))
		for i, e := range result.Errors {
			errs[i] = e
		}
		snapshot["errors"] = errs
	}

	return wire.JSON.Marshal(snapshot)
}

// RunWithGolden executes a scenario and compares its trace snapshot
// against testdata/golden/{scenario.Name}.golden.
//
// Scenarios used with goldens must fix run_token; regenerate with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}

	data, err := Snapshot(scenario.Name, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
