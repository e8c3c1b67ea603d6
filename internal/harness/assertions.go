package harness

import "fmt"

// Assertion validates the final trace of a scenario run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Event filters by step kind (insert, read_all, check, exchange).
	Event string `yaml:"event,omitempty"`

	// Outcome filters by outcome string. Empty matches any outcome.
	Outcome string `yaml:"outcome,omitempty"`

	// Count is the expected number of matches (trace_count only).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	// AssertTraceContains requires at least one matching trace event.
	AssertTraceContains = "trace_contains"

	// AssertTraceCount requires exactly Count matching trace events.
	AssertTraceCount = "trace_count"
)

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertTraceContains:
		if a.Event == "" {
			return fmt.Errorf("assertions[%d]: event is required for trace_contains", index)
		}
	case AssertTraceCount:
		if a.Event == "" {
			return fmt.Errorf("assertions[%d]: event is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

// applyAssertions checks every assertion against the trace, recording
// failures on the result.
func applyAssertions(result *Result, assertions []Assertion) {
	for i, a := range assertions {
		matches := 0
		for _, event := range result.Trace {
			if event.Kind != a.Event {
				continue
			}
			if a.Outcome != "" && event.Outcome != a.Outcome {
				continue
			}
			matches++
		}

		switch a.Type {
		case AssertTraceContains:
			if matches == 0 {
				result.AddError("assertions[%d]: no %s event with outcome %q in trace", i, a.Event, a.Outcome)
			}
		case AssertTraceCount:
			if matches != a.Count {
				result.AddError("assertions[%d]: expected %d %s events, found %d", i, a.Count, a.Event, matches)
			}
		}
	}
}
