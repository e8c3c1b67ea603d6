package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func traceFixture() *Result {
	return &Result{
		Pass:     true,
		RunToken: "token",
		Trace: []TraceEvent{
			{Seq: 1, Kind: KindInsert, Outcome: "ok"},
			{Seq: 2, Kind: KindReadAll, Outcome: "ok"},
			{Seq: 3, Kind: KindReadAll, Outcome: "missing_field:name"},
		},
	}
}

func TestTraceContainsMatch(t *testing.T) {
	result := traceFixture()
	applyAssertions(result, []Assertion{
		{Type: AssertTraceContains, Event: KindReadAll, Outcome: "missing_field:name"},
	})
	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
}

func TestTraceContainsNoMatch(t *testing.T) {
	result := traceFixture()
	applyAssertions(result, []Assertion{
		{Type: AssertTraceContains, Event: KindExchange},
	})
	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 1)
}

func TestTraceCountExact(t *testing.T) {
	result := traceFixture()
	applyAssertions(result, []Assertion{
		{Type: AssertTraceCount, Event: KindReadAll, Count: 2},
	})
	assert.True(t, result.Pass)
}

func TestTraceCountWithOutcomeFilter(t *testing.T) {
	result := traceFixture()
	applyAssertions(result, []Assertion{
		{Type: AssertTraceCount, Event: KindReadAll, Outcome: "ok", Count: 1},
	})
	assert.True(t, result.Pass)
}

func TestTraceCountMismatch(t *testing.T) {
	result := traceFixture()
	applyAssertions(result, []Assertion{
		{Type: AssertTraceCount, Event: KindInsert, Count: 3},
	})
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "expected 3 insert events, found 1")
}

func TestValidateAssertionErrors(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		wantErr   string
	}{
		{"missing type", Assertion{}, "type is required"},
		{"unknown type", Assertion{Type: "bogus"}, "unknown assertion type"},
		{"contains without event", Assertion{Type: AssertTraceContains}, "event is required"},
		{"count without event", Assertion{Type: AssertTraceCount, Count: 1}, "event is required"},
		{"negative count", Assertion{Type: AssertTraceCount, Event: KindInsert, Count: -1}, "non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAssertion(0, &tt.assertion)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
