package harness

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/skew/internal/channel"
	"github.com/roach88/skew/internal/store"
	"github.com/roach88/skew/internal/testutil"
	"github.com/roach88/skew/internal/wire"
)

// TraceEvent records one executed step and its outcome.
type TraceEvent struct {
	Seq  int64  `json:"seq"`
	Kind string `json:"kind"`

	// Record and revision references, depending on kind.
	Record   string `json:"record,omitempty"`
	Revision string `json:"revision,omitempty"`
	Encode   string `json:"encode,omitempty"`
	Decode   string `json:"decode,omitempty"`
	Client   string `json:"client,omitempty"`
	Server   string `json:"server,omitempty"`

	// Outcome is "ok", "missing_field:<name>" or "malformed".
	Outcome string `json:"outcome"`

	// Detail carries step-specific context: entry counts for reads, the
	// failing entry position, or the exchange result.
	Detail string `json:"detail,omitempty"`
}

// Step kinds as they appear in traces.
const (
	KindInsert   = "insert"
	KindReadAll  = "read_all"
	KindCheck    = "check"
	KindExchange = "exchange"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	// RunToken identifies the run; fixed by the scenario for goldens.
	RunToken string `json:"run_token"`

	// Trace lists every executed step in order.
	Trace []TraceEvent `json:"trace"`

	// Errors lists expectation and assertion failures. Empty when Pass.
	Errors []string `json:"errors,omitempty"`
}

// AddError records a validation failure and marks the result failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes a scenario against a fresh store log and returns its
// result. The returned error reports infrastructure failures (bad step
// references, database errors), never expectation mismatches, which are
// recorded on the Result instead.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	log, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("open store log: %w", err)
	}
	defer log.Close()

	runToken := scenario.RunToken
	if runToken == "" {
		runToken = uuid.NewString()
	}

	result := &Result{Pass: true, RunToken: runToken, Trace: []TraceEvent{}}
	clock := testutil.NewClock()

	for i, step := range scenario.Steps {
		var event TraceEvent
		var expect string
		var err error

		switch {
		case step.Insert != nil:
			event, err = runInsert(ctx, log, step.Insert)
		case step.ReadAll != nil:
			event, err = runReadAll(ctx, log, step.ReadAll)
			expect = step.ReadAll.Expect
		case step.Check != nil:
			event, err = runCheck(step.Check)
			expect = step.Check.Expect
		case step.Exchange != nil:
			event, err = runExchange(step.Exchange)
			expect = step.Exchange.Expect
		}
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}

		event.Seq = clock.Next()
		result.Trace = append(result.Trace, event)

		if expect != "" && event.Outcome != expect {
			result.AddError("steps[%d]: expected outcome %q, got %q", i, expect, event.Outcome)
		}
	}

	applyAssertions(result, scenario.Assertions)
	return result, nil
}

func runInsert(ctx context.Context, log *store.Log, step *InsertStep) (TraceEvent, error) {
	b, err := lookupBinding(step.Record, step.Revision)
	if err != nil {
		return TraceEvent{}, err
	}
	body, err := encodeValue(b.revision, step.Value)
	if err != nil {
		return TraceEvent{}, err
	}
	if err := log.Append(ctx, body); err != nil {
		return TraceEvent{}, err
	}
	return TraceEvent{
		Kind:     KindInsert,
		Record:   step.Record,
		Revision: step.Revision,
		Outcome:  "ok",
	}, nil
}

func runReadAll(ctx context.Context, log *store.Log, step *ReadAllStep) (TraceEvent, error) {
	b, err := lookupBinding(step.Record, step.Revision)
	if err != nil {
		return TraceEvent{}, err
	}
	entries, err := log.Entries(ctx)
	if err != nil {
		return TraceEvent{}, err
	}

	event := TraceEvent{
		Kind:     KindReadAll,
		Record:   step.Record,
		Revision: step.Revision,
	}

	// Fail-fast: stop at the first entry the revision cannot decode.
	for i, body := range entries {
		if err := b.decode(body); err != nil {
			event.Outcome = outcomeOf(err)
			event.Detail = fmt.Sprintf("failed at entry %d of %d", i, len(entries))
			return event, nil
		}
	}
	event.Outcome = "ok"
	event.Detail = fmt.Sprintf("read %d entries", len(entries))
	return event, nil
}

func runCheck(step *CheckStep) (TraceEvent, error) {
	encodeAs, err := lookupBinding(step.Record, step.Encode)
	if err != nil {
		return TraceEvent{}, err
	}
	decodeAs, err := lookupBinding(step.Record, step.Decode)
	if err != nil {
		return TraceEvent{}, err
	}

	body, err := encodeValue(encodeAs.revision, step.Value)
	if err != nil {
		return TraceEvent{}, err
	}

	return TraceEvent{
		Kind:    KindCheck,
		Record:  step.Record,
		Encode:  step.Encode,
		Decode:  step.Decode,
		Outcome: outcomeOf(decodeAs.decode(body)),
	}, nil
}

func runExchange(step *ExchangeStep) (TraceEvent, error) {
	newClient, ok := clients[step.Client]
	if !ok {
		return TraceEvent{}, fmt.Errorf("unknown client %q", step.Client)
	}
	newServer, ok := servers[step.Server]
	if !ok {
		return TraceEvent{}, fmt.Errorf("unknown server %q", step.Server)
	}

	event := TraceEvent{
		Kind:   KindExchange,
		Client: step.Client,
		Server: step.Server,
	}

	reply, err := channel.RunExchange(newClient(step.Name), newServer())
	if err != nil {
		if _, ok := wire.AsDecodeError(err); !ok {
			return TraceEvent{}, err
		}
		event.Outcome = outcomeOf(err)
		return event, nil
	}
	event.Outcome = "ok"
	event.Detail = reply
	return event, nil
}

// outcomeOf renders a decode result as a trace outcome string.
func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	de, ok := wire.AsDecodeError(err)
	if !ok {
		// Callers separate infrastructure errors before this point.
		return "error"
	}
	if de.Code == wire.ErrCodeMissingField {
		return "missing_field:" + de.Field
	}
	return "malformed"
}
