// Package harness runs schema-evolution scenarios end to end.
//
// A scenario is a YAML file describing a sequence of steps against the
// fixture records: store inserts and reads under named revisions,
// directional compatibility checks, and client/server exchanges. The
// harness executes the steps in order, records every outcome in a trace,
// and validates expectations and assertions.
//
// # Scenario format
//
//	name: greeting_removal
//	description: "Removing a field breaks old readers of the store"
//	run_token: fixed-token-for-goldens
//	steps:
//	  - insert:
//	      record: Greeting
//	      revision: v0
//	      value: { greeting: "Hi Greg", name: "Greg" }
//	  - read_all:
//	      record: Greeting
//	      revision: v0
//	      expect: ok
//	  - check:
//	      record: Greeting
//	      encode: v0
//	      decode: v1
//	      value: { greeting: "Hi Greg", name: "Greg" }
//	      expect: ok
//	  - exchange:
//	      client: hello_v0
//	      server: hello_v1
//	      name: Greg
//	      expect: ok
//	assertions:
//	  - type: trace_count
//	    event: read_all
//	    count: 1
//
// Step outcomes are written as "ok", "missing_field:<name>", or
// "malformed"; expect clauses compare against those strings.
//
// # Determinism
//
// Traces are stamped with a logical clock (internal/testutil.Clock), the
// codec output is canonical, and a scenario's run token defaults to a
// uuid only when not fixed in the file. Fixing the token makes repeated
// runs byte-identical, which golden comparison via goldie relies on.
package harness
