package harness

import (
	"fmt"
	"slices"

	"github.com/roach88/skew/internal/channel"
	v0 "github.com/roach88/skew/internal/greeting/v0"
	v1 "github.com/roach88/skew/internal/greeting/v1"
	"github.com/roach88/skew/internal/schema"
	"github.com/roach88/skew/internal/wire"
)

// binding ties a revision descriptor to a typed strict decode of its
// fixture type. Encoding goes through the descriptor's field set (values
// are flat string records), so the two sides share one source of truth
// for which fields exist.
type binding struct {
	revision schema.Revision
	decode   func([]byte) error
}

func typedDecode[T any]() func([]byte) error {
	return func(data []byte) error {
		_, err := wire.Decode[T](data)
		return err
	}
}

// bindings indexes every fixture revision the harness can execute steps
// against, keyed by record name then revision label.
var bindings = map[string]map[string]binding{
	"GreetingRequest": {
		"v0": {mustRevision(v0.Revisions(), "GreetingRequest"), typedDecode[v0.GreetingRequest]()},
		"v1": {mustRevision(v1.Revisions(), "GreetingRequest"), typedDecode[v1.GreetingRequest]()},
	},
	"Greeting": {
		"v0": {mustRevision(v0.Revisions(), "Greeting"), typedDecode[v0.Greeting]()},
		"v1": {mustRevision(v1.Revisions(), "Greeting"), typedDecode[v1.Greeting]()},
	},
	"HelloRequest": {
		"v0": {mustRevision(v0.Revisions(), "HelloRequest"), typedDecode[v0.HelloRequest]()},
		"v1": {mustRevision(v1.Revisions(), "HelloRequest"), typedDecode[v1.HelloRequest]()},
	},
	"HelloReply": {
		"v0": {mustRevision(v0.Revisions(), "HelloReply"), typedDecode[v0.HelloReply]()},
		"v1": {mustRevision(v1.Revisions(), "HelloReply"), typedDecode[v1.HelloReply]()},
	},
}

func mustRevision(revisions []schema.Revision, record string) schema.Revision {
	for _, r := range revisions {
		if r.Record == record {
			return r
		}
	}
	panic(fmt.Sprintf("harness: fixture revision for %s not registered", record))
}

// lookupBinding resolves a (record, revision) step reference.
func lookupBinding(record, revision string) (binding, error) {
	revs, ok := bindings[record]
	if !ok {
		return binding{}, fmt.Errorf("unknown record %q", record)
	}
	b, ok := revs[revision]
	if !ok {
		return binding{}, fmt.Errorf("record %q has no revision %q", record, revision)
	}
	return b, nil
}

// encodeValue encodes a flat string record under a revision's field set.
// The value must supply exactly the revision's fields: a fixture value
// that drifts from its declared field set would silently test the wrong
// schema.
func encodeValue(rev schema.Revision, value map[string]string) ([]byte, error) {
	for field := range value {
		if !rev.Has(field) {
			return nil, fmt.Errorf("value field %q is not part of %s", field, rev)
		}
	}
	for _, field := range rev.Fields {
		if _, ok := value[field]; !ok {
			return nil, fmt.Errorf("value is missing field %q required by %s", field, rev)
		}
	}
	return wire.Encode(value), nil
}

// clients names the client deployments available to exchange steps.
var clients = map[string]func(name string) channel.Client{
	"hello_v0": channel.NewHelloClientV0,
	"hello_v1": channel.NewHelloClientV1,
	"greet_v0": func(name string) channel.Client {
		return channel.NewGreetClientV0(name, "Go")
	},
}

// servers names the server deployments available to exchange steps.
var servers = map[string]func() channel.Server{
	"hello_v0": channel.NewHelloServerV0,
	"hello_v1": channel.NewHelloServerV1,
	"greet_v1": channel.NewGreetServerV1,
}

// PeerNames returns the registered client and server names, sorted, for
// diagnostics in the CLI.
func PeerNames() (clientNames, serverNames []string) {
	for name := range clients {
		clientNames = append(clientNames, name)
	}
	for name := range servers {
		serverNames = append(serverNames, name)
	}
	slices.Sort(clientNames)
	slices.Sort(serverNames)
	return clientNames, serverNames
}
