// Package v1 holds the updated revision of the greeting record family.
//
// Each record differs from its v0 counterpart by at most one structural
// change: GreetingRequest gains favorite_song, Greeting loses name, and
// the exchange records are unchanged.
package v1

import "github.com/roach88/skew/internal/schema"

// GreetingRequest adds favorite_song relative to v0. Under the strict
// wire policy the addition is forward-compatible only: v0 readers ignore
// the new field, v1 readers reject v0 data that lacks it.
type GreetingRequest struct {
	Name          string `json:"name"`
	FavoriteThing string `json:"favorite_thing"`
	FavoriteSong  string `json:"favorite_song"`
}

// Greeting drops name relative to v0. The removal is backward-compatible
// only: v1 readers ignore the surplus field in v0 data, v0 readers reject
// v1 data that lacks name.
type Greeting struct {
	Greeting string `json:"greeting"`
}

// HelloRequest is field-identical to v0; deleting name here would break
// forward compatibility for deployed v0 servers.
type HelloRequest struct {
	Name string `json:"name"`
}

// HelloReply is field-identical to v0.
type HelloReply struct {
	Greeting string `json:"greeting"`
}

// Revisions describes this package's field sets for the schema model.
func Revisions() []schema.Revision {
	return []schema.Revision{
		schema.NewRevision("GreetingRequest", "v1", "favorite_song", "favorite_thing", "name"),
		schema.NewRevision("Greeting", "v1", "greeting"),
		schema.NewRevision("HelloRequest", "v1", "name"),
		schema.NewRevision("HelloReply", "v1", "greeting"),
	}
}
