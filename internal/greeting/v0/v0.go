// Package v0 holds the original revision of the greeting record family.
//
// These are fixture types: they exist so the compatibility model has a
// concrete evolution history to hold against. Package v1 evolves each
// record by exactly one structural change.
package v0

import "github.com/roach88/skew/internal/schema"

// GreetingRequest asks for a greeting. v1 adds favorite_song.
type GreetingRequest struct {
	Name          string `json:"name"`
	FavoriteThing string `json:"favorite_thing"`
}

// Greeting is the reply record. v1 drops name.
type Greeting struct {
	Name     string `json:"name"`
	Greeting string `json:"greeting"`
}

// HelloRequest is the exchange request fixture. Its v1 revision is
// unchanged, so client and server deployments may mix revisions freely.
type HelloRequest struct {
	Name string `json:"name"`
}

// HelloReply is the exchange response fixture, likewise unchanged in v1.
type HelloReply struct {
	Greeting string `json:"greeting"`
}

// Revisions describes this package's field sets for the schema model.
func Revisions() []schema.Revision {
	return []schema.Revision{
		schema.NewRevision("GreetingRequest", "v0", "favorite_thing", "name"),
		schema.NewRevision("Greeting", "v0", "greeting", "name"),
		schema.NewRevision("HelloRequest", "v0", "name"),
		schema.NewRevision("HelloReply", "v0", "greeting"),
	}
}
