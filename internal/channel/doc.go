// Package channel implements the client/server simulator.
//
// An exchange is exactly one request/response round trip between a client
// built against one schema revision and a server built against another,
// standing in for live traffic between mismatched deployment versions.
// There are no retries, timeouts, or partial deliveries: a decode failure
// at either hop is terminal for the exchange, and a server-side failure
// means the client's response handler never runs.
//
// Client and Server are small interfaces with one implementation per
// revision, so revision-specific behavior is ordinary polymorphism rather
// than runtime-erased closures.
package channel
