package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/skew/internal/wire"
)

func TestExchangeSameRevision(t *testing.T) {
	result, err := RunExchange(NewHelloClientV0("Greg"), NewHelloServerV0())
	require.NoError(t, err)
	assert.Equal(t, "Hello, Greg!", result)
}

// A v0 client keeps working against an upgraded server because the v1
// exchange schemas stayed decodable in both directions.
func TestServerUpgradeKeepsOldClientsWorking(t *testing.T) {
	result, err := RunExchange(NewHelloClientV0("Greg"), NewHelloServerV1())
	require.NoError(t, err)
	assert.Equal(t, "Hello, Greg!", result)
}

// The reverse deployment order: upgraded client, old server.
func TestClientUpgradeKeepsOldServerWorking(t *testing.T) {
	result, err := RunExchange(NewHelloClientV1("Ada"), NewHelloServerV0())
	require.NoError(t, err)
	assert.Equal(t, "Hello, Ada!", result)
}

// A server whose request schema gained a required field rejects old
// clients at the first hop; the client's handler never runs.
func TestRequestSchemaAdditionBreaksOldClients(t *testing.T) {
	client := &recordingClient{inner: NewGreetClientV0("Greg", "Go")}

	_, err := RunExchange(client, NewGreetServerV1())
	require.Error(t, err)
	assert.True(t, wire.IsMissingField(err))

	de, ok := wire.AsDecodeError(err)
	require.True(t, ok)
	assert.Equal(t, "favorite_song", de.Field)

	assert.False(t, client.handlerRan, "client handler must not run after a server-side failure")
}

// A client decode failure at the second hop is likewise terminal.
func TestResponseDecodeFailureIsTerminal(t *testing.T) {
	_, err := RunExchange(NewGreetClientV0("Greg", "Go"), garbageServer{})
	require.Error(t, err)
	assert.True(t, wire.IsMalformed(err))
}

func TestExchangeIsSingleShot(t *testing.T) {
	server := &countingServer{inner: NewHelloServerV0()}

	_, err := RunExchange(NewHelloClientV0("Greg"), server)
	require.NoError(t, err)
	assert.Equal(t, 1, server.calls)
}

// recordingClient wraps a Client and records whether its response handler
// was invoked.
type recordingClient struct {
	inner      Client
	handlerRan bool
}

func (c *recordingClient) Request() []byte { return c.inner.Request() }

func (c *recordingClient) HandleResponse(resp []byte) (string, error) {
	c.handlerRan = true
	return c.inner.HandleResponse(resp)
}

// garbageServer accepts anything and responds with bytes that are not
// valid encoded data.
type garbageServer struct{}

func (garbageServer) HandleRequest([]byte) ([]byte, error) {
	return []byte("!! not encoded !!"), nil
}

// countingServer wraps a Server and counts requests.
type countingServer struct {
	inner Server
	calls int
}

func (s *countingServer) HandleRequest(req []byte) ([]byte, error) {
	s.calls++
	return s.inner.HandleRequest(req)
}
