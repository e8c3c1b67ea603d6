package channel

// A Client holds a pre-encoded outbound request, fixed at construction,
// and a handler for the inbound response bytes.
type Client interface {
	// Request returns the encoded request body to deliver to the server.
	Request() []byte

	// HandleResponse decodes the server's response bytes and produces the
	// user-facing result. A decode failure is returned, not recovered.
	HandleResponse(resp []byte) (string, error)
}

// A Server turns inbound request bytes into an encoded response body.
type Server interface {
	// HandleRequest decodes the request and returns the encoded response.
	// A request decode failure is returned and terminates the exchange.
	HandleRequest(req []byte) ([]byte, error)
}

// RunExchange delivers the client's request to the server and the
// server's response back to the client.
//
// If the server fails to decode the request, the exchange fails with that
// error and the client's handler is never invoked. Otherwise the
// exchange's result is whatever the client's handler returns.
func RunExchange(client Client, server Server) (string, error) {
	resp, err := server.HandleRequest(client.Request())
	if err != nil {
		return "", err
	}
	return client.HandleResponse(resp)
}
