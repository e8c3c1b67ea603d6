package channel

import (
	"fmt"

	v0 "github.com/roach88/skew/internal/greeting/v0"
	v1 "github.com/roach88/skew/internal/greeting/v1"
	"github.com/roach88/skew/internal/wire"
)

// helloClientV0 is a client deployment built against the v0 exchange
// schemas.
type helloClientV0 struct {
	request []byte
}

// NewHelloClientV0 creates a v0 client whose request body is encoded at
// construction time.
func NewHelloClientV0(name string) Client {
	return &helloClientV0{
		request: wire.Encode(v0.HelloRequest{Name: name}),
	}
}

func (c *helloClientV0) Request() []byte { return c.request }

func (c *helloClientV0) HandleResponse(resp []byte) (string, error) {
	reply, err := wire.Decode[v0.HelloReply](resp)
	if err != nil {
		return "", err
	}
	return reply.Greeting, nil
}

// helloClientV1 is the upgraded client deployment.
type helloClientV1 struct {
	request []byte
}

// NewHelloClientV1 creates a v1 client.
func NewHelloClientV1(name string) Client {
	return &helloClientV1{
		request: wire.Encode(v1.HelloRequest{Name: name}),
	}
}

func (c *helloClientV1) Request() []byte { return c.request }

func (c *helloClientV1) HandleResponse(resp []byte) (string, error) {
	reply, err := wire.Decode[v1.HelloReply](resp)
	if err != nil {
		return "", err
	}
	return reply.Greeting, nil
}

// helloServerV0 answers requests using the v0 exchange schemas.
type helloServerV0 struct{}

// NewHelloServerV0 creates a v0 server.
func NewHelloServerV0() Server { return helloServerV0{} }

func (helloServerV0) HandleRequest(req []byte) ([]byte, error) {
	r, err := wire.Decode[v0.HelloRequest](req)
	if err != nil {
		return nil, err
	}
	return wire.Encode(v0.HelloReply{Greeting: greet(r.Name)}), nil
}

// helloServerV1 answers requests using the v1 exchange schemas.
type helloServerV1 struct{}

// NewHelloServerV1 creates a v1 server.
func NewHelloServerV1() Server { return helloServerV1{} }

func (helloServerV1) HandleRequest(req []byte) ([]byte, error) {
	r, err := wire.Decode[v1.HelloRequest](req)
	if err != nil {
		return nil, err
	}
	return wire.Encode(v1.HelloReply{Greeting: greet(r.Name)}), nil
}

// greetServerV1 is a server whose request schema gained a required field
// (v1 GreetingRequest). It rejects requests from v0 clients, which is the
// failure mode the exchange simulator exists to demonstrate.
type greetServerV1 struct{}

// NewGreetServerV1 creates a server requiring the v1 greeting request.
func NewGreetServerV1() Server { return greetServerV1{} }

func (greetServerV1) HandleRequest(req []byte) ([]byte, error) {
	r, err := wire.Decode[v1.GreetingRequest](req)
	if err != nil {
		return nil, err
	}
	return wire.Encode(v1.Greeting{Greeting: greet(r.Name)}), nil
}

// greetClientV0 sends the v0 greeting request and expects the v0 reply.
type greetClientV0 struct {
	request []byte
}

// NewGreetClientV0 creates a client pinned to the v0 greeting schemas.
func NewGreetClientV0(name, favoriteThing string) Client {
	return &greetClientV0{
		request: wire.Encode(v0.GreetingRequest{
			Name:          name,
			FavoriteThing: favoriteThing,
		}),
	}
}

func (c *greetClientV0) Request() []byte { return c.request }

func (c *greetClientV0) HandleResponse(resp []byte) (string, error) {
	reply, err := wire.Decode[v0.Greeting](resp)
	if err != nil {
		return "", err
	}
	return reply.Greeting, nil
}

func greet(name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}
