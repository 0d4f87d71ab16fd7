package transport

import (
	"context"
	"github.com/ValentinKolb/nKV/rpc/common"
	"net"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests
// This function is called by a server transport layer when a request is received
// It takes the raw request (without framing) and returns the raw response
type ServerHandleFunc func(req []byte) (resp []byte)

// ServerRejectFunc is called instead of the ServerHandleFunc when a request could
// not be read completely (e.g. because it is too large). The returned response is
// still sent to the client.
type ServerRejectFunc func(err error) (resp []byte)

// IRPCServerTransport is the interface for the server transport layer
type IRPCServerTransport interface {
	// RegisterHandler registers the handlers for the transport layer
	RegisterHandler(handler ServerHandleFunc, reject ServerRejectFunc)
	// Listen creates a listener from the config and serves it until Shutdown is called
	Listen(config common.ServerConfig) error
	// Serve accepts connections on an existing listener until Shutdown is called
	Serve(listener net.Listener, config common.ServerConfig) error
	// Shutdown stops accepting connections and waits for in-flight requests.
	// Connections still open when ctx is done are closed forcefully.
	Shutdown(ctx context.Context) error
	// ActiveConnections returns the number of connections currently being handled
	ActiveConnections() int
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the client transport
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends a single request to the server and returns the response.
	// Every request uses its own connection.
	Send(req []byte) (resp []byte, err error)
	// Close releases the transport
	Close() error
}
