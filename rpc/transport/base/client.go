package base

import (
	"fmt"
	"github.com/ValentinKolb/nKV/rpc/common"
	"github.com/ValentinKolb/nKV/rpc/transport"
	"io"
	"math/rand"
	"net"
	"sync/atomic"
	"time"
)

// maxResponseSize bounds the size of a reply the client accepts
const maxResponseSize = 64 * 1024 * 1024

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection to the endpoint
	Connect(endpoint string, timeout time.Duration) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp)
type clientTransport struct {
	connector         IClientConnector
	config            common.ClientConfig
	nextEndpointIndex uint64 // Atomic counter for Round Robin
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the specified connector
func NewBaseClientTransport(connector IClientConnector) transport.IRPCClientTransport {
	return &clientTransport{
		connector: connector,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	if len(config.Transport.Endpoints) == 0 {
		return fmt.Errorf("no endpoints provided")
	}
	for _, endpoint := range config.Transport.Endpoints {
		if endpoint == "" {
			return fmt.Errorf("empty endpoint in %v", config.Transport.Endpoints)
		}
	}

	// Store the config, connections are created per request
	t.config = config
	return nil
}

func (t *clientTransport) Send(req []byte) ([]byte, error) {
	if len(t.config.Transport.Endpoints) == 0 {
		return nil, fmt.Errorf("transport is not connected")
	}

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second

	// Retry logic with exponential backoff. Only establishing the connection is
	// retried: once the request is written the server may already have applied it.
	var lastErr error
	attempts := t.config.Transport.RetryCount + 1
	backoffMs := 50

	for i := 0; i < attempts; i++ {
		endpoint := t.getNextEndpoint()

		conn, err := t.connector.Connect(endpoint, timeout)
		if err == nil {
			return t.exchange(conn, req, timeout)
		}

		lastErr = err
		Logger.Debugf("Connection attempt %d/%d to %s failed: %v", i+1, attempts, endpoint, err)

		if i < attempts-1 {
			// Exponential backoff with a small random jitter (+-10%)
			jitter := float64(backoffMs) * (0.9 + 0.2*rand.Float64())
			time.Sleep(time.Duration(jitter) * time.Millisecond)
			backoffMs *= 2
		}
	}

	// All attempts failed
	return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempts, lastErr)
}

func (t *clientTransport) Close() error {
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// exchange writes the request, half-closes the connection and reads the reply until EOF
func (t *clientTransport) exchange(conn net.Conn, req []byte, timeout time.Duration) ([]byte, error) {
	defer conn.Close()

	if err := t.connector.UpgradeConnection(conn, t.config); err != nil {
		Logger.Warningf("Failed to upgrade connection: %v", err)
	}

	if timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
			return nil, fmt.Errorf("failed to set deadline: %w", err)
		}
	}

	if err := writeMessage(conn, req); err != nil {
		return nil, fmt.Errorf("failed to write request: %w", err)
	}
	if err := closeWrite(conn); err != nil {
		return nil, fmt.Errorf("failed to close writing side: %w", err)
	}

	resp, err := io.ReadAll(io.LimitReader(conn, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("connection closed without a response")
	}
	return resp, nil
}

// getNextEndpoint returns the endpoints in round robin order
func (t *clientTransport) getNextEndpoint() string {
	endpoints := t.config.Transport.Endpoints
	index := atomic.AddUint64(&t.nextEndpointIndex, 1) - 1
	return endpoints[index%uint64(len(endpoints))]
}
