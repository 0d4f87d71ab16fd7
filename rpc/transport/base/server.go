package base

import (
	"context"
	"errors"
	"fmt"
	"github.com/ValentinKolb/nKV/rpc/common"
	"github.com/ValentinKolb/nKV/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

var Logger = logger.GetLogger("transport/rpc")

// drainLimit bounds how much of a rejected request is read before the connection is closed
const drainLimit = 1 << 20

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector  IServerConnector
	handler    transport.ServerHandleFunc
	reject     transport.ServerRejectFunc
	config     common.ServerConfig
	bufferPool *sync.Pool

	listenerMu sync.Mutex
	listener   net.Listener
	stopping   atomic.Bool

	// connections that are currently handled, keyed by connection id
	conns      *xsync.MapOf[uint64, net.Conn]
	nextConnID atomic.Uint64
	wg         sync.WaitGroup
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport for the given connector
func NewBaseServerTransport(connector IServerConnector) transport.IRPCServerTransport {
	return &serverTransport{
		connector: connector,
		conns:     xsync.NewMapOf[uint64, net.Conn](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc, reject transport.ServerRejectFunc) {
	t.handler = handler
	t.reject = reject
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	// Create listener using the connector
	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	return t.Serve(listener, config)
}

func (t *serverTransport) Serve(listener net.Listener, config common.ServerConfig) error {
	if t.handler == nil || t.reject == nil {
		return fmt.Errorf("no handler registered")
	}

	t.config = config
	maxSize := config.Transport.MaxMessageSize
	if maxSize <= 0 {
		maxSize = common.DefaultMaxMessageSize
	}
	t.bufferPool = &sync.Pool{
		New: func() interface{} {
			return make([]byte, maxSize+1)
		},
	}

	t.listenerMu.Lock()
	t.listener = listener
	t.listenerMu.Unlock()

	// Shutdown was called before the listener was known
	if t.stopping.Load() {
		return listener.Close()
	}

	Logger.Infof("Starting %s server on %s", t.connector.GetName(), listener.Addr())

	// Accept connections
	for {
		conn, err := listener.Accept()
		if err != nil {
			if t.stopping.Load() || errors.Is(err, net.ErrClosed) {
				Logger.Infof("Stopped accepting connections on %s", listener.Addr())
				return nil
			}
			Logger.Errorf("Accept error: %v", err)
			continue
		}

		if err := t.connector.UpgradeConnection(conn, config); err != nil {
			Logger.Warningf("Failed to upgrade connection from %s: %v", conn.RemoteAddr(), err)
		}

		// Connections accepted after Shutdown started are not handled.
		// listenerMu orders wg.Add before the Wait in Shutdown.
		t.listenerMu.Lock()
		if t.stopping.Load() {
			t.listenerMu.Unlock()
			_ = conn.Close()
			continue
		}
		id := t.nextConnID.Add(1)
		t.conns.Store(id, conn)
		t.wg.Add(1)
		t.listenerMu.Unlock()

		// Handle the connection in a goroutine
		go func() {
			defer t.wg.Done()
			defer t.conns.Delete(id)
			t.handleConnection(id, conn, maxSize)
		}()
	}
}

func (t *serverTransport) Shutdown(ctx context.Context) error {
	t.listenerMu.Lock()
	t.stopping.Store(true)
	listener := t.listener
	t.listenerMu.Unlock()

	if listener != nil {
		if err := listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			Logger.Warningf("Failed to close listener: %v", err)
		}
	}

	// Wait for in-flight connections
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		t.conns.Range(func(id uint64, conn net.Conn) bool {
			Logger.Warningf("Closing connection %d from %s forcefully", id, conn.RemoteAddr())
			_ = conn.Close()
			return true
		})
		return ctx.Err()
	}
}

func (t *serverTransport) ActiveConnections() int {
	return t.conns.Size()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection reads one request, writes one response and closes the connection
func (t *serverTransport) handleConnection(id uint64, conn net.Conn, maxSize int) {
	defer conn.Close()

	// Timeout in seconds
	timeout := time.Duration(t.config.TimeoutSecond) * time.Second

	Logger.Debugf("Connection %d from %s", id, conn.RemoteAddr())

	if timeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			Logger.Errorf("Failed to set read deadline: %v", err)
			return
		}
	}

	// Get a buffer from the pool
	buf := t.bufferPool.Get().([]byte)
	defer t.bufferPool.Put(buf)

	var resp []byte
	rejected := false
	req, err := readMessage(conn, buf, maxSize)
	switch {
	// Case EOF: Connection closed by client without sending anything
	case errors.Is(err, io.EOF):
		Logger.Debugf("Connection %d closed by client without a request", id)
		return
	// Case too large: the client gets an error reply
	case errors.Is(err, ErrMessageTooLarge):
		Logger.Warningf("Rejected request on connection %d: %v", id, err)
		resp = t.reject(err)
		rejected = true
	// Case error: log and close connection
	case err != nil:
		Logger.Errorf("Error reading request on connection %d: %v", id, err)
		return
	default:
		start := time.Now()
		resp = t.handler(req)
		Logger.Debugf("Processed request on connection %d in %s", id, time.Since(start))
	}

	if timeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			Logger.Errorf("Failed to set write deadline: %v", err)
			return
		}
	}

	if _, err := conn.Write(resp); err != nil {
		Logger.Errorf("Failed to write response on connection %d: %v", id, err)
		return
	}

	// Unread input makes the close reset the connection, which can discard the
	// reply before the client has read it
	if rejected {
		_ = closeWrite(conn)
		_, _ = io.Copy(io.Discard, io.LimitReader(conn, drainLimit))
	}
}
