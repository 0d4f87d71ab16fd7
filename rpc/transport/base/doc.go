// Package base provides the foundation for the nKV transport layers, implementing
// the request handling independent of the socket type (TCP, Unix sockets).
// Protocol-specific behavior is injected through connector interfaces.
//
// Framing:
//
//	A request ends at the first '\n' or when the client closes its writing side,
//	whichever comes first. Requests longer than the configured maximum size are
//	not truncated, the client receives a rejection instead. The reply is written
//	in one write and ends when the server closes the connection.
//
// Key Components:
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific operations
//     (listening, dialing, socket options).
//
//   - serverTransport: Accepts connections and handles each one in its own goroutine.
//     Read buffers come from a sync.Pool. Connections in flight are tracked in an
//     xsync.MapOf so Shutdown can wait for them, or close them once its context ends.
//
//   - clientTransport: Opens one connection per request, round robin over the
//     configured endpoints, and retries failed connection attempts with exponential
//     backoff. Requests themselves are never retried.
//
// Thread Safety:
//
//	All public methods are safe for concurrent use.
package base
