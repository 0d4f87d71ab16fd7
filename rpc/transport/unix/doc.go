// Package unix implements the nKV transport over Unix domain sockets, for clients
// running on the same machine as the server.
//
// This package extends the base transport layer with Unix socket-specific connectors
// while inheriting the request handling from the base package. The server replaces a
// stale socket file before it starts listening, but refuses to overwrite any other
// file, and removes its socket file when it stops.
package unix
