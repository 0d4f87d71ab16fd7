// Package common provides core data structures and utilities shared across
// the nKV client and server. It defines the textual wire structures,
// configuration structures and the logging setup used by other packages.
//
// Key Components:
//
//   - Request/Response: The textual form of a command and its reply. Requests
//     are converted into typed store.Command values with ToCommand, which is
//     where value type tags are checked and values are converted.
//
//   - ServerConfig: Configuration for the server, including the transport
//     endpoint, message size limits, timeouts and the metrics endpoint.
//
//   - ClientConfig: Configuration for client components, controlling endpoints,
//     timeouts, and retry behavior.
//
//   - Logger: Custom logging implementation that plugs into Dragonboat's
//     logger package while providing consistent formatting across the application.
package common
