// Package transport defines the interfaces for moving requests and replies
// between nKV clients and servers. It provides a common contract that all
// transport implementations fulfill, independent of the socket type.
//
// Every request travels on its own connection: the client connects, writes one
// request, the server writes one reply and closes the connection.
//
// Key Components:
//
//   - IRPCServerTransport: Accepts connections, reads one request per connection
//     and hands it to a registered ServerHandleFunc.
//
//   - IRPCClientTransport: Sends a request on a fresh connection and returns the reply.
//
// Implementations live in the subpackages tcp and unix, both built on base.
package transport
