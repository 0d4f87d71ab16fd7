// Package rpc contains everything between a socket and the store: the wire
// formats, the transports and the server and client built from them.
//
// The package is organized into several subpackages:
//
//   - common: Wire structures (Request, Response), configuration structures
//     and logging shared by server and client.
//
//   - transport: Network communication abstractions with pluggable implementations
//     (TCP, Unix sockets). One connection carries one request and one reply.
//
//   - serializer: Request and reply formats. The line format (COMMAND;KEY;VALUE;TYPE
//     answered by True;PAYLOAD or False;PAYLOAD) is the default, JSON is the alternative.
//
//   - client: RPC client with one method per command kind.
//
//   - server: Decodes requests, executes them against a store.IStore and records
//     metrics.
package rpc
