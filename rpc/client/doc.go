// Package client implements the nKV client. It encodes typed commands with a
// serializer, sends them with a client transport and decodes the replies.
//
// Key Components:
//
//   - NewRPCStore: Factory function that creates an RPCStore with one method per
//     command kind, plus Do for prepared requests and Raw for sending arbitrary
//     bytes (the equivalent of writing a line to the socket by hand).
//
// A command that fails on the server (missing key, wrong type, ...) is not a Go
// error: it is returned as a store.Result with Ok set to false and the server's
// message as payload. Errors are only returned if the exchange itself failed.
//
// Usage Example:
//
//	c, err := client.NewRPCStore(config, tcp.NewTCPClientTransport(), serializer.NewLineSerializer())
//	res, err := c.Put("foo", store.Int(42)) // res.Payload == "Key [foo] set to [42]"
//	res, err = c.Get("foo")                 // res.Payload == "42"
package client
