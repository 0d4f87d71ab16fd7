// Package serializer provides the wire formats of nKV. It defines a common
// interface and two implementations for converting raw request bytes into typed
// commands and command results back into bytes.
//
// Key Components:
//
//   - IRPCSerializer: Core interface that all serializer implementations must satisfy.
//     It covers both directions: commands and results on the server, requests and
//     responses on the client.
//
//   - lineSerializerImpl: The native format. A request is COMMAND;KEY;VALUE;VALUE_TYPE,
//     surrounding whitespace is ignored and exactly four fields are required. A reply
//     is True;PAYLOAD or False;PAYLOAD. Semicolons inside payloads are not escaped,
//     such replies can not be split unambiguously by field count (the client splits
//     at the first ';').
//
//   - jsonSerializerImpl: The same request fields as a JSON object. Replies include
//     the name of the return code, which makes failures machine readable.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	s := serializer.NewLineSerializer()
//	cmd, err := s.DeserializeCommand([]byte("PUT;foo;42;INT"))
//	// ... execute cmd ...
//	data, err := s.SerializeResult(result) // "True;Key [foo] set to [42]"
package serializer
