package serializer

import (
	"github.com/ValentinKolb/nKV/lib/store"
	"github.com/ValentinKolb/nKV/rpc/common"
)

// IRPCSerializer is the interface for all wire formats. The server side decodes
// commands and encodes results, the client side encodes requests and decodes responses.
type IRPCSerializer interface {
	// GetName returns the name of the wire format (e.g., "line", "json")
	GetName() string
	// DeserializeCommand decodes a raw request into a typed command.
	// Decoding failures are returned as *store.Error.
	DeserializeCommand(b []byte) (store.Command, error)
	// SerializeResult encodes the result of a command
	SerializeResult(res store.Result) ([]byte, error)
	// SerializeRequest encodes a client request
	SerializeRequest(req common.Request) ([]byte, error)
	// DeserializeResponse decodes a raw reply
	DeserializeResponse(b []byte) (common.Response, error)
}
