package client

import (
	"fmt"
	"github.com/ValentinKolb/nKV/lib/store"
	"github.com/ValentinKolb/nKV/rpc/common"
	"github.com/ValentinKolb/nKV/rpc/serializer"
	"github.com/ValentinKolb/nKV/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("client")
)

// rpcClientAdapter is a struct that stores all data needed for an implementation of an RPC client
type rpcClientAdapter struct {
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// invokeRPCRequest is a helper function used by the RPC client to send requests
// It takes a request, a transport layer and a serializer as parameters
// It returns the result of the command. A failed command is not an error, the
// error return is reserved for transport and encoding failures.
func invokeRPCRequest(req common.Request, transport transport.IRPCClientTransport, serializer serializer.IRPCSerializer) (store.Result, error) {
	// Serialize the request
	reqBytes, err := serializer.SerializeRequest(req)
	if err != nil {
		return store.Result{}, err
	}

	// Send the request
	respBytes, err := transport.Send(reqBytes)
	if err != nil {
		return store.Result{}, err
	}

	// Deserialize the response
	resp, err := serializer.DeserializeResponse(respBytes)
	if err != nil {
		return store.Result{}, fmt.Errorf("RPC client - invalid response: %w", err)
	}

	Logger.Debugf("%s key=%q ok=%t", req.Command, req.Key, resp.Ok)
	return resp.ToResult(), nil
}
