package client

import (
	"fmt"
	"github.com/ValentinKolb/nKV/lib/store"
	"github.com/ValentinKolb/nKV/rpc/common"
	"github.com/ValentinKolb/nKV/rpc/serializer"
	"github.com/ValentinKolb/nKV/rpc/transport"
)

// NewRPCStore creates a new RPC store client
// The function takes a config, a transport and a serializer as parameters
func NewRPCStore(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (*RPCStore, error) {

	// Connect the transport
	err := transport.Connect(config)
	if err != nil {
		return nil, err
	}

	// Return the RPC store
	return &RPCStore{
		rpcClientAdapter{
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}, nil
}

// RPCStore sends commands to a remote server. Each method returns the result
// of the command as reported by the server, failed commands have Ok set to false.
type RPCStore struct {
	rpcClientAdapter
}

// Do sends an arbitrary request
func (i *RPCStore) Do(req common.Request) (store.Result, error) {
	return invokeRPCRequest(req, i.transport, i.serializer)
}

func (i *RPCStore) Put(key string, value store.Value) (store.Result, error) {
	return i.Do(common.NewRequest(store.KindPut, key, value))
}

func (i *RPCStore) PutList(key string, value store.List) (store.Result, error) {
	return i.Do(common.NewRequest(store.KindPutList, key, value))
}

func (i *RPCStore) Get(key string) (store.Result, error) {
	return i.Do(common.NewRequest(store.KindGet, key, nil))
}

func (i *RPCStore) GetList(key string) (store.Result, error) {
	return i.Do(common.NewRequest(store.KindGetList, key, nil))
}

func (i *RPCStore) Increment(key string) (store.Result, error) {
	return i.Do(common.NewRequest(store.KindIncrement, key, nil))
}

func (i *RPCStore) Append(key string, value store.Value) (store.Result, error) {
	return i.Do(common.NewRequest(store.KindAppend, key, value))
}

func (i *RPCStore) Delete(key string) (store.Result, error) {
	return i.Do(common.NewRequest(store.KindDelete, key, nil))
}

// Stats fetches and parses the statistics table of the server
func (i *RPCStore) Stats() (store.StatsSnapshot, error) {
	res, err := i.Do(common.NewRequest(store.KindStats, "", nil))
	if err != nil {
		return nil, err
	}
	if !res.Ok {
		return nil, fmt.Errorf("RPC client - STATS failed: %s", res.Payload)
	}
	return store.ParseStats(res.Payload)
}

// Raw sends a request as is, bypassing the serializer, and returns the raw reply
func (i *RPCStore) Raw(req []byte) ([]byte, error) {
	return i.transport.Send(req)
}

// Close releases the transport
func (i *RPCStore) Close() error {
	return i.transport.Close()
}
