package serializer

import (
	"encoding/json"
	"github.com/ValentinKolb/nKV/lib/store"
	"github.com/ValentinKolb/nKV/rpc/common"
)

// NewJSONSerializer creates a new serializer using json encoding.
// Unlike the line format it transmits the return code of a result.
func NewJSONSerializer() IRPCSerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the IRPCSerializer interface using json encoding
type jsonSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) GetName() string {
	return "json"
}

func (j jsonSerializerImpl) DeserializeCommand(b []byte) (store.Command, error) {
	var req common.Request
	if err := json.Unmarshal(b, &req); err != nil {
		return store.Command{}, store.Errorf(store.RetCMalformedMessage, "ERROR: Malformed message, %v", err)
	}
	return req.ToCommand()
}

func (j jsonSerializerImpl) SerializeResult(res store.Result) ([]byte, error) {
	return json.Marshal(common.NewResponse(res))
}

func (j jsonSerializerImpl) SerializeRequest(req common.Request) ([]byte, error) {
	return json.Marshal(req)
}

func (j jsonSerializerImpl) DeserializeResponse(b []byte) (common.Response, error) {
	var resp common.Response
	err := json.Unmarshal(b, &resp)
	return resp, err
}
