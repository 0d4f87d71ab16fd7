package serializer

import (
	"fmt"
	"github.com/ValentinKolb/nKV/lib/store"
	"github.com/ValentinKolb/nKV/rpc/common"
	"strings"
)

const (
	fieldSeparator = ";"
	fieldCount     = 4

	literalTrue  = "True"
	literalFalse = "False"
)

// NewLineSerializer creates a new serializer for the semicolon delimited line format.
//
// Requests are COMMAND;KEY;VALUE;VALUE_TYPE, replies are BOOL;PAYLOAD.
// Fields are not escaped: a payload containing ';' is sent as is.
func NewLineSerializer() IRPCSerializer {
	return &lineSerializerImpl{}
}

// lineSerializerImpl implements the IRPCSerializer interface for the line format
type lineSerializerImpl struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (l *lineSerializerImpl) GetName() string {
	return "line"
}

func (l *lineSerializerImpl) DeserializeCommand(b []byte) (store.Command, error) {
	fields := strings.Split(strings.TrimSpace(string(b)), fieldSeparator)
	if len(fields) != fieldCount {
		return store.Command{}, store.Errorf(store.RetCMalformedMessage,
			"ERROR: Malformed message, expected %d fields separated by '%s' but got %d", fieldCount, fieldSeparator, len(fields))
	}

	req := common.Request{
		Command:   fields[0],
		Key:       fields[1],
		Value:     fields[2],
		ValueType: fields[3],
	}
	return req.ToCommand()
}

func (l *lineSerializerImpl) SerializeResult(res store.Result) ([]byte, error) {
	return []byte(formatBool(res.Ok) + fieldSeparator + res.Payload), nil
}

func (l *lineSerializerImpl) SerializeRequest(req common.Request) ([]byte, error) {
	for _, field := range []string{req.Command, req.Key, req.Value, req.ValueType} {
		if strings.ContainsAny(field, fieldSeparator+"\n") {
			return nil, fmt.Errorf("field %q contains a separator or a newline", field)
		}
	}
	return []byte(strings.Join([]string{req.Command, req.Key, req.Value, req.ValueType}, fieldSeparator)), nil
}

func (l *lineSerializerImpl) DeserializeResponse(b []byte) (common.Response, error) {
	okField, payload, found := strings.Cut(string(b), fieldSeparator)
	if !found {
		return common.Response{}, fmt.Errorf("malformed response %q: missing '%s'", b, fieldSeparator)
	}

	var ok bool
	switch okField {
	case literalTrue:
		ok = true
	case literalFalse:
		ok = false
	default:
		return common.Response{}, fmt.Errorf("malformed response %q: %q is not %s or %s", b, okField, literalTrue, literalFalse)
	}

	// the line format carries no return code, ToResult derives it from ok
	return common.Response{Ok: ok, Payload: payload}, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func formatBool(b bool) string {
	if b {
		return literalTrue
	}
	return literalFalse
}
