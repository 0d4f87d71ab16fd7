package common

import (
	"github.com/ValentinKolb/nKV/lib/store"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Wire Structures
// --------------------------------------------------------------------------

// Request is a client request with all fields in their textual wire form.
// Value and ValueType may be empty.
type Request struct {
	Command   string `json:"command"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	ValueType string `json:"value_type"`
}

// Response is the reply to a Request
type Response struct {
	Ok      bool   `json:"ok"`
	Payload string `json:"payload"`
	// Code is the name of the store.RetCode. Not every serializer transmits it.
	Code string `json:"code,omitempty"`
}

// --------------------------------------------------------------------------
// Request Conversion
// --------------------------------------------------------------------------

// NewRequest creates a request for a command kind, a key and an optional value
func NewRequest(kind store.Kind, key string, value store.Value) Request {
	req := Request{
		Command: kind.String(),
		Key:     key,
	}
	switch v := value.(type) {
	case store.Int:
		req.Value, req.ValueType = v.String(), store.TypeInt
	case store.Text:
		req.Value, req.ValueType = string(v), store.TypeString
	case store.List:
		req.Value, req.ValueType = strings.Join(v, ","), store.TypeList
	case nil:
	}
	return req
}

// ToCommand converts the textual request into a typed command.
// An empty value decodes to no value, regardless of the value type.
func (r Request) ToCommand() (store.Command, error) {
	value, err := ParseValue(r.Value, r.ValueType)
	if err != nil {
		return store.Command{}, err
	}
	return store.Command{
		Kind:  store.ParseKind(r.Command),
		Name:  r.Command,
		Key:   r.Key,
		Value: value,
	}, nil
}

// ParseValue converts a textual value into a typed one according to its type tag.
// List elements are split on ',' and kept untrimmed.
func ParseValue(value, valueType string) (store.Value, error) {
	if value == "" {
		return nil, nil
	}
	switch valueType {
	case store.TypeList:
		return store.List(strings.Split(value, ",")), nil
	case store.TypeInt:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, store.Errorf(store.RetCTypeConversion, "ERROR: Value [%s] is not a valid %s", value, store.TypeInt)
		}
		return store.Int(i), nil
	case store.TypeString:
		return store.Text(value), nil
	default:
		return nil, store.Errorf(store.RetCUnknownValueType, "ERROR: Unknown value type [%s]", valueType)
	}
}

// --------------------------------------------------------------------------
// Response Conversion
// --------------------------------------------------------------------------

// NewResponse converts a store result into a response
func NewResponse(res store.Result) Response {
	return Response{
		Ok:      res.Ok,
		Payload: res.Payload,
		Code:    res.Code.String(),
	}
}

// ToResult converts a response back into a store result. A missing or unknown
// code is derived from the ok flag.
func (r Response) ToResult() store.Result {
	code, ok := store.ParseRetCode(r.Code)
	if !ok {
		code = store.RetCSuccess
		if !r.Ok {
			code = store.RetCInternalError
		}
	}
	return store.Result{
		Ok:      r.Ok,
		Payload: r.Payload,
		Code:    code,
	}
}
