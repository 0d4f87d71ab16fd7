package common

import (
	"github.com/ValentinKolb/nKV/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"reflect"
	"strings"
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		valueType string
		want      store.Value
		wantCode  store.RetCode
	}{
		{name: "empty value is absent", value: "", valueType: "INT", want: nil},
		{name: "empty value with unknown type", value: "", valueType: "FLOAT", want: nil},
		{name: "int", value: "-17", valueType: "INT", want: store.Int(-17)},
		{name: "string", value: " hello ", valueType: "STRING", want: store.Text(" hello ")},
		{name: "list keeps whitespace", value: "a, b,,c", valueType: "LIST", want: store.List{"a", " b", "", "c"}},
		{name: "invalid int", value: "4x", valueType: "INT", wantCode: store.RetCTypeConversion},
		{name: "unknown type", value: "1.5", valueType: "FLOAT", wantCode: store.RetCUnknownValueType},
		{name: "lower case type is unknown", value: "1", valueType: "int", wantCode: store.RetCUnknownValueType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.value, tt.valueType)
			if tt.wantCode != store.RetCSuccess {
				if !store.IsCode(err, tt.wantCode) {
					t.Errorf("ParseValue() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseValue() unexpected error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseValue() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestRequestConversion(t *testing.T) {
	tests := []struct {
		name  string
		kind  store.Kind
		key   string
		value store.Value
		want  Request
	}{
		{"int", store.KindPut, "k", store.Int(3), Request{"PUT", "k", "3", "INT"}},
		{"text", store.KindAppend, "k", store.Text("x"), Request{"APPEND", "k", "x", "STRING"}},
		{"list", store.KindPutList, "k", store.List{"a", "b"}, Request{"PUTLIST", "k", "a,b", "LIST"}},
		{"no value", store.KindGet, "k", nil, Request{"GET", "k", "", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest(tt.kind, tt.key, tt.value)
			if req != tt.want {
				t.Fatalf("NewRequest() = %+v, want %+v", req, tt.want)
			}

			cmd, err := req.ToCommand()
			if err != nil {
				t.Fatalf("ToCommand() error = %v", err)
			}
			if cmd.Kind != tt.kind || cmd.Key != tt.key || !reflect.DeepEqual(cmd.Value, tt.value) {
				t.Errorf("ToCommand() = %+v, want kind %s key %q value %#v", cmd, tt.kind, tt.key, tt.value)
			}
		})
	}
}

func TestUnknownCommandKeepsName(t *testing.T) {
	cmd, err := Request{Command: "FROB", Key: "k"}.ToCommand()
	if err != nil {
		t.Fatalf("ToCommand() error = %v", err)
	}
	if cmd.Kind != store.KindUnknown || cmd.Name != "FROB" {
		t.Errorf("ToCommand() = %+v, want KindUnknown named FROB", cmd)
	}
}

func TestResponseResult(t *testing.T) {
	res := store.NewErrorResult(store.Errorf(store.RetCKeyNotFound, "ERROR: Key [k] not found"))
	if got := NewResponse(res).ToResult(); got != res {
		t.Errorf("NewResponse().ToResult() = %+v, want %+v", got, res)
	}

	// responses without a code derive it from the ok flag
	if got := (Response{Ok: false, Payload: "x"}).ToResult().Code; got != store.RetCInternalError {
		t.Errorf("ToResult().Code = %s, want %s", got, store.RetCInternalError)
	}
	if got := (Response{Ok: true, Payload: "x"}).ToResult().Code; got != store.RetCSuccess {
		t.Errorf("ToResult().Code = %s, want %s", got, store.RetCSuccess)
	}
}

func TestServerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *ServerConfig)
		wantErr bool
	}{
		{"defaults", func(c *ServerConfig) {}, false},
		{"empty endpoint", func(c *ServerConfig) { c.Transport.Endpoint = "" }, true},
		{"zero message size", func(c *ServerConfig) { c.Transport.MaxMessageSize = 0 }, true},
		{"negative timeout", func(c *ServerConfig) { c.TimeoutSecond = -1 }, true},
		{"no timeout", func(c *ServerConfig) { c.TimeoutSecond = 0 }, false},
		{"bad log level", func(c *ServerConfig) { c.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultServerConfig()
			tt.modify(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfigString(t *testing.T) {
	c := DefaultServerConfig()
	out := c.String()
	for _, want := range []string{"localhost:50505", "4096 bytes", "disabled"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() does not contain %q:\n%s", want, out)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logger.LogLevel
		wantErr bool
	}{
		{"debug", logger.DEBUG, false},
		{"INFO", logger.INFO, false},
		{"warn", logger.WARNING, false},
		{"warning", logger.WARNING, false},
		{"error", logger.ERROR, false},
		{"trace", logger.INFO, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
