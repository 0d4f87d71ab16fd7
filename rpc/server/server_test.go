package server

import (
	"context"
	"github.com/ValentinKolb/nKV/lib/store"
	"github.com/ValentinKolb/nKV/lib/store/lstore"
	"github.com/ValentinKolb/nKV/rpc/client"
	"github.com/ValentinKolb/nKV/rpc/common"
	"github.com/ValentinKolb/nKV/rpc/serializer"
	"github.com/ValentinKolb/nKV/rpc/transport/tcp"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestServer() *RPCServer {
	return NewRPCServer(
		common.DefaultServerConfig(),
		tcp.NewTCPServerTransport(),
		serializer.NewLineSerializer(),
		lstore.NewLocalStore(),
	)
}

// exchange feeds a sequence of request lines into the handler and compares the replies
func exchange(t *testing.T, s *RPCServer, steps [][2]string) {
	t.Helper()
	for _, step := range steps {
		if got := string(s.handle([]byte(step[0]))); got != step[1] {
			t.Errorf("handle(%q) = %q, want %q", step[0], got, step[1])
		}
	}
}

func TestHandleScenarios(t *testing.T) {
	tests := []struct {
		name  string
		steps [][2]string
	}{
		{
			name: "put get increment",
			steps: [][2]string{
				{"PUT;foo;42;INT", "True;Key [foo] set to [42]"},
				{"GET;foo;;", "True;42"},
				{"INCREMENT;foo;;", "True;Key [foo] incremented"},
				{"GET;foo;;", "True;43"},
			},
		},
		{
			name: "list handling",
			steps: [][2]string{
				{"PUTLIST;l;a,b;LIST", "True;Key [l] set to [['a', 'b']]"},
				{"APPEND;l;c;STRING", "True;Key [l] had value [c] appended"},
				{"GETLIST;l;;", "True;['a', 'b', 'c']"},
				{"INCREMENT;l;;", "False;ERROR: Key [l] contains non-int value ([['a', 'b', 'c']])"},
			},
		},
		{
			name: "type mismatch and missing keys",
			steps: [][2]string{
				{"PUT;n;7;INT", "True;Key [n] set to [7]"},
				{"GETLIST;n;;", "False;ERROR: Key [n] contains non-list value ([7])"},
				{"GET;missing;;", "False;ERROR: Key [missing] not found"},
				{"DELETE;missing;;", "False;ERROR: Key [missing] not found and could not be deleted"},
				{"DELETE;n;;", "True;Key [n] deleted"},
				{"GET;n;;", "False;ERROR: Key [n] not found"},
			},
		},
		{
			name: "decode errors",
			steps: [][2]string{
				{"PUT;foo", "False;ERROR: Malformed message, expected 4 fields separated by ';' but got 2"},
				{"PUT;foo;abc;INT", "False;ERROR: Value [abc] is not a valid INT"},
				{"PUT;foo;1.5;FLOAT", "False;ERROR: Unknown value type [FLOAT]"},
				{"FROB;foo;;", "False;Unknown command type [FROB]"},
			},
		},
		{
			name: "surrounding whitespace is ignored",
			steps: [][2]string{
				{"  PUT;w;hello world;STRING\r\n", "True;Key [w] set to [hello world]"},
				{"GET;w;;\n", "True;hello world"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exchange(t, newTestServer(), tt.steps)
		})
	}
}

func TestHandleStatsCounting(t *testing.T) {
	s := newTestServer()
	for _, req := range []string{
		"PUT;a;1;INT",       // PUT success
		"GET;a;;",           // GET success
		"GET;b;;",           // GET error
		"FROB;a;;",          // not counted
		"PUT;a",             // not counted
		"INCREMENT;a;;",     // INCREMENT success
		"APPEND;a;x;STRING", // APPEND error
	} {
		s.handle([]byte(req))
	}

	res := s.handle([]byte("STATS;;;"))
	got := string(res)
	if !strings.HasPrefix(got, "True;") {
		t.Fatalf("handle(STATS) = %q, want a successful reply", got)
	}

	snap, err := store.ParseStats(strings.TrimPrefix(got, "True;"))
	if err != nil {
		t.Fatalf("ParseStats() error = %v", err)
	}

	want := map[store.Kind]store.Counter{
		store.KindPut:       {Success: 1},
		store.KindGet:       {Success: 1, Error: 1},
		store.KindIncrement: {Success: 1},
		store.KindAppend:    {Error: 1},
		store.KindStats:     {},
	}
	// kinds missing from want were never sent and must stay at zero
	for _, kind := range store.Kinds {
		if snap[kind] != want[kind] {
			t.Errorf("stats[%s] = %+v, want %+v", kind, snap[kind], want[kind])
		}
	}

	// the STATS request itself shows up in the next table
	snap, err = store.ParseStats(strings.TrimPrefix(string(s.handle([]byte("STATS;;;"))), "True;"))
	if err != nil {
		t.Fatalf("ParseStats() error = %v", err)
	}
	if snap[store.KindStats].Success != 1 {
		t.Errorf("stats[STATS].Success = %d, want 1", snap[store.KindStats].Success)
	}
}

func TestReject(t *testing.T) {
	s := newTestServer()
	want := "False;ERROR: Message exceeds 4096 bytes"
	if got := string(s.reject(nil)); got != want {
		t.Errorf("reject() = %q, want %q", got, want)
	}
}

func TestMetricsHandler(t *testing.T) {
	s := newTestServer()
	s.handle([]byte("PUT;a;1;INT"))
	s.handle([]byte("GET;missing;;"))
	s.handle([]byte("nonsense"))

	rec := httptest.NewRecorder()
	s.metricsHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		`nkv_commands_total{kind="PUT",status="success"} 1`,
		`nkv_commands_total{kind="GET",status="error"} 1`,
		`nkv_invalid_requests_total 1`,
		`nkv_open_connections 0`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output does not contain %q\n%s", want, body)
		}
	}

	if lines := s.metrics.summary(); len(lines) != 2 {
		t.Errorf("summary() returned %d lines, want 2: %v", len(lines), lines)
	}
}

func TestEndToEnd(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error = %v", err)
	}

	config := common.DefaultServerConfig()
	config.Transport.Endpoint = listener.Addr().String()
	config.TimeoutSecond = 2
	srv := NewRPCServer(config, tcp.NewTCPServerTransport(), serializer.NewLineSerializer(), lstore.NewLocalStore())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.RunListener(ctx, listener) }()
	defer func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Errorf("server did not stop")
		}
	}()

	c, err := client.NewRPCStore(common.ClientConfig{
		TimeoutSecond: 2,
		Transport: common.ClientTransportConfig{
			Endpoints:  []string{listener.Addr().String()},
			RetryCount: 3,
			TCPConf:    common.TCPConf{TCPLingerSec: -1},
		},
	}, tcp.NewTCPClientTransport(), serializer.NewLineSerializer())
	if err != nil {
		t.Fatalf("NewRPCStore() error = %v", err)
	}
	defer c.Close()

	res, err := c.Put("foo", store.Int(41))
	if err != nil || !res.Ok {
		t.Fatalf("Put() = %+v, %v", res, err)
	}
	if res, err = c.Increment("foo"); err != nil || !res.Ok {
		t.Fatalf("Increment() = %+v, %v", res, err)
	}
	if res, err = c.Get("foo"); err != nil || res.Payload != "42" {
		t.Errorf("Get() = %+v, %v, want payload 42", res, err)
	}
	if res, err = c.GetList("foo"); err != nil || res.Ok {
		t.Errorf("GetList() = %+v, %v, want a failed result", res, err)
	}

	raw, err := c.Raw([]byte("GET;foo;;"))
	if err != nil || string(raw) != "True;42" {
		t.Errorf("Raw() = %q, %v, want %q", raw, err, "True;42")
	}

	stats, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	// Raw went through the same server, so GET was executed twice
	if got := stats[store.KindGet]; got.Success != 2 {
		t.Errorf("stats[GET].Success = %d, want 2", got.Success)
	}
	if got := stats[store.KindGetList]; got.Error != 1 {
		t.Errorf("stats[GETLIST].Error = %d, want 1", got.Error)
	}
}
