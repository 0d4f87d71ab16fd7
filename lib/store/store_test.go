package store

import (
	"reflect"
	"testing"
)

// TestValueString tests the canonical display form of values
func TestValueString(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"int", Int(42), "42"},
		{"negative int", Int(-1), "-1"},
		{"text", Text("a b"), "a b"},
		{"list", List{"a", "b"}, "['a', 'b']"},
		{"single element list", List{"x"}, "['x']"},
		{"empty list", List{}, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestParseKind tests the mapping of wire names to kinds
func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		if got := ParseKind(k.String()); got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	for _, name := range []string{"", "get", "FOO", "UNKNOWN"} {
		if got := ParseKind(name); got != KindUnknown {
			t.Errorf("ParseKind(%q) = %v, want KindUnknown", name, got)
		}
	}
}

// TestStatsTable tests recording and rendering of the statistics table
func TestStatsTable(t *testing.T) {
	var table StatsTable
	table.Record(KindGet, true)
	table.Record(KindGet, false)
	table.Record(KindGet, true)
	table.Record(KindDelete, false)
	table.Record(KindUnknown, true)

	snap := table.Snapshot()
	if len(snap) != len(Kinds) {
		t.Fatalf("Snapshot() has %d kinds, want %d", len(snap), len(Kinds))
	}

	want := "{'PUT': {'success': 0, 'error': 0}, 'GET': {'success': 2, 'error': 1}, " +
		"'GETLIST': {'success': 0, 'error': 0}, 'PUTLIST': {'success': 0, 'error': 0}, " +
		"'INCREMENT': {'success': 0, 'error': 0}, 'APPEND': {'success': 0, 'error': 0}, " +
		"'DELETE': {'success': 0, 'error': 1}, 'STATS': {'success': 0, 'error': 0}}"
	if got := snap.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	parsed, err := ParseStats(snap.String())
	if err != nil {
		t.Fatalf("ParseStats() error = %v", err)
	}
	if !reflect.DeepEqual(parsed, snap) {
		t.Errorf("ParseStats() = %v, want %v", parsed, snap)
	}
}

// TestParseStatsInvalid tests that payloads which are no stats table are rejected
func TestParseStatsInvalid(t *testing.T) {
	for _, payload := range []string{"", "ERROR: Key [x] not found", "{'NOPE': {'success': 1, 'error': 0}}"} {
		if _, err := ParseStats(payload); err == nil {
			t.Errorf("ParseStats(%q) error = nil, want error", payload)
		}
	}
}

// fakeStore records which method was called
type fakeStore struct {
	called string
}

func (f *fakeStore) Put(key string, _ Value) (string, error) {
	f.called = "Put"
	return "put " + key, nil
}
func (f *fakeStore) PutList(key string, _ Value) (string, error) {
	f.called = "PutList"
	return "putlist " + key, nil
}
func (f *fakeStore) Get(key string) (Value, error) {
	f.called = "Get"
	return nil, Errorf(RetCKeyNotFound, "ERROR: Key [%s] not found", key)
}
func (f *fakeStore) GetList(string) (List, error) {
	f.called = "GetList"
	return List{"a"}, nil
}
func (f *fakeStore) Increment(string) (string, error) {
	f.called = "Increment"
	return "inc", nil
}
func (f *fakeStore) Append(string, Value) (string, error) {
	f.called = "Append"
	return "append", nil
}
func (f *fakeStore) Delete(string) (string, error) {
	f.called = "Delete"
	return "delete", nil
}
func (f *fakeStore) Stats() StatsSnapshot {
	f.called = "Stats"
	return StatsSnapshot{}
}

// TestDispatch tests that every kind reaches its method and results are built correctly
func TestDispatch(t *testing.T) {
	tests := []struct {
		cmd    Command
		method string
		want   Result
	}{
		{NewCommand(KindPut, "k", Int(1)), "Put", Result{Ok: true, Payload: "put k"}},
		{NewCommand(KindPutList, "k", List{"a"}), "PutList", Result{Ok: true, Payload: "putlist k"}},
		{NewCommand(KindGet, "k", nil), "Get", Result{Ok: false, Payload: "ERROR: Key [k] not found", Code: RetCKeyNotFound}},
		{NewCommand(KindGetList, "k", nil), "GetList", Result{Ok: true, Payload: "['a']"}},
		{NewCommand(KindIncrement, "k", nil), "Increment", Result{Ok: true, Payload: "inc"}},
		{NewCommand(KindAppend, "k", Text("x")), "Append", Result{Ok: true, Payload: "append"}},
		{NewCommand(KindDelete, "k", nil), "Delete", Result{Ok: true, Payload: "delete"}},
		{Command{Kind: KindUnknown, Name: "FOO"}, "", Result{Ok: false, Payload: "Unknown command type [FOO]", Code: RetCUnknownCommand}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name, func(t *testing.T) {
			f := &fakeStore{}
			got := Dispatch(f, tt.cmd)
			if f.called != tt.method {
				t.Errorf("Dispatch() called %q, want %q", f.called, tt.method)
			}
			if got != tt.want {
				t.Errorf("Dispatch() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
