package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Counter holds the number of successful and failed commands of one kind
type Counter struct {
	Success uint64 `json:"success" yaml:"success"`
	Error   uint64 `json:"error" yaml:"error"`
}

// StatsTable holds one Counter for each recognized kind. The zero value is ready to use.
//
// Thread-safety: StatsTable is not synchronized, the owning store guards it.
type StatsTable struct {
	counters [len(kindNames)]Counter
}

// Record counts one processed command of the given kind.
// KindUnknown is ignored, the table only tracks the recognized kinds.
func (t *StatsTable) Record(kind Kind, ok bool) {
	if kind == KindUnknown || int(kind) >= len(t.counters) {
		return
	}
	if ok {
		t.counters[kind].Success++
	} else {
		t.counters[kind].Error++
	}
}

// Snapshot returns a copy of the current counters
func (t *StatsTable) Snapshot() StatsSnapshot {
	snap := make(StatsSnapshot, len(Kinds))
	for _, k := range Kinds {
		snap[k] = t.counters[k]
	}
	return snap
}

// --------------------------------------------------------------------------
// Snapshot
// --------------------------------------------------------------------------

// StatsSnapshot is a point in time copy of the statistics table
type StatsSnapshot map[Kind]Counter

// String renders the snapshot as
// {'PUT': {'success': 0, 'error': 0}, 'GET': {'success': 0, 'error': 0}, ...}
// with the kinds in the order of Kinds.
func (s StatsSnapshot) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range Kinds {
		if i > 0 {
			sb.WriteString(", ")
		}
		c := s[k]
		sb.WriteString(fmt.Sprintf("'%s': {'success': %d, 'error': %d}", k, c.Success, c.Error))
	}
	sb.WriteByte('}')
	return sb.String()
}

// ByName returns the counters keyed by kind name
func (s StatsSnapshot) ByName() map[string]Counter {
	named := make(map[string]Counter, len(s))
	for k, c := range s {
		named[k.String()] = c
	}
	return named
}

var statsEntryPattern = regexp.MustCompile(`'([A-Z]+)': \{'success': (\d+), 'error': (\d+)\}`)

// ParseStats parses the output of StatsSnapshot.String
func ParseStats(payload string) (StatsSnapshot, error) {
	matches := statsEntryPattern.FindAllStringSubmatch(payload, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("invalid stats payload: %q", payload)
	}

	snap := make(StatsSnapshot, len(matches))
	for _, m := range matches {
		kind := ParseKind(m[1])
		if kind == KindUnknown {
			return nil, fmt.Errorf("invalid stats payload: unknown kind %s", m[1])
		}
		success, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid success count for %s: %w", m[1], err)
		}
		failed, err := strconv.ParseUint(m[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid error count for %s: %w", m[1], err)
		}
		snap[kind] = Counter{Success: success, Error: failed}
	}
	return snap, nil
}
