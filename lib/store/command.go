package store

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Command Kinds
// --------------------------------------------------------------------------

// Kind is the type of a command. The set of kinds is closed.
type Kind uint8

const (
	KindUnknown   Kind = iota // 0: Name not among the recognized commands
	KindPut                   // 1: Upsert a value
	KindGet                   // 2: Read a value
	KindGetList               // 3: Read a list value
	KindPutList               // 4: Upsert a value (alias of PUT)
	KindIncrement             // 5: Increment an integer value
	KindAppend                // 6: Append to a list value
	KindDelete                // 7: Remove a key
	KindStats                 // 8: Render the statistics table
)

// Kinds lists all recognized kinds in the order the statistics table renders them
var Kinds = [...]Kind{
	KindPut,
	KindGet,
	KindGetList,
	KindPutList,
	KindIncrement,
	KindAppend,
	KindDelete,
	KindStats,
}

var kindNames = [...]string{
	KindUnknown:   "UNKNOWN",
	KindPut:       "PUT",
	KindGet:       "GET",
	KindGetList:   "GETLIST",
	KindPutList:   "PUTLIST",
	KindIncrement: "INCREMENT",
	KindAppend:    "APPEND",
	KindDelete:    "DELETE",
	KindStats:     "STATS",
}

// String returns the wire name of the kind
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// ParseKind maps a wire name to its kind. Names are case-sensitive,
// anything unrecognized maps to KindUnknown.
func ParseKind(name string) Kind {
	for _, k := range Kinds {
		if kindNames[k] == name {
			return k
		}
	}
	return KindUnknown
}

// --------------------------------------------------------------------------
// Command and Result
// --------------------------------------------------------------------------

// Command is a decoded client request
type Command struct {
	// Kind is the decoded command kind
	Kind Kind
	// Name is the command name as received (kept for unknown kinds)
	Name string
	// Key the command operates on (empty for STATS)
	Key string
	// Value is the typed value, nil if the request carried none
	Value Value
}

// NewCommand creates a command for a known kind
func NewCommand(kind Kind, key string, value Value) Command {
	return Command{
		Kind:  kind,
		Name:  kind.String(),
		Key:   key,
		Value: value,
	}
}

// Result is the outcome of a processed command
type Result struct {
	// Ok reports whether the command succeeded
	Ok bool
	// Payload is the display string sent to the client
	Payload string
	// Code is the machine-readable outcome (RetCSuccess if Ok)
	Code RetCode
}

// NewResult creates a successful result
func NewResult(payload string) Result {
	return Result{Ok: true, Payload: payload, Code: RetCSuccess}
}

// NewErrorResult creates a failed result from an error. A *Error keeps its code
// and message, any other error is reported as an internal error.
func NewErrorResult(err error) Result {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return Result{Ok: false, Payload: storeErr.Msg, Code: storeErr.Code}
	}
	return Result{
		Ok:      false,
		Payload: fmt.Sprintf("ERROR: %v", err),
		Code:    RetCInternalError,
	}
}
