package store

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the interface of a store engine. It exposes one method per command kind.
// Every call counts as exactly one processed command of its kind in the statistics.
// Failures are returned as *Error, the payload strings are the exact client replies.
type IStore interface {
	// Put inserts or updates a key-value pair. A nil value is rejected.
	Put(key string, value Value) (payload string, err error)
	// PutList behaves exactly like Put. The value is not required to be a List.
	PutList(key string, value Value) (payload string, err error)
	// Get returns the value stored for a key.
	Get(key string) (value Value, err error)
	// GetList returns the value stored for a key if it is a List.
	GetList(key string) (value List, err error)
	// Increment adds one to the Int stored for a key.
	Increment(key string) (payload string, err error)
	// Append appends the elements of value to the List stored for a key.
	Append(key string, value Value) (payload string, err error)
	// Delete removes a key.
	Delete(key string) (payload string, err error)
	// Stats returns the statistics as they were before this call was counted.
	Stats() (stats StatsSnapshot)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and the message that is reported to the client.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// Errorf creates a new Error with a formatted message.
func Errorf(code RetCode, format string, args ...interface{}) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

// IsCode reports whether err is a *Error with the given code.
func IsCode(err error, code RetCode) bool {
	var storeErr *Error
	return errors.As(err, &storeErr) && storeErr.Code == code
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCInternalError                   // 1: Command failed due to an internal error.
	RetCMalformedMessage                // 2: Wire message does not have four fields.
	RetCUnknownValueType                // 3: Value type tag is not INT, STRING or LIST.
	RetCTypeConversion                  // 4: Value text can not be parsed as the declared type.
	RetCKeyNotFound                     // 5: Key does not exist.
	RetCTypeMismatch                    // 6: Stored value has the wrong type for the command.
	RetCUnknownCommand                  // 7: Command name is not recognized.
	RetCMissingValue                    // 8: Command requires a value but none was given.
	RetCInvalidKey                      // 9: Command requires a key but none was given.
	RetCOverflow                        // 10: Integer result does not fit into 64 bits.
)

var retCodeNames = [...]string{
	RetCSuccess:          "Success",
	RetCInternalError:    "InternalError",
	RetCMalformedMessage: "MalformedMessage",
	RetCUnknownValueType: "UnknownValueType",
	RetCTypeConversion:   "TypeConversionError",
	RetCKeyNotFound:      "KeyNotFound",
	RetCTypeMismatch:     "TypeMismatch",
	RetCUnknownCommand:   "UnknownCommand",
	RetCMissingValue:     "MissingValue",
	RetCInvalidKey:       "InvalidKey",
	RetCOverflow:         "IntegerOverflow",
}

// String returns the name of the return code
func (c RetCode) String() string {
	if int(c) < len(retCodeNames) {
		return retCodeNames[c]
	}
	return "Unknown"
}

// ParseRetCode maps a return code name back to its code
func ParseRetCode(name string) (RetCode, bool) {
	for code, n := range retCodeNames {
		if n == name {
			return RetCode(code), true
		}
	}
	return RetCInternalError, false
}
