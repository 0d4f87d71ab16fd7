package store

import (
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Value Types
// --------------------------------------------------------------------------

// Value is the payload stored for a key. The set of implementations is closed:
// Int, Text and List. Handlers switch over these three types exhaustively.
type Value interface {
	// String renders the value in its canonical display form
	String() string
	// TypeName returns the wire type tag of the value (INT, STRING or LIST)
	TypeName() string

	isValue()
}

// Int is an integer value
type Int int64

// Text is a string value
type Text string

// List is an ordered sequence of text elements
type List []string

// Wire type tags
const (
	TypeInt    = "INT"
	TypeString = "STRING"
	TypeList   = "LIST"
)

func (Int) isValue()  {}
func (Text) isValue() {}
func (List) isValue() {}

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

func (v Text) String() string { return string(v) }

// String renders the list as ['a', 'b']
func (v List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, elem := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('\'')
		sb.WriteString(elem)
		sb.WriteByte('\'')
	}
	sb.WriteByte(']')
	return sb.String()
}

func (Int) TypeName() string  { return TypeInt }
func (Text) TypeName() string { return TypeString }
func (List) TypeName() string { return TypeList }

// Elements returns the text elements a value contributes when it is appended to a list.
// A list contributes all of its elements, every other value contributes its display form.
func Elements(v Value) []string {
	switch val := v.(type) {
	case List:
		return []string(val)
	case Int:
		return []string{val.String()}
	case Text:
		return []string{string(val)}
	}
	return nil
}

// Clone returns a copy of v that shares no memory with v
func Clone(v Value) Value {
	if l, ok := v.(List); ok {
		return append(List(nil), l...)
	}
	return v
}
