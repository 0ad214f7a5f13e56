package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

// The zero Kind is Unknown; the parser never produces it.
const (
	Unknown Kind = iota
	Object
	Array
	Integer
	Float
	String
	Boolean
	Null
)

var kindNames = [...]string{
	Unknown: "unknown",
	Object:  "object",
	Array:   "array",
	Integer: "integer",
	Float:   "float",
	String:  "string",
	Boolean: "boolean",
	Null:    "null",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[Unknown]
	}
	return kindNames[k]
}

// Value is a top-level JSON value. Objects and arrays are opaque: their
// contents are never kept, only the fact that the value was a container.
type Value struct {
	kind Kind
	// text holds the number literal for Integer/Float and the parsed
	// string for String.
	text string
	flag bool
}

// ObjectValue returns an opaque JSON object.
func ObjectValue() Value { return Value{kind: Object} }

// ArrayValue returns an opaque JSON array.
func ArrayValue() Value { return Value{kind: Array} }

// NullValue returns JSON null.
func NullValue() Value { return Value{kind: Null} }

// StringValue wraps an already-unescaped JSON string.
func StringValue(s string) Value { return Value{kind: String, text: s} }

// BoolValue wraps a JSON boolean.
func BoolValue(b bool) Value { return Value{kind: Boolean, flag: b} }

// IntegerValue wraps an integer.
func IntegerValue(i int64) Value {
	return Value{kind: Integer, text: strconv.FormatInt(i, 10)}
}

// NumberValue classifies a JSON number literal. Literals with a fraction or
// an exponent are floats, everything else is an integer.
func NumberValue(n json.Number) Value {
	lit := n.String()
	if strings.ContainsAny(lit, ".eE") {
		return Value{kind: Float, text: lit}
	}
	return Value{kind: Integer, text: lit}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Text returns the number literal or string payload. It is empty for the
// other kinds.
func (v Value) Text() string { return v.text }

// Bool returns the payload of a Boolean value.
func (v Value) Bool() bool { return v.flag }

// MarshalJSON encodes scalar values. Containers are opaque and cannot be
// written back.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Integer, Float:
		return []byte(v.text), nil
	case String:
		return json.Marshal(v.text)
	case Boolean:
		return strconv.AppendBool(nil, v.flag), nil
	case Null:
		return []byte("null"), nil
	case Object, Array:
		return nil, fmt.Errorf("cannot marshal opaque %s value", v.kind)
	default:
		return nil, fmt.Errorf("cannot marshal %s value", v.kind)
	}
}

// Entry is one top-level key/value pair.
type Entry struct {
	Key   string
	Value Value
}

// Document is the ordered set of top-level entries of a JSON object. The zero
// value is an empty document ready to use.
type Document struct {
	entries []Entry
	index   map[string]int
}

// Set adds key with value v. Setting an existing key replaces its value and
// keeps its original position.
func (d *Document) Set(key string, v Value) {
	if i, ok := d.index[key]; ok {
		d.entries[i].Value = v
		return
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, Entry{Key: key, Value: v})
}

// Get returns the value stored under key.
func (d *Document) Get(key string) (Value, bool) {
	i, ok := d.index[key]
	if !ok {
		return Value{}, false
	}
	return d.entries[i].Value, true
}

// Len returns the number of top-level entries.
func (d *Document) Len() int { return len(d.entries) }

// Entries returns a copy of the entries in document order.
func (d *Document) Entries() []Entry { return slices.Clone(d.entries) }
