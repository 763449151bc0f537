// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind identifies which variant a [Value] holds.
type Kind uint8

const (
	// KindNull is the zero Kind. A zero Value is null.
	KindNull Kind = iota
	KindBool
	KindInt
	// KindUint holds unsigned integers above math.MaxInt64. Smaller
	// unsigned values decode as KindInt so that callers only need one
	// integer case for the common range.
	KindUint
	KindFloat
	KindString
	KindBytes
	KindArray
	KindMap
)

// String returns the lower-case name of the kind.
func (kind Kind) String() string {
	switch kind {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", kind)
	}
}

// Value is a self-describing serialized-map value: null, bool, int,
// uint, float, string, bytes, array or map. Maps are ordered lists of
// key/value pairs so that the wire order survives a decode/encode
// cycle. Values are immutable once built; the constructors copy
// nothing, so callers must not mutate slices they pass in afterwards.
type Value struct {
	kind    Kind
	boolean bool
	integer int64
	natural uint64
	float   float64
	text    string
	bytes   []byte
	items   []Value
	entries []Entry
}

// Entry is one key/value pair of a map Value.
type Entry struct {
	Key   Value
	Value Value
}

// Null returns the null Value (the zero Value).
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Int returns a signed integer Value.
func Int(i int64) Value { return Value{kind: KindInt, integer: i} }

// Uint returns an unsigned integer Value. Values that fit in an int64
// are normalized to KindInt.
func Uint(u uint64) Value {
	if u <= math.MaxInt64 {
		return Value{kind: KindInt, integer: int64(u)}
	}
	return Value{kind: KindUint, natural: u}
}

// Float returns a floating-point Value.
func Float(f float64) Value { return Value{kind: KindFloat, float: f} }

// String returns a text Value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Bytes returns a binary Value.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// Array returns an array Value.
func Array(items ...Value) Value { return Value{kind: KindArray, items: items} }

// Map returns a map Value with entries in the given order.
func Map(entries ...Entry) Value { return Value{kind: KindMap, entries: entries} }

// Field builds a map Entry with a text key.
func Field(key string, value Value) Entry {
	return Entry{Key: String(key), Value: value}
}

// Strings returns an array Value of text values.
func Strings(values ...string) Value {
	items := make([]Value, len(values))
	for i, value := range values {
		items[i] = String(value)
	}
	return Array(items...)
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean and whether v is a bool.
func (v Value) AsBool() (bool, bool) { return v.boolean, v.kind == KindBool }

// AsInt returns the signed integer and whether v is an int.
func (v Value) AsInt() (int64, bool) { return v.integer, v.kind == KindInt }

// AsUint returns v as an unsigned integer. Non-negative ints convert;
// negative ints and other kinds report false.
func (v Value) AsUint() (uint64, bool) {
	switch v.kind {
	case KindUint:
		return v.natural, true
	case KindInt:
		if v.integer >= 0 {
			return uint64(v.integer), true
		}
	}
	return 0, false
}

// AsFloat returns v as a float64. Integers convert; other kinds report
// false.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.float, true
	case KindInt:
		return float64(v.integer), true
	case KindUint:
		return float64(v.natural), true
	}
	return 0, false
}

// AsString returns the text and whether v is a string.
func (v Value) AsString() (string, bool) { return v.text, v.kind == KindString }

// AsBytes returns the binary payload and whether v is bytes.
func (v Value) AsBytes() ([]byte, bool) { return v.bytes, v.kind == KindBytes }

// Items returns the elements of an array Value, or nil.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.items
}

// Entries returns the pairs of a map Value in wire order, or nil.
func (v Value) Entries() []Entry {
	if v.kind != KindMap {
		return nil
	}
	return v.entries
}

// Len returns the element count of an array or map, the byte length
// of bytes or a string, and 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindMap:
		return len(v.entries)
	case KindString:
		return len(v.text)
	case KindBytes:
		return len(v.bytes)
	}
	return 0
}

// Get returns the value stored under a text key in a map Value. The
// first matching entry wins when a map carries duplicate keys.
func (v Value) Get(key string) (Value, bool) {
	for _, entry := range v.Entries() {
		if text, ok := entry.Key.AsString(); ok && text == key {
			return entry.Value, true
		}
	}
	return Value{}, false
}

// GetString returns the text stored under key, or "" when the key is
// missing or not a string.
func (v Value) GetString(key string) string {
	value, _ := v.Get(key)
	text, _ := value.AsString()
	return text
}

// Equal reports whether v and other hold the same variant and
// contents. Map comparison is order-sensitive. Floats compare by bit
// pattern so NaN equals itself.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindInt:
		return v.integer == other.integer
	case KindUint:
		return v.natural == other.natural
	case KindFloat:
		return math.Float64bits(v.float) == math.Float64bits(other.float)
	case KindString:
		return v.text == other.text
	case KindBytes:
		return bytes.Equal(v.bytes, other.bytes)
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.entries) != len(other.entries) {
			return false
		}
		for i := range v.entries {
			if !v.entries[i].Key.Equal(other.entries[i].Key) || !v.entries[i].Value.Equal(other.entries[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Go converts v to plain Go values: nil, bool, int64, uint64, float64,
// string, []byte, []any, and map[string]any (or map[any]any when any
// key is not a string). Byte-string keys become strings so the result
// is always a valid Go map. Order is lost for maps.
func (v Value) Go() any {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindInt:
		return v.integer
	case KindUint:
		return v.natural
	case KindFloat:
		return v.float
	case KindString:
		return v.text
	case KindBytes:
		return v.bytes
	case KindArray:
		result := make([]any, len(v.items))
		for i, item := range v.items {
			result[i] = item.Go()
		}
		return result
	case KindMap:
		allText := true
		for _, entry := range v.entries {
			if entry.Key.kind != KindString {
				allText = false
				break
			}
		}
		if allText {
			result := make(map[string]any, len(v.entries))
			for _, entry := range v.entries {
				if _, exists := result[entry.Key.text]; !exists {
					result[entry.Key.text] = entry.Value.Go()
				}
			}
			return result
		}
		result := make(map[any]any, len(v.entries))
		for _, entry := range v.entries {
			key := entry.Key.Go()
			switch typed := key.(type) {
			case []byte:
				key = string(typed)
			case []any, map[string]any, map[any]any:
				key = entry.Key.keyString()
			}
			if _, exists := result[key]; !exists {
				result[key] = entry.Value.Go()
			}
		}
		return result
	}
	return nil
}

// FromGo converts a plain Go value to a Value. Supported inputs are
// nil, bool, all integer and float kinds, string, []byte, []any,
// []string, []float64, []float32, map[string]any, map[any]any,
// json.Number, and Value itself. Go maps have no order, so their
// keys are sorted to keep encodes deterministic.
func FromGo(input any) (Value, error) {
	switch typed := input.(type) {
	case nil:
		return Null(), nil
	case Value:
		return typed, nil
	case bool:
		return Bool(typed), nil
	case int:
		return Int(int64(typed)), nil
	case int8:
		return Int(int64(typed)), nil
	case int16:
		return Int(int64(typed)), nil
	case int32:
		return Int(int64(typed)), nil
	case int64:
		return Int(typed), nil
	case uint:
		return Uint(uint64(typed)), nil
	case uint8:
		return Uint(uint64(typed)), nil
	case uint16:
		return Uint(uint64(typed)), nil
	case uint32:
		return Uint(uint64(typed)), nil
	case uint64:
		return Uint(typed), nil
	case float32:
		return Float(float64(typed)), nil
	case float64:
		return Float(typed), nil
	case string:
		return String(typed), nil
	case []byte:
		return Bytes(typed), nil
	case json.Number:
		if integer, err := typed.Int64(); err == nil {
			return Int(integer), nil
		}
		if natural, err := strconv.ParseUint(typed.String(), 10, 64); err == nil {
			return Uint(natural), nil
		}
		float, err := typed.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("converting number %q: %w", typed.String(), err)
		}
		return Float(float), nil
	case []string:
		return Strings(typed...), nil
	case []float64:
		items := make([]Value, len(typed))
		for i, element := range typed {
			items[i] = Float(element)
		}
		return Array(items...), nil
	case []float32:
		items := make([]Value, len(typed))
		for i, element := range typed {
			items[i] = Float(float64(element))
		}
		return Array(items...), nil
	case []any:
		items := make([]Value, len(typed))
		for i, element := range typed {
			converted, err := FromGo(element)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			items[i] = converted
		}
		return Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		entries := make([]Entry, len(keys))
		for i, key := range keys {
			converted, err := FromGo(typed[key])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			entries[i] = Field(key, converted)
		}
		return Map(entries...), nil
	case map[any]any:
		entries := make([]Entry, 0, len(typed))
		for key, element := range typed {
			convertedKey, err := FromGo(key)
			if err != nil {
				return Value{}, fmt.Errorf("map key %v: %w", key, err)
			}
			convertedValue, err := FromGo(element)
			if err != nil {
				return Value{}, fmt.Errorf("key %v: %w", key, err)
			}
			entries = append(entries, Entry{Key: convertedKey, Value: convertedValue})
		}
		sort.Slice(entries, func(a, b int) bool {
			return entries[a].Key.keyString() < entries[b].Key.keyString()
		})
		return Map(entries...), nil
	default:
		return Value{}, fmt.Errorf("unsupported Go type %T", input)
	}
}

// MustFromGo is FromGo for literals in tests and fixtures. Panics on
// unsupported input (programming error).
func MustFromGo(input any) Value {
	value, err := FromGo(input)
	if err != nil {
		panic("codec.MustFromGo: " + err.Error())
	}
	return value
}

// keyString renders a key as a JSON object key.
func (v Value) keyString() string {
	switch v.kind {
	case KindString:
		return v.text
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindInt:
		return strconv.FormatInt(v.integer, 10)
	case KindUint:
		return strconv.FormatUint(v.natural, 10)
	case KindFloat:
		return strconv.FormatFloat(v.float, 'g', -1, 64)
	case KindBytes:
		return base64.StdEncoding.EncodeToString(v.bytes)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return v.kind.String()
		}
		return string(encoded)
	}
}

// MarshalJSON renders v as JSON. Map key order is preserved, non-text
// keys are stringified, bytes render as base64 strings, and
// non-finite floats render as strings ("NaN", "+Inf", "-Inf") since
// JSON has no representation for them.
func (v Value) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	if err := v.writeJSON(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (v Value) writeJSON(buffer *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buffer.WriteString("null")
	case KindBool:
		buffer.WriteString(strconv.FormatBool(v.boolean))
	case KindInt:
		buffer.WriteString(strconv.FormatInt(v.integer, 10))
	case KindUint:
		buffer.WriteString(strconv.FormatUint(v.natural, 10))
	case KindFloat:
		if math.IsNaN(v.float) || math.IsInf(v.float, 0) {
			return writeJSONString(buffer, strconv.FormatFloat(v.float, 'g', -1, 64))
		}
		buffer.WriteString(strconv.FormatFloat(v.float, 'g', -1, 64))
	case KindString:
		return writeJSONString(buffer, v.text)
	case KindBytes:
		return writeJSONString(buffer, base64.StdEncoding.EncodeToString(v.bytes))
	case KindArray:
		buffer.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buffer.WriteByte(',')
			}
			if err := item.writeJSON(buffer); err != nil {
				return err
			}
		}
		buffer.WriteByte(']')
	case KindMap:
		buffer.WriteByte('{')
		for i, entry := range v.entries {
			if i > 0 {
				buffer.WriteByte(',')
			}
			if err := writeJSONString(buffer, entry.Key.keyString()); err != nil {
				return err
			}
			buffer.WriteByte(':')
			if err := entry.Value.writeJSON(buffer); err != nil {
				return err
			}
		}
		buffer.WriteByte('}')
	default:
		return fmt.Errorf("codec: cannot render kind %s as JSON", v.kind)
	}
	return nil
}

func writeJSONString(buffer *bytes.Buffer, text string) error {
	encoded, err := json.Marshal(text)
	if err != nil {
		return err
	}
	buffer.Write(encoded)
	return nil
}
