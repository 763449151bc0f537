// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// MaxDepth bounds array/map nesting during decode. Input nested deeper
// is reported as a DecodeError rather than recursing without limit.
const MaxDepth = 64

// TrailingPolicy selects what DecodeMapWith does with bytes left over
// after one complete top-level value.
type TrailingPolicy uint8

const (
	// TrailingIgnore accepts and discards trailing bytes (the default).
	TrailingIgnore TrailingPolicy = iota

	// TrailingReject reports trailing bytes as a DecodeError.
	TrailingReject
)

// DecodeOptions configures DecodeMapWith.
type DecodeOptions struct {
	Trailing TrailingPolicy
}

// DecodeError describes a serialized-map payload that could not be
// decoded. It never aborts container decoding; it travels inside a
// MapResult in place of the value.
type DecodeError struct {
	// Reason is a short human-readable description of the failure.
	Reason string

	// Attempted is the number of payload bytes handed to the decoder.
	Attempted int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("msgpack decode failed after %d bytes offered: %s", e.Attempted, e.Reason)
}

// IsDecodeError reports whether err (or any error it wraps) is a
// *DecodeError.
func IsDecodeError(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}

// MapResult is the outcome of decoding one serialized-map payload:
// either a Value or a *DecodeError, never both. The zero MapResult
// holds a null Value and no error, which is what absent sections
// carry.
type MapResult struct {
	Value Value
	Err   *DecodeError
}

// OK reports whether the payload decoded successfully.
func (r MapResult) OK() bool { return r.Err == nil }

// Failed builds a MapResult carrying a decode failure.
func Failed(reason string, attempted int) MapResult {
	return MapResult{Err: &DecodeError{Reason: reason, Attempted: attempted}}
}

// DecodeMap decodes one MessagePack value from data, ignoring trailing
// bytes. It never panics and never returns a Go error: every failure
// is reported through MapResult.Err.
func DecodeMap(data []byte) MapResult {
	return DecodeMapWith(data, DecodeOptions{})
}

// DecodeMapWith is DecodeMap with an explicit trailing-bytes policy.
// Each call builds its own decoder; there is no shared state.
func DecodeMapWith(data []byte, options DecodeOptions) MapResult {
	if len(data) == 0 {
		return Failed("empty input", 0)
	}

	reader := bytes.NewReader(data)
	state := &decodeState{
		reader:  reader,
		decoder: msgpack.NewDecoder(reader),
	}
	value, err := state.decodeValue(0)
	if err != nil {
		return Failed(describeDecodeFailure(err), len(data))
	}
	if options.Trailing == TrailingReject && reader.Len() > 0 {
		return Failed(fmt.Sprintf("%d trailing bytes after value", reader.Len()), len(data))
	}
	return MapResult{Value: value}
}

// decodeState walks one payload. The reader is kept alongside the
// decoder so declared lengths can be checked against the bytes that
// actually remain before anything is allocated.
type decodeState struct {
	reader  *bytes.Reader
	decoder *msgpack.Decoder
}

func (state *decodeState) decodeValue(depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, fmt.Errorf("nesting deeper than %d levels", MaxDepth)
	}

	code, err := state.decoder.PeekCode()
	if err != nil {
		return Value{}, err
	}

	switch {
	case code == msgpcode.Nil:
		return Null(), state.decoder.DecodeNil()

	case code == msgpcode.False || code == msgpcode.True:
		b, err := state.decoder.DecodeBool()
		return Bool(b), err

	case msgpcode.IsFixedNum(code),
		code == msgpcode.Int8, code == msgpcode.Int16,
		code == msgpcode.Int32, code == msgpcode.Int64:
		i, err := state.decoder.DecodeInt64()
		return Int(i), err

	case code == msgpcode.Uint8, code == msgpcode.Uint16,
		code == msgpcode.Uint32, code == msgpcode.Uint64:
		u, err := state.decoder.DecodeUint64()
		return Uint(u), err

	case code == msgpcode.Float:
		f, err := state.decoder.DecodeFloat32()
		return Float(float64(f)), err

	case code == msgpcode.Double:
		f, err := state.decoder.DecodeFloat64()
		return Float(f), err

	case msgpcode.IsString(code):
		if err := state.checkPayloadLength(code); err != nil {
			return Value{}, err
		}
		s, err := state.decoder.DecodeString()
		return String(s), err

	case msgpcode.IsBin(code):
		if err := state.checkPayloadLength(code); err != nil {
			return Value{}, err
		}
		b, err := state.decoder.DecodeBytes()
		if b == nil && err == nil {
			b = []byte{}
		}
		return Bytes(b), err

	case msgpcode.IsFixedArray(code), code == msgpcode.Array16, code == msgpcode.Array32:
		return state.decodeArray(depth)

	case msgpcode.IsFixedMap(code), code == msgpcode.Map16, code == msgpcode.Map32:
		return state.decodeMap(depth)

	case msgpcode.IsExt(code):
		return Value{}, fmt.Errorf("unsupported extension type (code 0x%02x)", code)

	default:
		return Value{}, fmt.Errorf("invalid type code 0x%02x", code)
	}
}

func (state *decodeState) decodeArray(depth int) (Value, error) {
	length, err := state.decoder.DecodeArrayLen()
	if err != nil {
		return Value{}, err
	}
	if length < 0 {
		return Null(), nil
	}
	// Every element occupies at least one byte.
	if length > state.reader.Len() {
		return Value{}, fmt.Errorf("array declares %d elements but only %d bytes remain", length, state.reader.Len())
	}
	items := make([]Value, 0, length)
	for index := 0; index < length; index++ {
		item, err := state.decodeValue(depth + 1)
		if err != nil {
			return Value{}, fmt.Errorf("array element %d: %w", index, err)
		}
		items = append(items, item)
	}
	return Array(items...), nil
}

func (state *decodeState) decodeMap(depth int) (Value, error) {
	length, err := state.decoder.DecodeMapLen()
	if err != nil {
		return Value{}, err
	}
	if length < 0 {
		return Null(), nil
	}
	// Every entry occupies at least two bytes (key and value).
	if length > state.reader.Len()/2 {
		return Value{}, fmt.Errorf("map declares %d entries but only %d bytes remain", length, state.reader.Len())
	}
	entries := make([]Entry, 0, length)
	for index := 0; index < length; index++ {
		key, err := state.decodeValue(depth + 1)
		if err != nil {
			return Value{}, fmt.Errorf("map key %d: %w", index, err)
		}
		value, err := state.decodeValue(depth + 1)
		if err != nil {
			return Value{}, fmt.Errorf("map value %d: %w", index, err)
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	return Map(entries...), nil
}

// checkPayloadLength reads the declared length of a str or bin value
// straight from the unread bytes and rejects lengths that exceed what
// remains, before the decoder allocates a buffer for them.
func (state *decodeState) checkPayloadLength(code byte) error {
	remaining := state.reader.Len()
	header := peekUnread(state.reader, 5)

	var width int
	var declared uint64
	switch {
	case msgpcode.IsFixedString(code):
		declared = uint64(code & 0x1f)
	case code == msgpcode.Str8 || code == msgpcode.Bin8:
		width = 1
	case code == msgpcode.Str16 || code == msgpcode.Bin16:
		width = 2
	case code == msgpcode.Str32 || code == msgpcode.Bin32:
		width = 4
	}
	if width > 0 {
		if len(header) < 1+width {
			return io.ErrUnexpectedEOF
		}
		for _, b := range header[1 : 1+width] {
			declared = declared<<8 | uint64(b)
		}
	}
	available := uint64(remaining - 1 - width)
	if declared > available {
		return fmt.Errorf("declares %d payload bytes but only %d remain", declared, available)
	}
	return nil
}

// peekUnread returns up to limit unread bytes without consuming them.
func peekUnread(reader *bytes.Reader, limit int) []byte {
	offset := reader.Size() - int64(reader.Len())
	buffer := make([]byte, min(reader.Len(), limit))
	n, _ := reader.ReadAt(buffer, offset)
	return buffer[:n]
}

func describeDecodeFailure(err error) string {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "truncated input"
	}
	return err.Error()
}

// EncodeMap encodes v as MessagePack, preserving map key order.
// Integers use the smallest representation; floats are written as
// 64-bit doubles.
func EncodeMap(v Value) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := msgpack.NewEncoder(&buffer)
	if err := encodeValue(encoder, v, 0); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// AppendMap appends the MessagePack encoding of v to dst.
func AppendMap(dst []byte, v Value) ([]byte, error) {
	encoded, err := EncodeMap(v)
	if err != nil {
		return dst, err
	}
	return append(dst, encoded...), nil
}

func encodeValue(encoder *msgpack.Encoder, v Value, depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("encoding value: nesting deeper than %d levels", MaxDepth)
	}
	switch v.kind {
	case KindNull:
		return encoder.EncodeNil()
	case KindBool:
		return encoder.EncodeBool(v.boolean)
	case KindInt:
		return encoder.EncodeInt(v.integer)
	case KindUint:
		return encoder.EncodeUint(v.natural)
	case KindFloat:
		return encoder.EncodeFloat64(v.float)
	case KindString:
		return encoder.EncodeString(v.text)
	case KindBytes:
		payload := v.bytes
		if payload == nil {
			// EncodeBytes writes nil for a nil slice.
			payload = []byte{}
		}
		return encoder.EncodeBytes(payload)
	case KindArray:
		if err := encoder.EncodeArrayLen(len(v.items)); err != nil {
			return err
		}
		for index, item := range v.items {
			if err := encodeValue(encoder, item, depth+1); err != nil {
				return fmt.Errorf("array element %d: %w", index, err)
			}
		}
		return nil
	case KindMap:
		if err := encoder.EncodeMapLen(len(v.entries)); err != nil {
			return err
		}
		for index, entry := range v.entries {
			if err := encodeValue(encoder, entry.Key, depth+1); err != nil {
				return fmt.Errorf("map key %d: %w", index, err)
			}
			if err := encodeValue(encoder, entry.Value, depth+1); err != nil {
				return fmt.Errorf("map value %d: %w", index, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("encoding value: unknown kind %s", v.kind)
	}
}
