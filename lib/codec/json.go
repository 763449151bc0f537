// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ParseJSON decodes a single JSON value. Object keys keep their
// document order. Integral numbers decode as integers (KindInt, or
// KindUint above math.MaxInt64); every other number decodes as a
// float. Trailing non-whitespace input is an error.
func ParseJSON(data []byte) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	value, err := parseJSONValue(decoder, 0)
	if err != nil {
		return Value{}, err
	}
	if _, err := decoder.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return Value{}, fmt.Errorf("codec: %w", err)
	}
	return value, nil
}

// UnmarshalJSON implements [json.Unmarshaler] with the semantics of
// [ParseJSON].
func (v *Value) UnmarshalJSON(data []byte) error {
	value, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = value
	return nil
}

func parseJSONValue(decoder *json.Decoder, depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, fmt.Errorf("codec: JSON nesting exceeds %d levels", MaxDepth)
	}
	token, err := decoder.Token()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Value{}, fmt.Errorf("codec: %w", err)
	}

	switch typed := token.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(typed), nil
	case string:
		return String(typed), nil
	case json.Number:
		return parseJSONNumber(typed)
	case json.Delim:
		switch typed {
		case '[':
			var items []Value
			for decoder.More() {
				item, err := parseJSONValue(decoder, depth+1)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := decoder.Token(); err != nil {
				return Value{}, fmt.Errorf("codec: %w", err)
			}
			return Array(items...), nil
		case '{':
			var entries []Entry
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return Value{}, fmt.Errorf("codec: %w", err)
				}
				key, ok := keyToken.(string)
				if !ok {
					return Value{}, fmt.Errorf("codec: object key is %T", keyToken)
				}
				item, err := parseJSONValue(decoder, depth+1)
				if err != nil {
					return Value{}, err
				}
				entries = append(entries, Field(key, item))
			}
			if _, err := decoder.Token(); err != nil {
				return Value{}, fmt.Errorf("codec: %w", err)
			}
			return Map(entries...), nil
		}
	}
	return Value{}, fmt.Errorf("codec: unexpected JSON token %v", token)
}

func parseJSONNumber(number json.Number) (Value, error) {
	text := number.String()
	if integer, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(integer), nil
	}
	if natural, err := strconv.ParseUint(text, 10, 64); err == nil {
		return Uint(natural), nil
	}
	float, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, fmt.Errorf("codec: number %s: %w", text, err)
	}
	return Float(float), nil
}
