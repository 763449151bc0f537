// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode is configured with Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. The same decoded document always exports
// to identical bytes.
var cborEncMode cbor.EncMode

// cborDecMode decodes any-typed maps as map[string]any so exported
// documents read back into the same shapes encoding/json produces.
var cborDecMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	cborEncMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	cborDecMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalCBOR encodes v as deterministic CBOR. Struct fields fall back
// to their json tags, so the same view types serve both dump formats.
func MarshalCBOR(v any) ([]byte, error) {
	return cborEncMode.Marshal(v)
}

// UnmarshalCBOR decodes CBOR data into v.
func UnmarshalCBOR(data []byte, v any) error {
	return cborDecMode.Unmarshal(data, v)
}

// MarshalCBOR implements cbor.Marshaler. Map key order is not kept:
// deterministic encoding sorts keys by their encoded form. Bytes stay
// CBOR byte strings rather than the base64 text used for JSON.
func (v Value) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(v.Go())
}

// DiagnoseCBOR returns the CBOR diagnostic notation (RFC 8949 §8) for
// every data item in data.
func DiagnoseCBOR(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DiagnoseCBORFirst returns the diagnostic notation for the first data
// item in data along with the unconsumed remainder, for walking CBOR
// sequences one item at a time.
func DiagnoseCBORFirst(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}
