// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{"null", `null`, Null()},
		{"bool", `true`, Bool(true)},
		{"int", `-12`, Int(-12)},
		{"big uint", `18446744073709551615`, Uint(math.MaxUint64)},
		{"float", `1.5`, Float(1.5)},
		{"exponent is float", `1e3`, Float(1000)},
		{"string", `"hé"`, String("hé")},
		{"empty array", `[]`, Array()},
		{"object keeps order", `{"z": 1, "a": [true, null]}`,
			Map(Field("z", Int(1)), Field("a", Array(Bool(true), Null())))},
		{"surrounding whitespace", "  {\"k\":\"v\"}\n", Map(Field("k", String("v")))},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseJSON([]byte(test.input))
			if err != nil {
				t.Fatalf("ParseJSON: %v", err)
			}
			if !got.Equal(test.want) {
				t.Errorf("ParseJSON = %s, want %s", mustJSON(t, got), mustJSON(t, test.want))
			}
		})
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ``},
		{"trailing value", `{} {}`},
		{"unterminated", `{"a": [1, 2`},
		{"bad literal", `nul`},
		{"too deep", strings.Repeat("[", MaxDepth+2) + strings.Repeat("]", MaxDepth+2)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseJSON([]byte(test.input)); err == nil {
				t.Errorf("ParseJSON(%q) succeeded, want error", test.input)
			}
		})
	}
}

func TestValueUnmarshalJSONInStruct(t *testing.T) {
	var target struct {
		Name     string `json:"name"`
		Metadata Value  `json:"metadata"`
	}
	input := `{"name": "doc", "metadata": {"title": "T", "tags": ["b", "a"], "n": 3}}`
	if err := json.Unmarshal([]byte(input), &target); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if target.Name != "doc" {
		t.Errorf("Name = %q, want doc", target.Name)
	}
	if got := target.Metadata.GetString("title"); got != "T" {
		t.Errorf("title = %q, want T", got)
	}
	// Round trip through MarshalJSON keeps key order and tag order.
	if got, want := mustJSON(t, target.Metadata), `{"title":"T","tags":["b","a"],"n":3}`; got != want {
		t.Errorf("re-encoded = %s, want %s", got, want)
	}
}
