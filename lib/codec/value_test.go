// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/json"
	"math"
	"testing"
)

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"null", Null(), `null`},
		{"ordered map", Map(Field("z", Int(1)), Field("a", Bool(true))), `{"z":1,"a":true}`},
		{"bytes as base64", Bytes([]byte{1, 2}), `"AQI="`},
		{"int key", Map(Entry{Key: Int(7), Value: String("seven")}), `{"7":"seven"}`},
		{"nan", Float(math.NaN()), `"NaN"`},
		{"infinity", Float(math.Inf(-1)), `"-Inf"`},
		{"uint", Uint(math.MaxUint64), `18446744073709551615`},
		{"escaped string", String("a\"b\n"), `"a\"b\n"`},
		{"nested array", Array(Float(0.5), Strings("x")), `[0.5,["x"]]`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := json.Marshal(test.value)
			if err != nil {
				t.Fatalf("json.Marshal: %v", err)
			}
			if string(got) != test.want {
				t.Errorf("json.Marshal = %s, want %s", got, test.want)
			}
		})
	}
}

func TestFromGoSortsMapKeys(t *testing.T) {
	value, err := FromGo(map[string]any{"b": 1, "a": "x", "c": []any{true, nil}})
	if err != nil {
		t.Fatalf("FromGo: %v", err)
	}
	entries := value.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for index, want := range []string{"a", "b", "c"} {
		if key, _ := entries[index].Key.AsString(); key != want {
			t.Errorf("entry %d key = %q, want %q", index, key, want)
		}
	}
	if n, ok := entries[1].Value.AsInt(); !ok || n != 1 {
		t.Errorf("b = %v, want Int(1)", entries[1].Value.Kind())
	}
}

func TestFromGoJSONNumber(t *testing.T) {
	tests := []struct {
		number json.Number
		kind   Kind
	}{
		{"42", KindInt},
		{"18446744073709551615", KindUint},
		{"2.5", KindFloat},
	}
	for _, test := range tests {
		value, err := FromGo(test.number)
		if err != nil {
			t.Fatalf("FromGo(%s): %v", test.number, err)
		}
		if value.Kind() != test.kind {
			t.Errorf("FromGo(%s) kind = %s, want %s", test.number, value.Kind(), test.kind)
		}
	}
}

func TestFromGoRejectsUnsupportedTypes(t *testing.T) {
	if _, err := FromGo(struct{}{}); err == nil {
		t.Error("FromGo(struct{}{}) succeeded, want error")
	}
	if _, err := FromGo(map[string]any{"ok": 1, "bad": make(chan int)}); err == nil {
		t.Error("FromGo with nested channel succeeded, want error")
	}
}

func TestValueGoConversion(t *testing.T) {
	value := Map(
		Field("title", String("T")),
		Field("tags", Strings("a", "b")),
		Field("size", Int(12)),
	)
	converted, ok := value.Go().(map[string]any)
	if !ok {
		t.Fatalf("Go() = %T, want map[string]any", value.Go())
	}
	if converted["title"] != "T" || converted["size"] != int64(12) {
		t.Errorf("Go() = %v", converted)
	}

	mixed := Map(Entry{Key: Int(1), Value: Bool(true)}, Field("x", Null()))
	if _, ok := mixed.Go().(map[any]any); !ok {
		t.Errorf("Go() with int key = %T, want map[any]any", mixed.Go())
	}

	back, err := FromGo(converted)
	if err != nil {
		t.Fatalf("FromGo(Go()): %v", err)
	}
	if back.GetString("title") != "T" {
		t.Errorf("FromGo(Go()) lost title")
	}
}

func TestValueAccessors(t *testing.T) {
	if _, ok := Int(-1).AsUint(); ok {
		t.Error("AsUint accepted a negative int")
	}
	if u, ok := Int(5).AsUint(); !ok || u != 5 {
		t.Errorf("Int(5).AsUint() = %d, %v", u, ok)
	}
	if f, ok := Int(3).AsFloat(); !ok || f != 3 {
		t.Errorf("Int(3).AsFloat() = %v, %v", f, ok)
	}
	if Uint(10).Kind() != KindInt {
		t.Errorf("Uint(10).Kind() = %s, want int", Uint(10).Kind())
	}
	if String("abc").Len() != 3 || Array(Null()).Len() != 1 || Bool(true).Len() != 0 {
		t.Error("Len mismatch")
	}
	duplicate := Map(Field("k", Int(1)), Field("k", Int(2)))
	if got, _ := duplicate.Get("k"); !got.Equal(Int(1)) {
		t.Error("Get did not return the first duplicate")
	}
	if Kind(99).String() != "kind(99)" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}

func TestValueEqualOrderSensitive(t *testing.T) {
	first := Map(Field("a", Int(1)), Field("b", Int(2)))
	second := Map(Field("b", Int(2)), Field("a", Int(1)))
	if first.Equal(second) {
		t.Error("maps in different order compared equal")
	}
	if !first.Equal(Map(Field("a", Int(1)), Field("b", Int(2)))) {
		t.Error("identical maps compared unequal")
	}
	if Int(1).Equal(Float(1)) {
		t.Error("Int and Float compared equal")
	}
}
