package value

import (
	"encoding/json"
	"testing"
)

func TestDecodePreservesJSONType(t *testing.T) {
	// A numeric string must stay a string after a round-trip.
	var v Value
	if err := json.Unmarshal([]byte(`"42"`), &v); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if v.Kind() != KindString {
		t.Errorf("expected string kind, got %s", v.Kind())
	}

	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `"42"` {
		t.Errorf("round-trip changed type: %s", out)
	}
}

func TestDecodeShapes(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{`"hello"`, KindString},
		{`3.5`, KindNumber},
		{`true`, KindBool},
		{`{"a":1}`, KindObject},
		{`[1,2,3]`, KindArray},
		{`null`, KindNull},
	}

	for _, tt := range tests {
		var v Value
		if err := json.Unmarshal([]byte(tt.input), &v); err != nil {
			t.Fatalf("unmarshal %s failed: %v", tt.input, err)
		}
		if v.Kind() != tt.kind {
			t.Errorf("%s: expected kind %s, got %s", tt.input, tt.kind, v.Kind())
		}
	}
}

func TestAsString(t *testing.T) {
	if s, ok := Number(7).AsString(); !ok || s != "7" {
		t.Errorf("number asString = %q, %v", s, ok)
	}
	if s, ok := Number(2.5).AsString(); !ok || s != "2.5" {
		t.Errorf("fractional asString = %q, %v", s, ok)
	}
	if s, ok := Bool(true).AsString(); !ok || s != "true" {
		t.Errorf("bool asString = %q, %v", s, ok)
	}
	if _, ok := Null().AsString(); ok {
		t.Error("null should have no string form")
	}
	if _, ok := Object(nil).AsString(); ok {
		t.Error("object should have no string form")
	}
}

func TestAsBool(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
		ok   bool
	}{
		{Bool(true), true, true},
		{Bool(false), false, true},
		{String("yes"), true, true},
		{String("ON"), true, true},
		{String("0"), false, true},
		{String("maybe"), false, false},
		{Number(1), true, true},
		{Number(0), false, true},
		{Null(), false, false},
	}

	for _, tt := range tests {
		got, ok := tt.v.AsBool()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%#v.AsBool() = %v, %v; want %v, %v", tt.v, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAsNumber(t *testing.T) {
	if n, ok := Number(4.25).AsNumber(); !ok || n != 4.25 {
		t.Errorf("native number = %v, %v", n, ok)
	}
	if n, ok := String(" 12.5 ").AsNumber(); !ok || n != 12.5 {
		t.Errorf("string number = %v, %v", n, ok)
	}
	if _, ok := String("twelve").AsNumber(); ok {
		t.Error("unparseable string should return not-ok")
	}
	if _, ok := Bool(true).AsNumber(); ok {
		t.Error("bool has no numeric form")
	}
}

func TestStructuralEquality(t *testing.T) {
	a := Object(map[string]Value{
		"items": Array([]Value{Number(1), String("two")}),
		"done":  Bool(false),
	})
	b := Object(map[string]Value{
		"done":  Bool(false),
		"items": Array([]Value{Number(1), String("two")}),
	})

	if !a.Equal(b) {
		t.Error("structurally equal objects should compare equal")
	}

	c := Object(map[string]Value{"done": Bool(true)})
	if a.Equal(c) {
		t.Error("different objects should not compare equal")
	}

	if String("1").Equal(Number(1)) {
		t.Error("different tags should never compare equal")
	}
}

func TestNestedRoundTrip(t *testing.T) {
	input := `{"name":"timer","count":3,"tags":["a","b"],"meta":{"live":true,"note":null}}`

	var v Value
	if err := json.Unmarshal([]byte(input), &v); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var again Value
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}

	if !v.Equal(again) {
		t.Errorf("round-trip not structural-equal: %s vs %s", v.GoString(), again.GoString())
	}
}

func TestFromInterface(t *testing.T) {
	raw := map[string]interface{}{
		"n":    float64(2),
		"s":    "x",
		"b":    true,
		"list": []interface{}{"a", float64(1)},
	}

	v := FromInterface(raw)
	if v.Kind() != KindObject {
		t.Fatalf("expected object, got %s", v.Kind())
	}
	n, _ := v.Get("n")
	if got, ok := n.AsNumber(); !ok || got != 2 {
		t.Errorf("n = %v, %v", got, ok)
	}

	back, ok := v.ToInterface().(map[string]interface{})
	if !ok || back["s"] != "x" {
		t.Errorf("ToInterface lost data: %#v", back)
	}
}
