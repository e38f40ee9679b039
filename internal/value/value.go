// Package value implements the dynamic JSON-like value model used for app
// state, component bound values, and action parameters.
//
// A Value is a closed tagged union over the six JSON shapes. Accessors never
// panic and never guess: they return (result, ok) and leave coercion rules
// explicit. Decoding preserves the original JSON type of the input document,
// so a numeric string stays a string across round-trips.
package value

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind tags the shape a Value holds. The ordering of the constants is the
// decode priority order: string, number, bool, object, array, null.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindObject
	KindArray
	KindNull
)

// String returns the tag name for logs and errors.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is a dynamic, schema-less payload.
// The zero value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	obj  map[string]Value
	arr  []Value
}

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a float64.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool wraps a bool.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Object wraps a map. The map is used as-is, not copied.
func Object(m map[string]Value) Value { return Value{kind: KindObject, obj: m} }

// Array wraps a slice. The slice is used as-is, not copied.
func Array(vs []Value) Value { return Value{kind: KindArray, arr: vs} }

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Kind returns the tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string form of the value.
// Numbers format as their decimal value, bools as "true"/"false".
// Objects, arrays, and null have no string form.
func (v Value) AsString() (string, bool) {
	switch v.kind {
	case KindString:
		return v.str, true
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64), true
	case KindBool:
		return strconv.FormatBool(v.b), true
	default:
		return "", false
	}
}

// truthy/falsy vocabulary accepted by AsBool for string values
var (
	truthyStrings = map[string]bool{"true": true, "yes": true, "y": true, "on": true, "1": true}
	falsyStrings  = map[string]bool{"false": true, "no": true, "n": true, "off": true, "0": true}
)

// AsBool returns the boolean form of the value. Native bools pass through;
// strings are parsed with a permissive truthy/falsy rule; nonzero numbers
// are true.
func (v Value) AsBool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindString:
		s := strings.ToLower(strings.TrimSpace(v.str))
		if truthyStrings[s] {
			return true, true
		}
		if falsyStrings[s] {
			return false, true
		}
		return false, false
	case KindNumber:
		return v.num != 0, true
	default:
		return false, false
	}
}

// AsNumber returns the numeric form of the value. Native numbers pass
// through; strings are parsed as floating point.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// AsObject returns the object form of the value.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// AsArray returns the array form of the value.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Get looks up a key on an object value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Null(), false
	}
	child, ok := v.obj[key]
	return child, ok
}

// Equal reports structural equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindNull:
		return true
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, a := range v.obj {
			b, ok := other.obj[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	}
	return false
}

// UnmarshalJSON decodes a Value preserving the JSON type of the input.
// The interpretations are tried in tag priority order: string, number,
// bool, object, array, null. The first successful one wins, which keeps
// round-trips reproducible.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*v = Null()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = String(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Number(n)
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = Bool(b)
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		m := make(map[string]Value, len(obj))
		for k, raw := range obj {
			var child Value
			if err := child.UnmarshalJSON(raw); err != nil {
				return err
			}
			m[k] = child
		}
		*v = Object(m)
		return nil
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err == nil {
		vs := make([]Value, len(arr))
		for i, raw := range arr {
			if err := vs[i].UnmarshalJSON(raw); err != nil {
				return err
			}
		}
		*v = Array(vs)
		return nil
	}

	return fmt.Errorf("value: cannot decode %q", trimmed)
}

// MarshalJSON encodes the value back to its original JSON shape.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindObject:
		return json.Marshal(v.obj)
	case KindArray:
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	case KindNull:
		return []byte("null"), nil
	}
	return nil, fmt.Errorf("value: unknown kind %d", v.kind)
}

// FromInterface converts a generic decoded JSON value (out of
// map[string]interface{} plumbing) into a Value.
func FromInterface(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case string:
		return String(t)
	case float64:
		return Number(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case bool:
		return Bool(t)
	case map[string]interface{}:
		m := make(map[string]Value, len(t))
		for k, child := range t {
			m[k] = FromInterface(child)
		}
		return Object(m)
	case []interface{}:
		vs := make([]Value, len(t))
		for i, child := range t {
			vs[i] = FromInterface(child)
		}
		return Array(vs)
	default:
		return Null()
	}
}

// ToInterface converts a Value back into generic JSON plumbing.
func (v Value) ToInterface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindObject:
		m := make(map[string]interface{}, len(v.obj))
		for k, child := range v.obj {
			m[k] = child.ToInterface()
		}
		return m
	case KindArray:
		vs := make([]interface{}, len(v.arr))
		for i, child := range v.arr {
			vs[i] = child.ToInterface()
		}
		return vs
	default:
		return nil
	}
}

// GoString renders a stable debug form (object keys sorted).
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNull:
		return "null"
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, child := range v.arr {
			parts[i] = child.GoString()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case KindObject:
		keys := make([]string, 0, len(v.obj))
		for k := range v.obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = strconv.Quote(k) + ":" + v.obj[k].GoString()
		}
		return "{" + strings.Join(parts, ",") + "}"
	}
	return "unknown"
}
