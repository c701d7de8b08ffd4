package yamlite

import (
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is a yamlite mapping: string keys in insertion order.
//
// A value tree is built from *Map, []any, string, float64, bool and nil.
type Map = orderedmap.OrderedMap[string, any]

// NewMap returns an empty mapping.
func NewMap() *Map {
	return orderedmap.New[string, any]()
}

// Plain converts a value tree into plain Go values: every *Map becomes a
// map[string]any. Other values are returned unchanged.
func Plain(v any) any {
	switch t := v.(type) {
	case *Map:
		if t == nil {
			return nil
		}
		out := make(map[string]any, t.Len())
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = Plain(pair.Value)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Plain(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Plain(val)
		}
		return out
	default:
		return v
	}
}

// Equal reports whether two value trees are structurally equal. Sequences
// compare element by element, mappings compare as key sets regardless of
// order, and numbers compare by value across Go numeric types.
func Equal(a, b any) bool {
	return equalPlain(Plain(a), Plain(b))
}

func equalPlain(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !equalPlain(xv, yv) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equalPlain(x[i], y[i]) {
				return false
			}
		}
		return true
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}

	xf, ok := toFloat(a)
	if !ok {
		return false
	}
	yf, ok := toFloat(b)
	return ok && xf == yf
}

// toFloat converts any Go numeric value to float64.
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
