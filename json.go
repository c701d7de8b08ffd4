package yamlite

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// jsonOptions renders JSON the way JSON.stringify(v, null, 2) does: every
// container broken over lines, two-space indent, keys in their stored order.
var jsonOptions = &pretty.Options{Indent: "  "}

// JSON renders a value tree as JSON text indented by two spaces. Keys keep
// their insertion order and strings are written without HTML escaping.
func JSON(m *Map) ([]byte, error) {
	if m == nil {
		m = NewMap()
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, m); err != nil {
		return nil, fmt.Errorf("yamlite: rendering JSON: %w", err)
	}
	return bytes.TrimRight(pretty.PrettyOptions(buf.Bytes(), jsonOptions), "\n"), nil
}

// writeJSON writes v as compact JSON, walking *Map and []any itself so that
// mapping keys stay in insertion order.
func writeJSON(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case *Map:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			if pair != t.Oldest() {
				buf.WriteByte(',')
			}
			if err := writeJSONScalar(buf, pair.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, pair.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case []any:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}

	return writeJSONScalar(buf, v)
}

// writeJSONScalar encodes a single value with HTML escaping turned off.
func writeJSONScalar(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// ToJSON parses a yamlite document and renders the tree as indented JSON
// text. With Strict it fails with a *ParseError when the parser recorded
// notes; otherwise it only fails if the tree holds a number JSON cannot
// represent.
func ToJSON(data []byte, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	res := Parse(data)
	if o.strict && len(res.Notes) > 0 {
		return nil, &ParseError{Notes: res.Notes}
	}

	return JSON(res.Value)
}

// DecodeJSON converts JSON text holding an object into a value tree,
// preserving key order. Numbers become float64.
func DecodeJSON(data []byte) (*Map, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("yamlite: invalid JSON")
	}

	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return nil, errors.New("yamlite: JSON document must be an object")
	}

	return jsonValue(res).(*Map), nil
}

// FromJSON converts JSON text holding an object into a yamlite document.
func FromJSON(data []byte, opts ...Option) ([]byte, error) {
	m, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return Marshal(m, opts...)
}

// jsonValue converts a gjson result into a tree value.
func jsonValue(r gjson.Result) any {
	switch {
	case r.IsObject():
		m := NewMap()
		r.ForEach(func(key, val gjson.Result) bool {
			m.Set(key.String(), jsonValue(val))
			return true
		})
		return m

	case r.IsArray():
		out := make([]any, 0, 8)
		r.ForEach(func(_, val gjson.Result) bool {
			out = append(out, jsonValue(val))
			return true
		})
		return out
	}

	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Num
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}
