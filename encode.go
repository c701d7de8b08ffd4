package yamlite

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Marshal returns the yamlite encoding of v.
//
// v must be mapping-like: a *Map, a map with string keys or a struct. Anything
// else encodes to an empty document. The mapping from Go values is:
//   - *Map -> keys in insertion order
//   - map[string]T -> keys in sorted order
//   - struct -> exported fields in declaration order
//   - non-empty mapping -> `key:` followed by its entries one level deeper
//   - empty mapping -> `key: {}`
//   - slice, array -> `key: [e1, e2]`, always inline
//   - string -> "quoted string", without escaping
//   - bool, int, float -> bare literal
//   - nil pointer or interface -> null
//
// Values the dialect cannot express, such as nested lists inside a list,
// encode as an empty literal instead of failing.
//
// Struct fields can be customized with `yamlite` tags. For example:
//
//	// Field appears as 'my_field'.
//	Field int `yamlite:"my_field"`
//
//	// Field is left out when it holds its zero value.
//	Field int `yamlite:"field,omitempty"`
//
//	// Field is ignored.
//	Field int `yamlite:"-"`
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := NewEncoder(&buf, opts...).encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// An Encoder writes yamlite documents to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the yamlite encoding of v to the stream, followed by a
// newline unless the document is empty. See the documentation for Marshal for
// details about the conversion of Go values.
func (enc *Encoder) Encode(v any) error {
	lines, err := enc.encode(v)
	if err != nil {
		return err
	}
	if lines > 0 {
		_, err = io.WriteString(enc.w, "\n")
	}
	return err
}

// encode writes the document without a trailing newline and returns the
// number of lines written.
func (enc *Encoder) encode(v any) (int, error) {
	o, err := newOptions(enc.opts)
	if err != nil {
		return 0, err
	}

	s := newState(enc.w, o)
	rv := s.indirect(reflect.ValueOf(v))
	if s.err == nil && isMapping(rv) {
		s.marshalMapping(rv, o.startIndent)
	}

	lines, err := s.lines, s.err
	putState(s)
	return lines, err
}

// state holds the encoding state for a single Marshal or Encode call.
type state struct {
	w     io.Writer
	err   error
	opts  *options
	lines int
	depth int
}

var statePool = sync.Pool{
	New: func() any {
		return new(state)
	},
}

// newState retrieves a new state from the pool.
func newState(w io.Writer, o *options) *state {
	s := statePool.Get().(*state)
	s.w = w
	s.opts = o
	return s
}

// putState returns a state to the pool.
func putState(s *state) {
	s.w = nil
	s.err = nil
	s.opts = nil
	s.lines = 0
	s.depth = 0
	statePool.Put(s)
}

// write writes str to the output, stopping once an error has occurred.
func (s *state) write(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

// writeLine starts a new output line at the given indentation level and
// writes the given parts on it.
func (s *state) writeLine(indent int, parts ...string) {
	if s.lines > 0 {
		s.write("\n")
	}
	s.lines++
	s.write(strings.Repeat("  ", indent))
	for _, p := range parts {
		s.write(p)
	}
}

var mapPtrType = reflect.TypeOf((*Map)(nil))

// isMapping reports whether v encodes as a nested block of keys.
func isMapping(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	if v.Type() == mapPtrType {
		return true
	}
	switch v.Kind() {
	case reflect.Map:
		return v.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return true
	}
	return false
}

// entry is one key and its value in a mapping being encoded.
type entry struct {
	key   string
	value reflect.Value
}

// entries lists the keys of a mapping-like value in output order.
func (s *state) entries(v reflect.Value) []entry {
	if v.Type() == mapPtrType {
		m := v.Interface().(*Map)
		out := make([]entry, 0, m.Len())
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			out = append(out, entry{key: pair.Key, value: reflect.ValueOf(pair.Value)})
		}
		return out
	}

	switch v.Kind() {
	case reflect.Map:
		// Sort map keys to ensure the output is deterministic.
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return keys[i].String() < keys[j].String()
		})
		out := make([]entry, 0, len(keys))
		for _, key := range keys {
			out = append(out, entry{key: key.String(), value: v.MapIndex(key)})
		}
		return out

	case reflect.Struct:
		var out []entry
		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			// Skip unexported fields as they are not accessible.
			if !field.IsExported() {
				continue
			}

			name, omitEmpty := parseStructTag(field.Tag.Get(s.opts.tagName))
			if name == "-" {
				continue
			}
			if name == "" {
				name = field.Name
			}

			fv := v.Field(i)
			if omitEmpty && isEmptyValue(fv) {
				continue
			}
			out = append(out, entry{key: name, value: fv})
		}
		return out
	}

	return nil
}

// marshalMapping writes one line per key of v at the given indentation level,
// recursing into non-empty nested mappings.
func (s *state) marshalMapping(v reflect.Value, indent int) {
	s.depth++
	defer func() { s.depth-- }()
	if s.depth > s.opts.maxDepth {
		s.err = fmt.Errorf("yamlite: exceeded max depth of %d", s.opts.maxDepth)
		return
	}

	for _, e := range s.entries(v) {
		if s.err != nil {
			return
		}
		s.writeKVPair(e.key, e.value, indent)
	}
}

// writeKVPair writes a key and its value. Nested mappings continue on the
// following lines.
func (s *state) writeKVPair(key string, val reflect.Value, indent int) {
	iv := s.indirect(val)
	if s.err != nil {
		return
	}

	switch {
	case isMapping(iv):
		if len(s.entries(iv)) == 0 {
			s.writeLine(indent, key, ": {}")
			return
		}
		s.writeLine(indent, key, ":")
		s.marshalMapping(iv, indent+1)

	case iv.IsValid() && (iv.Kind() == reflect.Slice || iv.Kind() == reflect.Array):
		s.writeLine(indent, key, ": [", s.inlineList(iv), "]")

	default:
		s.writeLine(indent, key, ": ", s.literal(iv))
	}
}

// inlineList renders the elements of a slice or array separated by ", ".
func (s *state) inlineList(v reflect.Value) string {
	items := make([]string, v.Len())
	for i := range items {
		items[i] = s.literal(s.indirect(v.Index(i)))
	}
	return strings.Join(items, ", ")
}

// literal renders a scalar. Containers and unsupported kinds render as an
// empty string.
func (s *state) literal(v reflect.Value) string {
	if !v.IsValid() {
		return "null"
	}

	switch v.Kind() {
	case reflect.String:
		return `"` + v.String() + `"`
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return formatNumber(v.Float())
	default:
		return ""
	}
}

// formatNumber renders f the way JavaScript's Number#toString does, so that
// documents produced from stored JSON look the same as the JSON numbers.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		// Go pads the exponent to two digits: 1e-07 becomes 1e-7.
		mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// indirect walks down a chain of pointers and interfaces to the concrete
// value, stopping at *Map. A nil pointer yields an invalid reflect.Value,
// which encodes as null.
func (s *state) indirect(v reflect.Value) reflect.Value {
	// The loop limit guards against self-referencing pointers.
	for i := 0; i < s.opts.maxDepth; i++ {
		if !v.IsValid() {
			return v
		}
		kind := v.Kind()
		if kind != reflect.Pointer && kind != reflect.Interface {
			return v
		}
		if v.IsNil() {
			return reflect.Value{}
		}
		if v.Type() == mapPtrType {
			return v
		}
		v = v.Elem()
	}
	s.err = fmt.Errorf("yamlite: encountered a circular or excessively deep data structure")
	return reflect.Value{}
}

// parseStructTag splits a struct tag into its name and omitempty flag.
func parseStructTag(tag string) (string, bool) {
	name, rest, _ := strings.Cut(tag, ",")
	omitEmpty := false
	for _, opt := range strings.Split(rest, ",") {
		if strings.TrimSpace(opt) == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}

// isEmptyValue reports whether v holds its zero value for omitempty.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
