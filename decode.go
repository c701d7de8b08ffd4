// Package yamlite converts between a small, indentation-based YAML dialect and
// JSON-compatible value trees.
//
// The dialect covers nested mappings (`key:` followed by deeper lines), block
// lists (`- item`), inline lists (`[a, 1, true]`), `{}` and `[]`, double-quoted
// strings that may span lines, unquoted scalars and `#` comments. Parsing is
// lenient: it never fails on content, and lines it had to absorb or normalize
// are reported as notes on the Result.
//
// The parser accepts a broader dialect than the encoder emits: lists are
// always written inline and strings are always quoted.
package yamlite

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Parse parses a yamlite document into a value tree. It never fails: lines
// that cannot be interpreted are skipped or normalized and recorded in
// Result.Notes.
func Parse(data []byte) *Result {
	// A bytes.Reader never fails, so the error is always nil.
	res, _ := newStreamParser(newLexer(bytes.NewReader(data))).parse()
	return res
}

// ParseString parses a yamlite document and returns only the tree.
func ParseString(s string) *Map {
	return Parse([]byte(s)).Value
}

// Decoder reads and decodes a yamlite document from an input stream.
type Decoder struct {
	parser *streamParser
	opts   []Option
	done   bool
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{
		parser: newStreamParser(newLexer(r)),
		opts:   opts,
	}
}

// Decode reads the whole document from the input stream and stores the result
// in the value pointed to by v. A document can only be decoded once; later
// calls return io.EOF.
func (dec *Decoder) Decode(v any) error {
	o, err := newOptions(dec.opts)
	if err != nil {
		return err
	}
	if dec.done {
		return io.EOF
	}
	dec.done = true

	res, err := dec.parser.parse()
	if err != nil {
		return err
	}

	return decodeResult(res, v, o)
}

// Unmarshal parses yamlite data and stores the result in the value pointed to
// by v.
//
// The target can be a **Map to receive the ordered tree itself, an *any or
// map to receive plain values (map[string]any, []any, string, float64, bool,
// nil), or a struct. Struct fields are matched by the `yamlite` tag (see
// TagName) and numbers convert to any numeric field type.
//
// Unmarshal only fails when v cannot hold the document, or, with Strict, when
// the parser recorded notes.
func Unmarshal(data []byte, v any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}

	return decodeResult(Parse(data), v, o)
}

// decodeResult stores a parse result in dst.
func decodeResult(res *Result, dst any, o *options) error {
	if o.strict && len(res.Notes) > 0 {
		return &ParseError{Notes: res.Notes}
	}

	if dst == nil {
		return errors.New("yamlite: cannot unmarshal into a nil value")
	}

	val := reflect.ValueOf(dst)
	if val.Kind() != reflect.Ptr {
		return errors.New("yamlite: destination is not a pointer")
	}
	if val.IsNil() {
		return errors.New("yamlite: destination pointer is nil")
	}

	switch t := dst.(type) {
	case **Map:
		*t = res.Value
		return nil
	case *any:
		*t = Plain(res.Value)
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		TagName:          o.tagName,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("yamlite: %w", err)
	}

	if err := dec.Decode(Plain(res.Value)); err != nil {
		return fmt.Errorf("yamlite: %w", err)
	}

	return nil
}
