package yamlite

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapOf builds an ordered mapping from alternating keys and values.
func mapOf(kv ...any) *Map {
	m := NewMap()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1])
	}
	return m
}

func TestMarshal(t *testing.T) {
	f := func(name string, v any, expected string) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			out, err := Marshal(v)
			require.NoError(t, err)
			assert.Equal(t, expected, string(out))
		})
	}

	f("string", mapOf("key", "value"), `key: "value"`)
	f("string_unescaped", mapOf("q", `say "hi"`), `q: "say "hi""`)
	f("multiline_string", mapOf("s", "a\nb"), "s: \"a\nb\"")
	f("numbers", mapOf("float", 3.14, "neg", -42.0), "float: 3.14\nneg: -42")
	f("bool_null", mapOf("t", true, "f", false, "n", nil), "t: true\nf: false\nn: null")
	f("empty_containers", mapOf("obj", NewMap(), "arr", []any{}), "obj: {}\narr: []")
	f("inline_list", mapOf("mixed", []any{1.0, "string", true, nil}), `mixed: [1, "string", true, null]`)
	f("nested", mapOf("parent", mapOf("child", "value")), "parent:\n  child: \"value\"")
	f("deep_nested", mapOf("a", mapOf("b", mapOf("c", mapOf("d", "value")))),
		"a:\n  b:\n    c:\n      d: \"value\"")
	f("nested_then_sibling", mapOf("a", mapOf("b", 1.0), "c", 2.0), "a:\n  b: 1\nc: 2")
	f("insertion_order", mapOf("z", 1.0, "a", 2.0), "z: 1\na: 2")
	f("empty_document", NewMap(), "")
	f("empty_key", mapOf("", 1.0, "m", mapOf("", "x")), ": 1\nm:\n  : \"x\"")

	// Plain Go values.
	f("go_map_sorted", map[string]any{"b": 1, "a": "x", "c": []string{"p", "q"}},
		"a: \"x\"\nb: 1\nc: [\"p\", \"q\"]")
	f("go_nested_map", map[string]any{"outer": map[string]int{"y": 2, "x": 1}},
		"outer:\n  x: 1\n  y: 2")
	f("go_empty_map", map[string]any{"m": map[string]any{}}, "m: {}")
	f("integer_kinds", map[string]any{"i": int64(-3), "u": uint8(7), "f": float32(0.5)},
		"f: 0.5\ni: -3\nu: 7")
	f("array", map[string]any{"a": [2]int{1, 2}}, "a: [1, 2]")
	f("nil_slice", map[string]any{"s": []any(nil)}, "s: []")
	f("nil_pointer", map[string]any{"p": (*int)(nil)}, "p: null")
	f("pointer_value", map[string]any{"p": ptr(5)}, "p: 5")
	f("pointer_to_map", &map[string]any{"k": "v"}, `k: "v"`)

	// Values the dialect has no syntax for.
	f("list_in_list", mapOf("l", []any{1.0, []any{2.0}}), "l: [1, ]")
	f("map_in_list", mapOf("l", []any{mapOf("a", 1.0)}), "l: []")
	f("non_string_keys", map[string]any{"m": map[int]string{1: "a"}}, "m: ")
	f("func_value", map[string]any{"fn": func() {}}, "fn: ")

	// Non-mapping roots encode to an empty document.
	f("nil_root", nil, "")
	f("string_root", "hello", "")
	f("slice_root", []any{1, 2}, "")
}

func ptr[T any](v T) *T {
	return &v
}

func TestMarshalStartIndent(t *testing.T) {
	m := mapOf("a", mapOf("b", 1.0), "c", "x")

	out, err := Marshal(m, StartIndent(1))
	require.NoError(t, err)
	assert.Equal(t, "  a:\n    b: 1\n  c: \"x\"", string(out))

	out, err = Marshal(m, StartIndent(2))
	require.NoError(t, err)
	assert.Equal(t, "    a:\n      b: 1\n    c: \"x\"", string(out))

	_, err = Marshal(m, StartIndent(-1))
	assert.Error(t, err)
}

func TestEncoder(t *testing.T) {
	t.Run("trailing newline", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewEncoder(&buf).Encode(mapOf("a", 1.0, "b", 2.0)))
		assert.Equal(t, "a: 1\nb: 2\n", buf.String())
	})

	t.Run("empty document writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewEncoder(&buf).Encode(NewMap()))
		assert.Empty(t, buf.String())
	})

	t.Run("options", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewEncoder(&buf, StartIndent(1)).Encode(mapOf("a", true)))
		assert.Equal(t, "  a: true\n", buf.String())
	})

	t.Run("writer error", func(t *testing.T) {
		err := NewEncoder(errorWriter{}).Encode(mapOf("a", 1.0))
		assert.ErrorIs(t, err, assert.AnError)
	})
}

type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

type node struct {
	Name string
	Next *node
}

func TestMarshalCycles(t *testing.T) {
	t.Run("self-referencing struct", func(t *testing.T) {
		n := &node{Name: "loop"}
		n.Next = n

		_, err := Marshal(n, MaxDepth(5))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max depth")
	})

	t.Run("self-referencing pointer", func(t *testing.T) {
		var p any
		p = &p

		_, err := Marshal(map[string]any{"p": p}, MaxDepth(10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "circular")
	})

	t.Run("finite chain", func(t *testing.T) {
		out, err := Marshal(&node{Name: "a", Next: &node{Name: "b"}})
		require.NoError(t, err)
		assert.Equal(t, "Name: \"a\"\nNext:\n  Name: \"b\"\n  Next: null", string(out))
	})

	t.Run("bad max depth", func(t *testing.T) {
		_, err := Marshal(NewMap(), MaxDepth(0))
		assert.Error(t, err)
	})
}

func TestFormatNumber(t *testing.T) {
	f := func(in float64, expected string) {
		t.Helper()
		assert.Equal(t, expected, formatNumber(in), "formatNumber(%v)", in)
	}

	f(0, "0")
	f(math.Copysign(0, -1), "0")
	f(1, "1")
	f(-42, "-42")
	f(3.14, "3.14")
	f(0.1, "0.1")
	f(100, "100")
	f(1e20, "100000000000000000000")
	f(123456789012345680000, "123456789012345680000")
	f(1e21, "1e+21")
	f(1.5e300, "1.5e+300")
	f(math.MaxFloat64, "1.7976931348623157e+308")
	f(0.000001, "0.000001")
	f(1e-7, "1e-7")
	f(-2.5e-10, "-2.5e-10")
	f(5e-324, "5e-324")
	f(math.NaN(), "NaN")
	f(math.Inf(1), "Infinity")
	f(math.Inf(-1), "-Infinity")
}
