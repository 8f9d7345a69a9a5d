package jsonnode

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ObjectKeepsOrderAndSpans(t *testing.T) {
	src := []byte(`{"b": 1, "a": "two",  "c": [true, null]}`)

	root, err := Parse(src)
	require.NoError(t, err)

	obj, ok := root.(*Object)
	require.True(t, ok, "root is %T", root)
	assert.Equal(t, KindObject, obj.Kind())
	assert.Equal(t, Span{Start: 0, End: len(src)}, obj.Span())
	assert.Equal(t, string(src), obj.Raw())

	require.Len(t, obj.Members, 3)
	keys := []string{obj.Members[0].Key, obj.Members[1].Key, obj.Members[2].Key}
	assert.Equal(t, []string{"b", "a", "c"}, keys)

	b := obj.Members[0]
	assert.Equal(t, `"b"`, string(src[b.KeySpan.Start:b.KeySpan.End]))
	assert.Equal(t, "1", b.Value.Raw())
	assert.Equal(t, KindNumber, b.Value.Kind())

	a := obj.Members[1]
	assert.Equal(t, 9, a.KeySpan.Start)
	str, ok := a.Value.(*String)
	require.True(t, ok)
	assert.Equal(t, "two", str.Value)
	assert.Equal(t, `"two"`, str.Raw())

	c := obj.Members[2]
	arr, ok := c.Value.(*Array)
	require.True(t, ok)
	assert.Equal(t, "[true, null]", arr.Raw())
	require.Len(t, arr.Elements, 2)
	assert.Equal(t, KindBool, arr.Elements[0].Kind())
	assert.Equal(t, "true", arr.Elements[0].Raw())
	assert.Equal(t, KindNull, arr.Elements[1].Kind())
	assert.Equal(t, "null", arr.Elements[1].Raw())
}

func TestParse_NestedRawText(t *testing.T) {
	src := []byte("{\n  \"outer\": {\n    \"inner\": [1, 2.5e3, -0]\n  }\n}\n")

	root, err := Parse(src)
	require.NoError(t, err)

	outer, ok := root.(*Object).Lookup("outer")
	require.True(t, ok)
	assert.Equal(t, "{\n    \"inner\": [1, 2.5e3, -0]\n  }", outer.Value.Raw())

	inner, ok := outer.Value.(*Object).Lookup("inner")
	require.True(t, ok)
	nums := inner.Value.(*Array).Elements
	require.Len(t, nums, 3)
	assert.Equal(t, json.Number("2.5e3"), nums[1].(*Number).Value)
	assert.Equal(t, "-0", nums[2].Raw())
}

func TestParse_StringKeepsEscapesInRaw(t *testing.T) {
	root, err := Parse([]byte(`{"s": "a\"bé"}`))
	require.NoError(t, err)

	m, ok := root.(*Object).Lookup("s")
	require.True(t, ok)
	str := m.Value.(*String)
	assert.Equal(t, `a"bé`, str.Value)
	assert.Equal(t, `"a\"bé"`, str.Raw())
}

func TestParse_ScalarRoots(t *testing.T) {
	tests := []struct {
		src  string
		kind Kind
		raw  string
	}{
		{`42`, KindNumber, "42"},
		{`  "hello"  `, KindString, `"hello"`},
		{`false`, KindBool, "false"},
		{`null`, KindNull, "null"},
		{`[]`, KindArray, "[]"},
		{`{}`, KindObject, "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			root, err := Parse([]byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, root.Kind())
			assert.Equal(t, tt.raw, root.Raw())
		})
	}
}

func TestParse_DuplicateKeysLookupFirst(t *testing.T) {
	root, err := Parse([]byte(`{"k": 1, "k": 2}`))
	require.NoError(t, err)

	obj := root.(*Object)
	assert.Len(t, obj.Members, 2)
	m, ok := obj.Lookup("k")
	require.True(t, ok)
	assert.Equal(t, "1", m.Value.Raw())

	_, ok = obj.Lookup("missing")
	assert.False(t, ok)
}

func TestParse_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := Parse([]byte("  \n\t"))
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := Parse([]byte(`{"a": }`))
		var syntaxErr *SyntaxError
		require.True(t, errors.As(err, &syntaxErr), "got %v", err)
		assert.Positive(t, syntaxErr.Offset)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Parse([]byte(`{"a": [1, 2`))
		var syntaxErr *SyntaxError
		require.True(t, errors.As(err, &syntaxErr), "got %v", err)
	})

	t.Run("trailing value", func(t *testing.T) {
		_, err := Parse([]byte(`{"a": 1} {"b": 2}`))
		assert.ErrorIs(t, err, ErrTrailingData)
	})

	t.Run("too deep", func(t *testing.T) {
		depth := 8_000_000
		src := strings.Repeat("[", depth) + strings.Repeat("]", depth)

		_, err := Parse([]byte(src))
		var syntaxErr *SyntaxError
		require.True(t, errors.As(err, &syntaxErr), "got %v", err)
		assert.Equal(t, int64(MaxDepth), syntaxErr.Offset)
		assert.Contains(t, err.Error(), "max depth")
	})

	t.Run("deepest allowed", func(t *testing.T) {
		src := strings.Repeat(`{"a":`, MaxDepth-1) + "[]" + strings.Repeat("}", MaxDepth-1)

		root, err := Parse([]byte(src))
		require.NoError(t, err)
		assert.Equal(t, KindObject, root.Kind())
	})
}

func TestArray_ObjectsSkipsNonObjects(t *testing.T) {
	root, err := Parse([]byte(`[{"a": 1}, 2, [{"b": 3}], {"c": 4}]`))
	require.NoError(t, err)

	var raws []string
	for obj := range root.(*Array).Objects() {
		raws = append(raws, obj.Raw())
	}
	assert.Equal(t, []string{`{"a": 1}`, `{"c": 4}`}, raws)
}

func TestPosition(t *testing.T) {
	src := []byte("{\n  \"é\": {\n    \"key\": 1\n  }\n}")

	tests := []struct {
		name   string
		offset int
		line   int
		column int
	}{
		{"start", 0, 1, 1},
		{"second line", 4, 2, 3},
		{"after multibyte", 8, 2, 6},
		{"third line", 16, 3, 5},
		{"negative clamps", -5, 1, 1},
		{"past end clamps", 1000, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := Position(src, tt.offset)
			assert.Equal(t, tt.line, line)
			assert.Equal(t, tt.column, col)
		})
	}
}
