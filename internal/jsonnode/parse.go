package jsonnode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxDepth is the deepest nesting of objects and arrays Parse accepts.
const MaxDepth = 10000

var (
	ErrEmptyDocument = errors.New("document is empty or contains only whitespace")
	ErrTrailingData  = errors.New("unexpected data after top-level value")
)

// SyntaxError reports malformed JSON at a byte offset.
type SyntaxError struct {
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid JSON at offset %d: %v", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

type builder struct {
	src   []byte
	dec   *json.Decoder
	depth int
}

// Parse builds a node tree from src. The source must hold exactly one JSON value.
func Parse(src []byte) (Node, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, ErrEmptyDocument
	}

	b := &builder{
		src: src,
		dec: json.NewDecoder(bytes.NewReader(src)),
	}
	b.dec.UseNumber()

	root, err := b.value()
	if err != nil {
		return nil, b.wrap(err)
	}

	if _, err := b.dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTrailingData, err)
		}
		return nil, ErrTrailingData
	}

	return root, nil
}

// next returns the offset where the next token starts. The decoder's offset
// sits right after the previous token, before any separators.
func (b *builder) next() int {
	i := int(b.dec.InputOffset())
	for i < len(b.src) {
		switch b.src[i] {
		case ' ', '\t', '\r', '\n', ',', ':':
			i++
			continue
		}
		break
	}
	return i
}

func (b *builder) base(start int) base {
	end := int(b.dec.InputOffset())
	return base{
		span: Span{Start: start, End: end},
		raw:  string(b.src[start:end]),
	}
}

func (b *builder) value() (Node, error) {
	start := b.next()
	tok, err := b.dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if t == '{' || t == '[' {
			if b.depth >= MaxDepth {
				return nil, &SyntaxError{Offset: int64(start), Err: fmt.Errorf("exceeded max depth of %d", MaxDepth)}
			}
			b.depth++
			defer func() { b.depth-- }()
		}
		switch t {
		case '{':
			return b.object(start)
		case '[':
			return b.array(start)
		}
		return nil, &SyntaxError{Offset: int64(start), Err: fmt.Errorf("unexpected delimiter %q", rune(t))}
	case string:
		return &String{base: b.base(start), Value: t}, nil
	case json.Number:
		return &Number{base: b.base(start), Value: t}, nil
	case bool:
		return &Bool{base: b.base(start), Value: t}, nil
	case nil:
		return &Null{base: b.base(start)}, nil
	}

	return nil, &SyntaxError{Offset: int64(start), Err: fmt.Errorf("unexpected token %T", tok)}
}

func (b *builder) object(start int) (Node, error) {
	obj := &Object{}
	for b.dec.More() {
		keyStart := b.next()
		tok, err := b.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &SyntaxError{Offset: int64(keyStart), Err: errors.New("object key is not a string")}
		}
		keySpan := Span{Start: keyStart, End: int(b.dec.InputOffset())}

		val, err := b.value()
		if err != nil {
			return nil, err
		}
		obj.Members = append(obj.Members, Member{Key: key, KeySpan: keySpan, Value: val})
	}

	// closing '}'
	if _, err := b.dec.Token(); err != nil {
		return nil, err
	}
	obj.base = b.base(start)
	return obj, nil
}

func (b *builder) array(start int) (Node, error) {
	arr := &Array{}
	for b.dec.More() {
		el, err := b.value()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, el)
	}

	if _, err := b.dec.Token(); err != nil {
		return nil, err
	}
	arr.base = b.base(start)
	return arr, nil
}

func (b *builder) wrap(err error) error {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return err
	}
	var jsonErr *json.SyntaxError
	if errors.As(err, &jsonErr) {
		return &SyntaxError{Offset: jsonErr.Offset, Err: err}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &SyntaxError{Offset: int64(len(b.src)), Err: io.ErrUnexpectedEOF}
	}
	return err
}

// Position converts a byte offset in src to a 1-based line and column.
// Columns count runes, not bytes.
func Position(src []byte, offset int) (line, column int) {
	offset = max(min(offset, len(src)), 0)
	before := src[:offset]

	line = bytes.Count(before, []byte{'\n'}) + 1
	lineStart := bytes.LastIndexByte(before, '\n') + 1
	column = utf8.RuneCount(before[lineStart:]) + 1
	return line, column
}
