// Package jsonnode provides a positioned, order-preserving JSON tree.
//
// Every node remembers its span in the source text so callers can report
// where a value was found. Object members keep their declaration order.
package jsonnode

import (
	"encoding/json"
	"iter"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Span is a byte range in the source text. End is exclusive.
type Span struct {
	Start int
	End   int
}

// Node is one of *Object, *Array, *String, *Number, *Bool or *Null.
type Node interface {
	Kind() Kind
	Span() Span
	// Raw returns the node's source text exactly as written.
	Raw() string

	node()
}

type base struct {
	span Span
	raw  string
}

func (b base) Span() Span  { return b.span }
func (b base) Raw() string { return b.raw }
func (base) node()         {}

type (
	// Member is a single key/value pair of an Object.
	Member struct {
		Key     string
		KeySpan Span
		Value   Node
	}

	// Object is a JSON object with members in declaration order.
	Object struct {
		base
		Members []Member
	}

	// Array is a JSON array.
	Array struct {
		base
		Elements []Node
	}

	// String is a JSON string. Value holds the decoded text, Raw the quoted source.
	String struct {
		base
		Value string
	}

	// Number is a JSON number.
	Number struct {
		base
		Value json.Number
	}

	// Bool is a JSON boolean.
	Bool struct {
		base
		Value bool
	}

	// Null is the JSON null literal.
	Null struct {
		base
	}
)

func (*Object) Kind() Kind { return KindObject }
func (*Array) Kind() Kind  { return KindArray }
func (*String) Kind() Kind { return KindString }
func (*Number) Kind() Kind { return KindNumber }
func (*Bool) Kind() Kind   { return KindBool }
func (*Null) Kind() Kind   { return KindNull }

// Lookup returns the first member named key.
func (o *Object) Lookup(key string) (Member, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m, true
		}
	}
	return Member{}, false
}

// Objects yields the elements of the array that are objects, in order.
func (a *Array) Objects() iter.Seq[*Object] {
	return func(yield func(*Object) bool) {
		for _, el := range a.Elements {
			obj, ok := el.(*Object)
			if !ok {
				continue
			}
			if !yield(obj) {
				return
			}
		}
	}
}
