package codec

import (
	"fmt"

	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/schema"
)

// T2 is a two-element tuple value.
type T2[A, B any] struct {
	V1 A
	V2 B
}

// T3 is a three-element tuple value.
type T3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

// T4 is a four-element tuple value.
type T4[A, B, C, D any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
}

func tupleNode(children ...any) schema.Node {
	node := schema.Node{Kind: "tuple", Children: make([]schema.Node, len(children))}
	for i, c := range children {
		node.Children[i] = schema.Of(c)
	}

	return node
}

// Tuple2 returns a codec writing two values back to back with no framing.
func Tuple2[A, B any](a Codec[A], b Codec[B]) Codec[T2[A, B]] {
	return tuple2[A, B]{a: a, b: b}
}

type tuple2[A, B any] struct {
	a Codec[A]
	b Codec[B]
}

func (t tuple2[A, B]) Encode(c *cursor.Cursor, v T2[A, B]) error {
	if err := t.a.Encode(c, v.V1); err != nil {
		return err
	}

	return t.b.Encode(c, v.V2)
}

func (t tuple2[A, B]) Decode(c *cursor.Cursor) (T2[A, B], error) {
	var (
		v   T2[A, B]
		err error
	)
	if v.V1, err = t.a.Decode(c); err != nil {
		return v, err
	}
	v.V2, err = t.b.Decode(c)

	return v, err
}

func (t tuple2[A, B]) Describe() schema.Node {
	return tupleNode(t.a, t.b)
}

// Tuple3 returns a codec writing three values back to back with no framing.
func Tuple3[A, B, C any](a Codec[A], b Codec[B], c Codec[C]) Codec[T3[A, B, C]] {
	return tuple3[A, B, C]{a: a, b: b, c: c}
}

type tuple3[A, B, C any] struct {
	a Codec[A]
	b Codec[B]
	c Codec[C]
}

func (t tuple3[A, B, C]) Encode(c *cursor.Cursor, v T3[A, B, C]) error {
	if err := t.a.Encode(c, v.V1); err != nil {
		return err
	}
	if err := t.b.Encode(c, v.V2); err != nil {
		return err
	}

	return t.c.Encode(c, v.V3)
}

func (t tuple3[A, B, C]) Decode(c *cursor.Cursor) (T3[A, B, C], error) {
	var (
		v   T3[A, B, C]
		err error
	)
	if v.V1, err = t.a.Decode(c); err != nil {
		return v, err
	}
	if v.V2, err = t.b.Decode(c); err != nil {
		return v, err
	}
	v.V3, err = t.c.Decode(c)

	return v, err
}

func (t tuple3[A, B, C]) Describe() schema.Node {
	return tupleNode(t.a, t.b, t.c)
}

// Tuple4 returns a codec writing four values back to back with no framing.
func Tuple4[A, B, C, D any](a Codec[A], b Codec[B], c Codec[C], d Codec[D]) Codec[T4[A, B, C, D]] {
	return tuple4[A, B, C, D]{a: a, b: b, c: c, d: d}
}

type tuple4[A, B, C, D any] struct {
	a Codec[A]
	b Codec[B]
	c Codec[C]
	d Codec[D]
}

func (t tuple4[A, B, C, D]) Encode(c *cursor.Cursor, v T4[A, B, C, D]) error {
	if err := t.a.Encode(c, v.V1); err != nil {
		return err
	}
	if err := t.b.Encode(c, v.V2); err != nil {
		return err
	}
	if err := t.c.Encode(c, v.V3); err != nil {
		return err
	}

	return t.d.Encode(c, v.V4)
}

func (t tuple4[A, B, C, D]) Decode(c *cursor.Cursor) (T4[A, B, C, D], error) {
	var (
		v   T4[A, B, C, D]
		err error
	)
	if v.V1, err = t.a.Decode(c); err != nil {
		return v, err
	}
	if v.V2, err = t.b.Decode(c); err != nil {
		return v, err
	}
	if v.V3, err = t.c.Decode(c); err != nil {
		return v, err
	}
	v.V4, err = t.d.Decode(c)

	return v, err
}

func (t tuple4[A, B, C, D]) Describe() schema.Node {
	return tupleNode(t.a, t.b, t.c, t.d)
}

// Tuple returns a codec for heterogeneous fixed-arity values held in a
// []any, one child codec per position (see Erase).
//
// Encode accepts fewer values than the arity only when every omitted
// trailing child is optional; omitted values encode as absent. Decode
// always returns exactly len(children) values, with nil for absent ones.
func Tuple(children ...Codec[any]) Codec[[]any] {
	return tupleN{children: children}
}

type tupleN struct {
	children []Codec[any]
}

func (t tupleN) Encode(c *cursor.Cursor, v []any) error {
	if len(v) > len(t.children) {
		return fmt.Errorf("%w: tuple of %d takes at most %d values, got %d", errs.ErrArity, len(t.children), len(t.children), len(v))
	}
	for i := len(v); i < len(t.children); i++ {
		if !isOptional(t.children[i]) {
			return fmt.Errorf("%w: tuple value %d is required, got %d values", errs.ErrArity, i, len(v))
		}
	}

	for i, child := range t.children {
		var value any
		if i < len(v) {
			value = v[i]
		}
		if err := child.Encode(c, value); err != nil {
			return fmt.Errorf("tuple value %d: %w", i, err)
		}
	}

	return nil
}

func (t tupleN) Decode(c *cursor.Cursor) ([]any, error) {
	out := make([]any, len(t.children))
	for i, child := range t.children {
		v, err := child.Decode(c)
		if err != nil {
			return nil, fmt.Errorf("tuple value %d: %w", i, err)
		}
		out[i] = v
	}

	return out, nil
}

func (t tupleN) Describe() schema.Node {
	children := make([]any, len(t.children))
	for i, c := range t.children {
		children[i] = c
	}

	return tupleNode(children...)
}
