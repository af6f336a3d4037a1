package codec

import (
	"fmt"

	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/schema"
)

// Array returns a codec for slices of any length: a vlq element count
// followed by each element. Decoded slices are never nil.
func Array[T any](c Codec[T]) Codec[[]T] {
	return arrayCodec[T]{elem: c, fixed: -1}
}

// FixedArray returns a codec for slices of exactly n elements, written
// back to back with no count. Encode fails with ErrArity for any other length.
func FixedArray[T any](c Codec[T], n int) Codec[[]T] {
	if n < 0 {
		invalidSchema("fixed array length %d is negative", n)
	}

	return arrayCodec[T]{elem: c, fixed: n}
}

type arrayCodec[T any] struct {
	elem  Codec[T]
	fixed int // -1 for counted arrays
}

func (a arrayCodec[T]) Encode(c *cursor.Cursor, v []T) error {
	if a.fixed >= 0 {
		if len(v) != a.fixed {
			return fmt.Errorf("%w: expected %d elements, got %d", errs.ErrArity, a.fixed, len(v))
		}
	} else {
		writeVLQ(c, uint64(len(v)))
	}

	for i := range v {
		if err := a.elem.Encode(c, v[i]); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}

	return nil
}

func (a arrayCodec[T]) Decode(c *cursor.Cursor) ([]T, error) {
	n := a.fixed
	out := make([]T, 0, max(n, 0))
	if n < 0 {
		var err error
		if n, err = readLength(c); err != nil {
			return nil, err
		}
		out = make([]T, 0, capHint(n, c))
	}

	for i := range n {
		v, err := a.elem.Decode(c)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
	}

	return out, nil
}

func (a arrayCodec[T]) Describe() schema.Node {
	node := schema.Node{Kind: "array", Children: []schema.Node{schema.Of(a.elem)}}
	if a.fixed >= 0 {
		node.Length = a.fixed
		node.Params = []string{"fixed"}
	}

	return node
}
