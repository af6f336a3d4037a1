package codec

import (
	"fmt"

	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/endian"
	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/schema"
)

// Literal returns a codec restricted to a closed list of values. A value is
// written as its index in the list, in the fewest bytes that can hold the
// largest index (one byte for up to 256 values).
//
// Encode fails with ErrDomain for values outside the list; Decode fails with
// ErrDomain for indexes past its end.
func Literal[T comparable](values ...T) Codec[T] {
	if len(values) == 0 {
		invalidSchema("literal needs at least one value")
	}

	index := make(map[T]int, len(values))
	for i, v := range values {
		if _, dup := index[v]; dup {
			invalidSchema("duplicate literal %v", v)
		}
		index[v] = i
	}

	width := 1
	for last := uint64(len(values) - 1); last>>(8*width) != 0; {
		width++
	}

	return literalCodec[T]{values: values, index: index, width: width}
}

type literalCodec[T comparable] struct {
	values []T
	index  map[T]int
	width  int
}

func (l literalCodec[T]) Encode(c *cursor.Cursor, v T) error {
	i, ok := l.index[v]
	if !ok {
		return fmt.Errorf("%w: %v is not one of %d literals", errs.ErrDomain, v, len(l.values))
	}
	endian.PutUint(endian.GetLittleEndianEngine(), c.Extend(l.width), uint64(i))

	return nil
}

func (l literalCodec[T]) Decode(c *cursor.Cursor) (T, error) {
	b, err := c.ReadRaw(l.width)
	if err != nil {
		var zero T
		return zero, err
	}

	i := endian.Uint(endian.GetLittleEndianEngine(), b)
	if i >= uint64(len(l.values)) {
		var zero T
		return zero, fmt.Errorf("%w: literal index %d out of %d", errs.ErrDomain, i, len(l.values))
	}

	return l.values[i], nil
}

func (l literalCodec[T]) Describe() schema.Node {
	params := make([]string, len(l.values))
	for i, v := range l.values {
		params[i] = fmt.Sprint(v)
	}

	return schema.Node{Kind: "literal", Width: l.width, Params: params}
}
