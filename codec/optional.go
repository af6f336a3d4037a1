package codec

import (
	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/schema"
)

// Optional wraps c so values may be absent. A nil pointer encodes as a
// single zero presence byte; a present value encodes as byte 1 followed by
// the value. Any non-zero presence byte decodes as present.
func Optional[T any](c Codec[T]) Codec[*T] {
	return optionalCodec[T]{inner: c}
}

type optionalCodec[T any] struct {
	inner Codec[T]
}

func (o optionalCodec[T]) Encode(c *cursor.Cursor, v *T) error {
	if v == nil {
		return c.WriteByte(0)
	}
	_ = c.WriteByte(1)

	return o.inner.Encode(c, *v)
}

func (o optionalCodec[T]) Decode(c *cursor.Cursor) (*T, error) {
	flag, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	if flag == 0 {
		return nil, nil
	}

	v, err := o.inner.Decode(c)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func (o optionalCodec[T]) absent(v any) bool {
	p, _ := v.(*T)
	return p == nil
}

func (o optionalCodec[T]) Describe() schema.Node {
	return schema.Node{Kind: "optional", Children: []schema.Node{schema.Of(o.inner)}}
}
