package codec

import (
	"fmt"

	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/schema"
)

// Bytes returns a codec for byte slices framed by a vlq length.
// Decoded slices are copies and never alias the cursor.
func Bytes() Codec[[]byte] {
	return bytesCodec{fixed: -1}
}

// FixedBytes returns a codec for byte slices of exactly n bytes, written
// without framing. Encode fails with ErrArity on any other length.
func FixedBytes(n int) Codec[[]byte] {
	if n < 0 {
		invalidSchema("fixed byte length %d is negative", n)
	}

	return bytesCodec{fixed: n}
}

type bytesCodec struct {
	fixed int // -1 for vlq-framed
}

func (b bytesCodec) Encode(c *cursor.Cursor, v []byte) error {
	if b.fixed >= 0 {
		if len(v) != b.fixed {
			return fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrArity, b.fixed, len(v))
		}
	} else {
		writeVLQ(c, uint64(len(v)))
	}
	c.WriteRaw(v)

	return nil
}

func (b bytesCodec) Decode(c *cursor.Cursor) ([]byte, error) {
	n := b.fixed
	if n < 0 {
		var err error
		if n, err = readLength(c); err != nil {
			return nil, err
		}
	}

	raw, err := c.ReadRaw(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, raw)

	return out, nil
}

func (b bytesCodec) Describe() schema.Node {
	if b.fixed >= 0 {
		return schema.Node{Kind: "bytes", Length: b.fixed, Params: []string{"fixed"}}
	}

	return schema.Node{Kind: "bytes"}
}

// String returns a codec for strings stored as their raw bytes behind a vlq
// length. Use AlphabetString to compress strings with small character sets.
func String() Codec[string] {
	return stringCodec{}
}

type stringCodec struct{}

func (stringCodec) Encode(c *cursor.Cursor, v string) error {
	writeVLQ(c, uint64(len(v)))
	copy(c.Extend(len(v)), v)

	return nil
}

func (stringCodec) Decode(c *cursor.Cursor) (string, error) {
	n, err := readLength(c)
	if err != nil {
		return "", err
	}

	raw, err := c.ReadRaw(n)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

func (stringCodec) Describe() schema.Node {
	return schema.Node{Kind: "string"}
}
