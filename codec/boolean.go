package codec

import (
	"fmt"

	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/schema"
)

// Bool returns a one-byte boolean codec. Any non-zero byte decodes as true.
func Bool() Codec[bool] {
	return boolCodec{}
}

type boolCodec struct{}

func (boolCodec) Encode(c *cursor.Cursor, v bool) error {
	var b byte
	if v {
		b = 1
	}

	return c.WriteByte(b)
}

func (boolCodec) Decode(c *cursor.Cursor) (bool, error) {
	b, err := c.ReadByte()
	if err != nil {
		return false, err
	}

	return b != 0, nil
}

func (boolCodec) Describe() schema.Node {
	return schema.Node{Kind: "bool"}
}

// BoolGroup packs up to eight booleans into a single byte: bit i holds
// value i. It implements Codec[[8]bool]; EncodeBools accepts between one and
// eight values and treats missing trailing values as false.
type BoolGroup struct{}

var _ Codec[[8]bool] = BoolGroup{}

// Booleans returns the bit-packed boolean codec.
func Booleans() BoolGroup {
	return BoolGroup{}
}

// EncodeBools packs 1 to 8 values into one byte.
//
// Returns:
//   - error: ErrArity if zero or more than eight values are given
func (g BoolGroup) EncodeBools(c *cursor.Cursor, values ...bool) error {
	if len(values) == 0 || len(values) > 8 {
		return fmt.Errorf("%w: boolean group takes 1 to 8 values, got %d", errs.ErrArity, len(values))
	}

	var group [8]bool
	copy(group[:], values)

	return g.Encode(c, group)
}

// Encode packs all eight values into one byte.
func (BoolGroup) Encode(c *cursor.Cursor, v [8]bool) error {
	var b byte
	for i, set := range v {
		if set {
			b |= 1 << i
		}
	}

	return c.WriteByte(b)
}

// Decode always yields eight values; unused bits decode as false.
func (BoolGroup) Decode(c *cursor.Cursor) ([8]bool, error) {
	var group [8]bool

	b, err := c.ReadByte()
	if err != nil {
		return group, err
	}
	for i := range group {
		group[i] = b&(1<<i) != 0
	}

	return group, nil
}

// Describe implements schema.Describer.
func (BoolGroup) Describe() schema.Node {
	return schema.Node{Kind: "bools", Width: 1}
}
