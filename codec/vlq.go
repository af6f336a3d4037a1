package codec

import (
	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/schema"
)

// VLQ returns the variable-length quantity codec for non-negative integers.
//
// Each byte carries 7 value bits, least significant group first; the high
// bit is set on every byte except the last. Values below 128 take one byte,
// values below 16384 two, and so on up to ten bytes for the full uint64
// range. Decode fails with ErrRange on encodings wider than 64 bits.
func VLQ() Codec[uint64] {
	return vlqCodec{}
}

type vlqCodec struct{}

func (vlqCodec) Encode(c *cursor.Cursor, v uint64) error {
	writeVLQ(c, v)
	return nil
}

func (vlqCodec) Decode(c *cursor.Cursor) (uint64, error) {
	return readVLQ(c)
}

func (vlqCodec) Describe() schema.Node {
	return schema.Node{Kind: "vlq"}
}

// ZigZag returns a variable-length codec for signed integers. Values are
// zigzag-mapped (0, -1, 1, -2, ... become 0, 1, 2, 3, ...) so small
// magnitudes of either sign stay short, then written as vlq.
func ZigZag() Codec[int64] {
	return zigzagCodec{}
}

type zigzagCodec struct{}

func (zigzagCodec) Encode(c *cursor.Cursor, v int64) error {
	writeVLQ(c, uint64(v<<1)^uint64(v>>63)) //nolint:gosec
	return nil
}

func (zigzagCodec) Decode(c *cursor.Cursor) (int64, error) {
	u, err := readVLQ(c)
	if err != nil {
		return 0, err
	}

	return int64(u>>1) ^ -int64(u&1), nil //nolint:gosec
}

func (zigzagCodec) Describe() schema.Node {
	return schema.Node{Kind: "zigzag"}
}
