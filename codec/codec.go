// Package codec implements the squash codec algebra: primitive encodings and
// the combinators that compose them into schema trees.
//
// A Codec[T] reads and writes a compact, byte-exact representation of T
// through a cursor.Cursor. Codecs are immutable once constructed and safe to
// share between goroutines; every concurrent encode or decode needs its own
// cursor.
//
// # Building Schemas
//
// Schemas are composed bottom-up:
//
//	type Player struct {
//	    Name  string
//	    Level uint64
//	    Tags  []string
//	}
//
//	playerCodec := codec.Record(
//	    codec.Field("name", codec.AlphabetString(),
//	        func(p *Player) string { return p.Name },
//	        func(p *Player, v string) { p.Name = v }),
//	    codec.Field("level", codec.Uint(2),
//	        func(p *Player) uint64 { return p.Level },
//	        func(p *Player, v uint64) { p.Level = v }),
//	    codec.Field("tags", codec.Array(codec.String()),
//	        func(p *Player) []string { return p.Tags },
//	        func(p *Player, v []string) { p.Tags = v }),
//	)
//
//	c := cursor.New(0, 0)
//	err := playerCodec.Encode(c, player)
//	...
//	c.Rewind()
//	decoded, err := playerCodec.Decode(c)
//
// # Wire Format
//
// Fixed-width numbers are little-endian unless configured with
// WithBigEndian. Lengths and counts are vlq encoded: base-128 groups, least
// significant first, with the high bit of every byte but the last set.
// Fixed-length arrays, tuples and records carry no framing at all; both ends
// must share the same schema, which the schema package can fingerprint.
//
// # Errors
//
// Encode and Decode return errors wrapping the sentinels in package errs.
// A failed call leaves the cursor offset advanced to an unspecified point;
// discard the cursor contents rather than continuing.
//
// Constructors panic with an error wrapping errs.ErrInvalidSchema when given
// invalid arguments, since schemas are fixed program-start descriptions.
package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/schema"
)

// Codec encodes and decodes values of type T through a cursor.
type Codec[T any] interface {
	// Encode writes v at the cursor's offset.
	Encode(c *cursor.Cursor, v T) error
	// Decode reads a value at the cursor's offset.
	Decode(c *cursor.Cursor) (T, error)
}

// optional is implemented by codecs whose absent value encodes to a bare
// presence flag. Dynamic tuples use it to accept omitted trailing values.
type optional interface {
	absent(v any) bool
}

func isOptional(c any) bool {
	o, ok := c.(optional)
	return ok && o.absent(nil)
}

func invalidSchema(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", errs.ErrInvalidSchema, fmt.Sprintf(format, args...)))
}

// writeVLQ writes v as base-128 groups, least significant group first.
func writeVLQ(c *cursor.Cursor, v uint64) {
	for v >= 0x80 {
		_ = c.WriteByte(byte(v) | 0x80)
		v >>= 7
	}
	_ = c.WriteByte(byte(v))
}

func readVLQ(c *cursor.Cursor) (uint64, error) {
	var v uint64
	for shift := uint(0); ; shift += 7 {
		b, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		if shift == 63 && b > 1 {
			return 0, fmt.Errorf("%w: vlq overflows 64 bits", errs.ErrRange)
		}

		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
	}
}

// vlqLen returns the number of bytes writeVLQ uses for v.
func vlqLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}

func readLength(c *cursor.Cursor) (int, error) {
	n, err := readVLQ(c)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: length %d too large", errs.ErrRange, n)
	}

	return int(n), nil
}

// capHint bounds a decoded element count used for preallocation by the
// bytes left in the cursor, so corrupt counts cannot force huge allocations.
func capHint(n int, c *cursor.Cursor) int {
	return min(n, c.Remaining())
}

// Erase wraps c as a Codec[any], for dynamic tuples and table slots.
//
// Encode accepts values of type T, or nil when c is optional. Decode returns
// nil for absent optional values.
func Erase[T any](c Codec[T]) Codec[any] {
	return erased[T]{inner: c}
}

type erased[T any] struct {
	inner Codec[T]
}

func (e erased[T]) Encode(c *cursor.Cursor, v any) error {
	if v == nil && isOptional(e.inner) {
		var zero T
		return e.inner.Encode(c, zero)
	}

	t, ok := v.(T)
	if !ok {
		var zero T
		return fmt.Errorf("%w: expected %T, got %T", errs.ErrDomain, zero, v)
	}

	return e.inner.Encode(c, t)
}

func (e erased[T]) Decode(c *cursor.Cursor) (any, error) {
	v, err := e.inner.Decode(c)
	if err != nil {
		return nil, err
	}
	if o, ok := e.inner.(optional); ok && o.absent(v) {
		return nil, nil
	}

	return v, nil
}

func (e erased[T]) absent(v any) bool {
	if o, ok := e.inner.(optional); ok {
		return v == nil || o.absent(v)
	}

	return false
}

func (e erased[T]) Describe() schema.Node {
	return schema.Of(e.inner)
}

// Adapt builds a Codec[U] from a Codec[T] and a pair of conversions. It is
// the building block for datatype adapters layered over the core codecs.
//
// Parameters:
//   - name: Descriptive name recorded in the schema descriptor
//   - c: Underlying codec
//   - from: Converts a U to the T written by c
//   - to: Converts a T read by c back to U
func Adapt[T, U any](name string, c Codec[T], from func(U) T, to func(T) U) Codec[U] {
	return adapted[T, U]{name: name, inner: c, from: from, to: to}
}

type adapted[T, U any] struct {
	name  string
	inner Codec[T]
	from  func(U) T
	to    func(T) U
}

func (a adapted[T, U]) Encode(c *cursor.Cursor, v U) error {
	return a.inner.Encode(c, a.from(v))
}

func (a adapted[T, U]) Decode(c *cursor.Cursor) (U, error) {
	v, err := a.inner.Decode(c)
	if err != nil {
		var zero U
		return zero, err
	}

	return a.to(v), nil
}

func (a adapted[T, U]) Describe() schema.Node {
	return schema.Node{Kind: "adapt", Params: []string{a.name}, Children: []schema.Node{schema.Of(a.inner)}}
}
