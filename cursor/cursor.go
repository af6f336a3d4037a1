// Package cursor provides the growable byte buffer that every squash codec
// reads from and writes to.
//
// A Cursor owns one backing byte slice and one offset. Writes beyond the
// current capacity grow the backing slice by at least doubling it; reads
// beyond the logical length fail with errs.ErrUnderflow.
//
// The logical length is the high-water mark of the data available in the
// cursor: the length of the wrapped slice for FromBytes, or the furthest
// byte ever written. Capacity and logical length are tracked separately.
//
// # Thread Safety
//
// A Cursor is a single-owner resource and is NOT safe for concurrent use.
// Codecs never retain a cursor beyond the call they were given it in.
package cursor

import (
	"fmt"

	"github.com/arloliu/squash/errs"
)

// DefaultSize is the initial capacity used when New is given a non-positive size.
const DefaultSize = 64

// Cursor is a growable byte sequence addressed by a mutable read/write position.
type Cursor struct {
	buf []byte // len(buf) is the capacity
	end int    // logical length
	pos int
}

// New creates an empty cursor with the given initial capacity and offset.
//
// A non-positive size falls back to DefaultSize. The offset is clamped to
// [0, size]; bytes before the offset are zero and count as written.
//
// Parameters:
//   - size: Initial capacity in bytes
//   - pos: Initial read/write offset
//
// Returns:
//   - *Cursor: A new cursor
func New(size, pos int) *Cursor {
	if size <= 0 {
		size = DefaultSize
	}
	pos = min(max(pos, 0), size)

	return &Cursor{
		buf: make([]byte, size),
		end: pos,
		pos: pos,
	}
}

// FromBytes wraps existing data for decoding. The offset starts at 0 and the
// logical length is len(data). The slice is not copied.
func FromBytes(data []byte) *Cursor {
	return &Cursor{
		buf: data,
		end: len(data),
	}
}

// WithBuffer creates a cursor that writes into the capacity of buf,
// starting at offset 0. It lets callers reuse pooled memory.
func WithBuffer(buf []byte) *Cursor {
	buf = buf[:cap(buf)]
	if len(buf) == 0 {
		buf = make([]byte, DefaultSize)
	}

	return &Cursor{buf: buf}
}

// Bytes returns a copy of the region [0, offset).
func (c *Cursor) Bytes() []byte {
	out := make([]byte, c.pos)
	copy(out, c.buf[:c.pos])

	return out
}

// Written returns the region [0, offset) without copying.
// The slice is only valid until the next write.
func (c *Cursor) Written() []byte {
	return c.buf[:c.pos]
}

// Pos returns the current offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the logical length of available data.
func (c *Cursor) Len() int {
	return c.end
}

// Cap returns the capacity of the backing slice.
func (c *Cursor) Cap() int {
	return len(c.buf)
}

// Remaining returns the number of bytes readable from the current offset.
func (c *Cursor) Remaining() int {
	return c.end - c.pos
}

// Seek moves the offset to pos, which must lie within [0, Len()].
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > c.end {
		return fmt.Errorf("%w: seek to %d outside [0, %d]", errs.ErrUnderflow, pos, c.end)
	}
	c.pos = pos

	return nil
}

// Rewind moves the offset back to 0 so written data can be decoded.
func (c *Cursor) Rewind() {
	c.pos = 0
}

// Reset rewinds the cursor and discards its logical content, keeping capacity.
func (c *Cursor) Reset() {
	c.pos = 0
	c.end = 0
}

// Grow ensures at least n bytes can be written at the current offset without
// reallocating. The backing slice at least doubles when it has to grow.
func (c *Cursor) Grow(n int) {
	need := c.pos + n
	if need <= len(c.buf) {
		return
	}

	newCap := max(2*len(c.buf), DefaultSize)
	for newCap < need {
		newCap *= 2
	}

	buf := make([]byte, newCap)
	copy(buf, c.buf[:c.end])
	c.buf = buf
}

// WriteRaw copies data at the current offset and advances past it.
func (c *Cursor) WriteRaw(data []byte) {
	c.Grow(len(data))
	c.pos += copy(c.buf[c.pos:], data)
	c.end = max(c.end, c.pos)
}

// WriteByte writes a single byte at the current offset. It never fails.
func (c *Cursor) WriteByte(b byte) error {
	c.Grow(1)
	c.buf[c.pos] = b
	c.pos++
	c.end = max(c.end, c.pos)

	return nil
}

// Extend reserves n bytes at the current offset, advances past them and
// returns the reserved region for the caller to fill in place.
func (c *Cursor) Extend(n int) []byte {
	c.Grow(n)
	start := c.pos
	c.pos += n
	c.end = max(c.end, c.pos)

	return c.buf[start:c.pos]
}

// ReadRaw returns the next n bytes and advances past them.
//
// The returned slice aliases the cursor's memory; copy it if it must outlive
// subsequent writes.
//
// Returns:
//   - []byte: The next n bytes
//   - error: ErrUnderflow if fewer than n bytes remain
func (c *Cursor) ReadRaw(n int) ([]byte, error) {
	if n < 0 || n > c.end-c.pos {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrUnderflow, n, c.pos, c.end-c.pos)
	}
	start := c.pos
	c.pos += n

	return c.buf[start:c.pos], nil
}

// ReadByte reads a single byte and advances past it.
func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= c.end {
		return 0, fmt.Errorf("%w: need 1 byte at offset %d, have 0", errs.ErrUnderflow, c.pos)
	}
	b := c.buf[c.pos]
	c.pos++

	return b, nil
}

// String implements fmt.Stringer for debugging.
func (c *Cursor) String() string {
	return fmt.Sprintf("Cursor{pos: %d, len: %d, cap: %d}", c.pos, c.end, len(c.buf))
}
