package cursor

import (
	"testing"

	"github.com/arloliu/squash/errs"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("default size", func(t *testing.T) {
		c := New(0, 0)
		require.Equal(t, DefaultSize, c.Cap())
		require.Equal(t, 0, c.Pos())
		require.Equal(t, 0, c.Len())
	})

	t.Run("initial offset counts as written", func(t *testing.T) {
		c := New(16, 4)
		require.Equal(t, 4, c.Pos())
		require.Equal(t, 4, c.Len())
		require.Equal(t, []byte{0, 0, 0, 0}, c.Bytes())
	})

	t.Run("offset clamped to size", func(t *testing.T) {
		c := New(8, 100)
		require.Equal(t, 8, c.Pos())

		c = New(8, -3)
		require.Equal(t, 0, c.Pos())
	})
}

func TestCursor_WriteRaw_Grows(t *testing.T) {
	c := New(2, 0)
	c.WriteRaw([]byte{1, 2, 3})
	require.Equal(t, 3, c.Pos())
	require.GreaterOrEqual(t, c.Cap(), 4, "capacity at least doubles")

	prevCap := c.Cap()
	c.WriteRaw(make([]byte, prevCap))
	require.GreaterOrEqual(t, c.Cap(), 2*prevCap)
	require.Equal(t, 3+prevCap, c.Len())
	require.LessOrEqual(t, c.Pos(), c.Len())
}

func TestCursor_Bytes_Snapshot(t *testing.T) {
	c := New(4, 0)
	c.WriteRaw([]byte("abc"))

	snap := c.Bytes()
	require.Equal(t, []byte("abc"), snap)

	c.WriteRaw([]byte("def"))
	require.Equal(t, []byte("abc"), snap, "snapshot must not alias the cursor")
	require.Equal(t, []byte("abcdef"), c.Bytes())
}

func TestCursor_ReadRaw(t *testing.T) {
	c := FromBytes([]byte{10, 20, 30})

	b, err := c.ReadRaw(2)
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20}, b)
	require.Equal(t, 1, c.Remaining())

	_, err = c.ReadRaw(2)
	require.ErrorIs(t, err, errs.ErrUnderflow)

	v, err := c.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(30), v)

	_, err = c.ReadByte()
	require.ErrorIs(t, err, errs.ErrUnderflow)
}

func TestCursor_ReadBeyondWritten(t *testing.T) {
	c := New(64, 0)
	c.WriteRaw([]byte{1, 2})
	c.Rewind()

	_, err := c.ReadRaw(3)
	require.ErrorIs(t, err, errs.ErrUnderflow, "capacity is not readable data")
}

func TestCursor_SeekAndReset(t *testing.T) {
	c := New(8, 0)
	c.WriteRaw([]byte{1, 2, 3, 4})

	require.NoError(t, c.Seek(2))
	b, err := c.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(3), b)

	require.ErrorIs(t, c.Seek(5), errs.ErrUnderflow)
	require.ErrorIs(t, c.Seek(-1), errs.ErrUnderflow)

	capBefore := c.Cap()
	c.Reset()
	require.Equal(t, 0, c.Len())
	require.Equal(t, capBefore, c.Cap(), "capacity is monotonic")
}

func TestCursor_OverwriteKeepsLength(t *testing.T) {
	c := New(8, 0)
	c.WriteRaw([]byte{1, 2, 3, 4})
	require.NoError(t, c.Seek(1))
	c.WriteRaw([]byte{9})

	require.Equal(t, 4, c.Len())
	c.Rewind()
	b, err := c.ReadRaw(4)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 9, 3, 4}, b)
}

func TestCursor_Extend(t *testing.T) {
	c := WithBuffer(nil)
	region := c.Extend(3)
	copy(region, "xyz")
	require.Equal(t, []byte("xyz"), c.Written())
	require.Equal(t, "Cursor{pos: 3, len: 3, cap: 64}", c.String())
}

func BenchmarkCursor_WriteRaw(b *testing.B) {
	payload := make([]byte, 32)
	for b.Loop() {
		c := New(0, 0)
		for range 64 {
			c.WriteRaw(payload)
		}
	}
}
