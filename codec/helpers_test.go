package codec

import (
	"errors"
	"testing"

	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/errs"
	"github.com/stretchr/testify/require"
)

// roundTrip encodes v, checks that decoding yields v again and consumes the
// whole encoding, and returns the encoded bytes.
func roundTrip[T any](t *testing.T, c Codec[T], v T) []byte {
	t.Helper()

	cur := cursor.New(0, 0)
	require.NoError(t, c.Encode(cur, v))
	data := cur.Bytes()

	dec := cursor.FromBytes(data)
	got, err := c.Decode(dec)
	require.NoError(t, err)
	require.Equal(t, v, got)
	require.Zero(t, dec.Remaining(), "decode left %d bytes", dec.Remaining())

	return data
}

func encode[T any](c Codec[T], v T) ([]byte, error) {
	cur := cursor.New(0, 0)
	if err := c.Encode(cur, v); err != nil {
		return nil, err
	}

	return cur.Bytes(), nil
}

func decode[T any](c Codec[T], data []byte) (T, error) {
	return c.Decode(cursor.FromBytes(data))
}

func requireInvalidSchema(t *testing.T, fn func()) {
	t.Helper()

	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.Is(err, errs.ErrInvalidSchema), "got %v", err)
	}()

	fn()
}

func newBenchCursor() *cursor.Cursor {
	return cursor.New(1024, 0)
}
