package codec

import (
	"math"
	"testing"

	"github.com/arloliu/squash/errs"
	"github.com/stretchr/testify/require"
)

func TestUint(t *testing.T) {
	require.Equal(t, []byte{0x01, 0x02}, roundTrip(t, Uint(2), 0x0201))
	require.Equal(t, []byte{0x02, 0x01}, roundTrip(t, Uint(2, WithBigEndian()), 0x0201))
	require.Equal(t, []byte{0xff, 0xff, 0xff}, roundTrip(t, Uint(3), 1<<24-1))
	require.Len(t, roundTrip(t, Uint(8), math.MaxUint64), 8)

	for _, width := range []int{1, 2, 3, 4, 5, 6, 7} {
		_, err := encode(Uint(width), uint64(1)<<(8*width))
		require.ErrorIs(t, err, errs.ErrRange, "width %d", width)
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		width int
		value int64
		want  []byte
	}{
		{1, -128, []byte{0x80}},
		{1, 127, []byte{0x7f}},
		{1, -1, []byte{0xff}},
		{2, -2, []byte{0xfe, 0xff}},
		{3, -1, []byte{0xff, 0xff, 0xff}},
		{3, 1 << 22, []byte{0x00, 0x00, 0x40}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, roundTrip(t, Int(tt.width), tt.value))
	}

	roundTrip(t, Int(8), math.MinInt64)
	roundTrip(t, Int(8), math.MaxInt64)
	roundTrip(t, Int(5, WithBigEndian()), -123456789)

	_, err := encode(Int(1), 128)
	require.ErrorIs(t, err, errs.ErrRange)
	_, err = encode(Int(1), -129)
	require.ErrorIs(t, err, errs.ErrRange)
	_, err = encode(Int(4), math.MaxInt32+1)
	require.ErrorIs(t, err, errs.ErrRange)
}

func TestNumber_Underflow(t *testing.T) {
	_, err := decode(Uint(4), []byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrUnderflow)

	_, err = decode(Float(8), nil)
	require.ErrorIs(t, err, errs.ErrUnderflow)
}

func TestFloat(t *testing.T) {
	require.Equal(t, []byte{0x00, 0x00, 0xc0, 0x3f}, roundTrip(t, Float(4), 1.5))
	require.Len(t, roundTrip(t, Float(8), math.Pi), 8)
	roundTrip(t, Float(8, WithBigEndian()), -0.125)
	roundTrip(t, Float(4), math.Inf(-1))

	got, err := decode(Float(4), mustEncode(t, Float(4), math.NaN()))
	require.NoError(t, err)
	require.True(t, math.IsNaN(got))

	_, err = encode(Float(4), 1e39)
	require.ErrorIs(t, err, errs.ErrRange)
}

func TestAngle(t *testing.T) {
	const step = 2 * math.Pi / 65536

	data := mustEncode(t, Angle(), math.Pi)
	require.Equal(t, []byte{0x00, 0x80}, data)

	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{1.2345, 1.2345},
	}
	for _, tt := range tests {
		got, err := decode(Angle(), mustEncode(t, Angle(), tt.in))
		require.NoError(t, err)
		require.InDelta(t, tt.want, got, step, "angle %g", tt.in)
		require.GreaterOrEqual(t, got, 0.0)
		require.Less(t, got, 2*math.Pi)
	}

	_, err := encode(Angle(), math.NaN())
	require.ErrorIs(t, err, errs.ErrRange)
	_, err = encode(Angle(), math.Inf(1))
	require.ErrorIs(t, err, errs.ErrRange)
}

func TestNumber_InvalidSchema(t *testing.T) {
	requireInvalidSchema(t, func() { Uint(0) })
	requireInvalidSchema(t, func() { Uint(9) })
	requireInvalidSchema(t, func() { Int(-1) })
	requireInvalidSchema(t, func() { Float(2) })
}

func mustEncode[T any](t *testing.T, c Codec[T], v T) []byte {
	t.Helper()

	data, err := encode(c, v)
	require.NoError(t, err)

	return data
}
