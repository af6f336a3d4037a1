package frame

import (
	"strings"
	"testing"

	"github.com/arloliu/squash/codec"
	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/format"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y float64
	Tag  string
}

func pointCodec() codec.Codec[point] {
	return codec.Record(
		codec.Field("x", codec.Float(8),
			func(p *point) float64 { return p.X },
			func(p *point, v float64) { p.X = v }),
		codec.Field("y", codec.Float(8),
			func(p *point) float64 { return p.Y },
			func(p *point, v float64) { p.Y = v }),
		codec.Field("tag", codec.String(),
			func(p *point) string { return p.Tag },
			func(p *point, v string) { p.Tag = v }),
	)
}

func TestEncodeDecode_AllCompressions(t *testing.T) {
	c := codec.Array(pointCodec())
	points := make([]point, 200)
	for i := range points {
		points[i] = point{X: float64(i), Y: float64(i) / 2, Tag: "sensor"}
	}

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			data, err := Encode(c, points, WithCompression(ct))
			require.NoError(t, err)

			header, err := ParseHeader(data)
			require.NoError(t, err)
			require.Equal(t, ct, header.Compression)
			require.True(t, header.Flags.Has(FlagChecksum|FlagFingerprint))

			decoded, err := Decode(c, data)
			require.NoError(t, err)
			require.Equal(t, points, decoded)
		})
	}
}

func TestEncode_HeaderLayout(t *testing.T) {
	data, err := Encode(codec.Uint(1), 7, WithChecksum(false), WithSchemaFingerprint(false))
	require.NoError(t, err)
	require.Equal(t, []byte{0x51, 0x53, Version, 0x00, byte(format.CompressionNone), 0x01, 0x07}, data)
}

func TestEncode_UnsupportedCompression(t *testing.T) {
	_, err := Encode(codec.Bool(), true, WithCompression(format.CompressionType(9)))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestDecode_SchemaMismatch(t *testing.T) {
	data, err := Encode(codec.Uint(2), 513)
	require.NoError(t, err)

	_, err = Decode(codec.Uint(2, codec.WithBigEndian()), data)
	require.ErrorIs(t, err, errs.ErrSchemaMismatch)

	// disabling the comparison lets a compatible codec through
	v, err := Decode(codec.Int(2), data, WithSchemaFingerprint(false))
	require.NoError(t, err)
	require.Equal(t, int64(513), v)
}

func TestDecode_ChecksumMismatch(t *testing.T) {
	data, err := Encode(codec.String(), "payload")
	require.NoError(t, err)

	data[len(data)-1] ^= 0xff
	_, err = Decode(codec.String(), data)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)

	_, err = Decode(codec.String(), data, WithChecksum(false))
	require.NoError(t, err)
}

func TestDecode_InvalidFrame(t *testing.T) {
	valid, err := Encode(codec.String(), "abc")
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", valid[:3]},
		{"bad magic", append([]byte{0x00, 0x00}, valid[2:]...)},
		{"bad version", append([]byte{0x51, 0x53, 0x09}, valid[3:]...)},
		{"unknown flags", append([]byte{0x51, 0x53, Version, 0x80}, valid[4:]...)},
		{"truncated payload", valid[:len(valid)-1]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(codec.String(), tt.data)
			require.ErrorIs(t, err, errs.ErrInvalidFrame)
		})
	}
}

func TestDecode_PayloadLargerThanDeclared(t *testing.T) {
	text := strings.Repeat("squash ", 500)

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			data, err := Encode(codec.String(), text, WithCompression(ct))
			require.NoError(t, err)

			header, err := ParseHeader(data)
			require.NoError(t, err)
			n := header.Size()

			// shrink the declared length and keep the payload
			header.RawLength = 16
			forged := append(header.Bytes(), data[n:]...)

			_, err = Decode(codec.String(), forged)
			require.ErrorIs(t, err, errs.ErrInvalidFrame)
			require.ErrorIs(t, err, errs.ErrRange)
		})
	}

	header := Header{Version: Version, Compression: format.CompressionNone, RawLength: 1 << 40}
	_, err := Decode(codec.String(), header.Bytes())
	require.ErrorIs(t, err, errs.ErrInvalidFrame)
}

func TestDecode_TrailingPayload(t *testing.T) {
	// a two-byte payload decoded by a one-byte codec
	data, err := Encode(codec.Uint(2), 0x0101, WithSchemaFingerprint(false))
	require.NoError(t, err)

	_, err = Decode(codec.Uint(1), data)
	require.ErrorIs(t, err, errs.ErrInvalidFrame)
}

func TestHeader_BytesParse(t *testing.T) {
	h := Header{
		Version:     Version,
		Flags:       FlagChecksum | FlagFingerprint,
		Compression: format.CompressionS2,
		RawLength:   300,
		Fingerprint: 0x0102030405060708,
		Checksum:    0xa1a2a3a4a5a6a7a8,
	}

	b := h.Bytes()
	require.Len(t, b, h.Size())
	require.Len(t, b, 5+2+16)

	var parsed Header
	n, err := parsed.Parse(append(b, 0xee))
	require.NoError(t, err)
	require.Equal(t, len(b), n)
	require.Equal(t, h, parsed)
}

func TestEncode_CompressionShrinksRepetitivePayload(t *testing.T) {
	c := codec.String()
	text := strings.Repeat("squash ", 500)

	plain, err := Encode(c, text)
	require.NoError(t, err)
	packed, err := Encode(c, text, WithCompression(format.CompressionZstd))
	require.NoError(t, err)

	require.Less(t, len(packed), len(plain)/4)
}
