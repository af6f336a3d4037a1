package compress

import (
	"bytes"
	"math/rand"
	"sync"
	"testing"

	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func repetitivePayload(n int) []byte {
	return bytes.Repeat([]byte("squash:record:0123456789;"), n)
}

func TestGetCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0x7f))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	random := make([]byte, 4096)
	rng.Read(random)

	inputs := map[string][]byte{
		"small":      []byte("hello"),
		"repetitive": repetitivePayload(200),
		"random":     random,
	}

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, data := range inputs {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				restored, err := codec.Decompress(compressed, len(data))
				require.NoError(t, err)
				require.Equal(t, data, restored)
			})
		}
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Empty(t, compressed)

		restored, err := codec.Decompress(compressed, -1)
		require.NoError(t, err)
		require.Empty(t, restored)
	}
}

func TestCompressors_ShrinkRepetitiveData(t *testing.T) {
	data := repetitivePayload(400)
	for _, ct := range allTypes[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		assert.Less(t, len(compressed), len(data)/4, ct.String())
	}
}

func TestCompressors_InvalidData(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03}
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage, -1)
		require.Error(t, err, ct.String())
	}
}

func TestAllCodecs_DecompressBound(t *testing.T) {
	data := repetitivePayload(400)

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed, len(data))
		require.NoError(t, err, ct.String())
		require.Equal(t, data, restored)

		_, err = codec.Decompress(compressed, len(data)-1)
		require.ErrorIs(t, err, errs.ErrRange, ct.String())
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	data := repetitivePayload(64)

	var wg sync.WaitGroup
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				compressed, err := codec.Compress(data)
				if !assert.NoError(t, err) {
					return
				}
				restored, err := codec.Decompress(compressed, -1)
				assert.NoError(t, err)
				assert.Equal(t, data, restored)
			}()
		}
	}
	wg.Wait()
}

func BenchmarkCompress(b *testing.B) {
	data := repetitivePayload(400)
	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})
	}
}
