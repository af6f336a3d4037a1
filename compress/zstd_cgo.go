//go:build cgo && gozstd

package compress

import (
	"github.com/valyala/gozstd"
)

// zstdLevel matches the default level of the pure-Go encoder, so frames
// compress to comparable sizes in either build.
const zstdLevel = 3

// Compress compresses a frame payload with libzstd. Empty input yields nil.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decompresses a frame payload of at most maxSize bytes.
//
// The declared content size is checked before libzstd allocates; the
// decoded length is checked again for frames that omit it.
func (c ZstdCompressor) Decompress(data []byte, maxSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	limit := outputLimit(maxSize)
	size, err := zstdContentSize(data, limit)
	if err != nil {
		return nil, err
	}

	out, err := gozstd.Decompress(make([]byte, 0, max(size, 0)), data)
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		return nil, errTooLarge(uint64(len(out)), limit)
	}

	return out, nil
}
