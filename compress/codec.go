// Package compress provides the payload compressors available to squash
// frames.
//
// Codec output is already dense, so compression pays off mainly for large
// messages with repeated structure (arrays of records, repeated strings).
// Four algorithms are available:
//   - None: payload stored as-is
//   - Zstd: best ratio, moderate speed (klauspost/compress, or valyala/gozstd
//     when built with cgo and the gozstd tag)
//   - S2: balanced speed and ratio (klauspost/compress)
//   - LZ4: fastest decompression (pierrec/lz4)
//
// All codecs are stateless values and safe for concurrent use.
package compress

import (
	"fmt"

	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/format"
)

// Compressor compresses a complete payload.
//
// The returned slice is owned by the caller unless documented otherwise;
// the input slice is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// maxSize bounds the decompressed size; output that would exceed it fails
// with ErrRange before the full buffer is allocated. A negative maxSize
// leaves only the codec's built-in limit. Decompress returns an error when
// the input is corrupted or uses another format.
type Decompressor interface {
	Decompress(data []byte, maxSize int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// MaxDecompressedSize is the built-in output limit of every codec.
const MaxDecompressedSize = 128 * 1024 * 1024

// outputLimit resolves a caller's maxSize against MaxDecompressedSize.
func outputLimit(maxSize int) int {
	if maxSize < 0 || maxSize > MaxDecompressedSize {
		return MaxDecompressedSize
	}

	return maxSize
}

func errTooLarge(size uint64, limit int) error {
	return fmt.Errorf("%w: decompressed size %d exceeds %d", errs.ErrRange, size, limit)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
//
// Returns:
//   - Codec: Shared codec instance
//   - error: ErrUnsupportedCompression for unknown types
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s (0x%02x)", errs.ErrUnsupportedCompression, compressionType, uint8(compressionType))
}
