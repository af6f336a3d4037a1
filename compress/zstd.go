package compress

import "github.com/klauspost/compress/zstd"

// ZstdCompressor gives frame payloads the best ratio of the built-in
// codecs, at a moderate speed.
//
// The pure-Go implementation from klauspost/compress is used by default.
// Building with cgo and the gozstd tag switches to valyala/gozstd; both
// produce standard zstd frames, so either build decodes the other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// zstdContentSize checks the content size a zstd frame header declares
// against limit and returns it, or -1 when the header omits it.
func zstdContentSize(data []byte, limit int) (int, error) {
	var h zstd.Header
	if err := h.Decode(data); err != nil {
		return 0, err
	}
	if !h.HasFCS {
		return -1, nil
	}
	if h.FrameContentSize > uint64(limit) { //nolint:gosec
		return 0, errTooLarge(h.FrameContentSize, limit)
	}

	return int(h.FrameContentSize), nil //nolint:gosec
}
