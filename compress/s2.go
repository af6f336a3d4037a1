package compress

import "github.com/klauspost/compress/s2"

// S2Compressor is the balanced choice for frame payloads: close to Snappy
// speed with a better ratio on repeated record layouts.
//
// Output is a single S2 block, whose header records the decoded length so
// Decompress can reject oversized payloads before allocating.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes data as one S2 block. Empty input yields nil.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes one S2 block of at most maxSize bytes.
func (c S2Compressor) Decompress(data []byte, maxSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if limit := outputLimit(maxSize); size > limit {
		return nil, errTooLarge(uint64(size), limit) //nolint:gosec
	}

	return s2.Decode(make([]byte, size), data)
}
