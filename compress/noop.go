package compress

// NoOpCompressor stores frame payloads uncompressed.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself; the result aliases the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself; the result aliases the input.
func (c NoOpCompressor) Decompress(data []byte, maxSize int) ([]byte, error) {
	if limit := outputLimit(maxSize); len(data) > limit {
		return nil, errTooLarge(uint64(len(data)), limit)
	}

	return data, nil
}
