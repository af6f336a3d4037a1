// Package frame wraps encoded squash values in a small self-describing
// envelope: a header recording the compression type, the schema fingerprint
// and a checksum of the payload.
//
// Bare codec output carries no framing and trusts both ends to agree on the
// schema. Frames are meant for data at rest or crossing process boundaries,
// where a mismatched schema or a corrupted payload should be reported rather
// than decoded into garbage.
//
//	data, err := frame.Encode(playerCodec, player, frame.WithCompression(format.CompressionZstd))
//	...
//	player, err := frame.Decode(playerCodec, data)
package frame

import (
	"fmt"

	"github.com/arloliu/squash/codec"
	"github.com/arloliu/squash/compress"
	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/internal/hash"
	"github.com/arloliu/squash/internal/options"
	"github.com/arloliu/squash/internal/pool"
	"github.com/arloliu/squash/schema"
)

// Encode encodes v with c and wraps the result in a frame.
//
// Parameters:
//   - c: Codec for the value
//   - v: Value to encode
//   - opts: Compression, checksum and fingerprint options
//
// Returns:
//   - []byte: Frame bytes, owned by the caller
//   - error: Option or encode error
func Encode[T any](c codec.Codec[T], v T, opts ...Option) ([]byte, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	payload := pool.GetCursor()
	defer pool.PutCursor(payload)

	if err := c.Encode(payload, v); err != nil {
		return nil, err
	}
	raw := payload.Written()

	header := Header{
		Version:     Version,
		Compression: cfg.compression,
		RawLength:   uint64(len(raw)),
	}
	if cfg.fingerprint {
		header.Flags |= FlagFingerprint
		header.Fingerprint = schema.Fingerprint(c)
	}
	if cfg.checksum {
		header.Flags |= FlagChecksum
		header.Checksum = hash.Sum(raw)
	}

	compressor, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	body, err := compressor.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress payload with %s: %w", cfg.compression, err)
	}

	out := cursor.New(header.Size()+len(body), 0)
	header.WriteTo(out)
	out.WriteRaw(body)

	return out.Bytes(), nil
}

// Decode unwraps a frame produced by Encode and decodes its payload with c.
//
// Returns:
//   - T: Decoded value
//   - error: ErrInvalidFrame for a malformed header, a length mismatch or
//     trailing payload bytes; ErrSchemaMismatch when the fingerprint differs
//     from c's; ErrChecksumMismatch for a corrupted payload; or the codec's
//     decode error
func Decode[T any](c codec.Codec[T], data []byte, opts ...Option) (T, error) {
	var zero T

	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return zero, err
	}

	var header Header
	n, err := header.Parse(data)
	if err != nil {
		return zero, err
	}

	if cfg.fingerprint && header.Flags.Has(FlagFingerprint) {
		if want := schema.Fingerprint(c); header.Fingerprint != want {
			return zero, fmt.Errorf("%w: frame 0x%016x, codec 0x%016x", errs.ErrSchemaMismatch, header.Fingerprint, want)
		}
	}

	decompressor, err := compress.GetCodec(header.Compression)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", errs.ErrInvalidFrame, err)
	}
	if header.RawLength > compress.MaxDecompressedSize {
		return zero, fmt.Errorf("%w: declared payload length %d exceeds %d", errs.ErrInvalidFrame, header.RawLength, compress.MaxDecompressedSize)
	}
	// the declared length bounds decompression, so a small frame cannot
	// claim a huge payload
	raw, err := decompressor.Decompress(data[n:], int(header.RawLength)) //nolint:gosec
	if err != nil {
		return zero, fmt.Errorf("%w: decompress payload: %w", errs.ErrInvalidFrame, err)
	}
	if uint64(len(raw)) != header.RawLength {
		return zero, fmt.Errorf("%w: payload is %d bytes, header says %d", errs.ErrInvalidFrame, len(raw), header.RawLength)
	}

	if cfg.checksum && header.Flags.Has(FlagChecksum) && !hash.Verify(raw, header.Checksum) {
		return zero, errs.ErrChecksumMismatch
	}

	payload := cursor.FromBytes(raw)
	v, err := c.Decode(payload)
	if err != nil {
		return zero, err
	}
	if payload.Remaining() != 0 {
		return zero, fmt.Errorf("%w: %d trailing payload bytes", errs.ErrInvalidFrame, payload.Remaining())
	}

	return v, nil
}
