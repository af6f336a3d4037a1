package frame

import (
	"fmt"

	"github.com/arloliu/squash/codec"
	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/endian"
	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/format"
)

const (
	// Magic identifies a squash frame ("SQ" read as a little-endian uint16).
	Magic uint16 = 0x5351
	// Version is the frame layout version written by Encode.
	Version uint8 = 1

	// MinHeaderSize is the size of a header with a one-byte length and no
	// optional fields.
	MinHeaderSize = 6
)

// Flag is a bit set describing the optional header fields.
type Flag uint8

const (
	FlagChecksum    Flag = 1 << 0 // FlagChecksum marks an xxHash64 of the raw payload.
	FlagFingerprint Flag = 1 << 1 // FlagFingerprint marks a schema fingerprint.

	flagMask = FlagChecksum | FlagFingerprint
)

// Has reports whether all bits of f are set.
func (fl Flag) Has(f Flag) bool {
	return fl&f == f
}

// Header is the envelope in front of a frame payload.
//
// Layout (multi-byte fields little-endian):
//   - byte 0-1: magic
//   - byte 2: version
//   - byte 3: flags
//   - byte 4: compression type
//   - vlq: length of the uncompressed payload
//   - 8 bytes: schema fingerprint, if FlagFingerprint
//   - 8 bytes: payload checksum, if FlagChecksum
type Header struct {
	Version     uint8
	Flags       Flag
	Compression format.CompressionType
	// RawLength is the payload length before compression.
	RawLength   uint64
	Fingerprint uint64
	Checksum    uint64
}

var lengthCodec = codec.VLQ()

// Size returns the number of bytes Bytes produces for h.
func (h *Header) Size() int {
	c := cursor.New(16, 0)
	_ = lengthCodec.Encode(c, h.RawLength)

	size := 5 + c.Pos()
	if h.Flags.Has(FlagFingerprint) {
		size += 8
	}
	if h.Flags.Has(FlagChecksum) {
		size += 8
	}

	return size
}

// WriteTo appends the serialized header to c.
func (h *Header) WriteTo(c *cursor.Cursor) {
	engine := endian.GetLittleEndianEngine()

	engine.PutUint16(c.Extend(2), Magic)
	_ = c.WriteByte(h.Version)
	_ = c.WriteByte(byte(h.Flags))
	_ = c.WriteByte(byte(h.Compression))
	_ = lengthCodec.Encode(c, h.RawLength)

	if h.Flags.Has(FlagFingerprint) {
		engine.PutUint64(c.Extend(8), h.Fingerprint)
	}
	if h.Flags.Has(FlagChecksum) {
		engine.PutUint64(c.Extend(8), h.Checksum)
	}
}

// Bytes serializes the header into a new byte slice.
func (h *Header) Bytes() []byte {
	c := cursor.New(h.Size(), 0)
	h.WriteTo(c)

	return c.Bytes()
}

// Parse reads the header at the start of data.
//
// Parameters:
//   - data: Frame bytes, starting with the header
//
// Returns:
//   - int: Number of header bytes consumed
//   - error: ErrInvalidFrame for a bad magic, version, flags or truncated header
func (h *Header) Parse(data []byte) (int, error) {
	if len(data) < MinHeaderSize {
		return 0, fmt.Errorf("%w: %d bytes is shorter than a header", errs.ErrInvalidFrame, len(data))
	}

	engine := endian.GetLittleEndianEngine()
	if magic := engine.Uint16(data[0:2]); magic != Magic {
		return 0, fmt.Errorf("%w: bad magic 0x%04x", errs.ErrInvalidFrame, magic)
	}

	h.Version = data[2]
	if h.Version != Version {
		return 0, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidFrame, h.Version)
	}

	h.Flags = Flag(data[3])
	if h.Flags&^flagMask != 0 {
		return 0, fmt.Errorf("%w: unknown flags 0x%02x", errs.ErrInvalidFrame, uint8(h.Flags))
	}
	h.Compression = format.CompressionType(data[4])

	c := cursor.FromBytes(data)
	_ = c.Seek(5)

	var err error
	if h.RawLength, err = lengthCodec.Decode(c); err != nil {
		return 0, fmt.Errorf("%w: payload length: %w", errs.ErrInvalidFrame, err)
	}

	h.Fingerprint, h.Checksum = 0, 0
	if h.Flags.Has(FlagFingerprint) {
		b, err := c.ReadRaw(8)
		if err != nil {
			return 0, fmt.Errorf("%w: schema fingerprint: %w", errs.ErrInvalidFrame, err)
		}
		h.Fingerprint = engine.Uint64(b)
	}
	if h.Flags.Has(FlagChecksum) {
		b, err := c.ReadRaw(8)
		if err != nil {
			return 0, fmt.Errorf("%w: checksum: %w", errs.ErrInvalidFrame, err)
		}
		h.Checksum = engine.Uint64(b)
	}

	return c.Pos(), nil
}

// ParseHeader parses the header of a frame without touching its payload.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if _, err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
