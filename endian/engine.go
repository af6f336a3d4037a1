// Package endian provides the byte-order engines used by squash's
// fixed-width numeric codecs.
//
// The EndianEngine interface unifies binary.ByteOrder and
// binary.AppendByteOrder, and the PutUint/Uint helpers extend them to every
// width from 1 to 8 bytes, which the standard library only covers for 2, 4
// and 8.
//
// Little-endian is the documented default wire order of squash:
//
//	engine := endian.GetLittleEndianEngine()
//	endian.PutUint(engine, buf[:3], 0x010203) // buf = 03 02 01
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsLittleEndian reports whether engine writes the least significant byte first.
func IsLittleEndian(engine EndianEngine) bool {
	return engine == binary.LittleEndian
}

// PutUint writes the low len(b) bytes of v into b using engine's byte order.
// len(b) must be between 1 and 8.
func PutUint(engine EndianEngine, b []byte, v uint64) {
	switch len(b) {
	case 2:
		engine.PutUint16(b, uint16(v)) //nolint:gosec
		return
	case 4:
		engine.PutUint32(b, uint32(v)) //nolint:gosec
		return
	case 8:
		engine.PutUint64(b, v)
		return
	}

	n := len(b)
	for i := range n {
		shift := 8 * i
		if IsLittleEndian(engine) {
			b[i] = byte(v >> shift)
		} else {
			b[n-1-i] = byte(v >> shift)
		}
	}
}

// Uint reads an unsigned integer of len(b) bytes from b using engine's byte order.
// len(b) must be between 1 and 8.
func Uint(engine EndianEngine, b []byte) uint64 {
	switch len(b) {
	case 2:
		return uint64(engine.Uint16(b))
	case 4:
		return uint64(engine.Uint32(b))
	case 8:
		return engine.Uint64(b)
	}

	var v uint64
	n := len(b)
	for i := range n {
		shift := 8 * i
		if IsLittleEndian(engine) {
			v |= uint64(b[i]) << shift
		} else {
			v |= uint64(b[n-1-i]) << shift
		}
	}

	return v
}
