// Package squash provides a schema-driven binary serialization engine that
// packs structured values into compact byte sequences.
//
// Values are described by composing codecs: primitive codecs for numbers,
// booleans, bytes and strings, and combinators that build arrays, maps,
// tuples, records, enumerations and dynamically typed tables from them. The
// encoded form carries no field names and no type tags (except inside
// tables), so it is typically a fraction of the size of JSON or even generic
// binary formats. Both ends must share the same schema.
//
// # Core Features
//
//   - Fixed-width integers and floats (1..8 bytes) with range checking
//   - Variable-length quantities (vlq) and zigzag for signed values
//   - Radix strings packed densely over a declared alphabet
//   - Boolean groups packing eight flags into one byte
//   - Optional values, arrays, maps, tuples, records and literal sets
//   - Polymorphic tables for dynamically shaped data
//   - Schema descriptors with deterministic fingerprints
//   - Optional framing with compression (Zstd, S2, LZ4) and checksums
//
// # Basic Usage
//
//	import (
//	    "github.com/arloliu/squash"
//	    "github.com/arloliu/squash/codec"
//	)
//
//	type Reading struct {
//	    Sensor string
//	    Value  float64
//	}
//
//	readingCodec := codec.Record(
//	    codec.Field("sensor", codec.String(),
//	        func(r *Reading) string { return r.Sensor },
//	        func(r *Reading, v string) { r.Sensor = v }),
//	    codec.Field("value", codec.Float(4),
//	        func(r *Reading) float64 { return r.Value },
//	        func(r *Reading, v float64) { r.Value = v }),
//	)
//
//	data, _ := squash.Marshal(readingCodec, Reading{Sensor: "t1", Value: 21.5})
//	reading, _ := squash.Unmarshal(readingCodec, data)
//
// # Package Structure
//
// This package provides convenience wrappers for one-shot encoding. For
// streaming several values through one buffer, use the cursor package
// directly. For data at rest, wrap values with the frame package, which adds
// compression, a checksum and a schema fingerprint.
package squash

import (
	"fmt"

	"github.com/arloliu/squash/codec"
	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/internal/pool"
	"github.com/arloliu/squash/schema"
)

// Marshal encodes v with c and returns the encoded bytes.
//
// Parameters:
//   - c: Codec describing the value
//   - v: Value to encode
//
// Returns:
//   - []byte: Encoded bytes, owned by the caller
//   - error: Encode error from c
func Marshal[T any](c codec.Codec[T], v T) ([]byte, error) {
	cur := pool.GetCursor()
	defer pool.PutCursor(cur)

	if err := c.Encode(cur, v); err != nil {
		return nil, err
	}

	return cur.Bytes(), nil
}

// Unmarshal decodes a value encoded by Marshal with the same codec.
//
// Returns:
//   - T: Decoded value
//   - error: Decode error from c, or ErrArity when data holds bytes past
//     the end of the value
func Unmarshal[T any](c codec.Codec[T], data []byte) (T, error) {
	cur := cursor.FromBytes(data)

	v, err := c.Decode(cur)
	if err != nil {
		var zero T
		return zero, err
	}
	if n := cur.Remaining(); n != 0 {
		var zero T
		return zero, fmt.Errorf("%w: %d trailing bytes after value", errs.ErrArity, n)
	}

	return v, nil
}

// NewCursor creates a cursor with the given initial capacity and offset.
// A non-positive size selects cursor.DefaultSize.
func NewCursor(size, pos int) *cursor.Cursor {
	return cursor.New(size, pos)
}

// FromBytes wraps data in a cursor for decoding, starting at offset 0.
func FromBytes(data []byte) *cursor.Cursor {
	return cursor.FromBytes(data)
}

// Fingerprint returns the 64-bit fingerprint of the schema described by c.
// Codecs with identical structure share a fingerprint.
func Fingerprint(c any) uint64 {
	return schema.Fingerprint(c)
}
