// Package errs defines the sentinel errors returned by squash codecs.
//
// Errors are wrapped with context using fmt.Errorf("%w: ...") at the point of
// failure, so callers should match them with errors.Is:
//
//	if errors.Is(err, errs.ErrUnderflow) {
//	    // the input was truncated
//	}
package errs

import "errors"

var (
	// ErrRange is returned when a value cannot be represented in the declared numeric width.
	ErrRange = errors.New("value out of range")
	// ErrArity is returned when a fixed-length array, tuple or group receives the wrong element count.
	ErrArity = errors.New("arity mismatch")
	// ErrDomain is returned when a value is outside an enumerated set, or a table tag is unknown.
	ErrDomain = errors.New("value outside domain")
	// ErrUnderflow is returned when a decode reads past the available bytes.
	ErrUnderflow = errors.New("cursor underflow")
	// ErrAlphabet is returned when a string contains a character outside its source alphabet.
	ErrAlphabet = errors.New("character outside alphabet")
	// ErrInvalidSchema is the panic value wrapped by codec constructors given invalid arguments.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrInvalidFrame is returned when a frame header or trailer is malformed.
	ErrInvalidFrame = errors.New("invalid frame")
	// ErrChecksumMismatch is returned when a frame payload fails checksum verification.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrSchemaMismatch is returned when a frame was produced with a different schema.
	ErrSchemaMismatch = errors.New("schema fingerprint mismatch")
	// ErrSchemaCollision is returned when two different schemas share a fingerprint.
	ErrSchemaCollision = errors.New("schema fingerprint collision")
	// ErrUnsupportedCompression is returned for unknown compression identifiers.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)
