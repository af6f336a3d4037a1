package frame

import (
	"github.com/arloliu/squash/compress"
	"github.com/arloliu/squash/format"
	"github.com/arloliu/squash/internal/options"
)

type config struct {
	compression format.CompressionType
	checksum    bool
	fingerprint bool
}

func defaultConfig() config {
	return config{
		compression: format.CompressionNone,
		checksum:    true,
		fingerprint: true,
	}
}

// Option configures Encode and Decode.
type Option = options.Option[*config]

// WithCompression sets the payload compression used by Encode.
// Decode reads the compression type from the header and ignores it.
//
// Returns an option that fails with ErrUnsupportedCompression for unknown types.
func WithCompression(compressionType format.CompressionType) Option {
	return options.New(func(c *config) error {
		if _, err := compress.GetCodec(compressionType); err != nil {
			return err
		}
		c.compression = compressionType

		return nil
	})
}

// WithChecksum controls the payload checksum. Encode omits it when disabled;
// Decode skips verification when disabled. Enabled by default.
func WithChecksum(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.checksum = enabled
	})
}

// WithSchemaFingerprint controls the schema fingerprint. Encode omits it when
// disabled; Decode skips the comparison when disabled. Enabled by default.
func WithSchemaFingerprint(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.fingerprint = enabled
	})
}
