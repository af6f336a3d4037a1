package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/squash/cursor"
	"github.com/arloliu/squash/endian"
	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/internal/options"
	"github.com/arloliu/squash/schema"
)

// numberConfig holds the options shared by fixed-width numeric codecs.
type numberConfig struct {
	engine endian.EndianEngine
}

// NumberOption configures a fixed-width numeric codec.
type NumberOption = options.Option[*numberConfig]

// WithLittleEndian writes the least significant byte first. It is the default.
func WithLittleEndian() NumberOption {
	return options.NoError(func(c *numberConfig) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian writes the most significant byte first.
func WithBigEndian() NumberOption {
	return options.NoError(func(c *numberConfig) {
		c.engine = endian.GetBigEndianEngine()
	})
}

func newNumberConfig(opts []NumberOption) numberConfig {
	cfg := numberConfig{engine: endian.GetLittleEndianEngine()}
	if err := options.Apply(&cfg, opts...); err != nil {
		invalidSchema("%v", err)
	}

	return cfg
}

func (cfg numberConfig) params() []string {
	if endian.IsLittleEndian(cfg.engine) {
		return nil
	}

	return []string{"be"}
}

// Uint returns a codec for unsigned integers stored in width bytes (1..8).
//
// Encode fails with ErrRange when v >= 2^(8*width).
func Uint(width int, opts ...NumberOption) Codec[uint64] {
	if width < 1 || width > 8 {
		invalidSchema("uint width %d outside 1..8", width)
	}

	return uintCodec{width: width, cfg: newNumberConfig(opts)}
}

type uintCodec struct {
	width int
	cfg   numberConfig
}

func (u uintCodec) Encode(c *cursor.Cursor, v uint64) error {
	if u.width < 8 && v>>(8*u.width) != 0 {
		return fmt.Errorf("%w: %d does not fit in %d unsigned bytes", errs.ErrRange, v, u.width)
	}
	endian.PutUint(u.cfg.engine, c.Extend(u.width), v)

	return nil
}

func (u uintCodec) Decode(c *cursor.Cursor) (uint64, error) {
	b, err := c.ReadRaw(u.width)
	if err != nil {
		return 0, err
	}

	return endian.Uint(u.cfg.engine, b), nil
}

func (u uintCodec) Describe() schema.Node {
	return schema.Node{Kind: "uint", Width: u.width, Params: u.cfg.params()}
}

// Int returns a codec for two's-complement signed integers stored in width
// bytes (1..8).
//
// Encode fails with ErrRange when v is outside [-2^(8*width-1), 2^(8*width-1)).
func Int(width int, opts ...NumberOption) Codec[int64] {
	if width < 1 || width > 8 {
		invalidSchema("int width %d outside 1..8", width)
	}

	return intCodec{width: width, cfg: newNumberConfig(opts)}
}

type intCodec struct {
	width int
	cfg   numberConfig
}

func (i intCodec) Encode(c *cursor.Cursor, v int64) error {
	if i.width < 8 {
		limit := int64(1) << (8*i.width - 1)
		if v < -limit || v >= limit {
			return fmt.Errorf("%w: %d does not fit in %d signed bytes", errs.ErrRange, v, i.width)
		}
	}
	endian.PutUint(i.cfg.engine, c.Extend(i.width), uint64(v)) //nolint:gosec

	return nil
}

func (i intCodec) Decode(c *cursor.Cursor) (int64, error) {
	b, err := c.ReadRaw(i.width)
	if err != nil {
		return 0, err
	}

	// sign-extend from the top bit of the stored width
	shift := 64 - 8*i.width
	raw := endian.Uint(i.cfg.engine, b)

	return int64(raw<<shift) >> shift, nil //nolint:gosec
}

func (i intCodec) Describe() schema.Node {
	return schema.Node{Kind: "int", Width: i.width, Params: i.cfg.params()}
}

// Float returns a codec for IEEE 754 floats stored in 4 or 8 bytes.
//
// NaN and infinities pass through. With width 4, Encode fails with ErrRange
// when a finite value overflows single precision.
func Float(width int, opts ...NumberOption) Codec[float64] {
	if width != 4 && width != 8 {
		invalidSchema("float width %d not 4 or 8", width)
	}

	return floatCodec{width: width, cfg: newNumberConfig(opts)}
}

type floatCodec struct {
	width int
	cfg   numberConfig
}

func (f floatCodec) Encode(c *cursor.Cursor, v float64) error {
	if f.width == 8 {
		f.cfg.engine.PutUint64(c.Extend(8), math.Float64bits(v))
		return nil
	}

	single := float32(v)
	if math.IsInf(float64(single), 0) && !math.IsInf(v, 0) {
		return fmt.Errorf("%w: %g overflows float32", errs.ErrRange, v)
	}
	f.cfg.engine.PutUint32(c.Extend(4), math.Float32bits(single))

	return nil
}

func (f floatCodec) Decode(c *cursor.Cursor) (float64, error) {
	b, err := c.ReadRaw(f.width)
	if err != nil {
		return 0, err
	}

	if f.width == 8 {
		return math.Float64frombits(f.cfg.engine.Uint64(b)), nil
	}

	return float64(math.Float32frombits(f.cfg.engine.Uint32(b))), nil
}

func (f floatCodec) Describe() schema.Node {
	return schema.Node{Kind: "float", Width: f.width, Params: f.cfg.params()}
}

// Angle returns a lossy codec for angles in radians, stored as a two-byte
// fraction of a full turn. Decoded values lie in [0, 2π) and are within
// 2π/65536 of the normalized input.
func Angle() Codec[float64] {
	return angleCodec{}
}

type angleCodec struct{}

const angleSteps = 1 << 16

func (angleCodec) Encode(c *cursor.Cursor, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: angle %g is not finite", errs.ErrRange, v)
	}

	turn := math.Mod(v/(2*math.Pi), 1)
	if turn < 0 {
		turn++
	}
	step := uint64(math.Round(turn*angleSteps)) % angleSteps
	endian.PutUint(endian.GetLittleEndianEngine(), c.Extend(2), step)

	return nil
}

func (angleCodec) Decode(c *cursor.Cursor) (float64, error) {
	b, err := c.ReadRaw(2)
	if err != nil {
		return 0, err
	}
	step := endian.Uint(endian.GetLittleEndianEngine(), b)

	return float64(step) / angleSteps * 2 * math.Pi, nil
}

func (angleCodec) Describe() schema.Node {
	return schema.Node{Kind: "angle", Width: 2}
}
