package encoding

import (
	"errors"
	"math"

	"github.com/tonyriverms/streamcodec/endian"
	"github.com/tonyriverms/streamcodec/internal/options"
)

// Config holds the settings shared by a Writer and the Reader that decodes its output.
type Config struct {
	engine       endian.EndianEngine
	text         TextCodec
	maxLength    int
	strictGuards bool
}

// Option configures a Writer or Reader.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		engine: endian.GetLittleEndianEngine(),
		text:   UTF8,
	}
}

func newConfig(opts []Option) (*Config, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Engine returns the byte order engine.
func (c *Config) Engine() endian.EndianEngine { return c.engine }

// TextCodec returns the text codec.
func (c *Config) TextCodec() TextCodec { return c.text }

// MaxLength returns the largest accepted length prefix or element count, 0 if unlimited.
func (c *Config) MaxLength() int { return c.maxLength }

// StrictGuards reports whether a check code mismatch in front of a sequence is fatal.
func (c *Config) StrictGuards() bool { return c.strictGuards }

// WithLittleEndian selects little-endian byte order. This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian selects big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithEngine selects an explicit byte order engine.
func WithEngine(engine endian.EndianEngine) Option {
	return options.New(func(c *Config) error {
		if engine == nil {
			return errors.New("nil endian engine")
		}
		c.engine = engine

		return nil
	})
}

// WithTextCodec selects the codec used for text payloads. UTF8 is the default.
func WithTextCodec(codec TextCodec) Option {
	return options.New(func(c *Config) error {
		if codec == nil {
			return errors.New("nil text codec")
		}
		if codec.UnitSize() <= 0 {
			return errors.New("text codec unit size must be positive")
		}
		c.text = codec

		return nil
	})
}

// WithMaxLength makes a Reader reject any length prefix or element count above n
// with errs.ErrLengthOverflow. Zero removes the limit. Writers ignore it.
func WithMaxLength(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 || n > math.MaxInt32 {
			return errors.New("max length out of range")
		}
		c.maxLength = n

		return nil
	})
}

// WithStrictGuards makes a check code mismatch in front of a counted sequence
// fatal (errs.ErrGuardMismatch) instead of decoding as an empty sequence.
// Writers ignore it.
func WithStrictGuards() Option {
	return options.NoError(func(c *Config) {
		c.strictGuards = true
	})
}
