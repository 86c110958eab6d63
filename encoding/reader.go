package encoding

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/tonyriverms/streamcodec/endian"
	"github.com/tonyriverms/streamcodec/errs"
	"github.com/tonyriverms/streamcodec/format"
	"github.com/tonyriverms/streamcodec/internal/pool"
	"github.com/tonyriverms/streamcodec/stream"
)

// Reader decodes primitive values from a seekable stream.
//
// A stream that ends inside a value yields errs.ErrTruncatedData; any other error
// from the stream is returned unchanged. After an error the cursor position is
// unspecified.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	r       io.ReadSeeker
	cfg     *Config
	engine  endian.EndianEngine
	scratch [8]byte
}

// NewReader creates a Reader on r.
//
// Options:
//   - WithLittleEndian() / WithBigEndian() / WithEngine(engine)
//   - WithTextCodec(codec)
//   - WithMaxLength(n)
//   - WithStrictGuards()
//
// Returns an error wrapping errs.ErrInvalidOption for an invalid option.
func NewReader(r io.ReadSeeker, opts ...Option) (*Reader, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", errs.ErrInvalidOption)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Reader{r: r, cfg: cfg, engine: cfg.engine}, nil
}

// Config returns the reader configuration.
func (r *Reader) Config() *Config { return r.cfg }

// Engine returns the byte order engine.
func (r *Reader) Engine() endian.EndianEngine { return r.engine }

// Stream returns the underlying stream.
func (r *Reader) Stream() io.ReadSeeker { return r.r }

// Position returns the cursor offset.
func (r *Reader) Position() (int64, error) { return stream.Position(r.r) }

// Remaining returns the number of bytes left before the end of the stream.
func (r *Reader) Remaining() (int64, error) { return stream.Remaining(r.r) }

func (r *Reader) readFull(p []byte) error {
	if _, err := io.ReadFull(r.r, p); err != nil {
		if isShortRead(err) {
			return fmt.Errorf("%w: need %d bytes", errs.ErrTruncatedData, len(p))
		}

		return err
	}

	return nil
}

// ensure fails with errs.ErrTruncatedData unless n more bytes are available.
func (r *Reader) ensure(n int64) error {
	rem, err := r.Remaining()
	if err != nil {
		return err
	}
	if rem < n {
		return fmt.Errorf("%w: need %d bytes, %d available", errs.ErrTruncatedData, n, rem)
	}

	return nil
}

// ReadInto fills p from the stream.
func (r *Reader) ReadInto(p []byte) error {
	if len(p) == 0 {
		return nil
	}

	return r.readFull(p)
}

// ReadRaw reads exactly n bytes. The availability of n bytes is checked before
// anything is allocated or consumed.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	if err := r.ensure(int64(n)); err != nil {
		return nil, err
	}

	p := make([]byte, n)
	if err := r.readFull(p); err != nil {
		return nil, err
	}

	return p, nil
}

// Discard advances the cursor by n bytes without reading them.
func (r *Reader) Discard(n int64) error {
	if n == 0 {
		return nil
	}
	if err := r.ensure(n); err != nil {
		return err
	}

	return stream.Advance(r.r, n)
}

// ReadBool reads a 1-byte boolean; any non-zero byte is true.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadUint8()
	return v != 0, err
}

// ReadInt8 reads a signed 8-bit integer.
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.readFull(r.scratch[:1]); err != nil {
		return 0, err
	}

	return r.scratch[0], nil
}

// ReadInt16 reads a signed 16-bit integer.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.readFull(r.scratch[:2]); err != nil {
		return 0, err
	}

	return r.engine.Uint16(r.scratch[:2]), nil
}

// ReadInt32 reads a signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.readFull(r.scratch[:4]); err != nil {
		return 0, err
	}

	return r.engine.Uint32(r.scratch[:4]), nil
}

// ReadInt64 reads a signed 64-bit integer.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.readFull(r.scratch[:8]); err != nil {
		return 0, err
	}

	return r.engine.Uint64(r.scratch[:8]), nil
}

// ReadFloat32 reads an IEEE-754 binary32 without canonicalizing NaNs.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads an IEEE-754 binary64 without canonicalizing NaNs.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadTimestamp reads signed microseconds since the Unix epoch.
func (r *Reader) ReadTimestamp() (time.Time, error) {
	us, err := r.ReadInt64()
	if err != nil {
		return time.Time{}, err
	}

	return time.UnixMicro(us).UTC(), nil
}

// ReadLength reads a length prefix. A negative prefix fails with
// errs.ErrCorruptData, one above the configured maximum with errs.ErrLengthOverflow.
func (r *Reader) ReadLength() (int, error) {
	return r.readSize("length prefix")
}

// ReadCount reads an element count, validated like ReadLength.
func (r *Reader) ReadCount() (int, error) {
	return r.readSize("element count")
}

func (r *Reader) readSize(what string) (int, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative %s %d", errs.ErrCorruptData, what, n)
	}
	if r.cfg.maxLength > 0 && int(n) > r.cfg.maxLength {
		return 0, fmt.Errorf("%w: %s %d exceeds maximum %d", errs.ErrLengthOverflow, what, n, r.cfg.maxLength)
	}

	return int(n), nil
}

// ReadText reads a text frame written by Writer.WriteText. A zero prefix reads as "".
func (r *Reader) ReadText() (string, error) {
	size, err := r.textSize()
	if err != nil || size == 0 {
		return "", err
	}
	if err := r.ensure(size); err != nil {
		return "", err
	}

	payload, cleanup := pool.GetByteSlice(int(size))
	defer cleanup()

	if err := r.readFull(payload); err != nil {
		return "", err
	}

	return r.cfg.text.Decode(payload)
}

// SkipText advances past a text frame without decoding its payload.
func (r *Reader) SkipText() error {
	size, err := r.textSize()
	if err != nil {
		return err
	}

	return r.Discard(size)
}

// textSize reads a text prefix and returns the payload size in bytes.
func (r *Reader) textSize() (int64, error) {
	units, err := r.ReadLength()
	if err != nil {
		return 0, err
	}

	return int64(units) * int64(r.cfg.text.UnitSize()), nil
}

// ReadValue reads a value of the given tag.
func (r *Reader) ReadValue(tag format.Tag) (Value, error) {
	var (
		bits uint64
		err  error
	)

	switch tag.Width() {
	case 1:
		var v uint8
		v, err = r.ReadUint8()
		bits = uint64(v)
	case 2:
		var v uint16
		v, err = r.ReadUint16()
		bits = uint64(v)
	case 4:
		var v uint32
		v, err = r.ReadUint32()
		bits = uint64(v)
	case 8:
		bits, err = r.ReadUint64()
	default:
		if tag == format.TagText {
			s, err := r.ReadText()
			if err != nil {
				return Value{}, err
			}

			return TextValue(s), nil
		}

		return Value{}, fmt.Errorf("%w: %d", errs.ErrUnknownTag, uint8(tag))
	}

	if err != nil {
		return Value{}, err
	}

	return Value{tag: tag, bits: bits}, nil
}

// SkipValue advances past a value of the given tag.
func (r *Reader) SkipValue(tag format.Tag) error {
	if w := tag.Width(); w > 0 {
		return r.Discard(int64(w))
	}
	if tag == format.TagText {
		return r.SkipText()
	}

	return fmt.Errorf("%w: %d", errs.ErrUnknownTag, uint8(tag))
}
