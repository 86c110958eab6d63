package encoding

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/tonyriverms/streamcodec/endian"
	"github.com/tonyriverms/streamcodec/errs"
	"github.com/tonyriverms/streamcodec/format"
)

// Writer encodes primitive values onto a stream at fixed widths.
//
// Each call writes straight through to the underlying writer; Writer keeps no
// buffered state besides an 8-byte scratch area, so the stream position after a
// successful call is exactly past the encoded value. Errors from the underlying
// writer are returned unchanged.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	w       io.Writer
	cfg     *Config
	engine  endian.EndianEngine
	scratch [8]byte
}

// NewWriter creates a Writer on w.
//
// Options:
//   - WithLittleEndian() / WithBigEndian() / WithEngine(engine)
//   - WithTextCodec(codec)
//
// Returns an error wrapping errs.ErrInvalidOption for an invalid option.
func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: nil writer", errs.ErrInvalidOption)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Writer{w: w, cfg: cfg, engine: cfg.engine}, nil
}

// Config returns the writer configuration.
func (w *Writer) Config() *Config { return w.cfg }

// Engine returns the byte order engine.
func (w *Writer) Engine() endian.EndianEngine { return w.engine }

// WriteRaw writes p verbatim.
func (w *Writer) WriteRaw(p []byte) error {
	if len(p) == 0 {
		return nil
	}

	n, err := w.w.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}

	return nil
}

// WriteBool writes 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) error {
	w.scratch[0] = 0
	if v {
		w.scratch[0] = 1
	}

	return w.WriteRaw(w.scratch[:1])
}

// WriteInt8 writes a signed 8-bit integer.
func (w *Writer) WriteInt8(v int8) error { return w.WriteUint8(uint8(v)) }

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) error {
	w.scratch[0] = v
	return w.WriteRaw(w.scratch[:1])
}

// WriteInt16 writes a signed 16-bit integer.
func (w *Writer) WriteInt16(v int16) error { return w.WriteUint16(uint16(v)) }

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) error {
	w.engine.PutUint16(w.scratch[:2], v)
	return w.WriteRaw(w.scratch[:2])
}

// WriteInt32 writes a signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) error { return w.WriteUint32(uint32(v)) }

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	w.engine.PutUint32(w.scratch[:4], v)
	return w.WriteRaw(w.scratch[:4])
}

// WriteInt64 writes a signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) error { return w.WriteUint64(uint64(v)) }

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) error {
	w.engine.PutUint64(w.scratch[:8], v)
	return w.WriteRaw(w.scratch[:8])
}

// WriteFloat32 writes the IEEE-754 bits of v.
func (w *Writer) WriteFloat32(v float32) error { return w.WriteUint32(math.Float32bits(v)) }

// WriteFloat64 writes the IEEE-754 bits of v.
func (w *Writer) WriteFloat64(v float64) error { return w.WriteUint64(math.Float64bits(v)) }

// WriteTimestamp writes t as signed microseconds since the Unix epoch.
func (w *Writer) WriteTimestamp(t time.Time) error { return w.WriteInt64(t.UnixMicro()) }

// WriteLength writes a length prefix or element count.
// Values outside [0, MaxInt32] fail with errs.ErrLengthOverflow.
func (w *Writer) WriteLength(n int) error {
	if n < 0 || n > math.MaxInt32 {
		return fmt.Errorf("%w: %d does not fit a length prefix", errs.ErrLengthOverflow, n)
	}

	return w.WriteInt32(int32(n))
}

// WriteText writes s as a text frame: a unit-count prefix followed by the
// payload produced by the configured TextCodec. The empty string writes a zero prefix.
func (w *Writer) WriteText(s string) error {
	if s == "" {
		return w.WriteInt32(0)
	}

	codec := w.cfg.text
	payload, err := codec.Encode(s)
	if err != nil {
		return err
	}
	if len(payload)%codec.UnitSize() != 0 {
		return fmt.Errorf("%w: %s payload of %d bytes is not a whole number of units",
			errs.ErrInvalidText, codec.Name(), len(payload))
	}

	if err := w.WriteLength(len(payload) / codec.UnitSize()); err != nil {
		return err
	}

	return w.WriteRaw(payload)
}

// WriteValue writes v at the width of its tag. Text values are written as text frames.
func (w *Writer) WriteValue(v Value) error {
	switch v.tag.Width() {
	case 1:
		return w.WriteUint8(uint8(v.bits))
	case 2:
		return w.WriteUint16(uint16(v.bits))
	case 4:
		return w.WriteUint32(uint32(v.bits))
	case 8:
		return w.WriteUint64(v.bits)
	}

	if v.tag == format.TagText {
		return w.WriteText(v.text)
	}

	return fmt.Errorf("%w: %d", errs.ErrUnknownTag, uint8(v.tag))
}

// isShortRead reports whether err means the stream ended early.
func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
