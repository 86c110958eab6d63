package frame

import (
	"fmt"
	"time"

	"github.com/tonyriverms/streamcodec/encoding"
	"github.com/tonyriverms/streamcodec/errs"
	"github.com/tonyriverms/streamcodec/format"
)

// Kind describes how one key or value slot of a sequence element is framed.
//
// A counted sequence is parameterized by two kinds, one for keys and one for
// values, so a single implementation serves every key/value type combination.
type Kind[T any] struct {
	// Name identifies the kind in error messages.
	Name string

	// Width is the fixed encoded width in bytes, or 0 if the width varies.
	Width int

	// Write encodes one slot.
	Write func(w *encoding.Writer, v T) error

	// Read decodes one slot.
	Read func(r *encoding.Reader) (T, error)

	// Skip moves past one slot without decoding it. When nil, variable-width
	// slots are read and discarded.
	Skip func(r *encoding.Reader) error
}

// Fixed reports whether every slot of this kind has the same encoded width.
func (k Kind[T]) Fixed() bool {
	return k.Width > 0
}

func (k Kind[T]) valid() error {
	if k.Write == nil || k.Read == nil {
		return fmt.Errorf("%w: frame kind %q has no codec", errs.ErrInvalidOption, k.Name)
	}

	return nil
}

func (k Kind[T]) skip(r *encoding.Reader) error {
	switch {
	case k.Width > 0:
		return r.Discard(int64(k.Width))
	case k.Skip != nil:
		return k.Skip(r)
	default:
		_, err := k.Read(r)
		return err
	}
}

func fixedKind[T any](tag format.Tag, write func(*encoding.Writer, T) error, read func(*encoding.Reader) (T, error)) Kind[T] {
	return Kind[T]{Name: tag.String(), Width: tag.Width(), Write: write, Read: read}
}

// Primitive frame kinds.
var (
	Bool      = fixedKind(format.TagBool, (*encoding.Writer).WriteBool, (*encoding.Reader).ReadBool)
	Int8      = fixedKind(format.TagInt8, (*encoding.Writer).WriteInt8, (*encoding.Reader).ReadInt8)
	Uint8     = fixedKind(format.TagUint8, (*encoding.Writer).WriteUint8, (*encoding.Reader).ReadUint8)
	Int16     = fixedKind(format.TagInt16, (*encoding.Writer).WriteInt16, (*encoding.Reader).ReadInt16)
	Uint16    = fixedKind(format.TagUint16, (*encoding.Writer).WriteUint16, (*encoding.Reader).ReadUint16)
	Int32     = fixedKind(format.TagInt32, (*encoding.Writer).WriteInt32, (*encoding.Reader).ReadInt32)
	Uint32    = fixedKind(format.TagUint32, (*encoding.Writer).WriteUint32, (*encoding.Reader).ReadUint32)
	Int64     = fixedKind(format.TagInt64, (*encoding.Writer).WriteInt64, (*encoding.Reader).ReadInt64)
	Uint64    = fixedKind(format.TagUint64, (*encoding.Writer).WriteUint64, (*encoding.Reader).ReadUint64)
	Float32   = fixedKind(format.TagFloat32, (*encoding.Writer).WriteFloat32, (*encoding.Reader).ReadFloat32)
	Float64   = fixedKind(format.TagFloat64, (*encoding.Writer).WriteFloat64, (*encoding.Reader).ReadFloat64)
	Timestamp = fixedKind[time.Time](format.TagTimestamp, (*encoding.Writer).WriteTimestamp, (*encoding.Reader).ReadTimestamp)

	// Text frames strings with the reader's and writer's TextCodec.
	Text = Kind[string]{
		Name:  format.TagText.String(),
		Write: (*encoding.Writer).WriteText,
		Read:  (*encoding.Reader).ReadText,
		Skip:  (*encoding.Reader).SkipText,
	}

	// Bytes frames byte slices as unguarded variable-length blocks; nil and empty
	// slices both read back as nil.
	Bytes = Kind[[]byte]{
		Name: "bytes",
		Write: func(w *encoding.Writer, p []byte) error {
			return WriteBlock(w, Unguarded, p)
		},
		Read: func(r *encoding.Reader) ([]byte, error) {
			return ReadBlock(r, Unguarded)
		},
		Skip: func(r *encoding.Reader) error {
			return SkipBlock(r, Unguarded)
		},
	}
)

// ValueOf returns a kind that frames encoding.Value slots of the given tag.
// Writing a value with a different tag fails with errs.ErrTagMismatch.
func ValueOf(tag format.Tag) Kind[encoding.Value] {
	return Kind[encoding.Value]{
		Name:  tag.String(),
		Width: tag.Width(),
		Write: func(w *encoding.Writer, v encoding.Value) error {
			if v.Tag() != tag {
				return fmt.Errorf("%w: want %s, got %s", errs.ErrTagMismatch, tag, v.Tag())
			}

			return w.WriteValue(v)
		},
		Read: func(r *encoding.Reader) (encoding.Value, error) {
			return r.ReadValue(tag)
		},
		Skip: func(r *encoding.Reader) error {
			return r.SkipValue(tag)
		},
	}
}
