package encoding

import (
	"math"
	"strconv"
	"time"

	"github.com/tonyriverms/streamcodec/format"
)

// Timestamp limits. Both round-trip exactly through TagTimestamp.
var (
	MinTimestamp = time.UnixMicro(math.MinInt64)
	MaxTimestamp = time.UnixMicro(math.MaxInt64)
)

// Value is a tagged primitive value.
//
// Fixed-width values are held as their raw wire bits, zero-extended to 64 bits,
// so floating-point NaN payloads and signed zeros survive a round trip unchanged.
// The zero Value has no tag and cannot be written.
type Value struct {
	tag  format.Tag
	bits uint64
	text string
}

// BoolValue returns a TagBool value.
func BoolValue(v bool) Value {
	var bits uint64
	if v {
		bits = 1
	}

	return Value{tag: format.TagBool, bits: bits}
}

// Int8Value returns a TagInt8 value.
func Int8Value(v int8) Value { return Value{tag: format.TagInt8, bits: uint64(uint8(v))} }

// Uint8Value returns a TagUint8 value.
func Uint8Value(v uint8) Value { return Value{tag: format.TagUint8, bits: uint64(v)} }

// Int16Value returns a TagInt16 value.
func Int16Value(v int16) Value { return Value{tag: format.TagInt16, bits: uint64(uint16(v))} }

// Uint16Value returns a TagUint16 value.
func Uint16Value(v uint16) Value { return Value{tag: format.TagUint16, bits: uint64(v)} }

// Int32Value returns a TagInt32 value.
func Int32Value(v int32) Value { return Value{tag: format.TagInt32, bits: uint64(uint32(v))} }

// Uint32Value returns a TagUint32 value.
func Uint32Value(v uint32) Value { return Value{tag: format.TagUint32, bits: uint64(v)} }

// Int64Value returns a TagInt64 value.
func Int64Value(v int64) Value { return Value{tag: format.TagInt64, bits: uint64(v)} }

// Uint64Value returns a TagUint64 value.
func Uint64Value(v uint64) Value { return Value{tag: format.TagUint64, bits: v} }

// Float32Value returns a TagFloat32 value.
func Float32Value(v float32) Value {
	return Value{tag: format.TagFloat32, bits: uint64(math.Float32bits(v))}
}

// Float64Value returns a TagFloat64 value.
func Float64Value(v float64) Value {
	return Value{tag: format.TagFloat64, bits: math.Float64bits(v)}
}

// TimestampValue returns a TagTimestamp value. Precision below a microsecond is dropped.
func TimestampValue(t time.Time) Value {
	return Value{tag: format.TagTimestamp, bits: uint64(t.UnixMicro())}
}

// MicrosValue returns a TagTimestamp value from microseconds since the Unix epoch.
func MicrosValue(us int64) Value {
	return Value{tag: format.TagTimestamp, bits: uint64(us)}
}

// TextValue returns a TagText value.
func TextValue(s string) Value {
	return Value{tag: format.TagText, text: s}
}

// ValueFromBits builds a fixed-width value from raw wire bits. Bits above the
// tag's width are discarded.
func ValueFromBits(tag format.Tag, bits uint64) (Value, bool) {
	width := tag.Width()
	if width == 0 {
		return Value{}, false
	}
	if width < 8 {
		bits &= 1<<(uint(width)*8) - 1
	}

	return Value{tag: tag, bits: bits}, true
}

// Tag returns the value's type tag.
func (v Value) Tag() format.Tag { return v.tag }

// Bits returns the raw wire bits of a fixed-width value, zero-extended.
func (v Value) Bits() uint64 { return v.bits }

// Bool reports whether the value is non-zero.
func (v Value) Bool() bool { return v.bits != 0 }

// Int64 returns integer and timestamp values as int64, sign-extending signed tags.
// Float values are truncated toward zero.
func (v Value) Int64() int64 {
	switch v.tag {
	case format.TagInt8:
		return int64(int8(v.bits))
	case format.TagInt16:
		return int64(int16(v.bits))
	case format.TagInt32:
		return int64(int32(v.bits))
	case format.TagFloat32, format.TagFloat64:
		return int64(v.Float64())
	default:
		return int64(v.bits)
	}
}

// Uint64 returns the value as uint64.
func (v Value) Uint64() uint64 {
	if v.tag == format.TagFloat32 || v.tag == format.TagFloat64 {
		return uint64(v.Float64())
	}

	return uint64(v.Int64())
}

// Float32 returns a TagFloat32 value; other tags are converted from Float64.
func (v Value) Float32() float32 {
	if v.tag == format.TagFloat32 {
		return math.Float32frombits(uint32(v.bits))
	}

	return float32(v.Float64())
}

// Float64 returns the value as float64.
func (v Value) Float64() float64 {
	switch v.tag {
	case format.TagFloat64:
		return math.Float64frombits(v.bits)
	case format.TagFloat32:
		return float64(math.Float32frombits(uint32(v.bits)))
	case format.TagUint8, format.TagUint16, format.TagUint32, format.TagUint64, format.TagBool:
		return float64(v.bits)
	default:
		return float64(v.Int64())
	}
}

// Micros returns a timestamp as microseconds since the Unix epoch.
func (v Value) Micros() int64 { return int64(v.bits) }

// Time returns a timestamp as a time.Time in UTC.
func (v Value) Time() time.Time { return time.UnixMicro(int64(v.bits)).UTC() }

// Text returns the string of a TagText value.
func (v Value) Text() string { return v.text }

// Equal reports whether v and o have the same tag and identical bits.
// NaN values with the same payload are equal.
func (v Value) Equal(o Value) bool {
	return v.tag == o.tag && v.bits == o.bits && v.text == o.text
}

// Any returns the value as the matching Go type.
func (v Value) Any() any {
	switch v.tag {
	case format.TagBool:
		return v.Bool()
	case format.TagInt8:
		return int8(v.bits)
	case format.TagUint8:
		return uint8(v.bits)
	case format.TagInt16:
		return int16(v.bits)
	case format.TagUint16:
		return uint16(v.bits)
	case format.TagInt32:
		return int32(v.bits)
	case format.TagUint32:
		return uint32(v.bits)
	case format.TagInt64:
		return int64(v.bits)
	case format.TagUint64:
		return v.bits
	case format.TagFloat32:
		return v.Float32()
	case format.TagFloat64:
		return v.Float64()
	case format.TagTimestamp:
		return v.Time()
	case format.TagText:
		return v.text
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.tag {
	case format.TagBool:
		return strconv.FormatBool(v.Bool())
	case format.TagInt8, format.TagInt16, format.TagInt32, format.TagInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case format.TagUint8, format.TagUint16, format.TagUint32, format.TagUint64:
		return strconv.FormatUint(v.bits, 10)
	case format.TagFloat32:
		return strconv.FormatFloat(float64(v.Float32()), 'g', -1, 32)
	case format.TagFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case format.TagTimestamp:
		return v.Time().Format(time.RFC3339Nano)
	case format.TagText:
		return strconv.Quote(v.text)
	default:
		return "<invalid>"
	}
}
