// Package encoding implements the primitive codec of the streamcodec format.
//
// A Writer encodes booleans, signed and unsigned integers of 8/16/32/64 bits,
// IEEE-754 floats, timestamps and text onto a stream; a Reader decodes them.
// Every fixed-width type has one wire width:
//
//	bool, int8, uint8          1 byte
//	int16, uint16              2 bytes
//	int32, uint32, float32     4 bytes
//	int64, uint64, float64     8 bytes
//	timestamp                  8 bytes, signed microseconds since the Unix epoch
//	text                       int32 unit count, then the TextCodec payload
//
// The codec performs no validation of fixed-width values: any bit pattern is a
// valid value, and floating-point NaN and infinity payloads are preserved exactly.
//
// # Byte Order
//
// Little-endian is the default. Writer and Reader must be created with the same
// byte order option, since nothing on the wire records it:
//
//	w, _ := encoding.NewWriter(buf, encoding.WithBigEndian())
//	r, _ := encoding.NewReader(buf, encoding.WithBigEndian())
//
// # Text
//
// Text frames count encoded units, not bytes. With the default UTF8 codec a unit
// is one byte; with UTF16LE or UTF16BE it is one 16-bit code unit. Text has no
// null: the empty string is written as a zero prefix and a zero prefix reads back
// as the empty string.
//
// # Values
//
// Value is a tagged union over the primitive types, used where the type of a
// slot is only known at run time:
//
//	_ = w.WriteValue(encoding.Float64Value(math.NaN()))
//	v, _ := r.ReadValue(format.TagFloat64)
//
// # Errors
//
// A stream that ends inside a value yields errs.ErrTruncatedData. A negative
// length prefix or element count yields errs.ErrCorruptData. Other stream errors
// are returned unchanged.
package encoding
