// Package format defines the type tags and check codes shared by the streamcodec
// wire format.
package format

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/tonyriverms/streamcodec/internal/hash"
)

// Tag identifies the wire shape of a primitive value.
type Tag uint8

const (
	TagBool      Tag = 0x1 // TagBool is a 1-byte boolean (0 or 1 on write, any non-zero reads true).
	TagInt8      Tag = 0x2 // TagInt8 is a signed 8-bit integer.
	TagUint8     Tag = 0x3 // TagUint8 is an unsigned 8-bit integer.
	TagInt16     Tag = 0x4 // TagInt16 is a signed 16-bit integer.
	TagUint16    Tag = 0x5 // TagUint16 is an unsigned 16-bit integer.
	TagInt32     Tag = 0x6 // TagInt32 is a signed 32-bit integer.
	TagUint32    Tag = 0x7 // TagUint32 is an unsigned 32-bit integer.
	TagInt64     Tag = 0x8 // TagInt64 is a signed 64-bit integer.
	TagUint64    Tag = 0x9 // TagUint64 is an unsigned 64-bit integer.
	TagFloat32   Tag = 0xA // TagFloat32 is an IEEE-754 binary32.
	TagFloat64   Tag = 0xB // TagFloat64 is an IEEE-754 binary64.
	TagTimestamp Tag = 0xC // TagTimestamp is a signed 64-bit count of microseconds since the Unix epoch.
	TagText      Tag = 0xD // TagText is a length-prefixed string.
)

var tagNames = [...]string{
	TagBool:      "bool",
	TagInt8:      "int8",
	TagUint8:     "uint8",
	TagInt16:     "int16",
	TagUint16:    "uint16",
	TagInt32:     "int32",
	TagUint32:    "uint32",
	TagInt64:     "int64",
	TagUint64:    "uint64",
	TagFloat32:   "float32",
	TagFloat64:   "float64",
	TagTimestamp: "timestamp",
	TagText:      "text",
}

var tagWidths = [...]int{
	TagBool:      1,
	TagInt8:      1,
	TagUint8:     1,
	TagInt16:     2,
	TagUint16:    2,
	TagInt32:     4,
	TagUint32:    4,
	TagInt64:     8,
	TagUint64:    8,
	TagFloat32:   4,
	TagFloat64:   8,
	TagTimestamp: 8,
	TagText:      0,
}

// Tags lists every known tag in ascending order.
func Tags() []Tag {
	return []Tag{
		TagBool, TagInt8, TagUint8, TagInt16, TagUint16, TagInt32, TagUint32,
		TagInt64, TagUint64, TagFloat32, TagFloat64, TagTimestamp, TagText,
	}
}

// Valid reports whether t is a known tag.
func (t Tag) Valid() bool {
	return t >= TagBool && t <= TagText
}

// Width returns the fixed encoded width of t in bytes, or 0 for variable-width
// and unknown tags.
func (t Tag) Width() int {
	if !t.Valid() {
		return 0
	}

	return tagWidths[t]
}

// Fixed reports whether t has a fixed encoded width.
func (t Tag) Fixed() bool {
	return t.Width() > 0
}

func (t Tag) String() string {
	if !t.Valid() {
		return "unknown"
	}

	return tagNames[t]
}

// ParseTag returns the tag with the given name, as produced by Tag.String.
func ParseTag(name string) (Tag, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Tags() {
		if tagNames[t] == name {
			return t, true
		}
	}

	return 0, false
}

// CheckCodeSize is the encoded width of a check code.
const CheckCodeSize = 8

// CheckCode is the 8-byte magic sentinel written in front of a guarded block.
type CheckCode [CheckCodeSize]byte

var (
	// BlockCheckCode guards single variable-length blocks.
	BlockCheckCode = CheckCodeOf("streamcodec/block")

	// SequenceCheckCode guards dictionaries and pair sequences.
	SequenceCheckCode = CheckCodeOf("streamcodec/sequence")
)

// CheckCodeOf derives a check code from name: the xxHash64 of name, stored
// little-endian. Distinct names give distinct codes with overwhelming probability.
func CheckCodeOf(name string) CheckCode {
	var c CheckCode
	binary.LittleEndian.PutUint64(c[:], hash.ID(name))

	return c
}

// ParseCheckCode parses a 16-digit hexadecimal check code.
func ParseCheckCode(s string) (CheckCode, bool) {
	var c CheckCode
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil || len(b) != CheckCodeSize {
		return c, false
	}
	copy(c[:], b)

	return c, true
}

func (c CheckCode) String() string {
	return hex.EncodeToString(c[:])
}
