package encoding

import (
	"fmt"
	"strings"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/tonyriverms/streamcodec/errs"
)

// TextCodec converts strings to and from text payloads.
//
// The length prefix of a text frame counts encoded units, not bytes: a payload of
// n bytes is announced as n/UnitSize() units. Writer and Reader must use the same codec.
type TextCodec interface {
	// Name returns the codec name accepted by TextCodecByName.
	Name() string

	// UnitSize returns the width in bytes of one encoded unit.
	UnitSize() int

	// Encode returns the payload for s. Its length is a multiple of UnitSize.
	Encode(s string) ([]byte, error)

	// Decode converts a payload back into a string. The payload is not retained.
	Decode(payload []byte) (string, error)
}

var (
	// UTF8 stores strings as their raw bytes; one unit is one byte.
	// Strings holding invalid UTF-8 pass through unchanged.
	UTF8 TextCodec = utf8Codec{}

	// UTF16LE stores strings as little-endian UTF-16 code units without a BOM.
	UTF16LE TextCodec = newUTF16Codec("utf-16le", unicode.LittleEndian)

	// UTF16BE stores strings as big-endian UTF-16 code units without a BOM.
	UTF16BE TextCodec = newUTF16Codec("utf-16be", unicode.BigEndian)
)

// TextCodecByName returns the built-in codec called name: "utf-8", "utf-16le" or "utf-16be".
func TextCodecByName(name string) (TextCodec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "utf-16le", "utf16le", "utf-16", "utf16":
		return UTF16LE, nil
	case "utf-16be", "utf16be":
		return UTF16BE, nil
	default:
		return nil, fmt.Errorf("unknown text encoding %q", name)
	}
}

type utf8Codec struct{}

func (utf8Codec) Name() string  { return "utf-8" }
func (utf8Codec) UnitSize() int { return 1 }

func (utf8Codec) Encode(s string) ([]byte, error) {
	return []byte(s), nil
}

func (utf8Codec) Decode(payload []byte) (string, error) {
	return string(payload), nil
}

type utf16Codec struct {
	name string
	enc  xencoding.Encoding
}

func newUTF16Codec(name string, order unicode.Endianness) utf16Codec {
	return utf16Codec{
		name: name,
		enc:  unicode.UTF16(order, unicode.IgnoreBOM),
	}
}

func (c utf16Codec) Name() string  { return c.name }
func (c utf16Codec) UnitSize() int { return 2 }

func (c utf16Codec) Encode(s string) ([]byte, error) {
	out, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %s encode: %w", errs.ErrInvalidText, c.name, err)
	}

	return out, nil
}

func (c utf16Codec) Decode(payload []byte) (string, error) {
	if len(payload)%2 != 0 {
		return "", fmt.Errorf("%w: %s payload has odd length %d", errs.ErrInvalidText, c.name, len(payload))
	}

	out, err := c.enc.NewDecoder().Bytes(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %s decode: %w", errs.ErrInvalidText, c.name, err)
	}

	return string(out), nil
}
