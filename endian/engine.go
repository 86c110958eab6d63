// Package endian provides the byte order engines used by the streamcodec wire format.
//
// An EndianEngine combines binary.ByteOrder and binary.AppendByteOrder, so the
// same value can drive both in-place PutUintN calls on scratch buffers and
// append-style encoding.
//
// Little-endian is the default byte order of the format:
//
//	engine := endian.GetLittleEndianEngine()
//	w, _ := encoding.NewWriter(buf, encoding.WithEngine(engine))
//
// Writer and reader must agree on the engine; nothing on the wire records it.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Engine names accepted by Parse.
const (
	NameLittle = "little"
	NameBig    = "big"
	NameNative = "native"
)

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() EndianEngine {
	// 0x0100 is 256. On a little-endian host the low byte (0x00) comes first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Parse returns the engine registered under name ("little", "big" or "native").
// Matching is case-insensitive and ignores surrounding whitespace; the empty
// string selects little-endian.
func Parse(name string) (EndianEngine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameLittle, "le", "little-endian":
		return binary.LittleEndian, nil
	case NameBig, "be", "big-endian":
		return binary.BigEndian, nil
	case NameNative:
		return CheckEndianness(), nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", name)
	}
}

// Name returns the canonical name of engine, "little" or "big".
func Name(engine EndianEngine) string {
	if engine == binary.BigEndian {
		return NameBig
	}

	return NameLittle
}
