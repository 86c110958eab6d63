// Package streamcodec is a binary serialization layer for sequential, seekable
// byte streams.
//
// It writes and reads primitive values, variable-length blocks, and counted
// key/value sequences, each optionally preceded by an 8-byte check code that
// catches a decoder reading from the wrong place. Sequences can be decoded
// lazily, one element at a time, and any frame can be skipped without decoding
// its payload.
//
// # Core Features
//
//   - Fixed-width primitives in a selectable byte order (little-endian by default)
//   - Length-prefixed blocks and text with deterministic null/empty handling
//   - Counted sequences over any key/value kind, including self-serializing types
//   - Lazy, resumable sequence decoding with iter.Seq2 support
//   - Skipping of blocks and sequences with a single seek where widths are fixed
//
// # Basic Usage
//
// Encoding a dictionary to bytes and back:
//
//	import "github.com/tonyriverms/streamcodec"
//	import "github.com/tonyriverms/streamcodec/frame"
//
//	data, _ := streamcodec.MarshalMap(frame.Text, frame.Float64, map[string]float64{
//	    "cpu.usage": 0.42,
//	})
//	m, _ := streamcodec.UnmarshalMap(data, frame.Text, frame.Float64)
//
// Streaming several frames through one stream:
//
//	buf := stream.NewBuffer(nil)
//	defer buf.Release()
//
//	w, _ := encoding.NewWriter(buf)
//	_ = frame.WriteBlock(w, frame.BlockGuard(), payload)
//	_ = frame.WriteSequence(w, frame.SequenceGuard(), frame.Int32, frame.Text, pairs)
//
//	_, _ = buf.Seek(0, io.SeekStart)
//	r, _ := encoding.NewReader(buf)
//	_ = frame.SkipBlock(r, frame.BlockGuard())
//	dec, _ := frame.OpenSequence(r, frame.SequenceGuard(), frame.Int32, frame.Text)
//	for k, v := range dec.All() {
//	    fmt.Println(k, v)
//	}
//
// # Package Structure
//
// This package provides byte-slice wrappers around the encoding and frame
// packages for the most common use cases. For streaming, lazy decoding, and
// fine-grained control use those packages directly.
package streamcodec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tonyriverms/streamcodec/encoding"
	"github.com/tonyriverms/streamcodec/errs"
	"github.com/tonyriverms/streamcodec/format"
	"github.com/tonyriverms/streamcodec/frame"
	"github.com/tonyriverms/streamcodec/stream"
)

// Pair is one key/value element of a sequence.
type Pair[K, V any] = frame.Pair[K, V]

// CheckCode derives an application check code from name.
//
// Equal names always produce equal codes, so encoder and decoder can agree on a
// guard by agreeing on a name:
//
//	guard := frame.Guarded(streamcodec.CheckCode("myapp/settings"))
func CheckCode(name string) format.CheckCode {
	return format.CheckCodeOf(name)
}

// MarshalSequence encodes pairs as a sequence frame guarded by
// format.SequenceCheckCode.
//
// Options are the encoding options, e.g. encoding.WithBigEndian().
func MarshalSequence[K, V any](kk frame.Kind[K], vk frame.Kind[V], pairs []Pair[K, V], opts ...encoding.Option) ([]byte, error) {
	return marshal(opts, func(w *encoding.Writer) error {
		return frame.WriteSequence(w, frame.SequenceGuard(), kk, vk, pairs)
	})
}

// UnmarshalSequence decodes data produced by MarshalSequence.
//
// The whole of data must be consumed; trailing bytes fail with errs.ErrCorruptData.
// A check code mismatch yields nil unless encoding.WithStrictGuards() is passed.
func UnmarshalSequence[K, V any](data []byte, kk frame.Kind[K], vk frame.Kind[V], opts ...encoding.Option) ([]Pair[K, V], error) {
	var pairs []Pair[K, V]
	err := unmarshal(data, opts, func(r *encoding.Reader) error {
		d, err := frame.OpenSequence(r, frame.SequenceGuard(), kk, vk)
		if err != nil {
			return err
		}
		if d.GuardMismatch() {
			return errStop
		}
		pairs, err = d.Collect()

		return err
	})

	return pairs, err
}

// MarshalMap encodes m as a sequence frame guarded by format.SequenceCheckCode.
// Pairs are written in map iteration order.
func MarshalMap[K comparable, V any](kk frame.Kind[K], vk frame.Kind[V], m map[K]V, opts ...encoding.Option) ([]byte, error) {
	return marshal(opts, func(w *encoding.Writer) error {
		return frame.WriteMap(w, frame.SequenceGuard(), kk, vk, m)
	})
}

// UnmarshalMap decodes data produced by MarshalMap or MarshalSequence into a map.
// For a repeated key the last value wins.
func UnmarshalMap[K comparable, V any](data []byte, kk frame.Kind[K], vk frame.Kind[V], opts ...encoding.Option) (map[K]V, error) {
	var m map[K]V
	err := unmarshal(data, opts, func(r *encoding.Reader) error {
		d, err := frame.OpenSequence(r, frame.SequenceGuard(), kk, vk)
		if err != nil {
			return err
		}
		if d.GuardMismatch() {
			return errStop
		}
		m, err = frame.DecodeMap(d)

		return err
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// MarshalBlock encodes payload as a block frame guarded by format.BlockCheckCode.
func MarshalBlock(payload []byte, opts ...encoding.Option) ([]byte, error) {
	return marshal(opts, func(w *encoding.Writer) error {
		return frame.WriteBlock(w, frame.BlockGuard(), payload)
	})
}

// UnmarshalBlock decodes data produced by MarshalBlock. An empty block yields nil.
func UnmarshalBlock(data []byte, opts ...encoding.Option) ([]byte, error) {
	var payload []byte
	err := unmarshal(data, opts, func(r *encoding.Reader) error {
		var err error
		payload, err = frame.ReadBlock(r, frame.BlockGuard())

		return err
	})

	return payload, err
}

// errStop ends an unmarshal early without error and without the trailing-byte check.
var errStop = errors.New("stop")

func marshal(opts []encoding.Option, fn func(w *encoding.Writer) error) ([]byte, error) {
	buf := stream.NewBuffer(nil)
	defer buf.Release()

	w, err := encoding.NewWriter(buf, opts...)
	if err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return nil, err
	}

	return bytes.Clone(buf.Bytes()), nil
}

func unmarshal(data []byte, opts []encoding.Option, fn func(r *encoding.Reader) error) error {
	buf := stream.NewBuffer(data)
	defer buf.Release()

	r, err := encoding.NewReader(buf, opts...)
	if err != nil {
		return err
	}
	if err := fn(r); err != nil {
		if errors.Is(err, errStop) {
			return nil
		}

		return err
	}

	if rem := buf.Length() - buf.Position(); rem > 0 {
		return fmt.Errorf("%w: %d trailing bytes", errs.ErrCorruptData, rem)
	}

	return nil
}
