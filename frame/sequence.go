package frame

import (
	"fmt"
	"iter"

	"github.com/tonyriverms/streamcodec/encoding"
	"github.com/tonyriverms/streamcodec/errs"
)

// Pair is one key/value element of a sequence.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// MakePair returns Pair{Key: k, Value: v}.
func MakePair[K, V any](k K, v V) Pair[K, V] {
	return Pair[K, V]{Key: k, Value: v}
}

// WriteSequence writes pairs as a counted sequence frame: the optional check
// code, an int32 element count, then each key frame followed by its value frame,
// in slice order. A nil or empty slice writes a zero count; the two are
// indistinguishable on the wire.
func WriteSequence[K, V any](w *encoding.Writer, g Guard, kk Kind[K], vk Kind[V], pairs []Pair[K, V]) error {
	if err := validKinds(kk, vk); err != nil {
		return err
	}
	if err := writeSequenceHeader(w, g, len(pairs)); err != nil {
		return err
	}

	for i, p := range pairs {
		if err := writeElement(w, kk, vk, i, p.Key, p.Value); err != nil {
			return err
		}
	}

	return nil
}

// WriteSequenceSeq writes count pairs produced by seq as a counted sequence frame.
// If seq yields a different number of pairs the call fails with
// errs.ErrMixedSequence and the frame on the stream is invalid.
func WriteSequenceSeq[K, V any](w *encoding.Writer, g Guard, kk Kind[K], vk Kind[V], count int, seq iter.Seq2[K, V]) error {
	if err := validKinds(kk, vk); err != nil {
		return err
	}
	if err := writeSequenceHeader(w, g, count); err != nil {
		return err
	}
	if seq == nil {
		if count != 0 {
			return fmt.Errorf("%w: announced %d elements, got none", errs.ErrMixedSequence, count)
		}

		return nil
	}

	n := 0
	var err error
	for k, v := range seq {
		if n == count {
			err = fmt.Errorf("%w: announced %d elements, got more", errs.ErrMixedSequence, count)
			break
		}
		if err = writeElement(w, kk, vk, n, k, v); err != nil {
			break
		}
		n++
	}
	if err != nil {
		return err
	}
	if n != count {
		return fmt.Errorf("%w: announced %d elements, got %d", errs.ErrMixedSequence, count, n)
	}

	return nil
}

// WriteMap writes m as a counted sequence frame. Pairs are written in map
// iteration order, which Go leaves unspecified. A nil map writes a zero count.
func WriteMap[K comparable, V any](w *encoding.Writer, g Guard, kk Kind[K], vk Kind[V], m map[K]V) error {
	return WriteSequenceSeq(w, g, kk, vk, len(m), func(yield func(K, V) bool) {
		for k, v := range m {
			if !yield(k, v) {
				return
			}
		}
	})
}

// WriteUncountedSequence writes pairs back to back with neither check code nor
// count. The result can only be decoded with OpenUncountedSequence, which reads
// to the end of the stream, so it must be the last thing in the stream.
func WriteUncountedSequence[K, V any](w *encoding.Writer, kk Kind[K], vk Kind[V], pairs []Pair[K, V]) error {
	if err := validKinds(kk, vk); err != nil {
		return err
	}

	for i, p := range pairs {
		if err := writeElement(w, kk, vk, i, p.Key, p.Value); err != nil {
			return err
		}
	}

	return nil
}

// ReadSequence decodes a whole counted sequence frame, preserving order and
// duplicate keys. A zero count yields nil.
//
// If the check code does not match, the frame decodes as empty and no error is
// returned, unless the reader was created with encoding.WithStrictGuards, in
// which case errs.ErrGuardMismatch is returned. Either way the 8 guard bytes
// have been consumed.
func ReadSequence[K, V any](r *encoding.Reader, g Guard, kk Kind[K], vk Kind[V]) ([]Pair[K, V], error) {
	d, err := OpenSequence(r, g, kk, vk)
	if err != nil {
		return nil, err
	}

	return d.Collect()
}

// ReadMap decodes a counted sequence frame into a map. When a key repeats, the
// later value wins. A zero count yields nil.
func ReadMap[K comparable, V any](r *encoding.Reader, g Guard, kk Kind[K], vk Kind[V]) (map[K]V, error) {
	d, err := OpenSequence(r, g, kk, vk)
	if err != nil {
		return nil, err
	}

	return DecodeMap(d)
}

// SkipSequence moves past a counted sequence frame without keeping its elements.
//
// The guard is handled exactly as ReadSequence does. When both kinds are fixed
// width the whole run is skipped with one seek of count × (key width + value
// width); otherwise each element is skipped in turn, since its span cannot be
// known without reading it.
func SkipSequence[K, V any](r *encoding.Reader, g Guard, kk Kind[K], vk Kind[V]) error {
	d, err := OpenSequence(r, g, kk, vk)
	if err != nil {
		return err
	}

	return d.SkipRest()
}

// FixedSpan returns the encoded size of count elements when both kinds are fixed width.
func FixedSpan[K, V any](kk Kind[K], vk Kind[V], count int) (int64, bool) {
	if !kk.Fixed() || !vk.Fixed() {
		return 0, false
	}

	return int64(count) * int64(kk.Width+vk.Width), true
}

func validKinds[K, V any](kk Kind[K], vk Kind[V]) error {
	if err := kk.valid(); err != nil {
		return err
	}

	return vk.valid()
}

func writeSequenceHeader(w *encoding.Writer, g Guard, count int) error {
	if err := g.write(w); err != nil {
		return err
	}
	if err := w.WriteLength(count); err != nil {
		return fmt.Errorf("write element count: %w", err)
	}

	return nil
}

func writeElement[K, V any](w *encoding.Writer, kk Kind[K], vk Kind[V], i int, k K, v V) error {
	if err := kk.Write(w, k); err != nil {
		return fmt.Errorf("write element %d key (%s): %w", i, kk.Name, err)
	}
	if err := vk.Write(w, v); err != nil {
		return fmt.Errorf("write element %d value (%s): %w", i, vk.Name, err)
	}

	return nil
}
