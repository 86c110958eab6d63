package frame

import (
	"fmt"
	"iter"

	"github.com/tonyriverms/streamcodec/encoding"
	"github.com/tonyriverms/streamcodec/errs"
)

// uncounted marks a decoder bounded by the end of the stream.
const uncounted = -1

// SequenceDecoder decodes the elements of a sequence frame one at a time.
//
// It is a single-pass cursor over the stream: each successful Next consumes
// exactly one key frame and one value frame. A consumer may stop at any time;
// the stream is then left on the boundary of the last consumed element, and
// SkipRest moves past the elements not yet read. To decode the sequence again,
// save a stream.Mark before opening it, restore it, and open a new decoder.
//
// The first error ends the sequence and is reported by Err.
type SequenceDecoder[K, V any] struct {
	r        *encoding.Reader
	kk       Kind[K]
	vk       Kind[V]
	count    int
	consumed int
	err      error
	mismatch bool
}

// OpenSequence reads the check code and element count of a counted sequence
// frame and returns a decoder for its elements. No element is decoded yet.
//
// A mismatched check code yields a decoder with no elements, or
// errs.ErrGuardMismatch if the reader has strict guards. A negative count fails
// with errs.ErrCorruptData.
func OpenSequence[K, V any](r *encoding.Reader, g Guard, kk Kind[K], vk Kind[V]) (*SequenceDecoder[K, V], error) {
	if err := validKinds(kk, vk); err != nil {
		return nil, err
	}

	ok, err := g.check(r)
	if err != nil {
		return nil, err
	}
	if !ok {
		if r.Config().StrictGuards() {
			return nil, fmt.Errorf("%w: sequence expected %s", errs.ErrGuardMismatch, g)
		}

		return &SequenceDecoder[K, V]{r: r, kk: kk, vk: vk, mismatch: true}, nil
	}

	count, err := r.ReadCount()
	if err != nil {
		return nil, fmt.Errorf("read sequence header: %w", err)
	}

	if span, ok := FixedSpan(kk, vk, count); ok {
		rem, err := r.Remaining()
		if err != nil {
			return nil, err
		}
		if span > rem {
			return nil, fmt.Errorf("%w: %d elements need %d bytes, %d available",
				errs.ErrTruncatedData, count, span, rem)
		}
	}

	return &SequenceDecoder[K, V]{r: r, kk: kk, vk: vk, count: count}, nil
}

// OpenUncountedSequence returns a decoder for elements written by
// WriteUncountedSequence, bounded by the end of the stream rather than a count.
// A partial element at the end of the stream fails with errs.ErrTruncatedData.
func OpenUncountedSequence[K, V any](r *encoding.Reader, kk Kind[K], vk Kind[V]) (*SequenceDecoder[K, V], error) {
	if err := validKinds(kk, vk); err != nil {
		return nil, err
	}

	return &SequenceDecoder[K, V]{r: r, kk: kk, vk: vk, count: uncounted}, nil
}

// Next decodes the next element. It returns false at the end of the sequence or
// after an error; check Err to tell them apart.
func (d *SequenceDecoder[K, V]) Next() (Pair[K, V], bool) {
	var p Pair[K, V]
	if d.err != nil || d.exhausted() {
		return p, false
	}

	if d.count == uncounted {
		rem, err := d.r.Remaining()
		if err != nil {
			d.err = err
			return p, false
		}
		if rem == 0 {
			return p, false
		}
	}

	k, err := d.kk.Read(d.r)
	if err != nil {
		d.err = fmt.Errorf("decode element %d key (%s): %w", d.consumed, d.kk.Name, err)
		return p, false
	}
	v, err := d.vk.Read(d.r)
	if err != nil {
		d.err = fmt.Errorf("decode element %d value (%s): %w", d.consumed, d.vk.Name, err)
		return p, false
	}

	d.consumed++
	p.Key, p.Value = k, v

	return p, true
}

// All returns an iterator over the remaining elements. Breaking out of the loop
// leaves the stream after the last element yielded.
func (d *SequenceDecoder[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for {
			p, ok := d.Next()
			if !ok || !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Collect decodes all remaining elements into a slice. It returns nil if none remain.
func (d *SequenceDecoder[K, V]) Collect() ([]Pair[K, V], error) {
	var out []Pair[K, V]
	if n := d.sizeHint(); n > 0 {
		out = make([]Pair[K, V], 0, n)
	}

	for {
		p, ok := d.Next()
		if !ok {
			break
		}
		out = append(out, p)
	}
	if d.err != nil {
		return nil, d.err
	}
	if len(out) == 0 {
		return nil, nil
	}

	return out, nil
}

// SkipRest moves the stream past every element not yet decoded.
func (d *SequenceDecoder[K, V]) SkipRest() error {
	if d.err != nil {
		return d.err
	}

	if d.count == uncounted {
		rem, err := d.r.Remaining()
		if err == nil {
			err = d.r.Discard(rem)
		}
		if err != nil {
			d.err = fmt.Errorf("skip uncounted sequence: %w", err)
		}

		return d.err
	}

	left := d.count - d.consumed
	if span, ok := FixedSpan(d.kk, d.vk, left); ok {
		if err := d.r.Discard(span); err != nil {
			d.err = fmt.Errorf("skip %d elements: %w", left, err)
			return d.err
		}
		d.consumed = d.count

		return nil
	}

	for d.consumed < d.count {
		if err := d.kk.skip(d.r); err != nil {
			d.err = fmt.Errorf("skip element %d key (%s): %w", d.consumed, d.kk.Name, err)
			return d.err
		}
		if err := d.vk.skip(d.r); err != nil {
			d.err = fmt.Errorf("skip element %d value (%s): %w", d.consumed, d.vk.Name, err)
			return d.err
		}
		d.consumed++
	}

	return nil
}

// Err returns the error that ended the sequence, if any.
func (d *SequenceDecoder[K, V]) Err() error { return d.err }

// Count returns the element count read from the wire, or -1 for an uncounted sequence.
func (d *SequenceDecoder[K, V]) Count() int { return d.count }

// Consumed returns the number of elements decoded or skipped so far.
func (d *SequenceDecoder[K, V]) Consumed() int { return d.consumed }

// Remaining returns the number of elements not yet decoded, or -1 for an uncounted sequence.
func (d *SequenceDecoder[K, V]) Remaining() int {
	if d.count == uncounted {
		return uncounted
	}

	return d.count - d.consumed
}

// GuardMismatch reports whether the sequence decoded as empty because its check
// code did not match.
func (d *SequenceDecoder[K, V]) GuardMismatch() bool { return d.mismatch }

// DecodeMap decodes the remaining elements of d into a map. When a key repeats,
// the later value wins. It returns nil if no elements remain.
func DecodeMap[K comparable, V any](d *SequenceDecoder[K, V]) (map[K]V, error) {
	if d.Remaining() == 0 {
		return nil, nil
	}

	m := make(map[K]V, d.sizeHint())
	for k, v := range d.All() {
		m[k] = v
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}

	return m, nil
}

// sizeHint bounds the elements left by the bytes left in the stream, so a
// corrupt count cannot drive a huge allocation. Every element takes at least
// one byte except for degenerate self-serializing kinds, which only lose the hint.
func (d *SequenceDecoder[K, V]) sizeHint() int {
	left := d.Remaining()
	if left <= 0 {
		return 0
	}

	rem, err := d.r.Remaining()
	if err != nil {
		return 0
	}

	return int(min(int64(left), rem))
}

func (d *SequenceDecoder[K, V]) exhausted() bool {
	return d.count != uncounted && d.consumed >= d.count
}
