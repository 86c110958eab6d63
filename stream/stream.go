// Package stream provides the position-addressable byte stream the streamcodec
// frames are read from and written to.
//
// Any io.ReadWriteSeeker works, *os.File included. Buffer is an in-memory
// implementation backed by pooled memory. The helpers in this package read the
// cursor position and stream length through Seek, with a fast path for streams
// that report them directly.
//
// Streams carry a single cursor and are not safe for concurrent use: one encode
// or decode call owns the cursor for its whole duration.
package stream

import (
	"errors"
	"fmt"
	"io"
)

// Stream is a sequential, seekable byte stream.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
}

// Positioner is implemented by streams that track their cursor without a Seek call.
type Positioner interface {
	Position() int64
}

// Lengther is implemented by streams that know their total length.
type Lengther interface {
	Length() int64
}

var errNegativePosition = errors.New("stream: negative position")

// Position returns the current cursor offset of s.
func Position(s io.Seeker) (int64, error) {
	if p, ok := s.(Positioner); ok {
		return p.Position(), nil
	}

	return s.Seek(0, io.SeekCurrent)
}

// Length returns the total length of s, leaving the cursor where it was.
func Length(s io.Seeker) (int64, error) {
	if l, ok := s.(Lengther); ok {
		return l.Length(), nil
	}

	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}

	return end, nil
}

// Remaining returns the number of bytes between the cursor and the end of s.
// It is zero when the cursor sits at or beyond the end.
func Remaining(s io.Seeker) (int64, error) {
	pos, err := Position(s)
	if err != nil {
		return 0, err
	}
	length, err := Length(s)
	if err != nil {
		return 0, err
	}

	return max(length-pos, 0), nil
}

// Advance moves the cursor of s by offset bytes relative to its current position.
func Advance(s io.Seeker, offset int64) error {
	if offset == 0 {
		return nil
	}

	_, err := s.Seek(offset, io.SeekCurrent)

	return err
}

// Mark is a saved cursor position that can be restored later, which is how a
// single-pass decode is replayed.
type Mark struct {
	s   io.Seeker
	pos int64
}

// Save records the current cursor position of s.
func Save(s io.Seeker) (Mark, error) {
	pos, err := Position(s)
	if err != nil {
		return Mark{}, fmt.Errorf("save mark: %w", err)
	}

	return Mark{s: s, pos: pos}, nil
}

// Position returns the saved offset.
func (m Mark) Position() int64 {
	return m.pos
}

// Restore moves the cursor back to the saved offset.
func (m Mark) Restore() error {
	if m.s == nil {
		return errors.New("stream: restore of zero Mark")
	}
	if _, err := m.s.Seek(m.pos, io.SeekStart); err != nil {
		return fmt.Errorf("restore mark: %w", err)
	}

	return nil
}
