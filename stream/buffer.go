package stream

import (
	"fmt"
	"io"

	"github.com/tonyriverms/streamcodec/internal/pool"
)

// MaxWriteGap is the largest zero-filled gap a Buffer write may open past the
// current end.
const MaxWriteGap = pool.StreamBufferMaxThreshold

// Buffer is an in-memory Stream backed by a pooled byte buffer.
//
// Writes overwrite bytes at the cursor and extend the buffer past its end.
// Seeking beyond the end is allowed; a later write zero-fills the gap, while a
// read there returns io.EOF. A write that would leave a gap larger than
// MaxWriteGap fails instead, so a stray seek cannot grow the buffer unboundedly.
//
// Call Release when the buffer is no longer needed to return its memory to the pool.
type Buffer struct {
	buf *pool.ByteBuffer
	pos int64
}

var (
	_ Stream     = (*Buffer)(nil)
	_ Positioner = (*Buffer)(nil)
	_ Lengther   = (*Buffer)(nil)
)

// NewBuffer creates a Buffer holding a copy of data, with the cursor at offset 0.
func NewBuffer(data []byte) *Buffer {
	b := &Buffer{buf: pool.GetStreamBuffer()}
	_, _ = b.buf.Write(data)

	return b
}

// Read reads up to len(p) bytes from the cursor.
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.pos >= int64(b.buf.Len()) {
		return 0, io.EOF
	}

	n := copy(p, b.buf.Bytes()[b.pos:])
	b.pos += int64(n)

	return n, nil
}

// Write writes p at the cursor. It fails without writing when the cursor lies
// more than MaxWriteGap bytes past the end.
func (b *Buffer) Write(p []byte) (int, error) {
	if gap := b.pos - int64(b.buf.Len()); gap > MaxWriteGap {
		return 0, fmt.Errorf("stream: write at %d leaves a %d byte gap, limit %d", b.pos, gap, MaxWriteGap)
	}

	b.buf.WriteAt(p, int(b.pos))
	b.pos += int64(len(p))

	return len(p), nil
}

// Seek implements io.Seeker.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = b.pos
	case io.SeekEnd:
		base = int64(b.buf.Len())
	default:
		return b.pos, fmt.Errorf("stream: invalid whence %d", whence)
	}

	next := base + offset
	if next < 0 {
		return b.pos, errNegativePosition
	}
	b.pos = next

	return next, nil
}

// Position returns the cursor offset.
func (b *Buffer) Position() int64 {
	return b.pos
}

// Length returns the number of bytes held.
func (b *Buffer) Length() int64 {
	return int64(b.buf.Len())
}

// Bytes returns the buffer contents. The slice aliases the buffer and is valid
// until the next write or Release.
func (b *Buffer) Bytes() []byte {
	return b.buf.Bytes()
}

// Truncate discards everything after the first n bytes and clamps the cursor.
func (b *Buffer) Truncate(n int) {
	b.buf.Truncate(n)
	b.pos = min(b.pos, int64(n))
}

// Reset empties the buffer and rewinds the cursor.
func (b *Buffer) Reset() {
	b.buf.Reset()
	b.pos = 0
}

// Release returns the underlying memory to the pool. The Buffer must not be used afterwards.
func (b *Buffer) Release() {
	pool.PutStreamBuffer(b.buf)
	b.buf = nil
	b.pos = 0
}
