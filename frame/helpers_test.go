package frame

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tonyriverms/streamcodec/encoding"
	"github.com/tonyriverms/streamcodec/stream"
)

// sentinel is written after a frame under test to check that reads and skips
// stop exactly on the frame boundary.
const sentinel = int32(0x5EC0DE)

func newPair(t *testing.T, opts ...encoding.Option) (*stream.Buffer, *encoding.Writer, *encoding.Reader) {
	t.Helper()

	buf := stream.NewBuffer(nil)
	t.Cleanup(buf.Release)

	w, err := encoding.NewWriter(buf, opts...)
	require.NoError(t, err)
	r, err := encoding.NewReader(buf, opts...)
	require.NoError(t, err)

	return buf, w, r
}

func newReaderOn(t *testing.T, data []byte, opts ...encoding.Option) *encoding.Reader {
	t.Helper()

	buf := stream.NewBuffer(data)
	t.Cleanup(buf.Release)

	r, err := encoding.NewReader(buf, opts...)
	require.NoError(t, err)

	return r
}

func rewind(t *testing.T, buf *stream.Buffer) {
	t.Helper()
	_, err := buf.Seek(0, io.SeekStart)
	require.NoError(t, err)
}

func requireSentinel(t *testing.T, r *encoding.Reader) {
	t.Helper()

	v, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, sentinel, v)

	rem, err := r.Remaining()
	require.NoError(t, err)
	require.Zero(t, rem)
}

func le32(v int32) []byte {
	u := uint32(v)
	return []byte{byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24)}
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}
