package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tonyriverms/streamcodec/errs"
	"github.com/tonyriverms/streamcodec/stream"
)

func writeWords(t *testing.T) ([]Pair[int32, string], func(t *testing.T) (*stream.Buffer, *SequenceDecoder[int32, string])) {
	t.Helper()

	pairs := []Pair[int32, string]{
		MakePair(int32(10), "ten"),
		MakePair(int32(20), "twenty"),
		MakePair(int32(30), "thirty"),
		MakePair(int32(40), "forty"),
	}

	open := func(t *testing.T) (*stream.Buffer, *SequenceDecoder[int32, string]) {
		buf, w, r := newPair(t)
		require.NoError(t, WriteSequence(w, SequenceGuard(), Int32, Text, pairs))
		require.NoError(t, w.WriteInt32(sentinel))
		rewind(t, buf)

		dec, err := OpenSequence(r, SequenceGuard(), Int32, Text)
		require.NoError(t, err)
		t.Cleanup(func() { requireSentinelAfterSkip(t, r, dec) })

		return buf, dec
	}

	return pairs, open
}

func requireSentinelAfterSkip[K, V any](t *testing.T, r interface{ ReadInt32() (int32, error) }, dec *SequenceDecoder[K, V]) {
	t.Helper()

	require.NoError(t, dec.SkipRest())
	v, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, sentinel, v)
}

func TestDecoder_PartialConsumption(t *testing.T) {
	pairs, open := writeWords(t)
	_, dec := open(t)

	require.Equal(t, 4, dec.Count())

	for k, v := range dec.All() {
		require.Equal(t, pairs[0].Key, k)
		require.Equal(t, pairs[0].Value, v)
		break
	}

	require.Equal(t, 1, dec.Consumed())
	require.Equal(t, 3, dec.Remaining())

	p, ok := dec.Next()
	require.True(t, ok)
	require.Equal(t, pairs[1], p)
	require.NoError(t, dec.Err())
}

func TestDecoder_ExhaustedThenSkip(t *testing.T) {
	pairs, open := writeWords(t)
	_, dec := open(t)

	got, err := dec.Collect()
	require.NoError(t, err)
	require.Equal(t, pairs, got)

	_, ok := dec.Next()
	require.False(t, ok)
	require.Zero(t, dec.Remaining())
}

func TestDecoder_ReplayFromMark(t *testing.T) {
	pairs, _ := writeWords(t)

	buf, w, r := newPair(t)
	require.NoError(t, WriteSequence(w, SequenceGuard(), Int32, Text, pairs))
	rewind(t, buf)

	mark, err := stream.Save(buf)
	require.NoError(t, err)

	dec, err := OpenSequence(r, SequenceGuard(), Int32, Text)
	require.NoError(t, err)
	first, ok := dec.Next()
	require.True(t, ok)
	require.NoError(t, dec.SkipRest())

	require.NoError(t, mark.Restore())
	dec, err = OpenSequence(r, SequenceGuard(), Int32, Text)
	require.NoError(t, err)
	all, err := dec.Collect()
	require.NoError(t, err)
	require.Equal(t, first, all[0])
	require.Equal(t, pairs, all)
}

func TestDecoder_SkipRestFixed(t *testing.T) {
	buf, w, r := newPair(t)
	pairs := []Pair[uint32, float64]{MakePair(uint32(1), 1.5), MakePair(uint32(2), 2.5), MakePair(uint32(3), 3.5)}
	require.NoError(t, WriteSequence(w, Unguarded, Uint32, Float64, pairs))
	require.NoError(t, w.WriteInt32(sentinel))

	rewind(t, buf)
	dec, err := OpenSequence(r, Unguarded, Uint32, Float64)
	require.NoError(t, err)

	p, ok := dec.Next()
	require.True(t, ok)
	require.Equal(t, pairs[0], p)

	require.NoError(t, dec.SkipRest())
	require.Equal(t, 3, dec.Consumed())
	requireSentinel(t, r)
}

func TestDecoder_ErrorEndsSequence(t *testing.T) {
	r := newReaderOn(t, concat(le32(3), le32(1), le32(1), []byte("a"), le32(2)))

	dec, err := OpenSequence(r, Unguarded, Int32, Text)
	require.NoError(t, err)

	_, ok := dec.Next()
	require.True(t, ok)
	_, ok = dec.Next()
	require.False(t, ok)
	require.ErrorIs(t, dec.Err(), errs.ErrTruncatedData)
	require.ErrorContains(t, dec.Err(), "decode element 1 value")

	_, ok = dec.Next()
	require.False(t, ok)
	require.ErrorIs(t, dec.SkipRest(), errs.ErrTruncatedData)

	_, err = dec.Collect()
	require.Error(t, err)
}

func TestDecoder_Uncounted(t *testing.T) {
	pairs := []Pair[int32, string]{MakePair(int32(1), "a"), MakePair(int32(2), "bb")}

	t.Run("round trip", func(t *testing.T) {
		buf, w, r := newPair(t)
		require.NoError(t, WriteUncountedSequence(w, Int32, Text, pairs))
		require.Equal(t, concat(le32(1), le32(1), []byte("a"), le32(2), le32(2), []byte("bb")), buf.Bytes())

		rewind(t, buf)
		dec, err := OpenUncountedSequence(r, Int32, Text)
		require.NoError(t, err)
		require.Equal(t, -1, dec.Count())
		require.Equal(t, -1, dec.Remaining())

		got, err := dec.Collect()
		require.NoError(t, err)
		require.Equal(t, pairs, got)
	})

	t.Run("empty stream", func(t *testing.T) {
		r := newReaderOn(t, nil)
		dec, err := OpenUncountedSequence(r, Int32, Text)
		require.NoError(t, err)

		got, err := dec.Collect()
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("truncated trailing element", func(t *testing.T) {
		buf, w, r := newPair(t)
		require.NoError(t, WriteUncountedSequence(w, Int32, Text, pairs))
		require.NoError(t, w.WriteRaw([]byte{9, 0}))

		rewind(t, buf)
		dec, err := OpenUncountedSequence(r, Int32, Text)
		require.NoError(t, err)

		n := 0
		for range dec.All() {
			n++
		}
		require.Equal(t, 2, n)
		require.ErrorIs(t, dec.Err(), errs.ErrTruncatedData)
	})

	t.Run("skip rest", func(t *testing.T) {
		buf, w, r := newPair(t)
		require.NoError(t, WriteUncountedSequence(w, Int32, Text, pairs))

		rewind(t, buf)
		dec, err := OpenUncountedSequence(r, Int32, Text)
		require.NoError(t, err)
		_, ok := dec.Next()
		require.True(t, ok)
		require.NoError(t, dec.SkipRest())

		rem, err := r.Remaining()
		require.NoError(t, err)
		require.Zero(t, rem)
	})
}
