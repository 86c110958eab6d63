package frame

import (
	"iter"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tonyriverms/streamcodec/encoding"
	"github.com/tonyriverms/streamcodec/errs"
	"github.com/tonyriverms/streamcodec/format"
)

func TestSequence_ExactLayout(t *testing.T) {
	buf, w, _ := newPair(t)

	pairs := []Pair[int32, string]{MakePair(int32(1), "a"), MakePair(int32(2), "bc")}
	require.NoError(t, WriteSequence(w, SequenceGuard(), Int32, Text, pairs))

	code := format.SequenceCheckCode
	want := concat(
		code[:],
		le32(2),
		le32(1), le32(1), []byte("a"),
		le32(2), le32(2), []byte("bc"),
	)
	require.Equal(t, want, buf.Bytes())
}

func TestSequence_EndToEnd(t *testing.T) {
	buf, w, r := newPair(t)
	magic := format.CheckCodeOf("test/end-to-end")

	pairs := []Pair[int32, string]{MakePair(int32(7), "x"), MakePair(int32(9), "")}
	require.NoError(t, WriteSequence(w, Guarded(magic), Int32, Text, pairs))

	want := concat(magic[:], le32(2), le32(7), le32(1), []byte("x"), le32(9), le32(0))
	require.Equal(t, want, buf.Bytes())

	rewind(t, buf)
	got, err := ReadSequence(r, Guarded(magic), Int32, Text)
	require.NoError(t, err)
	require.Equal(t, pairs, got)

	rewind(t, buf)
	got, err = ReadSequence(r, Guarded(format.CheckCodeOf("test/other")), Int32, Text)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSequence_NullAndEmptyCollapse(t *testing.T) {
	for _, pairs := range [][]Pair[int32, string]{nil, {}} {
		buf, w, r := newPair(t)

		require.NoError(t, WriteSequence(w, Unguarded, Int32, Text, pairs))
		require.Equal(t, le32(0), buf.Bytes())

		rewind(t, buf)
		got, err := ReadSequence(r, Unguarded, Int32, Text)
		require.NoError(t, err)
		require.Nil(t, got)
	}
}

func TestSequence_PreservesOrderAndDuplicates(t *testing.T) {
	buf, w, r := newPair(t)

	pairs := []Pair[int32, string]{
		MakePair(int32(1), "a"),
		MakePair(int32(2), "b"),
		MakePair(int32(1), "c"),
	}
	require.NoError(t, WriteSequence(w, SequenceGuard(), Int32, Text, pairs))
	require.NoError(t, WriteSequence(w, SequenceGuard(), Int32, Text, pairs))

	rewind(t, buf)
	got, err := ReadSequence(r, SequenceGuard(), Int32, Text)
	require.NoError(t, err)
	require.Equal(t, pairs, got)

	m, err := ReadMap(r, SequenceGuard(), Int32, Text)
	require.NoError(t, err)
	require.Equal(t, map[int32]string{1: "c", 2: "b"}, m)
}

func TestSequence_KindCombinations(t *testing.T) {
	t.Run("float64 to timestamp", func(t *testing.T) {
		buf, w, r := newPair(t, encoding.WithBigEndian())
		pairs := []Pair[float64, time.Time]{
			MakePair(math.Inf(-1), encoding.MinTimestamp),
			MakePair(0.5, time.UnixMicro(1_700_000_000_000_000).UTC()),
			MakePair(math.MaxFloat64, encoding.MaxTimestamp),
		}
		require.NoError(t, WriteSequence(w, SequenceGuard(), Float64, Timestamp, pairs))

		rewind(t, buf)
		got, err := ReadSequence(r, SequenceGuard(), Float64, Timestamp)
		require.NoError(t, err)
		require.Len(t, got, len(pairs))
		for i := range pairs {
			require.Equal(t, pairs[i].Key, got[i].Key)
			require.True(t, pairs[i].Value.Equal(got[i].Value))
		}
	})

	t.Run("text to bytes", func(t *testing.T) {
		buf, w, r := newPair(t)
		pairs := []Pair[string, []byte]{
			MakePair("", []byte{1, 2}),
			MakePair("nil", []byte(nil)),
			MakePair("empty", []byte{}),
		}
		require.NoError(t, WriteSequence(w, Unguarded, Text, Bytes, pairs))

		rewind(t, buf)
		got, err := ReadSequence(r, Unguarded, Text, Bytes)
		require.NoError(t, err)
		require.Equal(t, []Pair[string, []byte]{
			MakePair("", []byte{1, 2}),
			MakePair("nil", []byte(nil)),
			MakePair("empty", []byte(nil)),
		}, got)
	})

	t.Run("small integers", func(t *testing.T) {
		buf, w, r := newPair(t)
		pairs := []Pair[uint16, int8]{MakePair(uint16(math.MaxUint16), int8(math.MinInt8)), MakePair(uint16(0), int8(1))}
		require.NoError(t, WriteSequence(w, Unguarded, Uint16, Int8, pairs))
		require.Len(t, buf.Bytes(), 4+len(pairs)*3)

		rewind(t, buf)
		got, err := ReadSequence(r, Unguarded, Uint16, Int8)
		require.NoError(t, err)
		require.Equal(t, pairs, got)
	})

	t.Run("bool to uint64", func(t *testing.T) {
		buf, w, r := newPair(t)
		pairs := []Pair[bool, uint64]{MakePair(true, uint64(math.MaxUint64)), MakePair(false, uint64(0))}
		require.NoError(t, WriteSequence(w, Unguarded, Bool, Uint64, pairs))

		rewind(t, buf)
		got, err := ReadSequence(r, Unguarded, Bool, Uint64)
		require.NoError(t, err)
		require.Equal(t, pairs, got)
	})
}

func TestSequence_ValueKind(t *testing.T) {
	buf, w, r := newPair(t)

	kk := ValueOf(format.TagUint32)
	vk := ValueOf(format.TagText)
	pairs := []Pair[encoding.Value, encoding.Value]{
		MakePair(encoding.Uint32Value(7), encoding.TextValue("seven")),
	}
	require.NoError(t, WriteSequence(w, Unguarded, kk, vk, pairs))

	rewind(t, buf)
	got, err := ReadSequence(r, Unguarded, kk, vk)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.True(t, got[0].Key.Equal(pairs[0].Key))
	require.True(t, got[0].Value.Equal(pairs[0].Value))

	bad := []Pair[encoding.Value, encoding.Value]{MakePair(encoding.Int32Value(7), encoding.TextValue("x"))}
	err = WriteSequence(w, Unguarded, kk, vk, bad)
	require.ErrorIs(t, err, errs.ErrTagMismatch)
}

func TestSequence_GuardMismatch(t *testing.T) {
	write := func(t *testing.T, w *encoding.Writer) {
		t.Helper()
		pairs := []Pair[int32, int32]{MakePair(int32(1), int32(2))}
		require.NoError(t, WriteSequence(w, Guarded(format.CheckCodeOf("wrong")), Int32, Int32, pairs))
	}

	t.Run("lenient", func(t *testing.T) {
		buf, w, r := newPair(t)
		write(t, w)

		rewind(t, buf)
		got, err := ReadSequence(r, SequenceGuard(), Int32, Int32)
		require.NoError(t, err)
		require.Nil(t, got)

		pos, err := r.Position()
		require.NoError(t, err)
		require.Equal(t, int64(format.CheckCodeSize), pos)

		rewind(t, buf)
		dec, err := OpenSequence(r, SequenceGuard(), Int32, Int32)
		require.NoError(t, err)
		require.True(t, dec.GuardMismatch())
		require.Zero(t, dec.Count())
	})

	t.Run("strict", func(t *testing.T) {
		buf, w, r := newPair(t, encoding.WithStrictGuards())
		write(t, w)

		rewind(t, buf)
		_, err := ReadSequence(r, SequenceGuard(), Int32, Int32)
		require.ErrorIs(t, err, errs.ErrGuardMismatch)

		rewind(t, buf)
		require.ErrorIs(t, SkipSequence(r, SequenceGuard(), Int32, Int32), errs.ErrGuardMismatch)
	})
}

func TestSequence_NegativeCount(t *testing.T) {
	r := newReaderOn(t, le32(-3))

	_, err := ReadSequence(r, Unguarded, Int32, Int32)
	require.ErrorIs(t, err, errs.ErrCorruptData)
}

func TestSequence_TruncatedElement(t *testing.T) {
	data := concat(le32(2), le32(1), le32(1), []byte("a"), le32(2))
	r := newReaderOn(t, data)

	_, err := ReadSequence(r, Unguarded, Int32, Text)
	require.ErrorIs(t, err, errs.ErrTruncatedData)
	require.ErrorContains(t, err, "element 1 value")
}

func TestSequence_CountBeyondStream(t *testing.T) {
	huge := le32(0x7FFFFFFF)

	t.Run("variable kinds", func(t *testing.T) {
		r := newReaderOn(t, concat(huge, le32(1), le32(2)))
		_, err := ReadSequence(r, Unguarded, Text, Text)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})

	t.Run("variable kinds into map", func(t *testing.T) {
		r := newReaderOn(t, concat(huge, le32(1), le32(2)))
		_, err := ReadMap(r, Unguarded, Text, Text)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})

	t.Run("fixed kinds fail on open", func(t *testing.T) {
		r := newReaderOn(t, concat(huge, le32(1), le32(2)))
		_, err := OpenSequence(r, Unguarded, Int32, Int32)
		require.ErrorIs(t, err, errs.ErrTruncatedData)

		pos, err := r.Position()
		require.NoError(t, err)
		require.Equal(t, int64(4), pos, "elements must not be consumed")
	})

	t.Run("count with empty body", func(t *testing.T) {
		r := newReaderOn(t, le32(3))
		_, err := ReadMap(r, Unguarded, Text, Int32)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})
}

func TestSequence_SkipMatchesRead(t *testing.T) {
	t.Run("fixed", func(t *testing.T) {
		buf, w, r := newPair(t)
		pairs := []Pair[int64, float32]{MakePair(int64(1), float32(1)), MakePair(int64(2), float32(2))}
		require.NoError(t, WriteSequence(w, SequenceGuard(), Int64, Float32, pairs))
		require.NoError(t, w.WriteInt32(sentinel))

		rewind(t, buf)
		require.NoError(t, SkipSequence(r, SequenceGuard(), Int64, Float32))
		requireSentinel(t, r)
	})

	t.Run("variable", func(t *testing.T) {
		buf, w, r := newPair(t)
		pairs := []Pair[string, []byte]{MakePair("a", []byte("xyz")), MakePair("bb", []byte(nil))}
		require.NoError(t, WriteSequence(w, SequenceGuard(), Text, Bytes, pairs))
		require.NoError(t, w.WriteInt32(sentinel))

		rewind(t, buf)
		require.NoError(t, SkipSequence(r, SequenceGuard(), Text, Bytes))
		requireSentinel(t, r)
	})

	t.Run("empty", func(t *testing.T) {
		buf, w, r := newPair(t)
		require.NoError(t, WriteSequence[int32, int32](w, SequenceGuard(), Int32, Int32, nil))
		require.NoError(t, w.WriteInt32(sentinel))

		rewind(t, buf)
		require.NoError(t, SkipSequence(r, SequenceGuard(), Int32, Int32))
		requireSentinel(t, r)
	})

	t.Run("fixed truncated", func(t *testing.T) {
		r := newReaderOn(t, concat(le32(5), le32(1), le32(2)))
		require.ErrorIs(t, SkipSequence(r, Unguarded, Int32, Int32), errs.ErrTruncatedData)
	})
}

func TestWriteSequenceSeq(t *testing.T) {
	seq := func(n int) iter.Seq2[int32, int32] {
		return func(yield func(int32, int32) bool) {
			for i := range n {
				if !yield(int32(i), int32(i*i)) {
					return
				}
			}
		}
	}

	buf, w, r := newPair(t)
	require.NoError(t, WriteSequenceSeq(w, Unguarded, Int32, Int32, 3, seq(3)))

	rewind(t, buf)
	got, err := ReadSequence(r, Unguarded, Int32, Int32)
	require.NoError(t, err)
	require.Equal(t, []Pair[int32, int32]{MakePair(int32(0), int32(0)), MakePair(int32(1), int32(1)), MakePair(int32(2), int32(4))}, got)

	_, w, _ = newPair(t)
	require.ErrorIs(t, WriteSequenceSeq(w, Unguarded, Int32, Int32, 3, seq(2)), errs.ErrMixedSequence)
	require.ErrorIs(t, WriteSequenceSeq(w, Unguarded, Int32, Int32, 1, seq(2)), errs.ErrMixedSequence)
	require.ErrorIs(t, WriteSequenceSeq(w, Unguarded, Int32, Int32, 1, nil), errs.ErrMixedSequence)
	require.NoError(t, WriteSequenceSeq(w, Unguarded, Int32, Int32, 0, nil))
}

func TestMap_RoundTrip(t *testing.T) {
	buf, w, r := newPair(t)

	m := map[string]int64{"a": 1, "b": -2, "": 3}
	require.NoError(t, WriteMap(w, SequenceGuard(), Text, Int64, m))
	require.NoError(t, WriteMap[string, int64](w, SequenceGuard(), Text, Int64, nil))

	rewind(t, buf)
	got, err := ReadMap(r, SequenceGuard(), Text, Int64)
	require.NoError(t, err)
	require.Equal(t, m, got)

	got, err = ReadMap(r, SequenceGuard(), Text, Int64)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSequence_InvalidKind(t *testing.T) {
	_, w, r := newPair(t)
	bad := Kind[int]{Name: "bad"}

	require.ErrorIs(t, WriteSequence[int, int32](w, Unguarded, bad, Int32, nil), errs.ErrInvalidOption)
	_, err := ReadSequence(r, Unguarded, Int32, bad)
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}

func TestFixedSpan(t *testing.T) {
	span, ok := FixedSpan(Int32, Float64, 3)
	require.True(t, ok)
	require.Equal(t, int64(36), span)

	_, ok = FixedSpan(Int32, Text, 3)
	require.False(t, ok)
}
