package encoding

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tonyriverms/streamcodec/format"
)

func TestValue_Accessors(t *testing.T) {
	require.Equal(t, int64(-5), Int8Value(-5).Int64())
	require.Equal(t, int64(-300), Int16Value(-300).Int64())
	require.Equal(t, int64(math.MinInt32), Int32Value(math.MinInt32).Int64())
	require.Equal(t, uint64(math.MaxUint32), Uint32Value(math.MaxUint32).Uint64())
	require.Equal(t, uint64(math.MaxUint64), Uint64Value(math.MaxUint64).Uint64())
	require.Equal(t, float32(1.5), Float32Value(1.5).Float32())
	require.Equal(t, 1.5, Float32Value(1.5).Float64())
	require.Equal(t, 2.25, Float64Value(2.25).Float64())
	require.Equal(t, float64(200), Uint8Value(200).Float64())
	require.Equal(t, int64(3), Float64Value(3.9).Int64())
	require.True(t, BoolValue(true).Bool())
	require.False(t, BoolValue(false).Bool())
	require.Equal(t, "hi", TextValue("hi").Text())

	ts := time.Date(2024, 2, 29, 12, 30, 0, 123456000, time.UTC)
	require.True(t, ts.Equal(TimestampValue(ts).Time()))
	require.Equal(t, ts.UnixMicro(), TimestampValue(ts).Micros())
	require.Equal(t, int64(-1), MicrosValue(-1).Micros())
}

func TestValue_TimestampDropsSubMicro(t *testing.T) {
	ts := time.Unix(0, 1999)
	require.Equal(t, int64(1), TimestampValue(ts).Micros())
}

func TestValue_Equal(t *testing.T) {
	nan1 := Float64Value(math.Float64frombits(0x7FF8000000000001))
	nan2 := Float64Value(math.Float64frombits(0x7FF8000000000002))

	require.True(t, nan1.Equal(nan1))
	require.False(t, nan1.Equal(nan2))
	require.False(t, Int32Value(1).Equal(Uint32Value(1)), "tags differ")
	require.False(t, Float64Value(0).Equal(Float64Value(math.Copysign(0, -1))), "signed zero differs")
	require.True(t, TextValue("a").Equal(TextValue("a")))
}

func TestValueFromBits(t *testing.T) {
	v, ok := ValueFromBits(format.TagInt16, 0xFFFF_FFFF)
	require.True(t, ok)
	require.Equal(t, uint64(0xFFFF), v.Bits())
	require.Equal(t, int64(-1), v.Int64())

	v, ok = ValueFromBits(format.TagUint64, math.MaxUint64)
	require.True(t, ok)
	require.Equal(t, uint64(math.MaxUint64), v.Uint64())

	_, ok = ValueFromBits(format.TagText, 1)
	require.False(t, ok)
}

func TestValue_AnyAndString(t *testing.T) {
	tests := []struct {
		value Value
		any   any
		str   string
	}{
		{BoolValue(true), true, "true"},
		{Int8Value(-1), int8(-1), "-1"},
		{Uint8Value(255), uint8(255), "255"},
		{Int16Value(-2), int16(-2), "-2"},
		{Uint16Value(2), uint16(2), "2"},
		{Int32Value(7), int32(7), "7"},
		{Uint32Value(8), uint32(8), "8"},
		{Int64Value(-9), int64(-9), "-9"},
		{Uint64Value(10), uint64(10), "10"},
		{Float32Value(0.5), float32(0.5), "0.5"},
		{Float64Value(1e300), 1e300, "1e+300"},
		{MicrosValue(0), time.Unix(0, 0).UTC(), "1970-01-01T00:00:00Z"},
		{TextValue("x"), "x", `"x"`},
		{Value{}, nil, "<invalid>"},
	}

	for _, tt := range tests {
		t.Run(tt.value.Tag().String(), func(t *testing.T) {
			require.Equal(t, tt.any, tt.value.Any())
			require.Equal(t, tt.str, tt.value.String())
		})
	}
}
