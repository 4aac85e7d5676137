package bi5

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"duka-data/internal/model"
	"github.com/stretchr/testify/require"
)

var hour = time.Date(2024, 1, 8, 3, 0, 0, 0, time.UTC)

func TestDecode_Empty(t *testing.T) {
	ticks, err := Decode(nil, hour)
	require.NoError(t, err)
	require.Empty(t, ticks)

	ticks, err = Decode([]byte{}, hour)
	require.NoError(t, err)
	require.Empty(t, ticks)
}

func TestDecode_MalformedLength(t *testing.T) {
	for _, n := range []int{1, 19, 21, 39} {
		_, err := Decode(make([]byte, n), hour)
		require.Error(t, err, "length %d", n)
		require.True(t, errors.Is(err, ErrMalformedRecord), "length %d", n)

		var recErr *RecordError
		require.True(t, errors.As(err, &recErr))
		require.Equal(t, n, recErr.Length)
		require.Equal(t, hour, recErr.Hour)
	}
}

func TestDecode_BigEndianLayout(t *testing.T) {
	raw := make([]byte, RecordSize)
	binary.BigEndian.PutUint32(raw[0:4], 500)
	binary.BigEndian.PutUint32(raw[4:8], 110020)
	binary.BigEndian.PutUint32(raw[8:12], 110000)
	binary.BigEndian.PutUint32(raw[12:16], math.Float32bits(1.5))
	binary.BigEndian.PutUint32(raw[16:20], math.Float32bits(2.25))

	ticks, err := Decode(raw, hour)
	require.NoError(t, err)
	require.Len(t, ticks, 1)

	tk := ticks[0]
	require.Equal(t, hour.Add(500*time.Millisecond), tk.Time)
	require.Equal(t, int32(110020), tk.Ask)
	require.Equal(t, int32(110000), tk.Bid)
	require.Equal(t, float32(1.5), tk.AskVolume)
	require.Equal(t, float32(2.25), tk.BidVolume)
	require.Equal(t, "1.1", tk.BidPrice().String())
}

func TestDecode_KeepsFileOrder(t *testing.T) {
	in := []model.Tick{
		{Time: hour.Add(900 * time.Millisecond), Bid: 3},
		{Time: hour.Add(100 * time.Millisecond), Bid: 1},
		{Time: hour.Add(500 * time.Millisecond), Bid: 2},
	}
	out, err := Decode(Encode(in, hour), hour)
	require.NoError(t, err)
	require.Equal(t, []int32{3, 1, 2}, []int32{out[0].Bid, out[1].Bid, out[2].Bid})
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := []model.Tick{
		{Time: hour, Ask: 110005, Bid: 110000, AskVolume: 0.75, BidVolume: 1},
		{Time: hour.Add(3599999 * time.Millisecond), Ask: math.MaxInt32, Bid: math.MinInt32, AskVolume: 1e-7, BidVolume: 3.4e38},
		{Time: hour.Add(42 * time.Millisecond), Ask: -1, Bid: 0, AskVolume: float32(math.Inf(1)), BidVolume: 0.1},
	}
	raw := Encode(in, hour)
	require.Len(t, raw, len(in)*RecordSize)

	out, err := Decode(raw, hour)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		require.True(t, in[i].Time.Equal(out[i].Time), "tick %d time", i)
		require.Equal(t, in[i].Ask, out[i].Ask, "tick %d ask", i)
		require.Equal(t, in[i].Bid, out[i].Bid, "tick %d bid", i)
		require.Equal(t, math.Float32bits(in[i].AskVolume), math.Float32bits(out[i].AskVolume), "tick %d ask volume", i)
		require.Equal(t, math.Float32bits(in[i].BidVolume), math.Float32bits(out[i].BidVolume), "tick %d bid volume", i)
	}
}

func TestDecode_NonUTCHourBase(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	base := time.Date(2024, 1, 8, 4, 0, 0, 0, loc)
	ticks, err := Decode(Encode([]model.Tick{{Time: base.Add(time.Second)}}, base), base)
	require.NoError(t, err)
	require.Equal(t, time.UTC, ticks[0].Time.Location())
	require.Equal(t, time.Date(2024, 1, 8, 3, 0, 1, 0, time.UTC), ticks[0].Time)
}
