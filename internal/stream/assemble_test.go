package stream

import (
	"errors"
	"testing"
	"time"

	"duka-data/internal/bi5"
	"duka-data/internal/model"
	"github.com/stretchr/testify/require"
)

var (
	h0 = time.Date(2024, 1, 8, 3, 0, 0, 0, time.UTC)
	h1 = h0.Add(time.Hour)
	h2 = h0.Add(2 * time.Hour)
)

func encodeHour(h time.Time, bids ...int32) []byte {
	ticks := make([]model.Tick, len(bids))
	for i, b := range bids {
		ticks[i] = model.Tick{Time: h.Add(time.Duration(i) * time.Second), Ask: b + 10, Bid: b, BidVolume: 1}
	}
	return bi5.Encode(ticks, h)
}

func TestAssemble_SkipsAbsentHours(t *testing.T) {
	a := encodeHour(h0, 110000, 110010)
	b := encodeHour(h2, 110020)

	got, err := Assemble([]Hour{
		{Time: h0, Payload: a, Present: true},
		{Time: h1},
		{Time: h2, Payload: b, Present: true},
	})
	require.NoError(t, err)

	wantA, err := bi5.Decode(a, h0)
	require.NoError(t, err)
	wantB, err := bi5.Decode(b, h2)
	require.NoError(t, err)
	require.Equal(t, append(wantA, wantB...), got)
}

func TestAssemble_SkipsEmptyHours(t *testing.T) {
	got, err := Assemble([]Hour{
		{Time: h0, Payload: []byte{}, Present: true},
		{Time: h1, Payload: encodeHour(h1, 1, 2, 3), Present: true},
		{Time: h2, Present: true},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestAssemble_NoHours(t *testing.T) {
	got, err := Assemble(nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestAssemble_MalformedHourFailsRun(t *testing.T) {
	cases := []struct {
		name  string
		hours []Hour
	}{
		{
			name: "malformed first",
			hours: []Hour{
				{Time: h0, Payload: make([]byte, 21), Present: true},
				{Time: h1, Payload: encodeHour(h1, 1), Present: true},
			},
		},
		{
			name: "malformed last",
			hours: []Hour{
				{Time: h0, Payload: encodeHour(h0, 1), Present: true},
				{Time: h1},
				{Time: h2, Payload: make([]byte, 21), Present: true},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Assemble(tc.hours)
			require.Error(t, err)
			require.True(t, errors.Is(err, bi5.ErrMalformedRecord))
			require.Nil(t, got)
		})
	}
}

func TestAssemble_PreservesHourOrder(t *testing.T) {
	// later hour supplied first: its ticks still come first
	got, err := Assemble([]Hour{
		{Time: h2, Payload: encodeHour(h2, 3), Present: true},
		{Time: h0, Payload: encodeHour(h0, 1), Present: true},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int32(3), got[0].Bid)
	require.Equal(t, int32(1), got[1].Bid)
}
