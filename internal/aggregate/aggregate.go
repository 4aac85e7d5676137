// Package aggregate builds OHLCV bars from an ordered tick sequence.
//
// Only the bid side is used: open, high, low and close come from the bid price and
// volume is the sum of bid volumes. Volumes are summed as float32, the precision the
// source data carries.
package aggregate

import (
	"time"

	"duka-data/internal/model"
	"duka-data/internal/timeframe"
)

// Aggregate partitions ticks according to spec and returns one bar per non-empty bucket.
//
// Tick specs group consecutive runs of Count ticks; a final short group is still emitted and
// each bar is dated at its first tick. Duration specs assign ticks to epoch-anchored buckets;
// bars are dated at the bucket's left edge and buckets without ticks are omitted.
//
// Ticks must already be in time order; the input is walked once and never sorted.
func Aggregate(ticks []model.Tick, spec timeframe.Spec) []model.Bar {
	if len(ticks) == 0 {
		return []model.Bar{}
	}
	if spec.Kind == timeframe.Ticks {
		return byCount(ticks, spec.Count)
	}
	return byDuration(ticks, spec)
}

func byCount(ticks []model.Tick, n int) []model.Bar {
	if n <= 0 {
		n = 1
	}
	// a group larger than the input is one short group
	if n > len(ticks) {
		n = len(ticks)
	}
	bars := make([]model.Bar, 0, (len(ticks)+n-1)/n)
	for start := 0; start < len(ticks); start += n {
		end := start + n
		if end > len(ticks) {
			end = len(ticks)
		}
		var acc bucket
		for _, t := range ticks[start:end] {
			acc.add(t)
		}
		bars = append(bars, acc.bar(ticks[start].Time))
	}
	return bars
}

func byDuration(ticks []model.Tick, spec timeframe.Spec) []model.Bar {
	bars := make([]model.Bar, 0)
	var (
		acc    bucket
		cursor time.Time
	)
	for _, t := range ticks {
		key := spec.BucketStart(t.Time)
		if acc.n > 0 && !key.Equal(cursor) {
			bars = append(bars, acc.bar(cursor))
			acc = bucket{}
		}
		if acc.n == 0 {
			cursor = key
		}
		acc.add(t)
	}
	if acc.n > 0 {
		bars = append(bars, acc.bar(cursor))
	}
	return bars
}

// bucket accumulates scaled bid prices. Ordering scaled integers is the same as
// ordering their decimal values, so conversion waits until bar().
type bucket struct {
	n                      int
	open, high, low, close int32
	vol                    float32
}

func (b *bucket) add(t model.Tick) {
	if b.n == 0 {
		b.open, b.high, b.low = t.Bid, t.Bid, t.Bid
	}
	if t.Bid > b.high {
		b.high = t.Bid
	}
	if t.Bid < b.low {
		b.low = t.Bid
	}
	b.close = t.Bid
	b.vol += t.BidVolume
	b.n++
}

func (b *bucket) bar(date time.Time) model.Bar {
	return model.Bar{
		Date:   date,
		Open:   model.Price(int64(b.open)),
		High:   model.Price(int64(b.high)),
		Low:    model.Price(int64(b.low)),
		Close:  model.Price(int64(b.close)),
		Volume: b.vol,
	}
}
