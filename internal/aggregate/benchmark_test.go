package aggregate

import (
	"testing"
	"time"

	"duka-data/internal/model"
	"duka-data/internal/timeframe"
)

// one week of EURUSD-like activity, ~10 ticks per second
const benchTicks = 7 * 24 * 3600 * 10

func benchSeries() []model.Tick {
	ticks := make([]model.Tick, benchTicks)
	for i := range ticks {
		ticks[i] = model.Tick{
			Time:      base.Add(time.Duration(i) * 100 * time.Millisecond),
			Ask:       int32(110000 + i%37),
			Bid:       int32(109990 + i%41),
			AskVolume: 1.5,
			BidVolume: 0.75,
		}
	}
	return ticks
}

// BenchmarkAggregateDuration 1m bars over one week of ticks
func BenchmarkAggregateDuration(b *testing.B) {
	ticks := benchSeries()
	spec := timeframe.MustParse("1m")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Aggregate(ticks, spec)
	}
}

// BenchmarkAggregateTicks compares small and large tick buckets
func BenchmarkAggregateTicks(b *testing.B) {
	ticks := benchSeries()
	for _, expr := range []string{"1t", "100t", "10000t"} {
		spec := timeframe.MustParse(expr)
		b.Run(expr, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = Aggregate(ticks, spec)
			}
		})
	}
}
