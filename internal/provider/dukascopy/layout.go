package dukascopy

import (
	"fmt"
	"time"
)

// HourPath returns the datafeed-relative path of an hour file:
// {ASSET}/{YYYY}/{MM}/{DD}/{HH}h_ticks.bi5 where MM is zero-based (January is 00).
// The same layout is used for the URL and for the on-disk cache.
func HourPath(asset string, hour time.Time) string {
	h := hour.UTC()
	return fmt.Sprintf("%s/%d/%02d/%02d/%02dh_ticks.bi5", asset, h.Year(), int(h.Month())-1, h.Day(), h.Hour())
}

// HourRange returns every hour from start to end inclusive, stepping one hour.
// start is truncated to the hour.
func HourRange(start, end time.Time) []time.Time {
	start = start.UTC().Truncate(time.Hour)
	end = end.UTC()
	if start.After(end) {
		return nil
	}
	hours := make([]time.Time, 0, int(end.Sub(start)/time.Hour)+1)
	for h := start; !h.After(end); h = h.Add(time.Hour) {
		hours = append(hours, h)
	}
	return hours
}
