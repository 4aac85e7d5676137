package timeframe

import "time"

var (
	// dayAnchor puts day boundaries at 00:00 UTC.
	dayAnchor = time.Unix(0, 0).UTC()
	// weekAnchor is the first Monday after the Unix epoch; weeks start Monday 00:00 UTC.
	weekAnchor = time.Date(1970, 1, 5, 0, 0, 0, 0, time.UTC)
)

// BucketStart returns the left edge of the bucket containing t. Buckets are laid on a
// fixed grid anchored at the Unix epoch (weeks at the first Monday), never at the
// first tick. Only meaningful for Duration specs.
func (s Spec) BucketStart(t time.Time) time.Time {
	width := s.Width().Milliseconds()
	if width <= 0 {
		return t
	}
	anchor := dayAnchor
	if s.Unit == UnitWeek {
		anchor = weekAnchor
	}
	rel := t.UnixMilli() - anchor.UnixMilli()
	return time.UnixMilli(anchor.UnixMilli() + floorDiv(rel, width)*width).UTC()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
