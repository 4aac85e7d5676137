package provider

import (
	"context"
	"time"
)

// HourSource supplies raw .bi5 bytes for one asset-hour.
// ok is false when the hour is not available; that is never an error.
// err is reserved for failures of the source itself (disk, exhausted retries).
type HourSource interface {
	Fetch(ctx context.Context, asset string, hour time.Time) (raw []byte, ok bool, err error)
}

// HourWriter persists raw .bi5 bytes for one asset-hour.
type HourWriter interface {
	Write(asset string, hour time.Time, raw []byte) error
	Exists(asset string, hour time.Time) bool
}
