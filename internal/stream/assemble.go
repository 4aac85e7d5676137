// Package stream joins decoded hours into one asset-wide tick sequence.
package stream

import (
	"fmt"
	"time"

	"duka-data/internal/bi5"
	"duka-data/internal/model"
)

// Hour is one hour of decompressed payload. Present is false when the hour file
// was not available.
type Hour struct {
	Time    time.Time
	Payload []byte
	Present bool
}

// Assemble decodes hours in the order given and concatenates their ticks.
// Missing and empty hours are skipped. A malformed hour fails the whole call and
// no ticks are returned. Ticks are never reordered across hours.
func Assemble(hours []Hour) ([]model.Tick, error) {
	var total int
	for _, h := range hours {
		if h.Present {
			total += len(h.Payload) / bi5.RecordSize
		}
	}
	ticks := make([]model.Tick, 0, total)
	for _, h := range hours {
		if !h.Present || len(h.Payload) == 0 {
			continue
		}
		decoded, err := bi5.Decode(h.Payload, h.Time)
		if err != nil {
			return nil, fmt.Errorf("assemble: %w", err)
		}
		ticks = append(ticks, decoded...)
	}
	return ticks, nil
}
