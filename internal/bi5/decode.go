// Package bi5 reads Dukascopy hourly tick files.
//
// A decompressed hour is a flat run of 20-byte big-endian records with no header:
//
//	int32   milliseconds since the start of the hour
//	int32   ask price x 100000
//	int32   bid price x 100000
//	float32 ask volume
//	float32 bid volume
package bi5

import (
	"encoding/binary"
	"math"
	"time"

	"duka-data/internal/model"
)

// RecordSize is the size in bytes of one encoded tick.
const RecordSize = 20

// Decode parses one decompressed hour into ticks, in file order.
// hour is the start of the hour the payload belongs to. An empty payload yields no ticks.
func Decode(raw []byte, hour time.Time) ([]model.Tick, error) {
	if len(raw)%RecordSize != 0 {
		return nil, &RecordError{Hour: hour, Length: len(raw)}
	}
	n := len(raw) / RecordSize
	ticks := make([]model.Tick, 0, n)
	hour = hour.UTC()
	for off := 0; off < len(raw); off += RecordSize {
		rec := raw[off : off+RecordSize]
		ms := int32(binary.BigEndian.Uint32(rec[0:4]))
		ticks = append(ticks, model.Tick{
			Time:      hour.Add(time.Duration(ms) * time.Millisecond),
			Ask:       int32(binary.BigEndian.Uint32(rec[4:8])),
			Bid:       int32(binary.BigEndian.Uint32(rec[8:12])),
			AskVolume: math.Float32frombits(binary.BigEndian.Uint32(rec[12:16])),
			BidVolume: math.Float32frombits(binary.BigEndian.Uint32(rec[16:20])),
		})
	}
	return ticks, nil
}

// Encode writes ticks in the record layout Decode reads. Each tick's offset is taken
// relative to hour and truncated to whole milliseconds.
func Encode(ticks []model.Tick, hour time.Time) []byte {
	out := make([]byte, 0, len(ticks)*RecordSize)
	var rec [RecordSize]byte
	for _, t := range ticks {
		ms := int32(t.Time.Sub(hour) / time.Millisecond)
		binary.BigEndian.PutUint32(rec[0:4], uint32(ms))
		binary.BigEndian.PutUint32(rec[4:8], uint32(t.Ask))
		binary.BigEndian.PutUint32(rec[8:12], uint32(t.Bid))
		binary.BigEndian.PutUint32(rec[12:16], math.Float32bits(t.AskVolume))
		binary.BigEndian.PutUint32(rec[16:20], math.Float32bits(t.BidVolume))
		out = append(out, rec[:]...)
	}
	return out
}
