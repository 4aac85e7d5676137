package bi5

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMalformedRecord reports a decompressed payload whose length is not a multiple of RecordSize.
	ErrMalformedRecord = errors.New("bi5: malformed record")
	// ErrDecompression reports a corrupt or truncated LZMA stream.
	ErrDecompression = errors.New("bi5: decompression failed")
)

// RecordError describes a payload that cannot be split into whole records.
type RecordError struct {
	Hour   time.Time
	Length int
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%v: hour %s: %d bytes is not a multiple of %d",
		ErrMalformedRecord, e.Hour.UTC().Format("2006-01-02T15"), e.Length, RecordSize)
}

func (e *RecordError) Unwrap() error { return ErrMalformedRecord }
