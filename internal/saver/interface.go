package saver

import (
	"strings"

	"duka-data/internal/model"
)

// BarSaver writes one asset's bars to a file.
// The export pipeline depends only on this interface; main picks the format.
type BarSaver interface {
	Save(bars []model.Bar, path string) error
	Extension() string
}

// NewBarSaver creates implementation by format (csv, parquet, json).
// Returns nil if format not supported.
func NewBarSaver(format string) BarSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}

// DateLayout renders bar dates in output files.
const DateLayout = "2006-01-02T15:04:05.000"
