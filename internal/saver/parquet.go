package saver

import (
	"time"

	"github.com/parquet-go/parquet-go"

	"duka-data/internal/model"
)

// ParquetSaver writes bars as Parquet.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(bars []model.Bar, path string) error {
	rows := make([]ParquetRow, len(bars))
	for i, b := range bars {
		rows[i] = ParquetRow{
			Date:   b.Date.UTC(),
			Open:   b.Open.InexactFloat64(),
			High:   b.High.InexactFloat64(),
			Low:    b.Low.InexactFloat64(),
			Close:  b.Close.InexactFloat64(),
			Volume: b.Volume,
		}
	}
	return parquet.WriteFile(path, rows)
}

// ParquetRow is the on-disk Parquet schema. Prices are widened to float64 here;
// the CSV and JSON outputs keep the exact decimal.
type ParquetRow struct {
	Date   time.Time `parquet:"date,timestamp(millisecond)"`
	Open   float64   `parquet:"open"`
	High   float64   `parquet:"high"`
	Low    float64   `parquet:"low"`
	Close  float64   `parquet:"close"`
	Volume float32   `parquet:"vol"`
}
