package saver

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"duka-data/internal/model"
)

// priceDigits matches the five fractional digits of the source prices.
const priceDigits = 5

// CSVSaver writes bars as CSV (header: date,open,high,low,close,vol).
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(bars []model.Bar, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)

	if err := w.Write([]string{"date", "open", "high", "low", "close", "vol"}); err != nil {
		return err
	}
	for _, b := range bars {
		if err := w.Write([]string{
			b.Date.UTC().Format(DateLayout),
			b.Open.StringFixed(priceDigits),
			b.High.StringFixed(priceDigits),
			b.Low.StringFixed(priceDigits),
			b.Close.StringFixed(priceDigits),
			volumeStr(b.Volume),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// volumeStr prints the shortest float32 form, always with a fractional part ("3" -> "3.0").
func volumeStr(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
