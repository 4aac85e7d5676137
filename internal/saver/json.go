package saver

import (
	"encoding/json"
	"os"

	"duka-data/internal/model"
)

// JSONSaver writes bars as an indented JSON array.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(bars []model.Bar, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	rows := make([]jsonRow, len(bars))
	for i, b := range bars {
		rows[i] = jsonRow{
			Date:   b.Date.UTC().Format(DateLayout),
			Open:   json.Number(b.Open.StringFixed(priceDigits)),
			High:   json.Number(b.High.StringFixed(priceDigits)),
			Low:    json.Number(b.Low.StringFixed(priceDigits)),
			Close:  json.Number(b.Close.StringFixed(priceDigits)),
			Volume: b.Volume,
		}
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return f.Close()
}

type jsonRow struct {
	Date   string      `json:"date"`
	Open   json.Number `json:"open"`
	High   json.Number `json:"high"`
	Low    json.Number `json:"low"`
	Close  json.Number `json:"close"`
	Volume float32     `json:"vol"`
}
