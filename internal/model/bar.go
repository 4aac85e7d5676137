package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar represents one OHLCV bar built from bid-side ticks.
// Date is the first tick's time for tick-count bars and the bucket's left edge for time bars.
type Bar struct {
	Date   time.Time       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume float32         `json:"vol"`
}
