package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// PriceScale is the factor between a scaled integer price and its decimal value.
	PriceScale = 100000
	// PriceExp is the decimal exponent matching PriceScale.
	PriceExp = -5
)

// Tick is one decoded quote. Prices are kept as integers scaled by PriceScale
// until a bar is emitted.
type Tick struct {
	Time      time.Time
	Ask       int32
	Bid       int32
	AskVolume float32
	BidVolume float32
}

// Price converts a scaled integer price to its decimal value.
func Price(scaled int64) decimal.Decimal {
	return decimal.New(scaled, PriceExp)
}

func (t Tick) AskPrice() decimal.Decimal { return Price(int64(t.Ask)) }

func (t Tick) BidPrice() decimal.Decimal { return Price(int64(t.Bid)) }
