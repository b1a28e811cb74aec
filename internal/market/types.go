package market

import "github.com/shopspring/decimal"

// Exchange identifies the venue an instrument is listed on.
type Exchange string

const (
	ExchangeBIST   Exchange = "BIST"
	ExchangeNASDAQ Exchange = "NASDAQ"
	ExchangeNYSE   Exchange = "NYSE"
	ExchangeGlobal Exchange = "GLOBAL"
	ExchangeOther  Exchange = "OTHER"
)

// Valid reports whether e is a known exchange.
func (e Exchange) Valid() bool {
	switch e {
	case ExchangeBIST, ExchangeNASDAQ, ExchangeNYSE, ExchangeGlobal, ExchangeOther:
		return true
	default:
		return false
	}
}

// PriceDecimals is the monetary precision every stored price is rounded to.
const PriceDecimals int32 = 2

// Instrument represents a tradeable asset.
// Symbol never changes once created; only CurrentPrice and ChangePercent move.
type Instrument struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Market        Exchange        `json:"market"`
	Sector        string          `json:"sector"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	ChangePercent decimal.Decimal `json:"changePercent"` // fraction, 0.02 = 2%
}

// RoundPrice rounds a monetary amount to PriceDecimals.
func RoundPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(PriceDecimals)
}
