package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AffectedHolding is the end-of-day move of one position.
type AffectedHolding struct {
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	Quantity    int64           `json:"quantity"`
	PriceBefore decimal.Decimal `json:"priceBefore"`
	PriceAfter  decimal.Decimal `json:"priceAfter"`
	// ChangePercent is a percentage (5 = +5%), not a fraction.
	ChangePercent decimal.Decimal `json:"changePercent"`
	ChangeAmount  decimal.Decimal `json:"changeAmount"`
}

// DayResult summarizes an end-of-day turn.
type DayResult struct {
	ID                   uuid.UUID         `json:"id"`
	Day                  int               `json:"day"`
	Date                 time.Time         `json:"date"`
	ScenarioID           string            `json:"scenarioId"`
	ScenarioTitle        string            `json:"scenarioTitle"`
	ScenarioDescription  string            `json:"scenarioDescription"`
	ScenarioExplanation  string            `json:"scenarioExplanation"`
	PortfolioValueBefore decimal.Decimal   `json:"portfolioValueBefore"`
	PortfolioValueAfter  decimal.Decimal   `json:"portfolioValueAfter"`
	TotalChange          decimal.Decimal   `json:"totalChange"`
	AffectedHoldings     []AffectedHolding `json:"affectedHoldings"`
}
