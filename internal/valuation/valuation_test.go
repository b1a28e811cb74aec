package valuation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zappabad/investly/internal/market"
	"github.com/zappabad/investly/internal/portfolio"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestValuation(t *testing.T) {
	u := market.DefaultUniverse()
	p := portfolio.Portfolio{
		CashBalance: dec("100.50"),
		Holdings: []portfolio.Holding{
			{Symbol: "AAPL", Quantity: 10, AvgPrice: dec("170")},
			{Symbol: "KO", Quantity: 3, AvgPrice: dec("59.99")},
			{Symbol: "DELISTED", Quantity: 4, AvgPrice: dec("12.5")},
		},
	}

	assert.True(t, HoldingsValue(u, p).Equal(dec("1980")), "holdings %s", HoldingsValue(u, p))
	assert.True(t, NetWorth(u, p).Equal(dec("2080.50")))
	// 1700 + 179.97 + 50
	assert.True(t, CostBasis(p).Equal(dec("1929.97")))
}

func TestNetWorthIsIdempotent(t *testing.T) {
	u := market.DefaultUniverse()
	p := portfolio.Portfolio{
		CashBalance: dec("42"),
		Holdings:    []portfolio.Holding{{Symbol: "MSFT", Quantity: 2, AvgPrice: dec("400")}},
	}

	first := NetWorth(u, p)
	second := NetWorth(u, p)
	assert.True(t, first.Equal(second))
	assert.True(t, first.Equal(dec("842")))
}

func TestEmptyPortfolio(t *testing.T) {
	p := portfolio.New(dec("10000"))
	assert.True(t, HoldingsValue(market.DefaultUniverse(), p).IsZero())
	assert.True(t, NetWorth(market.DefaultUniverse(), p).Equal(dec("10000")))
	assert.True(t, CostBasis(p).IsZero())
}
