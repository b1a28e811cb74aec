// Package valuation prices a portfolio against a market snapshot.
// Every function is pure.
package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/zappabad/investly/internal/market"
	"github.com/zappabad/investly/internal/portfolio"
)

// HoldingsValue is the sum of quantity * current price over all holdings.
// Symbols missing from u contribute zero.
func HoldingsValue(u market.Universe, p portfolio.Portfolio) decimal.Decimal {
	total := decimal.Zero
	for _, h := range p.Holdings {
		inst, ok := u.Get(h.Symbol)
		if !ok {
			continue
		}
		total = total.Add(inst.CurrentPrice.Mul(decimal.NewFromInt(h.Quantity)))
	}
	return total.Round(2)
}

// NetWorth is cash plus HoldingsValue.
func NetWorth(u market.Universe, p portfolio.Portfolio) decimal.Decimal {
	return p.CashBalance.Add(HoldingsValue(u, p)).Round(2)
}

// CostBasis is the cost basis of all holdings (quantity * avg price).
func CostBasis(p portfolio.Portfolio) decimal.Decimal {
	total := decimal.Zero
	for _, h := range p.Holdings {
		total = total.Add(h.AvgPrice.Mul(decimal.NewFromInt(h.Quantity)))
	}
	return total.Round(2)
}
