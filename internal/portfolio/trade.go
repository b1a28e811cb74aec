package portfolio

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zappabad/investly/internal/market"
)

var (
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrUnknownSymbol      = market.ErrUnknownSymbol
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrInvalidSide        = errors.New("invalid side")
)

// Apply executes o against p at the prices in u and returns the resulting
// portfolio. On error p is returned unchanged; the receiver's holdings slice
// is never written.
func Apply(p Portfolio, u market.Universe, o Order) (Portfolio, error) {
	if o.Quantity <= 0 {
		return p, ErrInvalidQuantity
	}
	inst, ok := u.Get(o.Symbol)
	if !ok {
		return p, fmt.Errorf("%w: %s", ErrUnknownSymbol, o.Symbol)
	}

	qty := decimal.NewFromInt(o.Quantity)
	amount := inst.CurrentPrice.Mul(qty)

	switch o.Side {
	case SideBuy:
		return buy(p, inst, o.Quantity, amount)
	case SideSell:
		return sell(p, o.Symbol, o.Quantity, amount)
	default:
		return p, fmt.Errorf("%w: %q", ErrInvalidSide, o.Side)
	}
}

func buy(p Portfolio, inst market.Instrument, qty int64, cost decimal.Decimal) (Portfolio, error) {
	if cost.GreaterThan(p.CashBalance) {
		return p, fmt.Errorf("%w: need %s, have %s", ErrInsufficientFunds, cost.StringFixed(2), p.CashBalance.StringFixed(2))
	}

	next := p.Clone()
	next.CashBalance = next.CashBalance.Sub(cost).Round(2)

	if i := next.index(inst.Symbol); i >= 0 {
		h := next.Holdings[i]
		total := h.Quantity + qty
		h.AvgPrice = h.AvgPrice.Mul(decimal.NewFromInt(h.Quantity)).
			Add(cost).
			Div(decimal.NewFromInt(total)).
			Round(2)
		h.Quantity = total
		next.Holdings[i] = h
		return next, nil
	}

	next.Holdings = append(next.Holdings, Holding{
		Symbol:   inst.Symbol,
		Name:     inst.Name,
		Quantity: qty,
		AvgPrice: inst.CurrentPrice,
	})
	return next, nil
}

func sell(p Portfolio, symbol string, qty int64, proceeds decimal.Decimal) (Portfolio, error) {
	i := p.index(symbol)
	if i < 0 {
		return p, fmt.Errorf("%w: no position in %s", ErrInsufficientShares, symbol)
	}
	if p.Holdings[i].Quantity < qty {
		return p, fmt.Errorf("%w: hold %d %s, want %d", ErrInsufficientShares, p.Holdings[i].Quantity, symbol, qty)
	}

	next := p.Clone()
	next.CashBalance = next.CashBalance.Add(proceeds).Round(2)

	remaining := next.Holdings[i].Quantity - qty
	if remaining == 0 {
		next.Holdings = append(next.Holdings[:i], next.Holdings[i+1:]...)
		return next, nil
	}
	next.Holdings[i].Quantity = remaining
	return next, nil
}
