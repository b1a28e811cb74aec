package portfolio

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// ParseSide parses "buy" or "sell", case-insensitively.
func ParseSide(s string) (Side, bool) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, true
	case SideSell:
		return SideSell, true
	default:
		return "", false
	}
}

func (s Side) String() string { return string(s) }

// Holding is a position in one instrument. Quantity is always positive;
// a position that reaches zero is removed from the portfolio.
type Holding struct {
	Symbol   string          `json:"symbol"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	AvgPrice decimal.Decimal `json:"avgPrice"`
}

// Portfolio is the player's cash and positions. Holdings keep the order in
// which symbols were first bought.
type Portfolio struct {
	CashBalance decimal.Decimal `json:"cashBalance"`
	Holdings    []Holding       `json:"holdings"`
}

// New returns an empty portfolio with the given cash.
func New(cash decimal.Decimal) Portfolio {
	return Portfolio{CashBalance: cash.Round(2), Holdings: []Holding{}}
}

// Clone returns a deep copy.
func (p Portfolio) Clone() Portfolio {
	out := Portfolio{CashBalance: p.CashBalance, Holdings: make([]Holding, len(p.Holdings))}
	copy(out.Holdings, p.Holdings)
	return out
}

// Holding returns the position for symbol.
func (p Portfolio) Holding(symbol string) (Holding, bool) {
	if i := p.index(symbol); i >= 0 {
		return p.Holdings[i], true
	}
	return Holding{}, false
}

func (p Portfolio) index(symbol string) int {
	for i, h := range p.Holdings {
		if h.Symbol == symbol {
			return i
		}
	}
	return -1
}

// Order is a request to buy or sell whole shares at the current price.
type Order struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
	Side     Side   `json:"side"`
}
