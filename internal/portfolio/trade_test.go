package portfolio

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/investly/internal/market"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func withPrice(u market.Universe, symbol, price string) market.Universe {
	return u.Map(func(inst market.Instrument) market.Instrument {
		if inst.Symbol == symbol {
			inst.CurrentPrice = dec(price)
		}
		return inst
	})
}

func TestBuyNewHolding(t *testing.T) {
	u := market.DefaultUniverse()
	p := New(dec("10000"))

	got, err := Apply(p, u, Order{Symbol: "AAPL", Quantity: 10, Side: SideBuy})
	require.NoError(t, err)

	assert.True(t, got.CashBalance.Equal(dec("8200")), "cash %s", got.CashBalance)
	h, ok := got.Holding("AAPL")
	require.True(t, ok)
	assert.Equal(t, int64(10), h.Quantity)
	assert.Equal(t, "Apple Inc.", h.Name)
	assert.True(t, h.AvgPrice.Equal(dec("180")))

	assert.True(t, p.CashBalance.Equal(dec("10000")), "input portfolio must not change")
	assert.Empty(t, p.Holdings)
}

func TestBuyAveragesPrice(t *testing.T) {
	u := market.DefaultUniverse()
	p := New(dec("10000"))

	p, err := Apply(p, u, Order{Symbol: "KO", Quantity: 3, Side: SideBuy})
	require.NoError(t, err)

	u = withPrice(u, "KO", "61.37")
	p, err = Apply(p, u, Order{Symbol: "KO", Quantity: 4, Side: SideBuy})
	require.NoError(t, err)

	h, _ := p.Holding("KO")
	assert.Equal(t, int64(7), h.Quantity)
	// (3*60 + 4*61.37) / 7 = 60.782857...
	assert.True(t, h.AvgPrice.Equal(dec("60.78")), "avg %s", h.AvgPrice)
	assert.True(t, p.CashBalance.Equal(dec("9574.52")), "cash %s", p.CashBalance)
}

func TestSellAllRemovesHolding(t *testing.T) {
	u := market.DefaultUniverse()
	p, err := Apply(New(dec("10000")), u, Order{Symbol: "AAPL", Quantity: 10, Side: SideBuy})
	require.NoError(t, err)

	u = withPrice(u, "AAPL", "189")
	p, err = Apply(p, u, Order{Symbol: "AAPL", Quantity: 10, Side: SideSell})
	require.NoError(t, err)

	assert.True(t, p.CashBalance.Equal(dec("10090")))
	_, ok := p.Holding("AAPL")
	assert.False(t, ok)
	assert.Empty(t, p.Holdings)
}

func TestPartialSellKeepsAvgPrice(t *testing.T) {
	u := market.DefaultUniverse()
	p, _ := Apply(New(dec("10000")), u, Order{Symbol: "DIS", Quantity: 5, Side: SideBuy})

	u = withPrice(u, "DIS", "95.5")
	p, err := Apply(p, u, Order{Symbol: "DIS", Quantity: 2, Side: SideSell})
	require.NoError(t, err)

	h, _ := p.Holding("DIS")
	assert.Equal(t, int64(3), h.Quantity)
	assert.True(t, h.AvgPrice.Equal(dec("90")))
}

func TestApplyRejections(t *testing.T) {
	u := withPrice(market.DefaultUniverse(), "AAPL", "189")
	base, err := Apply(New(dec("1000")), u, Order{Symbol: "KO", Quantity: 2, Side: SideBuy})
	require.NoError(t, err)

	tests := []struct {
		name    string
		order   Order
		wantErr error
	}{
		{"zero quantity", Order{Symbol: "KO", Quantity: 0, Side: SideBuy}, ErrInvalidQuantity},
		{"negative quantity", Order{Symbol: "KO", Quantity: -3, Side: SideSell}, ErrInvalidQuantity},
		{"unknown symbol", Order{Symbol: "NOPE", Quantity: 1, Side: SideBuy}, ErrUnknownSymbol},
		{"insufficient funds", Order{Symbol: "AAPL", Quantity: 5, Side: SideBuy}, ErrInsufficientFunds},
		{"no position", Order{Symbol: "MSFT", Quantity: 1, Side: SideSell}, ErrInsufficientShares},
		{"oversell", Order{Symbol: "KO", Quantity: 3, Side: SideSell}, ErrInsufficientShares},
		{"bad side", Order{Symbol: "KO", Quantity: 1, Side: "hold"}, ErrInvalidSide},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(base, u, tt.order)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, got.CashBalance.Equal(base.CashBalance))
			assert.Equal(t, base.Holdings, got.Holdings)
		})
	}
}

func TestBuyThenSellConservesNetWorth(t *testing.T) {
	u := market.DefaultUniverse()
	start := New(dec("5000"))

	p, err := Apply(start, u, Order{Symbol: "THYAO", Quantity: 7, Side: SideBuy})
	require.NoError(t, err)
	p, err = Apply(p, u, Order{Symbol: "THYAO", Quantity: 7, Side: SideSell})
	require.NoError(t, err)

	assert.True(t, p.CashBalance.Equal(start.CashBalance))
	assert.Empty(t, p.Holdings)
}

func TestRandomOrdersKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	u := market.DefaultUniverse()
	syms := u.Symbols()
	p := New(dec("10000"))

	for i := 0; i < 500; i++ {
		side := SideBuy
		if rng.Intn(2) == 0 {
			side = SideSell
		}
		o := Order{Symbol: syms[rng.Intn(len(syms))], Quantity: int64(rng.Intn(12)) - 1, Side: side}
		next, err := Apply(p, u, o)
		if err != nil {
			assert.Equal(t, p, next)
		}
		p = next

		require.False(t, p.CashBalance.IsNegative(), "step %d", i)
		for _, h := range p.Holdings {
			require.Positive(t, h.Quantity, "step %d %s", i, h.Symbol)
		}
	}
}

func TestParseSide(t *testing.T) {
	s, ok := ParseSide("SELL")
	assert.True(t, ok)
	assert.Equal(t, SideSell, s)

	_, ok = ParseSide("short")
	assert.False(t, ok)
}
