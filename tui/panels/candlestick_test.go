package panels

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/investly/internal/market"
)

func TestRecordBuildsOneCandlePerTurn(t *testing.T) {
	before := market.DefaultUniverse()
	after := before.Map(func(inst market.Instrument) market.Instrument {
		if inst.Symbol == "AAPL" {
			inst.CurrentPrice = decimal.RequireFromString("171.00")
		}
		return inst
	})

	p := NewCandlestickPanel()
	p.SetSymbol("AAPL")
	p.Record(1, before, after)
	p.Record(2, after, after)

	candles := p.Candles()
	require.Len(t, candles, 2)

	c := candles[0]
	assert.Equal(t, 1, c.Day)
	assert.True(t, c.Open.Equal(decimal.NewFromInt(180)))
	assert.True(t, c.Close.Equal(decimal.NewFromInt(171)))
	assert.True(t, c.High.Equal(c.Open))
	assert.True(t, c.Low.Equal(c.Close))
	assert.False(t, c.Up())
	assert.True(t, candles[1].Up(), "flat candle counts as up")

	p.SetSymbol("KO")
	assert.Len(t, p.Candles(), 2, "history is kept for every symbol")
}

func TestRecordCapsHistory(t *testing.T) {
	u := market.DefaultUniverse()
	p := NewCandlestickPanel()
	p.SetSymbol("KO")

	for day := 1; day <= p.maxCandles+5; day++ {
		p.Record(day, u, u)
	}

	candles := p.Candles()
	require.Len(t, candles, p.maxCandles)
	assert.Equal(t, 6, candles[0].Day)
}

func TestViewRendersWithoutHistory(t *testing.T) {
	p := NewCandlestickPanel()
	p.SetSize(60, 20)
	assert.Contains(t, p.View(), "No turns played yet")
}
