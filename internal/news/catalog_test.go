package news

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zappabad/investly/internal/market"
)

func TestDefaultCatalogMatchesDefaultUniverse(t *testing.T) {
	c := DefaultCatalog()

	assert.Len(t, c.Hotshots, 12)
	for _, tier := range []AgeTier{TierLow, TierMid, TierHigh} {
		assert.Len(t, c.Scenarios[tier], 2, "tier %s", tier)
	}

	assert.Empty(t, c.Validate(market.DefaultUniverse()))
}

func TestScenariosForFallsBackToAdvanced(t *testing.T) {
	c := DefaultCatalog()
	delete(c.Scenarios, TierLow)

	got := c.ScenariosFor(TierLow)
	require.NotEmpty(t, got)
	assert.Equal(t, c.Scenarios[TierHigh], got)

	assert.Equal(t, c.Scenarios[TierMid], c.ScenariosFor(TierMid))
}

func TestValidateReportsUnknownSymbols(t *testing.T) {
	c := Catalog{
		Scenarios: map[AgeTier][]Event{
			TierHigh: {{ID: "s1", Impact: impact(map[string]float64{"AAPL": 0.01, "ZZZ": 0.2, "YYY": 0.1})}},
		},
		Hotshots: []Hotshot{
			{Event: Event{ID: "h1", Impact: impact(map[string]float64{"KO": 0.01})}},
		},
	}

	refs := c.Validate(market.DefaultUniverse())
	require.Len(t, refs, 1)
	assert.Equal(t, "s1", refs[0].EventID)
	assert.Equal(t, KindScenario, refs[0].Kind)
	assert.Equal(t, []string{"YYY", "ZZZ"}, refs[0].Symbols)
}

func TestImpactDelta(t *testing.T) {
	im := impact(map[string]float64{"AAPL": 0.05})

	assert.True(t, im.Delta("AAPL").Equal(decimal.RequireFromString("0.05")))
	assert.True(t, im.Delta("MSFT").IsZero())
}

func TestParseTier(t *testing.T) {
	tier, ok := ParseTier(" mid ")
	assert.True(t, ok)
	assert.Equal(t, TierMid, tier)

	_, ok = ParseTier("elementary")
	assert.False(t, ok)
}
