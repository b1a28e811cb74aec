package app

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/investly/internal/config"
	"github.com/zappabad/investly/internal/market"
	"github.com/zappabad/investly/internal/news"
	"github.com/zappabad/investly/internal/portfolio"
	"github.com/zappabad/investly/internal/profile"
)

func TestNewWiresMemoryBackend(t *testing.T) {
	cfg := config.Defaults()
	cfg.Game.Seed = 1
	cfg.Game.AgeTier = "mid"

	a, err := New(context.Background(), &cfg, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, news.TierMid, a.Game.Tier())
	require.NoError(t, a.Game.Trade("KO", 10, portfolio.SideBuy))
	a.Close()

	saved, err := a.Store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, saved.Cash.Equal(decimal.NewFromInt(9400)))
	assert.True(t, saved.Invested.Equal(decimal.NewFromInt(600)))
}

func TestGameConfig(t *testing.T) {
	gc := GameConfig(config.GameConfig{StartingCash: 2500.555, AgeTier: "LOW", Noise: 0.05, HeadlineTape: 7, StrictCatalog: true})

	assert.True(t, gc.StartingCash.Equal(decimal.RequireFromString("2500.56")))
	assert.Equal(t, news.TierLow, gc.Tier)
	assert.True(t, gc.Repricer.Amplitude.Valid)
	assert.True(t, gc.Repricer.Amplitude.Decimal.Equal(decimal.RequireFromString("0.05")))
	assert.Equal(t, 7, gc.TapeSize)
	assert.True(t, gc.StrictCatalog)
}

func TestZeroNoiseGivesDeterministicScenarioTurns(t *testing.T) {
	cfg := config.Defaults()
	cfg.Game.Noise = 0
	require.NoError(t, cfg.Validate())

	a, err := NewWithStore(context.Background(), &cfg, profile.NewMemoryStore(), zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	before := a.Game.Universe()
	ev := a.Game.AdvanceWithScenario()
	after := a.Game.Universe()

	for _, inst := range after.Instruments() {
		prev, _ := before.Get(inst.Symbol)
		delta := ev.Impact.Delta(inst.Symbol)
		want := market.RoundPrice(prev.CurrentPrice.Mul(decimal.NewFromInt(1).Add(delta)))
		assert.True(t, inst.CurrentPrice.Equal(want), "%s: got %s want %s", inst.Symbol, inst.CurrentPrice, want)
		assert.True(t, inst.ChangePercent.Equal(delta), inst.Symbol)
	}
}

func TestNewWithStoreResumesSavedCash(t *testing.T) {
	ctx := context.Background()
	mem := profile.NewMemoryStore()
	require.NoError(t, mem.Save(ctx, profile.Profile{Cash: decimal.NewFromInt(4321), Invested: decimal.NewFromInt(50)}))

	cfg := config.Defaults()
	a, err := NewWithStore(ctx, &cfg, mem, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	assert.True(t, a.Game.Portfolio().CashBalance.Equal(decimal.NewFromInt(4321)))
}

func TestNewWithStoreResumesZeroCash(t *testing.T) {
	ctx := context.Background()
	mem := profile.NewMemoryStore()
	require.NoError(t, mem.Save(ctx, profile.Profile{Cash: decimal.Zero, Invested: decimal.NewFromInt(10000)}))

	cfg := config.Defaults()
	a, err := NewWithStore(ctx, &cfg, mem, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	assert.True(t, a.Game.Portfolio().CashBalance.IsZero(), "got %s", a.Game.Portfolio().CashBalance)
}

func TestNewWithStoreRejectsNegativeCash(t *testing.T) {
	cfg := config.Defaults()
	cfg.Game.StartingCash = -5

	_, err := NewWithStore(context.Background(), &cfg, profile.NewMemoryStore(), zerolog.Nop())
	assert.Error(t, err)
}
