package game

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/investly/internal/market"
	"github.com/zappabad/investly/internal/market/reprice"
	"github.com/zappabad/investly/internal/news"
	"github.com/zappabad/investly/internal/portfolio"
	"github.com/zappabad/investly/internal/profile"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// stubSource always picks index idx and returns f for noise draws.
type stubSource struct {
	mu    sync.Mutex
	idx   int
	f     float64
	draws int
}

func (s *stubSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draws++
	return s.idx % n
}

func (s *stubSource) Float64() float64 { return s.f }

func (s *stubSource) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draws
}

type recordingSink struct {
	mu     sync.Mutex
	pushed []profile.Profile
}

func (r *recordingSink) Push(p profile.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushed = append(r.pushed, p)
}

func (r *recordingSink) Last() profile.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pushed[len(r.pushed)-1]
}

func impact(kv ...any) news.Impact {
	im := news.Impact{}
	for i := 0; i < len(kv); i += 2 {
		im[kv[i].(string)] = dec(kv[i+1].(string))
	}
	return im
}

func testCatalog() news.Catalog {
	return news.Catalog{
		Scenarios: map[news.AgeTier][]news.Event{
			news.TierHigh: {{ID: "calm", Title: "Calm", Impact: impact("AAPL", "0.018")}},
		},
		Hotshots: []news.Hotshot{
			{Event: news.Event{ID: "apple-up", Title: "Apple up", Description: "d", Explanation: "e", Impact: impact("AAPL", "0.05")}, Difficulty: news.DifficultyLow},
		},
	}
}

func newTestGame(t *testing.T, cfg Config, opts ...Option) *Game {
	t.Helper()
	g, err := NewGame(cfg, opts...)
	require.NoError(t, err)
	return g
}

func TestWalkthroughBuyEndDaySell(t *testing.T) {
	sink := &recordingSink{}
	at := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	g := newTestGame(t, Config{Catalog: testCatalog()},
		WithSource(&stubSource{f: 0.5}),
		WithProfileSink(sink),
		WithClock(func() time.Time { return at }),
	)

	require.NoError(t, g.Trade("AAPL", 10, portfolio.SideBuy))
	p := g.Portfolio()
	assert.True(t, p.CashBalance.Equal(dec("8200")))
	h, ok := p.Holding("AAPL")
	require.True(t, ok)
	assert.Equal(t, int64(10), h.Quantity)
	assert.True(t, h.AvgPrice.Equal(dec("180")))
	assert.True(t, sink.Last().Invested.Equal(dec("1800")))

	res := g.AdvanceWithHotshotResult()
	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.Equal(t, 1, res.Day)
	assert.Equal(t, at, res.Date)
	assert.Equal(t, "apple-up", res.ScenarioID)
	assert.Equal(t, "e", res.ScenarioExplanation)
	assert.True(t, res.PortfolioValueBefore.Equal(dec("10000")))
	assert.True(t, res.PortfolioValueAfter.Equal(dec("10090")))
	assert.True(t, res.TotalChange.Equal(dec("90")))
	require.Len(t, res.AffectedHoldings, 1)
	ah := res.AffectedHoldings[0]
	assert.Equal(t, "AAPL", ah.Symbol)
	assert.True(t, ah.PriceAfter.Equal(dec("189")))
	assert.True(t, ah.ChangeAmount.Equal(dec("90")))
	assert.True(t, ah.ChangePercent.Equal(dec("5")))

	assert.Equal(t, 2, g.Day())
	price, err := g.Universe().Price("AAPL")
	require.NoError(t, err)
	assert.True(t, price.Equal(dec("189")))
	cur, ok := g.CurrentScenario()
	require.True(t, ok)
	assert.Equal(t, "apple-up", cur.ID)

	require.NoError(t, g.Trade("AAPL", 10, portfolio.SideSell))
	p = g.Portfolio()
	assert.True(t, p.CashBalance.Equal(dec("10090")))
	assert.Empty(t, p.Holdings)
	assert.True(t, sink.Last().Cash.Equal(dec("10090")))
	assert.True(t, sink.Last().Invested.IsZero())

	last, ok := g.LastResult()
	require.True(t, ok)
	assert.Equal(t, res.ID, last.ID)
}

func TestTradeRejectedLeavesStateUnchanged(t *testing.T) {
	g := newTestGame(t, Config{StartingCash: dec("100"), Catalog: testCatalog()}, WithSource(&stubSource{f: 0.5}))

	before := g.Snapshot()
	err := g.Trade("AAPL", 5, portfolio.SideBuy)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.ErrorIs(t, g.Trade("AAPL", 0, portfolio.SideBuy), ErrInvalidQuantity)
	assert.ErrorIs(t, g.Trade("ZZZ", 1, portfolio.SideBuy), ErrUnknownSymbol)
	assert.ErrorIs(t, g.Trade("KO", 1, portfolio.SideSell), ErrInsufficientShares)
	assert.ErrorIs(t, g.Trade("KO", 1, "short"), ErrInvalidSide)

	after := g.Snapshot()
	assert.True(t, after.Portfolio.CashBalance.Equal(before.Portfolio.CashBalance))
	assert.Empty(t, after.Portfolio.Holdings)
}

func TestScenarioTurnMovesUnmentionedSymbolsByNoise(t *testing.T) {
	g := newTestGame(t, Config{Catalog: testCatalog()}, WithSource(&stubSource{f: 0.75}))

	ev := g.AdvanceWithScenario()
	assert.Equal(t, "calm", ev.ID)
	assert.Equal(t, 2, g.Day())

	ko, _ := g.Universe().Get("KO")
	assert.True(t, ko.ChangePercent.Equal(dec("0.01")), "got %s", ko.ChangePercent)
	assert.True(t, ko.CurrentPrice.Equal(dec("60.6")))

	heads := g.Headlines(5)
	require.Len(t, heads, 1)
	assert.Equal(t, 1, heads[0].Day)
	assert.Equal(t, news.KindScenario, heads[0].Kind)
}

func TestHotshotCachedForTheDay(t *testing.T) {
	src := &stubSource{f: 0.5}
	cat := news.DefaultCatalog()
	g := newTestGame(t, Config{Catalog: cat}, WithSource(src))

	first, ok := g.TodayHotshot()
	require.True(t, ok)
	again, _ := g.TodayHotshot()
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 1, src.Draws())

	snap := g.Snapshot()
	require.NotNil(t, snap.Hotshot)
	assert.Equal(t, first.ID, snap.Hotshot.ID)

	res := g.AdvanceWithHotshotResult()
	assert.Equal(t, first.ID, res.ScenarioID, "end of day applies the hotshot shown during the day")
	assert.Equal(t, 1, src.Draws())

	assert.Nil(t, g.Snapshot().Hotshot, "day two has no draw yet")
	_, ok = g.TodayHotshot()
	require.True(t, ok)
	assert.Equal(t, 2, src.Draws())
}

func TestTierFallbackAndSetTier(t *testing.T) {
	g := newTestGame(t, Config{Catalog: testCatalog(), Tier: news.TierLow}, WithSource(&stubSource{f: 0.5}))
	assert.Equal(t, news.TierLow, g.Tier())

	ev := g.AdvanceWithScenario()
	assert.Equal(t, "calm", ev.ID, "empty LOW pool falls back to the advanced pool")

	assert.ErrorIs(t, g.SetTier("TEEN"), ErrInvalidTier)
	require.NoError(t, g.SetTier("mid"))
	assert.Equal(t, news.TierMid, g.Tier())
}

func TestNewGameCatalogChecks(t *testing.T) {
	bad := testCatalog()
	bad.Hotshots = append(bad.Hotshots, news.Hotshot{Event: news.Event{ID: "ghost", Impact: impact("GHOST", "0.1")}})

	_, err := NewGame(Config{Catalog: bad, StrictCatalog: true})
	assert.ErrorIs(t, err, ErrUnknownImpacts)

	g, err := NewGame(Config{Catalog: bad})
	require.NoError(t, err)
	assert.Equal(t, 1, g.Day())

	_, err = NewGame(Config{Catalog: news.Catalog{Hotshots: bad.Hotshots}})
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = NewGame(Config{StartingCash: dec("-1")})
	assert.ErrorIs(t, err, ErrInvalidCash)

	_, err = NewGame(Config{Tier: "KINDERGARTEN"})
	assert.ErrorIs(t, err, ErrInvalidTier)
}

func TestDefaultsSeedTheGame(t *testing.T) {
	g := newTestGame(t, Config{Seed: 11})

	assert.Equal(t, 1, g.Day())
	assert.Equal(t, news.TierHigh, g.Tier())
	assert.Equal(t, 14, g.Universe().Len())
	assert.True(t, g.NetWorth().Equal(dec("10000")))
	assert.True(t, g.HoldingsValue().IsZero())
	_, ok := g.CurrentScenario()
	assert.False(t, ok)
}

func TestEndDayFallsBackForMissingPrices(t *testing.T) {
	u := market.DefaultUniverse()
	p := portfolio.Portfolio{
		CashBalance: dec("10"),
		Holdings:    []portfolio.Holding{{Symbol: "GONE", Name: "Gone Co", Quantity: 4, AvgPrice: dec("12.5")}},
	}
	s := NewState(u, p, news.TierHigh)

	_, _, _, ok := EndDay(s, reprice.New(reprice.DefaultConfig(), nil, zerolog.Nop()), uuid.New(), time.Now())
	assert.False(t, ok, "no hotshot cached for the day")

	s.Hotshot, _, _ = s.Hotshot.Ensure(s.Day, func() (news.Hotshot, error) {
		return news.Hotshot{Event: news.Event{ID: "x", Impact: impact("GONE", "0.5")}}, nil
	})
	next, res, rep, ok := EndDay(s, reprice.New(reprice.DefaultConfig(), nil, zerolog.Nop()), uuid.New(), time.Now())
	require.True(t, ok)
	assert.Equal(t, []string{"GONE"}, rep.Unknown)
	require.Len(t, res.AffectedHoldings, 1)
	ah := res.AffectedHoldings[0]
	assert.True(t, ah.PriceBefore.Equal(dec("12.5")))
	assert.True(t, ah.PriceAfter.Equal(dec("12.5")))
	assert.True(t, ah.ChangeAmount.IsZero())
	assert.True(t, res.PortfolioValueBefore.Equal(dec("10")))
	assert.Equal(t, 2, next.Day)
	assert.Equal(t, 1, s.Day, "input state is not modified")
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	g := newTestGame(t, Config{Seed: 5})
	syms := g.Universe().Symbols()

	for i := 0; i < 300; i++ {
		switch rng.Intn(5) {
		case 0:
			g.AdvanceWithScenario()
		case 1:
			g.AdvanceWithHotshotResult()
		default:
			side := portfolio.SideBuy
			if rng.Intn(2) == 0 {
				side = portfolio.SideSell
			}
			_ = g.Trade(syms[rng.Intn(len(syms))], int64(rng.Intn(20)), side)
		}

		snap := g.Snapshot()
		require.False(t, snap.Portfolio.CashBalance.IsNegative(), "step %d", i)
		for _, h := range snap.Portfolio.Holdings {
			require.Positive(t, h.Quantity, "step %d", i)
		}
		for _, inst := range snap.Universe.Instruments() {
			require.False(t, inst.CurrentPrice.IsNegative())
		}
		assert.True(t, snap.NetWorth.Equal(g.NetWorth()), "valuation is idempotent")
	}
}

func TestConcurrentTradesAreAtomic(t *testing.T) {
	g := newTestGame(t, Config{Catalog: testCatalog()}, WithSource(&stubSource{f: 0.5}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Trade("KO", 1, portfolio.SideBuy)
		}()
	}
	wg.Wait()

	p := g.Portfolio()
	h, ok := p.Holding("KO")
	require.True(t, ok)
	assert.Equal(t, int64(50), h.Quantity)
	assert.True(t, p.CashBalance.Equal(dec("7000")))
}

func TestWithCashAllowsExplicitZero(t *testing.T) {
	g := newTestGame(t, Config{Catalog: testCatalog()}, WithCash(decimal.Zero))
	assert.True(t, g.Portfolio().CashBalance.IsZero())

	g = newTestGame(t, Config{Catalog: testCatalog(), StartingCash: dec("500")}, WithCash(dec("250")))
	assert.True(t, g.Portfolio().CashBalance.Equal(dec("250")))

	_, err := NewGame(Config{Catalog: testCatalog()}, WithCash(dec("-1")))
	assert.ErrorIs(t, err, ErrInvalidCash)
}

func TestPlayScenarioReportsItsOwnDay(t *testing.T) {
	g := newTestGame(t, Config{Catalog: testCatalog()}, WithSource(&stubSource{f: 0.5}))

	const turns = 20
	days := make(chan int, turns)
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, day := g.PlayScenario()
			days <- day
		}()
	}
	wg.Wait()
	close(days)

	seen := make(map[int]bool)
	for d := range days {
		assert.False(t, seen[d], "day %d reported twice", d)
		seen[d] = true
	}
	for d := 2; d <= turns+1; d++ {
		assert.True(t, seen[d], "day %d missing", d)
	}
	assert.Equal(t, turns+1, g.Day())
}
