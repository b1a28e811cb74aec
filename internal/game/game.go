package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/zappabad/investly/internal/market"
	"github.com/zappabad/investly/internal/market/reprice"
	"github.com/zappabad/investly/internal/metrics"
	"github.com/zappabad/investly/internal/news"
	"github.com/zappabad/investly/internal/news/selector"
	newsview "github.com/zappabad/investly/internal/news/view"
	"github.com/zappabad/investly/internal/portfolio"
	"github.com/zappabad/investly/internal/profile"
)

var (
	ErrInvalidQuantity    = portfolio.ErrInvalidQuantity
	ErrUnknownSymbol      = portfolio.ErrUnknownSymbol
	ErrInsufficientFunds  = portfolio.ErrInsufficientFunds
	ErrInsufficientShares = portfolio.ErrInsufficientShares
	ErrInvalidSide        = portfolio.ErrInvalidSide

	ErrInvalidTier    = errors.New("invalid age tier")
	ErrInvalidCash    = errors.New("starting cash must not be negative")
	ErrEmptyCatalog   = errors.New("catalog needs advanced-tier scenarios and at least one hotshot")
	ErrUnknownImpacts = errors.New("catalog references unknown symbols")
)

// Source is the randomness the game draws events and noise from.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// ProfileSink receives {cash, invested} snapshots after every change.
// *profile.Syncer satisfies it.
type ProfileSink interface {
	Push(p profile.Profile)
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithProfileSink sets where profile snapshots go.
func WithProfileSink(s ProfileSink) Option {
	return func(g *Game) { g.sink = s }
}

// WithClock sets the wall clock used to date results.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithCash starts the portfolio with exactly cash, zero included,
// overriding Config.StartingCash. Used when resuming a saved profile.
func WithCash(cash decimal.Decimal) Option {
	return func(g *Game) { g.cash = &cash }
}

// WithSource sets the random source, overriding Config.Seed.
func WithSource(src Source) Option {
	return func(g *Game) { g.src = src }
}

// Game hosts the single mutable reference to the current State. Every
// exported method is safe for concurrent use; each mutating call computes
// the next state and swaps it in under one lock.
type Game struct {
	cfg Config
	log zerolog.Logger

	mu    sync.Mutex
	state State
	last  *DayResult
	src   Source
	sel   *selector.Selector
	rep   *reprice.Repricer
	tape  *newsview.Tape
	sink  ProfileSink
	now   func() time.Time
	cash  *decimal.Decimal
}

// NewGame builds a game on day one.
func NewGame(cfg Config, opts ...Option) (*Game, error) {
	def := DefaultConfig()
	if cfg.Tier == "" {
		cfg.Tier = def.Tier
	}
	tier, ok := news.ParseTier(string(cfg.Tier))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTier, cfg.Tier)
	}
	cfg.Tier = tier
	if len(cfg.Instruments) == 0 {
		cfg.Instruments = def.Instruments
	}
	if len(cfg.Catalog.Scenarios) == 0 && len(cfg.Catalog.Hotshots) == 0 {
		cfg.Catalog = def.Catalog
	}
	if cfg.TapeSize <= 0 {
		cfg.TapeSize = def.TapeSize
	}

	g := &Game{
		cfg: cfg,
		log: zerolog.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.cash != nil {
		cfg.StartingCash = *g.cash
	} else if cfg.StartingCash.IsZero() {
		cfg.StartingCash = def.StartingCash
	}
	if cfg.StartingCash.IsNegative() {
		return nil, ErrInvalidCash
	}
	g.cfg = cfg

	base := g.log
	g.log = base.With().Str("component", "game").Logger()

	if g.src == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.src = rand.New(rand.NewSource(seed))
	}

	u, err := market.NewUniverse(cfg.Instruments)
	if err != nil {
		return nil, fmt.Errorf("game: universe: %w", err)
	}

	if len(cfg.Catalog.Scenarios[news.TierAdvanced]) == 0 || len(cfg.Catalog.Hotshots) == 0 {
		return nil, ErrEmptyCatalog
	}
	if refs := cfg.Catalog.Validate(u); len(refs) > 0 {
		for _, ref := range refs {
			g.log.Warn().
				Str("event_id", ref.EventID).
				Str("kind", string(ref.Kind)).
				Strs("symbols", ref.Symbols).
				Msg("impact references symbols outside the universe")
		}
		if cfg.StrictCatalog {
			return nil, fmt.Errorf("%w: %d events", ErrUnknownImpacts, len(refs))
		}
	}

	g.sel = selector.New(cfg.Catalog, g.src)
	g.rep = reprice.New(cfg.Repricer, g.src, base)
	g.tape = newsview.NewTape(cfg.TapeSize)
	g.state = NewState(u, portfolio.New(cfg.StartingCash), tier)

	g.observe()
	return g, nil
}

// Universe returns the current market snapshot.
func (g *Game) Universe() market.Universe {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Universe
}

// Portfolio returns a copy of the current portfolio.
func (g *Game) Portfolio() portfolio.Portfolio {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Portfolio.Clone()
}

// Day returns the current day, starting at 1.
func (g *Game) Day() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Day
}

// Tier returns the learner age tier.
func (g *Game) Tier() news.AgeTier {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Tier
}

// SetTier changes the tier used for future scenario draws.
func (g *Game) SetTier(t news.AgeTier) error {
	tier, ok := news.ParseTier(string(t))
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTier, t)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state.Tier = tier
	return nil
}

// CurrentScenario returns the event applied by the latest turn.
func (g *Game) CurrentScenario() (news.Event, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.Scenario == nil {
		return news.Event{}, false
	}
	return *g.state.Scenario, true
}

// LastResult returns the most recent end-of-day result.
func (g *Game) LastResult() (DayResult, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.last == nil {
		return DayResult{}, false
	}
	return *g.last, true
}

// Snapshot is a consistent read of everything a display needs.
type Snapshot struct {
	Day           int                 `json:"day"`
	Tier          news.AgeTier        `json:"tier"`
	Universe      market.Universe     `json:"universe"`
	Portfolio     portfolio.Portfolio `json:"portfolio"`
	Scenario      *news.Event         `json:"scenario,omitempty"`
	Hotshot       *news.Hotshot       `json:"hotshot,omitempty"`
	HoldingsValue decimal.Decimal     `json:"holdingsValue"`
	NetWorth      decimal.Decimal     `json:"netWorth"`
	LastResult    *DayResult          `json:"lastResult,omitempty"`
}

// Snapshot reads the whole state under one lock. Hotshot is only set when
// one has already been drawn for today.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.state
	snap := Snapshot{
		Day:           s.Day,
		Tier:          s.Tier,
		Universe:      s.Universe,
		Portfolio:     s.Portfolio.Clone(),
		Scenario:      s.Scenario,
		HoldingsValue: s.HoldingsValue(),
		NetWorth:      s.NetWorth(),
		LastResult:    g.last,
	}
	if h, ok := s.Hotshot.Get(s.Day); ok {
		snap.Hotshot = &h
	}
	return snap
}

// Headlines returns the last n applied events, oldest first.
func (g *Game) Headlines(n int) []newsview.Headline {
	return g.tape.Latest(n)
}

// HoldingsValue values the holdings at current prices.
func (g *Game) HoldingsValue() decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.HoldingsValue()
}

// NetWorth is cash plus holdings value.
func (g *Game) NetWorth() decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.NetWorth()
}

// Trade buys or sells quantity shares of symbol at the current price.
// A nil error means the trade was applied; on error nothing changes.
func (g *Game) Trade(symbol string, quantity int64, side portfolio.Side) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, err := g.state.Trade(portfolio.Order{Symbol: symbol, Quantity: quantity, Side: side})
	if err != nil {
		metrics.TradesTotal.WithLabelValues(string(side), "rejected").Inc()
		g.log.Debug().Err(err).
			Str("symbol", symbol).
			Int64("quantity", quantity).
			Str("side", string(side)).
			Msg("trade rejected")
		return err
	}

	g.state = next
	metrics.TradesTotal.WithLabelValues(string(side), "ok").Inc()
	g.log.Info().
		Str("symbol", symbol).
		Int64("quantity", quantity).
		Str("side", string(side)).
		Str("cash", next.Portfolio.CashBalance.StringFixed(2)).
		Msg("trade")
	g.observe()
	return nil
}

// AdvanceWithScenario draws a scenario for the current tier, applies it
// with noise, and moves to the next day.
func (g *Game) AdvanceWithScenario() news.Event {
	ev, _ := g.PlayScenario()
	return ev
}

// PlayScenario is AdvanceWithScenario that also returns the day the game
// moved to, read under the same lock.
func (g *Game) PlayScenario() (news.Event, int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ev, err := g.sel.PickScenario(g.state.Tier)
	if err != nil {
		// NewGame guarantees an advanced-tier pool.
		g.log.Error().Err(err).Msg("scenario pick failed")
		return news.Event{}, g.state.Day
	}

	day := g.state.Day
	g.state, _ = AdvanceWithScenario(g.state, ev, g.rep)
	g.tape.Append(newsview.FromEvent(day, news.KindScenario, ev))

	metrics.TurnsTotal.WithLabelValues(string(news.KindScenario)).Inc()
	g.log.Info().Int("day", day).Str("event_id", ev.ID).Msg("scenario applied")
	g.observe()
	return ev, g.state.Day
}

// TodayHotshot returns the hotshot for the current day, drawing and
// caching one on first read.
func (g *Game) TodayHotshot() (news.Hotshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ensureHotshot()
}

func (g *Game) ensureHotshot() (news.Hotshot, bool) {
	cache, h, err := g.state.Hotshot.Ensure(g.state.Day, g.sel.PickHotshot)
	if err != nil {
		g.log.Error().Err(err).Msg("hotshot pick failed")
		return news.Hotshot{}, false
	}
	g.state.Hotshot = cache
	return h, true
}

// AdvanceWithHotshotResult ends the day: today's hotshot is applied
// without noise and the portfolio's before/after values are reported.
func (g *Game) AdvanceWithHotshotResult() DayResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.ensureHotshot(); !ok {
		return DayResult{}
	}

	next, res, _, ok := EndDay(g.state, g.rep, uuid.New(), g.now())
	if !ok {
		return DayResult{}
	}
	g.state = next
	g.last = &res
	g.tape.Append(newsview.Headline{
		Day:         res.Day,
		Kind:        news.KindHotshot,
		EventID:     res.ScenarioID,
		Title:       res.ScenarioTitle,
		Description: res.ScenarioDescription,
		Explanation: res.ScenarioExplanation,
	})

	metrics.TurnsTotal.WithLabelValues(string(news.KindHotshot)).Inc()
	g.log.Info().
		Int("day", res.Day).
		Str("event_id", res.ScenarioID).
		Str("before", res.PortfolioValueBefore.StringFixed(2)).
		Str("after", res.PortfolioValueAfter.StringFixed(2)).
		Msg("day ended")
	g.observe()
	return res
}

// observe publishes the current state to metrics and the profile sink.
// Callers hold mu, except NewGame.
func (g *Game) observe() {
	hv := g.state.HoldingsValue()
	nw, _ := g.state.Portfolio.CashBalance.Add(hv).Float64()
	metrics.NetWorth.Set(nw)
	metrics.CurrentDay.Set(float64(g.state.Day))

	if g.sink != nil {
		g.sink.Push(profile.Profile{
			Cash:     g.state.Portfolio.CashBalance,
			Invested: hv,
		})
	}
}
