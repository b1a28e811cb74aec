package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zappabad/investly/internal/market"
	"github.com/zappabad/investly/internal/market/reprice"
	"github.com/zappabad/investly/internal/news"
	"github.com/zappabad/investly/internal/news/selector"
	"github.com/zappabad/investly/internal/portfolio"
	"github.com/zappabad/investly/internal/valuation"
)

// Repricer applies an event to a universe snapshot.
type Repricer interface {
	Reprice(u market.Universe, ev news.Event, includeNoise bool) (market.Universe, reprice.Report)
}

// State is one immutable game state. Transitions return a new State and
// never modify the receiver.
type State struct {
	Day       int
	Tier      news.AgeTier
	Universe  market.Universe
	Portfolio portfolio.Portfolio
	// Scenario is the event applied by the most recent turn, nil before
	// the first turn.
	Scenario *news.Event
	Hotshot  selector.HotshotCache
}

// NewState returns the day-one state.
func NewState(u market.Universe, p portfolio.Portfolio, tier news.AgeTier) State {
	return State{Day: 1, Tier: tier, Universe: u, Portfolio: p}
}

// Trade applies o at the current prices.
func (s State) Trade(o portfolio.Order) (State, error) {
	p, err := portfolio.Apply(s.Portfolio, s.Universe, o)
	if err != nil {
		return s, err
	}
	s.Portfolio = p
	return s, nil
}

// HoldingsValue values the holdings at the current prices.
func (s State) HoldingsValue() decimal.Decimal {
	return valuation.HoldingsValue(s.Universe, s.Portfolio)
}

// NetWorth is cash plus HoldingsValue.
func (s State) NetWorth() decimal.Decimal {
	return valuation.NetWorth(s.Universe, s.Portfolio)
}

// AdvanceWithScenario applies ev with noise and moves to the next day.
func AdvanceWithScenario(s State, ev news.Event, r Repricer) (State, reprice.Report) {
	next, rep := r.Reprice(s.Universe, ev, true)
	s.Universe = next
	s.Day++
	s.Scenario = &ev
	return s, rep
}

// EndDay applies the hotshot cached for s.Day without noise, moves to the
// next day, and reports how the portfolio fared. The caller must have
// filled the cache for s.Day; otherwise s is returned with ok=false.
func EndDay(s State, r Repricer, id uuid.UUID, now time.Time) (next State, res DayResult, rep reprice.Report, ok bool) {
	hot, ok := s.Hotshot.Get(s.Day)
	if !ok {
		return s, DayResult{}, reprice.Report{}, false
	}

	before := s.Universe
	valueBefore := valuation.NetWorth(before, s.Portfolio)

	after, rep := r.Reprice(before, hot.Event, false)
	valueAfter := valuation.NetWorth(after, s.Portfolio)

	res = DayResult{
		ID:                   id,
		Day:                  s.Day,
		Date:                 now,
		ScenarioID:           hot.ID,
		ScenarioTitle:        hot.Title,
		ScenarioDescription:  hot.Description,
		ScenarioExplanation:  hot.Explanation,
		PortfolioValueBefore: valueBefore.Round(2),
		PortfolioValueAfter:  valueAfter.Round(2),
		TotalChange:          valueAfter.Sub(valueBefore).Round(2),
		AffectedHoldings:     affected(before, after, s.Portfolio),
	}

	ev := hot.Event
	s.Universe = after
	s.Day++
	s.Scenario = &ev
	return s, res, rep, true
}

var hundred = decimal.NewFromInt(100)

func affected(before, after market.Universe, p portfolio.Portfolio) []AffectedHolding {
	out := make([]AffectedHolding, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		priceBefore := h.AvgPrice
		if inst, ok := before.Get(h.Symbol); ok {
			priceBefore = inst.CurrentPrice
		}
		priceAfter := priceBefore
		if inst, ok := after.Get(h.Symbol); ok {
			priceAfter = inst.CurrentPrice
		}

		diff := priceAfter.Sub(priceBefore)
		pct := decimal.Zero
		if !priceBefore.IsZero() {
			pct = diff.Div(priceBefore).Mul(hundred)
		}

		out = append(out, AffectedHolding{
			Symbol:        h.Symbol,
			Name:          h.Name,
			Quantity:      h.Quantity,
			PriceBefore:   priceBefore,
			PriceAfter:    priceAfter,
			ChangePercent: pct.Round(2),
			ChangeAmount:  diff.Mul(decimal.NewFromInt(h.Quantity)).Round(2),
		})
	}
	return out
}
