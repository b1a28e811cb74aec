package reprice

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/zappabad/investly/internal/market"
	"github.com/zappabad/investly/internal/metrics"
	"github.com/zappabad/investly/internal/news"
)

// Noise supplies uniform samples in [0, 1). *math/rand.Rand satisfies it.
type Noise interface {
	Float64() float64
}

// Config holds configuration for the repricer.
type Config struct {
	// Amplitude bounds the daily noise term to [-Amplitude, +Amplitude].
	// Unset uses the default; a set zero turns noise off.
	Amplitude decimal.NullDecimal
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Amplitude: decimal.NewNullDecimal(decimal.RequireFromString("0.02")),
	}
}

// Report describes what a reprice touched.
type Report struct {
	EventID string
	// Unknown lists impact keys that matched no instrument.
	Unknown []string
}

// Repricer applies event impact maps to universe snapshots.
type Repricer struct {
	amplitude decimal.Decimal
	noise     Noise
	log       zerolog.Logger
}

// New creates a Repricer. noise may be nil when every call passes
// includeNoise=false.
func New(cfg Config, noise Noise, log zerolog.Logger) *Repricer {
	if !cfg.Amplitude.Valid {
		cfg.Amplitude = DefaultConfig().Amplitude
	}
	return &Repricer{
		amplitude: cfg.Amplitude.Decimal.Abs(),
		noise:     noise,
		log:       log.With().Str("component", "repricer").Logger(),
	}
}

// Reprice returns a new snapshot with ev's impact applied to every
// instrument. u is not modified.
//
// newPrice = round2(price * (1 + delta + noise)); ChangePercent is set to
// delta + noise for the turn.
func (r *Repricer) Reprice(u market.Universe, ev news.Event, includeNoise bool) (market.Universe, Report) {
	rep := Report{EventID: ev.ID, Unknown: news.UnknownSymbols(ev.Impact, u)}
	if len(rep.Unknown) > 0 {
		r.log.Warn().
			Str("event_id", ev.ID).
			Strs("symbols", rep.Unknown).
			Msg("impact references symbols outside the universe")
		metrics.UnknownImpactSymbols.WithLabelValues(ev.ID).Add(float64(len(rep.Unknown)))
	}

	next := u.Map(func(inst market.Instrument) market.Instrument {
		move := ev.Impact.Delta(inst.Symbol)
		if includeNoise {
			move = move.Add(r.sample())
		}
		inst.CurrentPrice = market.RoundPrice(inst.CurrentPrice.Mul(decimal.NewFromInt(1).Add(move)))
		if inst.CurrentPrice.IsNegative() {
			inst.CurrentPrice = decimal.Zero
		}
		inst.ChangePercent = move
		return inst
	})
	return next, rep
}

// sample draws uniformly from [-Amplitude, +Amplitude).
func (r *Repricer) sample() decimal.Decimal {
	if r.noise == nil || r.amplitude.IsZero() {
		return decimal.Zero
	}
	f := decimal.NewFromFloat(r.noise.Float64())
	return f.Mul(decimal.NewFromInt(2)).Sub(decimal.NewFromInt(1)).Mul(r.amplitude)
}
