package game

import (
	"github.com/shopspring/decimal"

	"github.com/zappabad/investly/internal/market"
	"github.com/zappabad/investly/internal/market/reprice"
	"github.com/zappabad/investly/internal/news"
)

// Config holds configuration for the game.
type Config struct {
	// StartingCash seeds the portfolio. Non-positive values use the default.
	StartingCash decimal.Decimal
	// Tier is the learner age tier scenarios are drawn for.
	Tier news.AgeTier
	// Seed seeds the random source when none is injected. Zero uses the clock.
	Seed int64
	// Instruments is the starting universe. Empty uses the built-in set.
	Instruments []market.Instrument
	// Catalog holds the scenario and hotshot pools. Empty uses the built-in set.
	Catalog news.Catalog
	// Repricer configures the daily noise term.
	Repricer reprice.Config
	// TapeSize is the capacity of the headline tape.
	TapeSize int
	// StrictCatalog turns unknown impact symbols into a NewGame error.
	StrictCatalog bool
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		StartingCash: decimal.NewFromInt(10000),
		Tier:         news.TierHigh,
		Instruments:  market.DefaultInstruments(),
		Catalog:      news.DefaultCatalog(),
		Repricer:     reprice.DefaultConfig(),
		TapeSize:     50,
	}
}
