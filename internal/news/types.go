package news

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// AgeTier groups scenarios by learner age.
type AgeTier string

const (
	TierLow  AgeTier = "LOW"
	TierMid  AgeTier = "MID"
	TierHigh AgeTier = "HIGH"
)

// TierAdvanced is the tier scenario selection falls back to.
const TierAdvanced = TierHigh

// ParseTier parses a tier name, case-insensitively.
func ParseTier(s string) (AgeTier, bool) {
	switch AgeTier(strings.ToUpper(strings.TrimSpace(s))) {
	case TierLow:
		return TierLow, true
	case TierMid:
		return TierMid, true
	case TierHigh:
		return TierHigh, true
	default:
		return "", false
	}
}

// Difficulty tags a hotshot headline.
type Difficulty string

const (
	DifficultyLow  Difficulty = "low"
	DifficultyMid  Difficulty = "mid"
	DifficultyHigh Difficulty = "high"
)

// Impact maps a symbol to a fractional price change (0.05 = +5%).
type Impact map[string]decimal.Decimal

// Delta returns the impact for symbol, zero when absent.
func (im Impact) Delta(symbol string) decimal.Decimal {
	if d, ok := im[symbol]; ok {
		return d
	}
	return decimal.Zero
}

// Symbols returns the impact keys in sorted order.
func (im Impact) Symbols() []string {
	out := make([]string, 0, len(im))
	for sym := range im {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// Event is a named market-moving event. Events are defined at startup and
// never modified.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Explanation string `json:"explanation"`
	Impact      Impact `json:"impact"`
}

// Hotshot is a daily headline event.
type Hotshot struct {
	Event
	Difficulty Difficulty `json:"difficulty"`
}

// Kind distinguishes the two event pools.
type Kind string

const (
	KindScenario Kind = "scenario"
	KindHotshot  Kind = "hotshot"
)
