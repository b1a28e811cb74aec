package selector

import (
	"errors"

	"github.com/zappabad/investly/internal/news"
)

var ErrEmptyPool = errors.New("event pool is empty")

// Rand is the randomness a Selector draws from. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Selector draws scenarios and hotshots uniformly from a Catalog.
type Selector struct {
	catalog news.Catalog
	rng     Rand
}

// New returns a Selector over catalog.
func New(catalog news.Catalog, rng Rand) *Selector {
	return &Selector{catalog: catalog, rng: rng}
}

// Catalog returns the catalog the selector draws from.
func (s *Selector) Catalog() news.Catalog {
	return s.catalog
}

// PickScenario draws a scenario for tier. Tiers without scenarios fall
// back to the advanced pool.
func (s *Selector) PickScenario(tier news.AgeTier) (news.Event, error) {
	pool := s.catalog.ScenariosFor(tier)
	if len(pool) == 0 {
		return news.Event{}, ErrEmptyPool
	}
	return pool[s.rng.Intn(len(pool))], nil
}

// PickHotshot draws one hotshot from the full pool.
func (s *Selector) PickHotshot() (news.Hotshot, error) {
	pool := s.catalog.Hotshots
	if len(pool) == 0 {
		return news.Hotshot{}, ErrEmptyPool
	}
	return pool[s.rng.Intn(len(pool))], nil
}
