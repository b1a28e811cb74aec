package selector

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zappabad/investly/internal/news"
)

type fixedRand struct{ n int }

func (f fixedRand) Intn(n int) int { return f.n % n }

func TestPickScenarioStaysInTier(t *testing.T) {
	cat := news.DefaultCatalog()
	s := New(cat, rand.New(rand.NewSource(7)))

	for _, tier := range []news.AgeTier{news.TierLow, news.TierMid, news.TierHigh} {
		ids := map[string]bool{}
		for _, ev := range cat.Scenarios[tier] {
			ids[ev.ID] = true
		}
		for i := 0; i < 20; i++ {
			ev, err := s.PickScenario(tier)
			require.NoError(t, err)
			assert.True(t, ids[ev.ID], "tier %s drew %s", tier, ev.ID)
		}
	}
}

func TestPickScenarioFallsBackToAdvanced(t *testing.T) {
	cat := news.DefaultCatalog()
	delete(cat.Scenarios, news.TierMid)
	s := New(cat, fixedRand{n: 1})

	ev, err := s.PickScenario(news.TierMid)
	require.NoError(t, err)
	assert.Equal(t, "high-2", ev.ID)
}

func TestPickFromEmptyPool(t *testing.T) {
	s := New(news.Catalog{}, fixedRand{})

	_, err := s.PickScenario(news.TierLow)
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = s.PickHotshot()
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestHotshotCacheStableWithinDay(t *testing.T) {
	var c HotshotCache
	assert.False(t, c.IsSet())

	draws := 0
	s := New(news.DefaultCatalog(), rand.New(rand.NewSource(1)))
	pick := func() (news.Hotshot, error) {
		draws++
		return s.PickHotshot()
	}

	c, first, err := c.Ensure(3, pick)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		var again news.Hotshot
		c, again, err = c.Ensure(3, pick)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	}
	assert.Equal(t, 1, draws)

	_, ok := c.Get(4)
	assert.False(t, ok, "stale entry must not be served for a later day")

	c, _, err = c.Ensure(4, pick)
	require.NoError(t, err)
	assert.Equal(t, 2, draws)
	assert.Equal(t, 4, c.Day())
}

func TestHotshotCacheKeepsStateOnPickError(t *testing.T) {
	c := CacheFor(news.Hotshot{Event: news.Event{ID: "x"}}, 1)
	boom := errors.New("boom")

	next, _, err := c.Ensure(2, func() (news.Hotshot, error) { return news.Hotshot{}, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, c, next)
}
