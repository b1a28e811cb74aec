package selector

import "github.com/zappabad/investly/internal/news"

// HotshotCache remembers the hotshot drawn for a given day. The zero value
// is unset.
type HotshotCache struct {
	set     bool
	day     int
	hotshot news.Hotshot
}

// CacheFor returns a cache holding h for day.
func CacheFor(h news.Hotshot, day int) HotshotCache {
	return HotshotCache{set: true, day: day, hotshot: h}
}

// IsSet reports whether a hotshot has been cached.
func (c HotshotCache) IsSet() bool { return c.set }

// Day returns the day the cached hotshot belongs to.
func (c HotshotCache) Day() int { return c.day }

// Get returns the cached hotshot if it belongs to day.
func (c HotshotCache) Get(day int) (news.Hotshot, bool) {
	if !c.set || c.day != day {
		return news.Hotshot{}, false
	}
	return c.hotshot, true
}

// Ensure returns the hotshot for day, drawing a new one with pick when the
// cache is unset or stale. The returned cache replaces the receiver.
func (c HotshotCache) Ensure(day int, pick func() (news.Hotshot, error)) (HotshotCache, news.Hotshot, error) {
	if h, ok := c.Get(day); ok {
		return c, h, nil
	}
	h, err := pick()
	if err != nil {
		return c, news.Hotshot{}, err
	}
	return CacheFor(h, day), h, nil
}
