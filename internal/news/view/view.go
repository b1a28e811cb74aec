package view

import (
	"sync"

	"github.com/zappabad/investly/internal/news"
)

// Headline is one entry on the headline tape.
type Headline struct {
	Day         int       `json:"day"`
	Kind        news.Kind `json:"kind"`
	EventID     string    `json:"eventId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Explanation string    `json:"explanation"`
}

// FromEvent builds a headline for ev on day.
func FromEvent(day int, kind news.Kind, ev news.Event) Headline {
	return Headline{
		Day:         day,
		Kind:        kind,
		EventID:     ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Explanation: ev.Explanation,
	}
}

// Tape maintains a bounded ring buffer of headlines.
type Tape struct {
	mu    sync.RWMutex
	buf   []Headline
	size  int
	start int
	count int
}

// NewTape creates a new Tape with the given capacity.
func NewTape(capacity int) *Tape {
	if capacity <= 0 {
		capacity = 100
	}
	return &Tape{
		buf:  make([]Headline, capacity),
		size: capacity,
	}
}

// Append adds a headline to the tape.
func (v *Tape) Append(h Headline) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.count < v.size {
		v.buf[(v.start+v.count)%v.size] = h
		v.count++
		return
	}
	// overwrite oldest
	v.buf[v.start] = h
	v.start = (v.start + 1) % v.size
}

// Latest returns the last n headlines in chronological order (oldest first).
func (v *Tape) Latest(n int) []Headline {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if n <= 0 || v.count == 0 {
		return nil
	}
	if n > v.count {
		n = v.count
	}

	out := make([]Headline, n)
	first := (v.start + (v.count - n)) % v.size
	for i := 0; i < n; i++ {
		out[i] = v.buf[(first+i)%v.size]
	}
	return out
}

// Count returns the number of headlines held.
func (v *Tape) Count() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.count
}
