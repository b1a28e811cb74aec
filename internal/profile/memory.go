package profile

import (
	"context"
	"sync"
)

// MemoryStore keeps the profile in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	p     Profile
	saved bool
	saves int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved {
		return Profile{}, ErrNotFound
	}
	return s.p, nil
}

func (s *MemoryStore) Save(_ context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
	s.saved = true
	s.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
