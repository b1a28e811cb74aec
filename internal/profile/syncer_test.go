package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLoadSave(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	want := Profile{Cash: decimal.NewFromInt(8200), Invested: decimal.NewFromInt(1800)}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.Cash.Equal(want.Cash))
	assert.True(t, got.Invested.Equal(want.Invested))
}

func TestSyncerFlushesOnClose(t *testing.T) {
	store := NewMemoryStore()
	s := NewSyncer(store, DefaultConfig(), zerolog.Nop())

	for i := 1; i <= 5; i++ {
		s.Push(Profile{Cash: decimal.NewFromInt(int64(i))})
	}
	s.Close()

	assert.Equal(t, 5, store.Saves())
	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Cash.Equal(decimal.NewFromInt(5)))

	// Push after Close is a no-op.
	s.Push(Profile{Cash: decimal.NewFromInt(99)})
	assert.Equal(t, 5, store.Saves())
}

type blockingStore struct {
	release chan struct{}
	once    sync.Once
	started chan struct{}

	mu   sync.Mutex
	last Profile
}

func (b *blockingStore) Load(context.Context) (Profile, error) { return Profile{}, ErrNotFound }

func (b *blockingStore) Save(ctx context.Context, p Profile) error {
	b.once.Do(func() { close(b.started) })
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	b.mu.Lock()
	b.last = p
	b.mu.Unlock()
	return nil
}

func (b *blockingStore) Last() Profile {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func TestSyncerKeepsNewestOnOverflow(t *testing.T) {
	store := &blockingStore{release: make(chan struct{}), started: make(chan struct{})}
	s := NewSyncer(store, Config{Buffer: 1, Timeout: 5 * time.Second, DropOnOverflow: true}, zerolog.Nop())

	s.Push(Profile{Cash: decimal.NewFromInt(1)})
	<-store.started // dispatcher is now stuck in Save

	for i := 2; i <= 5; i++ {
		s.Push(Profile{Cash: decimal.NewFromInt(int64(i))})
	}

	// 2, 3 and 4 were each pushed out by a newer snapshot.
	assert.Equal(t, int64(3), s.Dropped())

	close(store.release)
	s.Close()

	assert.True(t, store.Last().Cash.Equal(decimal.NewFromInt(5)), "got %s", store.Last().Cash)
}

type failingStore struct{}

func (failingStore) Load(context.Context) (Profile, error) { return Profile{}, ErrNotFound }
func (failingStore) Save(context.Context, Profile) error  { return errors.New("disk full") }

func TestSyncerCountsFailures(t *testing.T) {
	s := NewSyncer(failingStore{}, DefaultConfig(), zerolog.Nop())
	s.Push(Profile{})
	s.Push(Profile{})
	s.Close()

	assert.Equal(t, int64(2), s.Failed())
}
