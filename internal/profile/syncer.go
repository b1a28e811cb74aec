package profile

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/zappabad/investly/internal/metrics"
)

// Syncer persists profile snapshots in the background. Push never blocks
// the caller when DropOnOverflow is set; the oldest queued snapshot is
// discarded instead, so the newest one is always saved. Failed saves are
// logged and otherwise ignored.
type Syncer struct {
	cfg   Config
	store Store
	log   zerolog.Logger

	pending chan Profile
	dropped atomic.Int64
	failed  atomic.Int64

	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewSyncer starts a Syncer writing to store.
func NewSyncer(store Store, cfg Config, log zerolog.Logger) *Syncer {
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultConfig().Buffer
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	s := &Syncer{
		cfg:     cfg,
		store:   store,
		log:     log.With().Str("component", "profile-sync").Logger(),
		pending: make(chan Profile, cfg.Buffer),
		closed:  make(chan struct{}),
	}

	s.wg.Add(1)
	go s.run()

	return s
}

func (s *Syncer) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.closed:
			// flush whatever was queued before Close
			for {
				select {
				case p := <-s.pending:
					s.save(p)
				default:
					return
				}
			}
		case p := <-s.pending:
			s.save(p)
		}
	}
}

func (s *Syncer) save(p Profile) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	if err := s.store.Save(ctx, p); err != nil {
		s.failed.Add(1)
		metrics.ProfileSyncs.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Msg("profile save failed")
		return
	}
	metrics.ProfileSyncs.WithLabelValues("ok").Inc()
}

// Push queues p for saving.
func (s *Syncer) Push(p Profile) {
	select {
	case <-s.closed:
		return
	default:
	}

	if s.cfg.DropOnOverflow {
		// Latest wins: on a full queue the oldest snapshot makes room.
		for {
			select {
			case s.pending <- p:
				return
			default:
			}
			select {
			case <-s.pending:
				s.dropped.Add(1)
				metrics.ProfileSyncs.WithLabelValues("dropped").Inc()
			default:
			}
		}
	}

	select {
	case s.pending <- p:
	case <-s.closed:
	}
}

// Dropped returns the number of stale snapshots discarded on overflow.
func (s *Syncer) Dropped() int64 {
	return s.dropped.Load()
}

// Failed returns the number of saves the store rejected.
func (s *Syncer) Failed() int64 {
	return s.failed.Load()
}

// Close stops the syncer after flushing queued snapshots.
func (s *Syncer) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
	})
	s.wg.Wait()
}
