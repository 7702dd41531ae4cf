package cache

import (
	"context"
	"sync"
	"time"

	"github.com/parcelcart/backend/internal/domain/shared"
)

const memorySweepInterval = 5 * time.Minute

// MemoryStore keeps idempotency claims in process. Claims are not shared
// between replicas, so it only suits single-instance deployments and tests.
type MemoryStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time

	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// NewMemoryStore starts a store whose expired claims are swept every five
// minutes until Close.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		expires: make(map[string]time.Time),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.sweepLoop(memorySweepInterval)
	return s
}

func (s *MemoryStore) held(key string, at time.Time) bool {
	exp, ok := s.expires[key]
	return ok && at.Before(exp)
}

// Claim takes key for ttl unless an unexpired claim exists.
func (s *MemoryStore) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.held(key, now) {
		return false, nil
	}
	s.expires[key] = now.Add(ttl)
	return true, nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.expires, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) IsClaimed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held(key, s.now()), nil
}

// Close stops the sweeper. Further calls are no-ops.
func (s *MemoryStore) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
	return nil
}

// Len counts stored claims, expired ones included until the next sweep.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expires)
}

func (s *MemoryStore) sweepLoop(every time.Duration) {
	defer s.wg.Done()
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key := range s.expires {
		if !s.held(key, now) {
			delete(s.expires, key)
		}
	}
}

var _ shared.IdempotencyStore = (*MemoryStore)(nil)
