package session

import (
	"context"
	"sync"
	"time"

	"exam-quiz-skill/config"
	"exam-quiz-skill/pkg/logger"
)

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// MemoryStore keeps sessions in process memory. Entries idle for longer
// than ttl are dropped; a ttl of zero keeps them forever.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]memoryEntry
	ttl    time.Duration
	now    func() time.Time
	stopCh chan struct{}
	once   sync.Once
}

// NewMemoryStore starts a store with a background janitor that runs every
// cleanupInterval. Call Close to stop it.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	s := &MemoryStore{
		data:   make(map[string]memoryEntry),
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go s.cleanupLoop(cleanupInterval)
	return s
}

func (s *MemoryStore) Get(_ context.Context, id string) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok || e.expired(s.now()) {
		return State{}, ErrNotFound
	}
	return e.state, nil
}

func (s *MemoryStore) Put(_ context.Context, id string, st State) error {
	e := memoryEntry{state: st}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.data[id] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	n := 0
	for _, e := range s.data {
		if !e.expired(now) {
			n++
		}
	}
	return n, nil
}

// Close stops the janitor. It is safe to call more than once.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stopCh) })
	return nil
}

func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *MemoryStore) cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	expired := 0
	for id, e := range s.data {
		if e.expired(now) {
			delete(s.data, id)
			expired++
		}
	}
	if expired > 0 {
		logger.WithModule(config.ModuleSession).Debugf("memory store: evicted %d expired sessions", expired)
	}
	return expired
}
