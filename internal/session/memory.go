package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, id string, _ int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.sessions[id] = s.now().Add(ttl)
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.sessions[id]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expires) {
		delete(s.sessions, id)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// sweepLocked drops expired entries. Caller holds mu.
func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for id, expires := range s.sessions {
		if !now.Before(expires) {
			delete(s.sessions, id)
		}
	}
}
