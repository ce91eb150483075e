package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used by tests and single-node dev runs.
type MemoryStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	states map[int64]entry
}

type entry struct {
	state   State
	expires time.Time
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{ttl: ttl, states: make(map[int64]entry)}
}

func (s *MemoryStore) Get(_ context.Context, chatID int64) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.states[chatID]
	if !ok {
		return nil, nil
	}
	if time.Now().After(e.expires) {
		delete(s.states, chatID)
		return nil, nil
	}
	st := e.state
	return &st, nil
}

func (s *MemoryStore) Set(_ context.Context, chatID int64, st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[chatID] = entry{state: *st, expires: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, chatID)
	return nil
}
