package repository

import (
	"context"
	"sync"
	"time"

	domainoauth "github.com/tamara-re/Pinterest-Ranker-Backend/internal/domain/oauth"
)

var _ StateStore = (*MemoryStateStore)(nil)

// MemoryStateStore is a mutex-guarded in-process state store used for
// single-node deployments without Redis, and in tests. Expired records are
// dropped lazily on each write.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]domainoauth.AuthState
}

// NewMemoryStateStore creates an empty in-memory state store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]domainoauth.AuthState)}
}

func (s *MemoryStateStore) Save(_ context.Context, state domainoauth.AuthState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, record := range s.states {
		if now.After(record.ExpiresAt) {
			delete(s.states, key)
		}
	}

	s.states[state.State] = state
	return nil
}

func (s *MemoryStateStore) Consume(_ context.Context, state string) (domainoauth.AuthState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.states[state]
	if !ok {
		return domainoauth.AuthState{}, domainoauth.ErrInvalidState
	}
	delete(s.states, state)

	if time.Now().After(record.ExpiresAt) {
		return domainoauth.AuthState{}, domainoauth.ErrInvalidState
	}
	return record, nil
}
