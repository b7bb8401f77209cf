package session

import (
	"context"
	"sync"
)

// MemoryHistoryStore is an in-process HistoryStore for development and tests.
type MemoryHistoryStore struct {
	mu    sync.RWMutex
	turns map[string][]Turn
}

// NewMemoryHistoryStore creates an empty in-memory history store.
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{turns: make(map[string][]Turn)}
}

func (s *MemoryHistoryStore) Append(_ context.Context, sessionID string, turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[sessionID] = append(s.turns[sessionID], turn)
	return nil
}

func (s *MemoryHistoryStore) List(_ context.Context, sessionID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.turns[sessionID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}
