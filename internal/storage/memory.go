package storage

import (
	"context"
	"sync"

	"contas/internal/core"
)

// MemoryStore keeps the snapshot in process memory. Used by tests and by
// DATA_BACKEND=memory deployments where persistence is not wanted.
type MemoryStore struct {
	mu    sync.Mutex
	data  core.Ledger
	saved bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (core.Ledger, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return core.Ledger{}, false, nil
	}
	return s.data.Clone(), true, nil
}

func (s *MemoryStore) Save(_ context.Context, data core.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data.Clone()
	s.saved = true
	return nil
}
