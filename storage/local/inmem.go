package localstore

import (
	"sync"

	"github.com/trezcool/darasa/core/session"
)

// MemStorage is an in-memory Storage, for tests and ephemeral sessions.
type MemStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

var _ session.Storage = (*MemStorage)(nil) // interface compliance check

func NewMemStorage() *MemStorage {
	return &MemStorage{values: make(map[string][]byte)}
}

func (ms *MemStorage) Persist(key string, value []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	ms.values[key] = cp
	return nil
}

func (ms *MemStorage) Read(key string) ([]byte, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	value, ok := ms.values[key]
	if !ok {
		return nil, session.ErrNoValue
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

func (ms *MemStorage) Remove(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.values, key)
	return nil
}
