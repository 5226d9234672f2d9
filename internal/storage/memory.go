package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process store for tests and local CLI runs.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string

	// FailOps forces errors for the listed operations ("get", "set",
	// "delete"). Test hook only.
	FailOps map[string]error
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

// Get retrieves the value for key
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := s.failure("get"); err != nil {
		return "", false, &StorageError{Op: "get", Key: key, Err: err}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, found := s.data[key]
	return value, found, nil
}

// Set writes the value for key
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := s.failure("set"); err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

// Delete removes the key
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := s.failure("delete"); err != nil {
		return &StorageError{Op: "delete", Key: key, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Len returns the number of stored keys
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) failure(op string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailOps == nil {
		return nil
	}
	return s.FailOps[op]
}
