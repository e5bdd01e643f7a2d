package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// memoryStore keeps the serialized blobs in a map. It backs local
// development without a Redis or Postgres instance and the service tests.
// Values still round-trip through JSON so callers observe the same
// serialization behavior as the durable backends.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string][]byte)}
}

func (s *memoryStore) Save(ctx context.Context, key string, value any) error {

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = data

	return nil
}

func (s *memoryStore) Load(ctx context.Context, key string, dest any) (bool, error) {

	s.mu.RLock()
	data, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal data for key %s: %w", key, err)
	}

	return true, nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)

	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
