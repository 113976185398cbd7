package cache

import (
	"context"
	"sync"
	"time"
)

// memoryStore - repli local quand REDIS_HOST n'est pas configuré
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data       []byte
	freshUntil time.Time
}

func NewMemory() Store {
	return &memoryStore{entries: map[string]memoryEntry{}}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.data, time.Now().Before(e.freshUntil)
}

func (s *memoryStore) Set(_ context.Context, key string, data []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{data: data, freshUntil: time.Now().Add(ttl)}
}

func (s *memoryStore) Close() error {
	return nil
}
