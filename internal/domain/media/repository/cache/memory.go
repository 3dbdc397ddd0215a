// Package cache contains the URL -> telegram file_id cache stores
package cache

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Conte777/tgmedia-bot/internal/domain/media/entities"
)

// MemoryStore is the default process-scoped cache implementation
type MemoryStore struct {
	data   map[string]entities.CacheEntry
	mu     sync.RWMutex
	logger zerolog.Logger
}

// NewMemoryStore creates a new in-memory cache store
func NewMemoryStore(logger zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		data:   make(map[string]entities.CacheEntry),
		logger: logger,
	}
}

// Get returns the cached entry for key, or (nil, nil) on a miss
func (s *MemoryStore) Get(_ context.Context, key string) (*entities.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Put stores an entry, overwriting any previous value for its key
func (s *MemoryStore) Put(_ context.Context, entry *entities.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[entry.Key] = *entry
	return nil
}

// Close releases the store. The map stays allocated: deliveries
// detached from the update loop may still write during shutdown.
func (s *MemoryStore) Close() error {
	s.logger.Debug().Msg("Memory cache store closed")
	return nil
}
