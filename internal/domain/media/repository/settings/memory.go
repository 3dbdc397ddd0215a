// Package settings stores per-user delivery preferences
package settings

import (
	"sync"

	"github.com/Conte777/tgmedia-bot/internal/domain/media/entities"
)

// MemoryStore is a process-scoped settings store.
// Settings are intentionally not persisted: they reset on restart,
// matching the bot's original behavior.
type MemoryStore struct {
	data map[int64]entities.UserSettings
	mu   sync.RWMutex
}

// NewMemoryStore creates a new settings store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[int64]entities.UserSettings),
	}
}

// Get returns the user's settings, defaults for unknown users
func (s *MemoryStore) Get(userID int64) entities.UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if settings, ok := s.data[userID]; ok {
		return settings
	}
	return entities.DefaultSettings()
}

// Set stores the user's settings
func (s *MemoryStore) Set(userID int64, settings entities.UserSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[userID] = settings
}
