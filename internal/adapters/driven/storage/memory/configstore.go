package memory

import (
	"sync"

	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map. Nothing is written to disk.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore returns an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

func (s *ConfigStore) Lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

func (s *ConfigStore) Unset(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

func (s *ConfigStore) Path() string {
	return ":memory:"
}
