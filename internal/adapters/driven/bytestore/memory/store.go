// Package memory provides an in-memory byte store for tests and
// ephemeral use.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ByteStore = (*Store)(nil)

// Store keeps deck files in a map guarded by a mutex.
type Store struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		files: make(map[string][]byte),
	}
}

// Put stores data under key, overwriting any existing value.
func (s *Store) Put(_ context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.files[key] = buf
	return nil
}

// List returns matching keys in sorted order.
func (s *Store) List(_ context.Context, extensions ...string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.files))
	for key := range s.files {
		if matchesExtension(key, extensions) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Get returns the bytes stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNotFound, key)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// Delete removes the value stored under key.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[key]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrNotFound, key)
	}
	delete(s.files, key)
	return nil
}

func matchesExtension(key string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	lower := strings.ToLower(key)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
