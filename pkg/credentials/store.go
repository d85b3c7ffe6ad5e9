// Package credentials provides read access to the named slots that hold the
// bearer tokens written by the login flows.
package credentials

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when a slot holds no value.
var ErrNotFound = errors.New("credential slot not found")

// Store is a read-only view over credential slots.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
}

// MemoryStore keeps slots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemoryStore seeds a store with the given slots.
func NewMemoryStore(seed map[string]string) *MemoryStore {
	slots := make(map[string]string, len(seed))
	for k, v := range seed {
		slots[k] = v
	}
	return &MemoryStore{slots: slots}
}

// Get returns the slot value or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.slots[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set writes a slot. Used by login flows and tests.
func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = value
}

// Delete removes a slot.
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
}

// Layered consults each store in order for every key, mirroring session
// storage shadowing local storage.
type Layered []Store

// Get returns the first non-empty value across layers.
func (l Layered) Get(ctx context.Context, key string) (string, error) {
	var lastErr error
	for _, store := range l {
		if store == nil {
			continue
		}
		value, err := store.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				lastErr = err
			}
			continue
		}
		if value != "" {
			return value, nil
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", ErrNotFound
}
