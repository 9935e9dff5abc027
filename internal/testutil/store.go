package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned by the raw store; typed stores wrap it into the
// application error taxonomy.
var ErrNotFound = errors.New("item not found")

// ErrAlreadyExists is returned when creating over an existing key.
var ErrAlreadyExists = errors.New("item already exists")

// InMemoryStore is a generic thread-safe map-backed store for tests.
type InMemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore[T any]() *InMemoryStore[T] {
	return &InMemoryStore[T]{items: make(map[string]T)}
}

// Create inserts an item, failing if the key is taken.
func (s *InMemoryStore[T]) Create(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; ok {
		return ErrAlreadyExists
	}
	s.items[id] = item
	return nil
}

// CreateIfAbsent inserts the item only when the key is free and reports
// whether the insert happened. This mirrors a SETNX-style reservation.
func (s *InMemoryStore[T]) CreateIfAbsent(ctx context.Context, id string, item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; ok {
		return false
	}
	s.items[id] = item
	return true
}

// Get returns the item for the key.
func (s *InMemoryStore[T]) Get(ctx context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return item, nil
}

// Update overwrites the item for the key, failing if it does not exist.
func (s *InMemoryStore[T]) Update(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	s.items[id] = item
	return nil
}

// Delete removes the item for the key.
func (s *InMemoryStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// List returns every item, ordered by key for determinism.
func (s *InMemoryStore[T]) List(ctx context.Context) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.items[k])
	}
	return out
}

// Clear empties the store.
func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
}
