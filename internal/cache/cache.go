// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"sync"
	"sync/atomic"
)

// Store is a generic thread-safe write-once map.
// The first value inserted for a key is kept for the lifetime of the store.
//
// Store is safe for concurrent use.
// Store must not be copied after creation (has mutex).
type Store[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V

	// Statistics, counted by Get only.
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates an empty store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		entries: make(map[K]V),
	}
}

// Get retrieves a value and records a hit or a miss.
// Returns (value, true) if found, (zero, false) otherwise.
func (s *Store[K, V]) Get(key K) (V, bool) {
	v, ok := s.Peek(key)
	if ok {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	return v, ok
}

// Peek retrieves a value without touching statistics.
func (s *Store[K, V]) Peek(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.entries[key]
	return v, ok
}

// Insert stores value under key unless key is already present.
// Returns true if the value was stored.
func (s *Store[K, V]) Insert(key K, value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		return false
	}
	s.entries[key] = value
	return true
}

// GetOrLoad returns the stored value or loads and stores it.
// Thread-safe: load is called under lock to prevent duplicate loading.
// A failed load stores nothing.
func (s *Store[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.entries[key]; ok {
		return v, nil
	}

	v, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	s.entries[key] = v
	return v, nil
}

// Len returns the number of entries.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Stats returns store statistics.
func (s *Store[K, V]) Stats() Stats {
	hits := s.hits.Load()
	misses := s.misses.Load()

	st := Stats{
		Len:    s.Len(),
		Hits:   hits,
		Misses: misses,
	}
	if total := hits + misses; total > 0 {
		st.HitRate = float64(hits) / float64(total)
	}
	return st
}

// Stats contains store statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Hits is the number of Get calls that found their key.
	Hits uint64
	// Misses is the number of Get calls that did not.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0.0 to 1.0.
	HitRate float64
}
