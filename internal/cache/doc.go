// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides a generic write-once store.
//
// # Store[K, V]
//
// A thread-safe map whose entries, once inserted, are never replaced or
// evicted. It backs both the resolved-source cache and the raw file text
// memo of the shader manager, where contents are small and bounded by the
// number of distinct shader stages and files actually requested.
//
//	s := cache.New[string, string]()
//	s.Insert("Blur.Fragment", text)
//	text, ok := s.Get("Blur.Fragment")
//
// # Thread Safety
//
// Store is safe for concurrent use and must not be copied after creation.
// GetOrLoad runs the loader under the store lock so two callers never load
// the same key twice.
package cache
