// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package defines holds the preprocessor environment shared by every
// resolved shader: an opaque global block plus a key/value table.
package defines

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUndefinedKey is returned when a symbolic key is not registered.
var ErrUndefinedKey = errors.New("shaderfx: undefined define key")

// Table is the define table.
//
// Table is safe for concurrent use.
type Table struct {
	mu     sync.RWMutex
	global string
	values map[string]string
}

// New creates an empty table.
func New() *Table {
	return &Table{values: make(map[string]string)}
}

// SetGlobalBlock stores the global define block verbatim.
func (t *Table) SetGlobalBlock(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.global = text
}

// GlobalBlock returns the global define block.
func (t *Table) GlobalBlock() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.global
}

// Set registers or replaces key.
func (t *Table) Set(key, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.values[key] = value
}

// Delete removes key and reports whether it was present.
func (t *Table) Delete(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.values[key]; !ok {
		return false
	}
	delete(t.values, key)
	return true
}

// Lookup returns the value bound to key.
func (t *Table) Lookup(key string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUndefinedKey, key)
	}
	return v, nil
}

// Keys returns the registered keys in sorted order.
func (t *Table) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sortedKeys()
}

// Render returns one "#define <key> <value>" line per registered key,
// in key order, followed by the global block. The result is empty or
// ends with a newline.
func (t *Table) Render() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var sb strings.Builder
	for _, k := range t.sortedKeys() {
		sb.WriteString("#define ")
		sb.WriteString(k)
		sb.WriteByte(' ')
		sb.WriteString(t.values[k])
		sb.WriteByte('\n')
	}
	sb.WriteString(t.global)
	if t.global != "" && !strings.HasSuffix(t.global, "\n") {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Caller must hold t.mu.
func (t *Table) sortedKeys() []string {
	keys := make([]string, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
