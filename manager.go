// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderfx

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/gogpu/shaderfx/internal/cache"
	"github.com/gogpu/shaderfx/internal/defines"
	"github.com/gogpu/shaderfx/internal/effect"
	"github.com/gogpu/shaderfx/internal/include"
	"github.com/gogpu/shaderfx/internal/index"
)

// Manager resolves composite identifiers to ready-to-compile shader text.
//
// A Manager owns the file index, the define table and the source cache.
// Resolved sections are cached for the lifetime of the Manager and never
// change once cached.
//
// Manager is safe for concurrent use.
type Manager struct {
	opts options

	mu  sync.RWMutex
	idx *index.Index

	defs *defines.Table

	// texts memoizes decoded file contents by path.
	texts *cache.Store[string, string]
	// sources maps composite ids to resolved sections.
	sources *cache.Store[string, *Source]
	// files maps parsed effect file paths to their section ids.
	files *cache.Store[string, []string]

	flight singleflight.Group
}

// New creates a Manager. It indexes the root directory, then loads the
// global defines file, so every section observes the global block.
func New(opts ...Option) (*Manager, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manager{
		opts:    o,
		defs:    defines.New(),
		texts:   cache.New[string, string](),
		sources: cache.New[string, *Source](),
		files:   cache.New[string, []string](),
	}
	for k, v := range o.defines {
		m.defs.Set(k, v)
	}

	if err := m.Reindex(); err != nil {
		return nil, err
	}
	if err := m.loadGlobalDefines(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reindex rescans the root directory and swaps in the new index.
// Cached sections are kept; files added since the last scan become
// resolvable.
func (m *Manager) Reindex() error {
	idx, err := index.Build(m.opts.fs, m.opts.root, m.opts.ext, m.opts.collisions)
	if err != nil {
		return err
	}

	log := m.logger()
	for _, c := range idx.Collisions() {
		log.Warn("shaderfx: duplicate shader file name", "name", c.Name, "kept", c.Path, "dropped", c.Previous)
	}

	m.mu.Lock()
	m.idx = idx
	m.mu.Unlock()

	log.Info("shaderfx: index built", "root", idx.Root(), "files", idx.Len())
	return nil
}

func (m *Manager) loadGlobalDefines() error {
	name := m.opts.globalDefines
	if name == "" {
		return nil
	}

	idx := m.index()
	path, ok := idx.Resolve(name)
	if !ok {
		m.logger().Debug("shaderfx: no global defines file", "name", name)
		return nil
	}

	text, err := m.resolver(idx).Load(path)
	if err != nil {
		return fmt.Errorf("shaderfx: global defines %s: %w", path, err)
	}
	m.defs.SetGlobalBlock(text)
	return nil
}

// Get returns the text of the section named by id ("Blur.Fragment").
// An id without a dot names the unnamed section of a file without
// markers ("Blur" is "Blur.glsl").
//
// If includes failed while the section was resolved, Get returns the
// best-effort text together with the joined diagnostics. Unknown files
// and sections return "" and a *LookupError.
func (m *Manager) Get(id string) (string, error) {
	src, err := m.Lookup(id)
	if err != nil {
		return "", err
	}
	return src.Text, src.Err()
}

// Lookup returns the resolved section named by id.
//
// On a cache miss the section's file is parsed once and every section
// it defines is cached. A failed lookup caches nothing.
func (m *Manager) Lookup(id string) (*Source, error) {
	base, full := splitID(id, m.opts.ext)
	if src, ok := m.sources.Get(full); ok {
		return src, nil
	}

	if _, err := m.load(base); err != nil {
		m.logger().Warn("shaderfx: lookup failed", "id", id, "err", err)
		return nil, &LookupError{ID: id, Err: err}
	}

	if src, ok := m.sources.Peek(full); ok {
		return src, nil
	}
	m.logger().Warn("shaderfx: section not found", "id", id)
	return nil, &LookupError{ID: id, Err: ErrSectionNotFound}
}

// Sections returns the section ids defined by a file, in file order.
// file is a bare name with or without the extension.
func (m *Manager) Sections(file string) ([]string, error) {
	base := strings.TrimSuffix(file, m.opts.ext)
	ids, err := m.load(base)
	if err != nil {
		return nil, &LookupError{ID: file, Err: err}
	}
	return slices.Clone(ids), nil
}

// Locate maps a 1-based line of a section's text to its origin.
func (m *Manager) Locate(id string, line int) (Origin, error) {
	src, err := m.Lookup(id)
	if err != nil {
		return Origin{}, err
	}
	return src.Locate(line)
}

// load parses the effect file for base unless it was parsed already and
// returns its section ids. Concurrent loads of one file share one parse.
func (m *Manager) load(base string) ([]string, error) {
	idx := m.index()
	name := base + idx.Ext()
	path, ok := idx.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotIndexed, name)
	}

	if ids, ok := m.files.Peek(path); ok {
		return ids, nil
	}

	v, err, _ := m.flight.Do(path, func() (any, error) {
		if ids, ok := m.files.Peek(path); ok {
			return ids, nil
		}
		return m.parse(idx, base, path)
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (m *Manager) parse(idx *index.Index, base, path string) ([]string, error) {
	r := m.resolver(idx)
	text, err := r.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	p := &effect.Parser{
		Handler:   r,
		Numbering: m.opts.numbering,
		Ext:       idx.Ext(),
		Log:       m.logger(),
	}
	sections := p.Parse(base, path, include.Lines(text), m.defs.Render())

	ids := make([]string, 0, len(sections))
	for i := range sections {
		s := &sections[i]
		if !m.sources.Insert(s.ID, newSource(s)) {
			m.logger().Debug("shaderfx: section already cached", "id", s.ID, "file", path)
		}
		ids = append(ids, s.ID)
	}
	m.files.Insert(path, ids)

	m.logger().Debug("shaderfx: parsed effect file", "path", path, "sections", len(ids))
	return ids, nil
}

func (m *Manager) resolver(idx *index.Index) *include.Resolver {
	return &include.Resolver{
		FS:    m.opts.fs,
		Names: idx,
		Keys:  m.defs,
		Texts: m.texts,
		Log:   m.logger(),
	}
}

// SetDefine registers or replaces a define. Sections already cached keep
// the define block they were resolved with.
func (m *Manager) SetDefine(key, value string) {
	m.defs.Set(key, value)
}

// RemoveDefine removes a define and reports whether it was registered.
func (m *Manager) RemoveDefine(key string) bool {
	return m.defs.Delete(key)
}

// Defines returns the registered define keys in sorted order.
func (m *Manager) Defines() []string {
	return m.defs.Keys()
}

// DefineBlock returns the block prepended to newly resolved sections.
func (m *Manager) DefineBlock() string {
	return m.defs.Render()
}

// Files returns the indexed bare file names in sorted order.
func (m *Manager) Files() []string {
	return m.index().Names()
}

// Path returns the full path of an indexed bare file name.
func (m *Manager) Path(name string) (string, error) {
	path, ok := m.index().Resolve(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrFileNotIndexed, name)
	}
	return path, nil
}

// Root returns the indexed root directory.
func (m *Manager) Root() string { return m.opts.root }

// Stats reports cache statistics.
type Stats struct {
	// Files is the number of indexed shader files.
	Files int
	// Loaded is the number of files read and held in memory.
	Loaded int
	// Parsed is the number of effect files split into sections.
	Parsed int
	// Sections is the number of cached sections.
	Sections int
	// Hits and Misses count section lookups.
	Hits   uint64
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0.0 to 1.0.
	HitRate float64
}

// Stats returns a snapshot of the cache statistics.
func (m *Manager) Stats() Stats {
	st := m.sources.Stats()
	return Stats{
		Files:    m.index().Len(),
		Loaded:   m.texts.Len(),
		Parsed:   m.files.Len(),
		Sections: st.Len,
		Hits:     st.Hits,
		Misses:   st.Misses,
		HitRate:  st.HitRate,
	}
}

func (m *Manager) index() *index.Index {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idx
}

func (m *Manager) logger() *slog.Logger {
	if m.opts.logger != nil {
		return m.opts.logger
	}
	return Logger()
}
