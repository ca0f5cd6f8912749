// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Sentinel errors for the index package.
var (
	// ErrNotIndexed is returned when a bare file name was never seen during a scan.
	ErrNotIndexed = errors.New("shaderfx: file not indexed")

	// ErrNameCollision is returned by a strict scan that finds two files
	// sharing one bare name.
	ErrNameCollision = errors.New("shaderfx: duplicate shader file name")
)

// CollisionPolicy decides what a scan does when two files share a bare name.
type CollisionPolicy int

const (
	// LastWins keeps the most recently scanned path. Walk order is lexical,
	// so the winner is deterministic.
	LastWins CollisionPolicy = iota

	// Fail aborts the scan with a *CollisionError.
	Fail
)

// String returns the policy name.
func (p CollisionPolicy) String() string {
	switch p {
	case LastWins:
		return "last-wins"
	case Fail:
		return "fail"
	default:
		return fmt.Sprintf("CollisionPolicy(%d)", int(p))
	}
}

// Collision records two paths that share one bare name.
type Collision struct {
	Name     string
	Previous string
	Path     string
}

// CollisionError is returned by a strict scan on duplicate bare names.
type CollisionError struct {
	Collision
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("shaderfx: duplicate shader file name %q: %s and %s", e.Name, e.Previous, e.Path)
}

// Unwrap returns ErrNameCollision.
func (e *CollisionError) Unwrap() error { return ErrNameCollision }

// Index maps bare file names (e.g. "Blur.glsl") to full paths
// (e.g. "Data/Shaders/PostProcessing/Blur.glsl").
//
// An Index is immutable once built and safe for concurrent reads.
type Index struct {
	root       string
	ext        string
	paths      map[string]string
	collisions []Collision
}

// Build scans root recursively and indexes every regular file whose
// extension equals ext. Directory structure is irrelevant to the result,
// only bare names matter.
func Build(fsys afero.Fs, root, ext string, policy CollisionPolicy) (*Index, error) {
	idx := &Index{
		root:  root,
		ext:   ext,
		paths: make(map[string]string),
	}

	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ext {
			return nil
		}

		name := filepath.Base(path)
		if prev, ok := idx.paths[name]; ok {
			c := Collision{Name: name, Previous: prev, Path: path}
			if policy == Fail {
				return &CollisionError{Collision: c}
			}
			idx.collisions = append(idx.collisions, c)
		}
		idx.paths[name] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", root, err)
	}

	return idx, nil
}

// Resolve returns the full path for a bare file name.
func (idx *Index) Resolve(name string) (string, bool) {
	path, ok := idx.paths[name]
	return path, ok
}

// Root returns the scanned root directory.
func (idx *Index) Root() string { return idx.root }

// Ext returns the indexed extension, including the leading dot.
func (idx *Index) Ext() string { return idx.ext }

// Len returns the number of indexed names.
func (idx *Index) Len() int { return len(idx.paths) }

// Names returns all indexed bare names in sorted order.
func (idx *Index) Names() []string {
	names := make([]string, 0, len(idx.paths))
	for name := range idx.paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Collisions returns the bare names that were overwritten during a
// last-wins scan, in scan order.
func (idx *Index) Collisions() []Collision {
	return idx.collisions
}
