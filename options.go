// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderfx

import (
	"io"
	"log/slog"
	"maps"
	"time"

	"github.com/spf13/afero"

	"github.com/gogpu/shaderfx/internal/effect"
	"github.com/gogpu/shaderfx/internal/index"
)

// LineNumbering selects how section lines are numbered in #line markers.
type LineNumbering = effect.Numbering

const (
	// SectionLines restarts the count at 1 after every "-- Name" marker.
	SectionLines = effect.SectionLines
	// FileLines keeps the physical line numbers of the effect file.
	FileLines = effect.FileLines
)

// CollisionPolicy decides what indexing does when two files share a
// bare name.
type CollisionPolicy = index.CollisionPolicy

const (
	// CollisionLastWins keeps the last path in lexical walk order and
	// logs a warning.
	CollisionLastWins = index.LastWins
	// CollisionFail aborts indexing with ErrNameCollision.
	CollisionFail = index.Fail
)

// Defaults.
const (
	DefaultExtension         = ".glsl"
	DefaultGlobalDefinesFile = "GlobalDefines.glsl"
	DefaultWatchDebounce     = 100 * time.Millisecond
)

// Option configures a Manager during creation.
//
// Example:
//
//	m, err := shaderfx.New(
//	    shaderfx.WithRoot("Data/Shaders"),
//	    shaderfx.WithDefine("MAX_LIGHTS", "8"),
//	)
type Option func(*options)

// options holds optional configuration for Manager creation.
type options struct {
	fs            afero.Fs
	root          string
	ext           string
	globalDefines string
	defines       map[string]string
	numbering     LineNumbering
	collisions    CollisionPolicy
	logger        *slog.Logger
	dump          io.Writer
	debounce      time.Duration
}

// defaultOptions returns the default manager options.
func defaultOptions() options {
	return options{
		fs:            afero.NewOsFs(),
		root:          ".",
		ext:           DefaultExtension,
		globalDefines: DefaultGlobalDefinesFile,
		defines:       make(map[string]string),
		numbering:     SectionLines,
		collisions:    CollisionLastWins,
		debounce:      DefaultWatchDebounce,
	}
}

// WithFS sets the file system shader files are read from.
// The default is the operating system file system.
func WithFS(fsys afero.Fs) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithRoot sets the directory scanned for shader files.
func WithRoot(root string) Option {
	return func(o *options) {
		o.root = root
	}
}

// WithExtension sets the shader file extension, including the dot.
func WithExtension(ext string) Option {
	return func(o *options) {
		o.ext = ext
	}
}

// WithGlobalDefinesFile sets the bare name of the global defines file.
// An empty name disables the global block.
func WithGlobalDefinesFile(name string) Option {
	return func(o *options) {
		o.globalDefines = name
	}
}

// WithDefine registers a define before the first resolution.
func WithDefine(key, value string) Option {
	return func(o *options) {
		o.defines[key] = value
	}
}

// WithDefines registers several defines.
func WithDefines(defs map[string]string) Option {
	return func(o *options) {
		maps.Copy(o.defines, defs)
	}
}

// WithLineNumbering sets how section lines are numbered.
func WithLineNumbering(n LineNumbering) Option {
	return func(o *options) {
		o.numbering = n
	}
}

// WithCollisionPolicy sets the duplicate bare name policy.
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(o *options) {
		o.collisions = p
	}
}

// WithLogger sets a logger for this Manager only.
// Without it the Manager logs through the package Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDump makes BuildProgram write every assembled stage to w before
// compiling it.
func WithDump(w io.Writer) Option {
	return func(o *options) {
		o.dump = w
	}
}

// WithWatchDebounce sets how long the watcher waits for file events to
// settle before re-indexing.
func WithWatchDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}
