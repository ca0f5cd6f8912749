// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package include

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"github.com/gogpu/shaderfx/internal/cache"
)

// Sentinel errors for include resolution.
var (
	// ErrMissingInclude is returned when an included bare name is not
	// indexed or its file cannot be read.
	ErrMissingInclude = errors.New("shaderfx: missing include")

	// ErrCircularInclude is returned when a file includes itself,
	// directly or transitively.
	ErrCircularInclude = errors.New("shaderfx: circular include")
)

// Error describes a failed #include directive.
type Error struct {
	File string // including file
	Line int    // line of the directive in File
	Name string // header name or key, as written
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: include %s: %v", e.File, e.Line, e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Names resolves bare file names to paths.
type Names interface {
	Resolve(name string) (string, bool)
}

// Resolver expands #include directives and hoists preamble directives.
//
// A Resolver holds no per-request state; all of it lives in the Unit.
// Texts memoizes decoded file contents by path and may be shared between
// resolvers. A nil Texts reads the file on every Load.
type Resolver struct {
	FS    afero.Fs
	Names Names
	Keys  KeyLookup
	Texts *cache.Store[string, string]
	Log   *slog.Logger
}

// Load returns the decoded text of the file at path.
func (r *Resolver) Load(path string) (string, error) {
	read := func() (string, error) {
		raw, err := afero.ReadFile(r.FS, path)
		if err != nil {
			return "", err
		}
		text, err := Decode(raw)
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", path, err)
		}
		r.logger().Debug("shaderfx: loaded source", "path", path, "bytes", len(raw))
		return text, nil
	}
	if r.Texts == nil {
		return read()
	}
	return r.Texts.GetOrLoad(path, read)
}

// Handle processes one source line at origin o. next is the line number
// the following source line must be reported as; it is written into the
// markers that replace hoisted directives and close inlined files.
func (r *Resolver) Handle(u *Unit, o Origin, line string, next int) {
	switch Classify(line) {
	case Hoisted:
		u.Hoist(line, o)
		u.Marker(next, o)
	case Include:
		r.include(u, o, line)
		u.Marker(next, o)
	default:
		u.Emit(line, o)
	}
}

// Expand inlines the file at path into u. The expansion starts with a
// "#line 1" marker so the file counts from its own first line.
func (r *Resolver) Expand(u *Unit, path string) error {
	text, err := r.Load(path)
	if err != nil {
		return err
	}

	u.push(path)
	defer u.pop()

	u.Marker(1, Origin{File: path})
	n := 0
	for line := range Lines(text) {
		n++
		r.Handle(u, Origin{File: path, Line: n}, line, n+1)
	}
	return nil
}

func (r *Resolver) include(u *Unit, o Origin, line string) {
	directive := strings.TrimSpace(strings.TrimPrefix(line, includePrefix))

	name, err := HeaderName(line, r.Keys)
	if err != nil {
		r.fail(u, o, directive, err)
		return
	}

	path, ok := r.Names.Resolve(name)
	if !ok {
		r.fail(u, o, name, fmt.Errorf("%w: %s", ErrMissingInclude, name))
		return
	}

	if u.onStack(path) {
		chain := append(u.Stack(), path)
		r.fail(u, o, name, fmt.Errorf("%w: %s", ErrCircularInclude, strings.Join(chain, " -> ")))
		return
	}

	if err := r.Expand(u, path); err != nil {
		r.fail(u, o, name, fmt.Errorf("%w: %w", ErrMissingInclude, err))
	}
}

func (r *Resolver) fail(u *Unit, o Origin, name string, err error) {
	e := &Error{File: o.File, Line: o.Line, Name: name, Err: err}
	r.logger().Warn("shaderfx: include failed",
		"file", o.File, "line", o.Line, "name", name, "err", err)
	u.Fail(e)
}

func (r *Resolver) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return discard
}

// discard is used when no logger is set.
var discard = slog.New(slog.DiscardHandler)
