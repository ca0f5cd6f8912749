// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderfx

import (
	"errors"
	"fmt"

	"github.com/gogpu/shaderfx/internal/defines"
	"github.com/gogpu/shaderfx/internal/include"
	"github.com/gogpu/shaderfx/internal/index"
)

// Sentinel errors. All errors returned by shaderfx wrap one of these and
// can be tested with errors.Is.
var (
	// ErrFileNotIndexed is returned when a bare file name was never seen
	// during indexing.
	ErrFileNotIndexed = index.ErrNotIndexed

	// ErrSectionNotFound is returned when a file exists but does not
	// define the requested section.
	ErrSectionNotFound = errors.New("shaderfx: section not found")

	// ErrMissingInclude is reported when an included file is not indexed.
	ErrMissingInclude = include.ErrMissingInclude

	// ErrUndefinedKey is reported when an #include names an unregistered
	// define key.
	ErrUndefinedKey = defines.ErrUndefinedKey

	// ErrCircularInclude is reported when a file includes itself,
	// directly or transitively.
	ErrCircularInclude = include.ErrCircularInclude

	// ErrNameCollision is returned by New and Reindex under CollisionFail
	// when two files share a bare name.
	ErrNameCollision = index.ErrNameCollision

	// ErrUnknownStage is returned when a shader stage cannot be inferred
	// from a composite identifier.
	ErrUnknownStage = errors.New("shaderfx: unknown shader stage")

	// ErrCompilerNotFound is returned when no compiler is registered
	// under a name.
	ErrCompilerNotFound = errors.New("shaderfx: compiler not found")
)

// LookupError is returned by Get and Lookup for hard failures.
type LookupError struct {
	ID  string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("shaderfx: get %q: %v", e.ID, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// IncludeError describes a failed #include directive: the including file,
// the directive's line and the header name or key as written.
// It is recorded as a diagnostic, never returned alone.
type IncludeError = include.Error

// CompileError is a compiler failure mapped back to the source.
type CompileError struct {
	ID    string
	Stage Stage
	// Line is the line in the assembled text, 0 if the compiler did
	// not report one.
	Line int
	// Origin is where Line came from.
	Origin Origin
	Err    error
}

func (e *CompileError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("shaderfx: compile %s (%s): %v", e.ID, e.Stage, e.Err)
	}
	return fmt.Sprintf("shaderfx: compile %s (%s) at %s: %v", e.ID, e.Stage, e.Origin, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// CompilerNotFoundError indicates a named compiler is not registered.
type CompilerNotFoundError struct {
	Name string
}

func (e *CompilerNotFoundError) Error() string {
	return "shaderfx: compiler not found: " + e.Name
}

func (e *CompilerNotFoundError) Unwrap() error { return ErrCompilerNotFound }
