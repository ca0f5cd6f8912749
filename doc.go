// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shaderfx assembles shader source from effect files.
//
// # Overview
//
// An effect file packs several shader stages into one file, separated by
// "-- Name" marker lines. shaderfx finds such files by bare name under a
// root directory, splits them into sections, inlines #include directives,
// hoists #version and #extension lines and prepends the define block.
// The result is ready-to-compile text whose #line markers still point at
// the original files.
//
// # Quick Start
//
//	m, err := shaderfx.New(shaderfx.WithRoot("Data/Shaders"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Data/Shaders/**/Blur.glsl, section "-- Fragment"
//	text, err := m.Get("Blur.Fragment")
//
// # Identifiers
//
// A composite identifier is "<base>.<section>". The base is looked up as
// "<base>.glsl" in the index; the section selects a "-- section" block.
// A file without markers is a single section named "<base>.glsl".
// The split happens at the first dot, so base names cannot contain dots.
//
// # Caching
//
// The first request for any section of a file parses the whole file and
// caches every section it defines. Cached text never changes for the
// lifetime of the Manager, even if defines are changed or the file is
// edited later.
//
// # Errors
//
// Unknown files and sections are hard errors (ErrFileNotIndexed,
// ErrSectionNotFound). Broken includes are soft: Get returns the text
// assembled so far together with ErrMissingInclude, ErrUndefinedKey or
// ErrCircularInclude, so the compiler can still report the real error at
// a known line.
//
// # Compiling
//
// BuildProgram infers each stage from its identifier and hands the text
// to a Compiler. Backends live in sub-packages and register themselves:
//
//	import _ "github.com/gogpu/shaderfx/backend/naga"
//
//	c, _ := shaderfx.NewCompiler("naga")
//	prog, err := m.BuildProgram(c, "Blur.Vertex", "Blur.Fragment")
package shaderfx

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
