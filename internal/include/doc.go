// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package include expands #include directives in shader source.
//
// Expansion is line based. An #include line is replaced by the recursively
// expanded text of the named file, framed by #line markers: "#line 1" at
// the top of the inlined file and "#line n" afterwards, where n restores
// the includer's count. #version and #extension lines are moved into a
// preamble shared by the whole include graph and replaced by a marker.
// Every other line is copied verbatim.
//
// All per-request state (body, preamble, include stack, diagnostics) lives
// in a Unit. Failed includes are recorded on the Unit and expansion
// continues with nothing inlined.
package include
