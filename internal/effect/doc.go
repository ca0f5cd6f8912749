// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package effect splits effect files into named shader sections.
//
// An effect file packs several stages into one file, separated by marker
// lines:
//
//	#include "Common.glsl"
//
//	-- Vertex
//	#version 430
//	void main() { ... }
//
//	-- Fragment
//	#version 430
//	void main() { ... }
//
// The parser is a two-state machine (preamble, in-section) over a line
// sequence. It does no I/O itself: every non-marker line goes to a
// Handler, which in production is an include.Resolver.
package effect
