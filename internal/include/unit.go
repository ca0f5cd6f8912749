// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package include

import (
	"slices"
	"strconv"
	"strings"
)

// Origin locates a line in a physical source file.
// Line is 1-based; a zero Line means the text was synthesized
// (define block, markers for the top of an included file).
type Origin struct {
	File string
	Line int
}

// String returns "file:line", or just the file for synthesized text.
func (o Origin) String() string {
	if o.Line == 0 {
		return o.File
	}
	return o.File + ":" + strconv.Itoa(o.Line)
}

// Line is one line of assembled text and where it came from.
type Line struct {
	Text   string
	Origin Origin
}

// Unit accumulates the output of one top-level resolution: the body, the
// hoisted preamble shared by the whole include graph, and soft diagnostics.
// The include stack lives here too, so cycle detection is scoped to one
// request.
type Unit struct {
	Body        []Line
	Preamble    []Line
	Diagnostics []error

	hoisted map[string]struct{}
	stack   []string
}

// NewUnit creates a unit whose include stack starts with root.
// root is the effect file being parsed; it may be empty.
func NewUnit(root string) *Unit {
	u := &Unit{hoisted: make(map[string]struct{})}
	if root != "" {
		u.stack = append(u.stack, root)
	}
	return u
}

// Emit appends a body line.
func (u *Unit) Emit(text string, o Origin) {
	u.Body = append(u.Body, Line{Text: text, Origin: o})
}

// Marker appends a "#line n" directive so that the next body line is
// reported as line n.
func (u *Unit) Marker(n int, o Origin) {
	u.Emit(LineMarker(n), o)
}

// Hoist appends a version or extension directive to the preamble.
// A directive already hoisted in this unit is dropped.
func (u *Unit) Hoist(text string, o Origin) {
	key := strings.TrimRight(text, " \t")
	if _, ok := u.hoisted[key]; ok {
		return
	}
	u.hoisted[key] = struct{}{}
	u.Preamble = append(u.Preamble, Line{Text: text, Origin: o})
}

// Fail records a soft diagnostic.
func (u *Unit) Fail(err error) {
	u.Diagnostics = append(u.Diagnostics, err)
}

// Stack returns a copy of the include stack, outermost file first.
func (u *Unit) Stack() []string {
	return slices.Clone(u.stack)
}

func (u *Unit) onStack(path string) bool {
	return slices.Contains(u.stack, path)
}

func (u *Unit) push(path string) { u.stack = append(u.stack, path) }

func (u *Unit) pop() { u.stack = u.stack[:len(u.stack)-1] }

// LineMarker returns the "#line n" directive.
func LineMarker(n int) string {
	return "#line " + strconv.Itoa(n)
}
