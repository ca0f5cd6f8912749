// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package effect

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/gogpu/shaderfx/internal/include"
)

// MarkerPrefix starts a section marker line ("-- Fragment").
const MarkerPrefix = "-- "

// DefinesOrigin is the file name reported for lines of the define block.
const DefinesOrigin = "<defines>"

// Numbering selects how section body lines are numbered in #line markers.
type Numbering int

const (
	// SectionLines restarts the count at 1 on the line after each marker.
	SectionLines Numbering = iota

	// FileLines keeps the physical line numbers of the effect file.
	FileLines
)

// String returns "section" or "file".
func (n Numbering) String() string {
	switch n {
	case SectionLines:
		return "section"
	case FileLines:
		return "file"
	default:
		return fmt.Sprintf("Numbering(%d)", int(n))
	}
}

// ParseNumbering parses the String form of a Numbering.
func ParseNumbering(s string) (Numbering, error) {
	switch strings.ToLower(s) {
	case "section", "":
		return SectionLines, nil
	case "file":
		return FileLines, nil
	default:
		return 0, fmt.Errorf("unknown line numbering %q (want section or file)", s)
	}
}

// Handler processes directive and body lines for one section.
// *include.Resolver is the production Handler.
type Handler interface {
	Handle(u *include.Unit, o include.Origin, line string, next int)
}

// Section is one flushed section of an effect file.
type Section struct {
	// ID is the composite identifier, e.g. "Blur.Fragment".
	ID string
	// File is the physical effect file.
	File string
	// Lines is the assembled text: preamble, define block,
	// the opening #line marker, then the body.
	Lines       []include.Line
	Diagnostics []error
}

// Text joins the section lines, each terminated by a newline.
func (s *Section) Text() string {
	var b strings.Builder
	for _, l := range s.Lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Parser splits effect files into sections.
type Parser struct {
	Handler   Handler
	Numbering Numbering
	// Ext names the unnamed section of a file without markers
	// ("<base><Ext>").
	Ext string
	Log *slog.Logger
}

type state int

const (
	statePreamble state = iota
	stateSection
)

// open is the section being accumulated.
type open struct {
	id    string
	unit  *include.Unit
	begin include.Origin // marker line, or the top of the file
	first int            // reported number of the first body line
	start int            // subtracted from physical line numbers
}

// Parse runs the section state machine over lines of the effect file at
// path. base is the file name without extension; sections are named
// "<base>.<Name>". defineBlock is prepended to every section.
//
// Content before the first marker is dropped once a marker is seen.
// A file without markers yields one section named "<base><Ext>".
// When a section name repeats, the first section is kept.
func (p *Parser) Parse(base, path string, lines iter.Seq[string], defineBlock string) []Section {
	var (
		st       = statePreamble
		cur      = p.begin(base+p.Ext, path, 0, 0)
		sections []Section
		seen     = make(map[string]bool)
		n        int
	)

	flush := func() {
		if seen[cur.id] {
			p.logger().Warn("shaderfx: duplicate section ignored", "file", path, "section", cur.id, "line", cur.begin.Line)
			return
		}
		seen[cur.id] = true
		sections = append(sections, p.assemble(cur, path, defineBlock))
	}

	for line := range lines {
		n++
		if strings.HasPrefix(line, MarkerPrefix) {
			if st == stateSection {
				flush()
			}
			st = stateSection
			name := strings.TrimSpace(line[len(MarkerPrefix):])
			start := 0
			if p.Numbering == SectionLines {
				start = n
			}
			cur = p.begin(base+"."+name, path, n, start)
			continue
		}
		p.Handler.Handle(cur.unit, include.Origin{File: path, Line: n}, line, n+1-cur.start)
	}

	flush()
	return sections
}

func (p *Parser) begin(id, path string, marker, start int) *open {
	return &open{
		id:    id,
		unit:  include.NewUnit(path),
		begin: include.Origin{File: path, Line: marker},
		first: marker + 1 - start,
		start: start,
	}
}

func (p *Parser) assemble(cur *open, path, defineBlock string) Section {
	u := cur.unit
	lines := make([]include.Line, 0, len(u.Preamble)+len(u.Body)+8)
	lines = append(lines, u.Preamble...)

	i := 0
	for l := range include.Lines(defineBlock) {
		i++
		lines = append(lines, include.Line{Text: l, Origin: include.Origin{File: DefinesOrigin, Line: i}})
	}

	lines = append(lines, include.Line{Text: include.LineMarker(cur.first), Origin: cur.begin})
	lines = append(lines, u.Body...)

	return Section{
		ID:          cur.id,
		File:        path,
		Lines:       lines,
		Diagnostics: u.Diagnostics,
	}
}

func (p *Parser) logger() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}
	return discard
}

// discard is used when no logger is set.
var discard = slog.New(slog.DiscardHandler)
