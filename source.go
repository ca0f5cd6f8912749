// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderfx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/shaderfx/internal/effect"
	"github.com/gogpu/shaderfx/internal/include"
)

// Origin locates a line in a physical file: "Blur.glsl:12".
// Lines of the define block report the file "<defines>".
type Origin = include.Origin

// DefinesOrigin is the file name reported for define block lines.
const DefinesOrigin = effect.DefinesOrigin

// Source is one resolved section. Sources are immutable and shared
// between callers.
type Source struct {
	// ID is the composite identifier, e.g. "Blur.Fragment".
	ID string
	// File is the effect file the section was parsed from.
	File string
	// Text is the assembled, ready-to-compile text.
	Text string
	// Origins holds one entry per line of Text.
	Origins []Origin
	// Diagnostics are the soft failures met while resolving includes.
	Diagnostics []error
}

func newSource(s *effect.Section) *Source {
	origins := make([]Origin, len(s.Lines))
	for i, l := range s.Lines {
		origins[i] = l.Origin
	}
	return &Source{
		ID:          s.ID,
		File:        s.File,
		Text:        s.Text(),
		Origins:     origins,
		Diagnostics: s.Diagnostics,
	}
}

// Err joins the diagnostics, or returns nil when there are none.
func (s *Source) Err() error {
	return errors.Join(s.Diagnostics...)
}

// Locate returns the origin of the 1-based line of Text.
func (s *Source) Locate(line int) (Origin, error) {
	if line < 1 || line > len(s.Origins) {
		return Origin{}, fmt.Errorf("shaderfx: %s has %d lines, no line %d", s.ID, len(s.Origins), line)
	}
	return s.Origins[line-1], nil
}

// Lines returns the number of lines in Text.
func (s *Source) Lines() int { return len(s.Origins) }

// splitID splits a composite identifier at its first dot. An identifier
// without a dot names the unnamed section "<id><ext>".
func splitID(id, ext string) (base, full string) {
	base, _, ok := strings.Cut(id, ".")
	if !ok {
		return id, id + ext
	}
	return base, id
}
