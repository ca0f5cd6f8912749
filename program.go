// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderfx

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Program is a set of compiled stages.
type Program struct {
	Modules []*Module
}

// Module returns the module compiled for stage, or nil.
func (p *Program) Module(stage Stage) *Module {
	for _, m := range p.Modules {
		if m.Stage == stage {
			return m
		}
	}
	return nil
}

// Destroy releases all backend handles. It is safe to call more than once.
func (p *Program) Destroy() {
	for _, m := range p.Modules {
		if m.Release != nil {
			m.Release()
			m.Release = nil
		}
	}
	p.Modules = nil
}

const dumpRule = "--------------------------------------------"

// BuildProgram resolves, dumps (see WithDump) and compiles each stage
// named by ids. The stage of every id is inferred from its name.
//
// Soft resolution diagnostics do not stop the build; the compiler sees
// the best-effort text and reports the real error. On any failure the
// modules compiled so far are released.
func (m *Manager) BuildProgram(c Compiler, ids ...string) (*Program, error) {
	p := &Program{}
	for _, id := range ids {
		mod, err := m.compile(c, id)
		if err != nil {
			p.Destroy()
			return nil, err
		}
		p.Modules = append(p.Modules, mod)
	}
	m.logger().Debug("shaderfx: program built", "stages", len(p.Modules))
	return p, nil
}

func (m *Manager) compile(c Compiler, id string) (*Module, error) {
	stage, err := InferStage(id)
	if err != nil {
		return nil, err
	}

	src, err := m.Lookup(id)
	if err != nil {
		return nil, err
	}
	if derr := src.Err(); derr != nil {
		m.logger().Warn("shaderfx: compiling with resolution errors", "id", id, "err", derr)
	}

	if w := m.opts.dump; w != nil {
		dump(w, id, src.Text)
	}

	mod, err := c.Compile(Unit{ID: id, Stage: stage, Source: src})
	if err != nil {
		return nil, locate(src, id, stage, err)
	}
	return mod, nil
}

func dump(w io.Writer, id, text string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Shader dump (%s):\n", id)
	b.WriteString(dumpRule)
	b.WriteByte('\n')
	b.WriteString(text)
	b.WriteString("\n\n")
	_, _ = io.WriteString(w, b.String())
}

// locate fills in the origin of a compiler error.
func locate(src *Source, id string, stage Stage, err error) error {
	var ce *CompileError
	if !errors.As(err, &ce) {
		return &CompileError{ID: id, Stage: stage, Err: err}
	}
	if ce.ID == "" {
		ce.ID = id
	}
	ce.Stage = stage
	if ce.Line > 0 {
		if o, lerr := src.Locate(ce.Line); lerr == nil {
			ce.Origin = o
		}
	}
	return err
}
