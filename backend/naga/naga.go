// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package naga compiles WGSL shader stages to SPIR-V with gogpu/naga.
//
// Importing the package registers the compiler as "naga":
//
//	import _ "github.com/gogpu/shaderfx/backend/naga"
//
// naga has no preprocessor. Lines starting with '#' (#line markers,
// #define lines of the define block, hoisted #version lines) are blanked
// before compiling so that reported line numbers still index the
// assembled text. Defines are not substituted.
package naga

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	gonaga "github.com/gogpu/naga"

	"github.com/gogpu/shaderfx"
)

// ErrUnsupportedStage is returned for stages WGSL cannot express.
var ErrUnsupportedStage = errors.New("naga: stage not supported by WGSL")

// Compiler compiles WGSL to SPIR-V.
type Compiler struct {
	Options gonaga.CompileOptions
}

// New creates a compiler with naga's default options (SPIR-V 1.3,
// validation on).
func New() *Compiler {
	return &Compiler{Options: gonaga.DefaultOptions()}
}

// Compile compiles u.Source.Text. The module's Binary holds the SPIR-V.
func (c *Compiler) Compile(u shaderfx.Unit) (*shaderfx.Module, error) {
	if u.Stage.Visibility() == 0 {
		return nil, &shaderfx.CompileError{ID: u.ID, Stage: u.Stage, Err: fmt.Errorf("%w: %s", ErrUnsupportedStage, u.Stage)}
	}

	spirv, err := gonaga.CompileWithOptions(Strip(u.Source.Text), c.Options)
	if err != nil {
		return nil, &shaderfx.CompileError{ID: u.ID, Stage: u.Stage, Line: ErrorLine(err), Err: err}
	}

	shaderfx.Logger().Debug("naga: compiled stage", "id", u.ID, "stage", u.Stage.String(), "bytes", len(spirv))
	return &shaderfx.Module{ID: u.ID, Stage: u.Stage, Binary: spirv}, nil
}

// Strip blanks every line that starts with '#', keeping the line count.
func Strip(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for line := range strings.Lines(text) {
		if strings.HasPrefix(line, "#") {
			if strings.HasSuffix(line, "\n") {
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

// naga reports positions as "line 3, column 7:" (parser) or "3:7:"
// (lowering).
var linePattern = regexp.MustCompile(`line (\d+), column \d+|(?:^|\s)(\d+):\d+:`)

// ErrorLine extracts the 1-based line from a naga error, or 0.
func ErrorLine(err error) int {
	m := linePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	s := m[1]
	if s == "" {
		s = m[2]
	}
	n, _ := strconv.Atoi(s)
	return n
}

func init() {
	shaderfx.RegisterCompiler("naga", func() shaderfx.Compiler { return New() })
}
