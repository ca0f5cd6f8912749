// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderfx

import (
	"sort"

	"github.com/gogpu/gpucontext"
)

// Unit is one stage handed to a Compiler.
type Unit struct {
	ID     string
	Stage  Stage
	Source *Source
}

// Module is a compiled stage.
type Module struct {
	ID    string
	Stage Stage
	// Binary is the compiled code, if the backend produces any.
	Binary []byte
	// Handle is the backend object, e.g. a hal.ShaderModule.
	Handle any
	// Release frees Handle. It may be nil.
	Release func()
}

// Compiler turns assembled shader text into a Module.
//
// Implementations report source positions by wrapping a *CompileError
// whose Line is a 1-based line of Unit.Source.Text; BuildProgram fills
// in the Origin.
type Compiler interface {
	Compile(u Unit) (*Module, error)
}

// NullCompiler accepts any text and produces modules without binaries.
// It is registered as "null".
type NullCompiler struct{}

// Compile returns an empty module for u.
func (NullCompiler) Compile(u Unit) (*Module, error) {
	return &Module{ID: u.ID, Stage: u.Stage}, nil
}

// Backend names in selection priority order.
var compilerPriority = []string{"wgpu", "naga", "null"}

// compilers is the global compiler registry. Backends register
// themselves from init.
var compilers = gpucontext.NewRegistry[Compiler](
	gpucontext.WithPriority(compilerPriority...),
)

// RegisterCompiler registers a compiler factory under name.
// Registering a name that already exists replaces the previous entry.
//
// Example:
//
//	func init() {
//	    shaderfx.RegisterCompiler("naga", func() shaderfx.Compiler { return New() })
//	}
func RegisterCompiler(name string, factory func() Compiler) {
	compilers.Register(name, factory)
}

// NewCompiler creates the compiler registered under name.
// An empty name selects the highest priority registered compiler.
func NewCompiler(name string) (Compiler, error) {
	if name == "" {
		name = compilers.BestName()
	}
	if !compilers.Has(name) {
		return nil, &CompilerNotFoundError{Name: name}
	}
	return compilers.Get(name), nil
}

// Compilers returns the registered compiler names, highest priority
// first.
func Compilers() []string {
	names := compilers.Available()
	rank := func(name string) int {
		for i, p := range compilerPriority {
			if p == name {
				return i
			}
		}
		return len(compilerPriority)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}

func init() {
	RegisterCompiler("null", func() Compiler { return NullCompiler{} })
}
