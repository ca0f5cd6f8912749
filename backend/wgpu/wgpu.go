// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shaderfx"
	"github.com/gogpu/shaderfx/backend/naga"
)

// ModuleDevice is the part of hal.Device the compiler needs.
type ModuleDevice interface {
	CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error)
	DestroyShaderModule(module hal.ShaderModule)
}

// Compiler compiles stages to SPIR-V and creates HAL shader modules.
//
// Compiler is safe for concurrent use.
type Compiler struct {
	device ModuleDevice
	spirv  *naga.Compiler

	mu   sync.Mutex
	live int
}

// New creates a compiler for device.
func New(device ModuleDevice) *Compiler {
	return &Compiler{device: device, spirv: naga.New()}
}

// Register registers a compiler for device as "wgpu".
func Register(device ModuleDevice) {
	shaderfx.RegisterCompiler("wgpu", func() shaderfx.Compiler { return New(device) })
}

// Compile compiles u and creates a shader module labeled with u.ID.
// The module's Handle is the hal.ShaderModule; Release destroys it.
func (c *Compiler) Compile(u shaderfx.Unit) (*shaderfx.Module, error) {
	mod, err := c.spirv.Compile(u)
	if err != nil {
		return nil, err
	}

	sm, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: u.ID,
		Source: hal.ShaderSource{
			SPIRV: Words(mod.Binary),
		},
	})
	if err != nil {
		return nil, &shaderfx.CompileError{ID: u.ID, Stage: u.Stage, Err: fmt.Errorf("create shader module: %w", err)}
	}

	c.mu.Lock()
	c.live++
	c.mu.Unlock()

	var once sync.Once
	mod.Handle = sm
	mod.Release = func() {
		once.Do(func() {
			c.device.DestroyShaderModule(sm)
			c.mu.Lock()
			c.live--
			c.mu.Unlock()
		})
	}
	return mod, nil
}

// Live returns the number of shader modules created and not yet released.
func (c *Compiler) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

// Words converts SPIR-V bytes to little-endian 32-bit words.
// Trailing bytes that do not fill a word are dropped.
func Words(spirv []byte) []uint32 {
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = uint32(spirv[i*4]) |
			uint32(spirv[i*4+1])<<8 |
			uint32(spirv[i*4+2])<<16 |
			uint32(spirv[i*4+3])<<24
	}
	return words
}
