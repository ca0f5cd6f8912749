// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu turns resolved shader stages into gogpu/wgpu HAL shader
// modules.
//
// Stages are compiled to SPIR-V with the naga backend and handed to a
// device as a hal.ShaderModuleDescriptor labeled with the composite
// identifier, so validation messages from the driver name the stage.
//
// A compiler needs a device, so it is not registered on import:
//
//	wgpu.Register(device)
//	c, _ := shaderfx.NewCompiler("") // "wgpu" has the highest priority
//	prog, err := m.BuildProgram(c, "Blur.Vertex", "Blur.Fragment")
//	defer prog.Destroy()
package wgpu
