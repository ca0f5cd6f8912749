// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/gogpu/shaderfx"
)

// recordingDevice wraps the noop device and records descriptors.
type recordingDevice struct {
	noop.Device
	labels    []string
	words     [][]uint32
	destroyed int
	fail      error
}

func (d *recordingDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	if d.fail != nil {
		return nil, d.fail
	}
	d.labels = append(d.labels, desc.Label)
	d.words = append(d.words, desc.Source.SPIRV)
	return d.Device.CreateShaderModule(desc)
}

func (d *recordingDevice) DestroyShaderModule(m hal.ShaderModule) {
	d.destroyed++
	d.Device.DestroyShaderModule(m)
}

const compute = `-- Compute
@compute @workgroup_size(1)
fn main() {
}
`

func newManager(t *testing.T) *shaderfx.Manager {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/shaders/Cull.wgsl", []byte(compute), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := shaderfx.New(shaderfx.WithFS(fsys), shaderfx.WithRoot("/shaders"), shaderfx.WithExtension(".wgsl"))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestCompileCreatesShaderModule(t *testing.T) {
	dev := &recordingDevice{}
	c := New(dev)
	m := newManager(t)

	p, err := m.BuildProgram(c, "Cull.Compute")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Cull.Compute"}, dev.labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if len(dev.words[0]) == 0 || dev.words[0][0] != 0x07230203 {
		t.Errorf("SPIR-V words do not start with the magic number")
	}
	mod := p.Module(shaderfx.StageCompute)
	if _, ok := mod.Handle.(hal.ShaderModule); !ok {
		t.Errorf("Handle = %T, want hal.ShaderModule", mod.Handle)
	}
	if c.Live() != 1 {
		t.Errorf("Live = %d, want 1", c.Live())
	}

	p.Destroy()
	if c.Live() != 0 || dev.destroyed != 1 {
		t.Errorf("after Destroy: live %d, destroyed %d", c.Live(), dev.destroyed)
	}
}

func TestCompileDeviceError(t *testing.T) {
	boom := errors.New("device lost")
	c := New(&recordingDevice{fail: boom})

	_, err := newManager(t).BuildProgram(c, "Cull.Compute")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want device error", err)
	}
	var ce *shaderfx.CompileError
	if !errors.As(err, &ce) || ce.ID != "Cull.Compute" {
		t.Errorf("err = %#v", err)
	}
}

func TestWords(t *testing.T) {
	got := Words([]byte{0x03, 0x02, 0x23, 0x07, 0x01, 0x00, 0x00, 0x00, 0xff})
	if diff := cmp.Diff([]uint32{0x07230203, 1}, got); diff != "" {
		t.Errorf("Words mismatch (-want +got):\n%s", diff)
	}
}

func TestRegister(t *testing.T) {
	Register(&recordingDevice{})

	c, err := shaderfx.NewCompiler("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*Compiler); !ok {
		t.Errorf("best compiler = %T, want *wgpu.Compiler", c)
	}
	if names := shaderfx.Compilers(); names[0] != "wgpu" {
		t.Errorf("Compilers() = %v, want wgpu first", names)
	}
}
