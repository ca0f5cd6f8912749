// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/gogpu/shaderfx"
)

const blur = `-- Vertex
void main() {}
-- Fragment
#include "Missing.glsl"
void main() {}
`

// setup writes a shader tree and points the global flags at it.
func setup(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Blur.glsl"), []byte(blur), 0o644); err != nil {
		t.Fatal(err)
	}

	rootDir, configPath = dir, filepath.Join(dir, "none.yaml")
	defineArgs, numbering, strict = nil, "", false
	backend, dump = "", false
	t.Cleanup(func() {
		rootDir, configPath, defineArgs = "", "shaderfx.yaml", nil
		backend, dump = "", false
	})
}

func run(t *testing.T, fn func(*cobra.Command, []string) error, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := fn(cmd, args)
	return out.String(), errOut.String(), err
}

func TestResolve(t *testing.T) {
	setup(t)
	defineArgs = []string{"QUALITY=2"}

	out, _, err := run(t, runResolve, "Blur.Vertex")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "#define QUALITY 2\n") || !strings.Contains(out, "void main() {}") {
		t.Errorf("resolve output:\n%s", out)
	}
}

func TestResolveReportsIncludeFailure(t *testing.T) {
	setup(t)

	out, errOut, err := run(t, runResolve, "Blur.Fragment")
	if !errors.Is(err, shaderfx.ErrMissingInclude) {
		t.Fatalf("err = %v, want ErrMissingInclude", err)
	}
	if !strings.Contains(out, "void main() {}") {
		t.Errorf("text not printed on soft failure:\n%s", out)
	}
	if !strings.Contains(errOut, "Missing.glsl") {
		t.Errorf("stderr = %q, want the missing file named", errOut)
	}
}

func TestResolveUnknown(t *testing.T) {
	setup(t)

	_, _, err := run(t, runResolve, "Nope.Vertex")
	if !errors.Is(err, shaderfx.ErrFileNotIndexed) {
		t.Errorf("err = %v, want ErrFileNotIndexed", err)
	}
}

func TestBadDefine(t *testing.T) {
	setup(t)
	defineArgs = []string{"QUALITY"}

	if _, _, err := run(t, runFiles); err == nil {
		t.Error("expected error for define without '='")
	}
}

func TestDefineWithEmptyConfigDefines(t *testing.T) {
	setup(t)
	if err := os.WriteFile(configPath, []byte("defines:\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	defineArgs = []string{"FOO=1"}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Defines["FOO"] != "1" {
		t.Errorf("Defines = %v, want FOO=1", cfg.Defines)
	}
}

func TestFiles(t *testing.T) {
	setup(t)

	out, _, err := run(t, runFiles)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Blur.glsl") || !strings.Contains(out, filepath.Join(rootDir, "Blur.glsl")) {
		t.Errorf("files output: %q", out)
	}
}

func TestSections(t *testing.T) {
	setup(t)

	out, _, err := run(t, runSections, "Blur")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Blur.Vertex\nBlur.Fragment\n" {
		t.Errorf("sections output: %q", out)
	}
}

func TestLocate(t *testing.T) {
	setup(t)

	if _, _, err := run(t, runLocate, "Blur.Vertex", "x"); err == nil {
		t.Error("expected error for non-numeric line")
	}

	src, err := newSourceForTest("Blur.Vertex")
	if err != nil {
		t.Fatal(err)
	}
	last := src.Lines()
	out, _, err := run(t, runLocate, "Blur.Vertex", strconv.Itoa(last))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "Blur.glsl:2") {
		t.Errorf("locate output: %q", out)
	}
}

func TestCompileNullBackend(t *testing.T) {
	setup(t)
	backend, dump = "null", true

	out, _, err := run(t, runCompile, "Blur.Vertex")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Shader dump (Blur.Vertex):") {
		t.Errorf("dump missing:\n%s", out)
	}
	if !strings.Contains(out, "Vertex Shader") {
		t.Errorf("module listing missing:\n%s", out)
	}
}

func TestCompileUnknownBackend(t *testing.T) {
	setup(t)
	backend = "metal"

	_, _, err := run(t, runCompile, "Blur.Vertex")
	if !errors.Is(err, shaderfx.ErrCompilerNotFound) {
		t.Errorf("err = %v, want ErrCompilerNotFound", err)
	}
}

func newSourceForTest(id string) (*shaderfx.Source, error) {
	m, _, err := newManager()
	if err != nil {
		return nil, err
	}
	return m.Lookup(id)
}
