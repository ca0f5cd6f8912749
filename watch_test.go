// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderfx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/goleak"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newOSManager(t *testing.T) (*Manager, string) {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "Blur.glsl"), []byte("-- Vertex\nv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := New(WithRoot(root), WithWatchDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	return m, root
}

func TestWatchReindexesNewFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	m, root := newOSManager(t)
	w, err := m.Watch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	sub := filepath.Join(root, "lib")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "directory rescan", func() bool { return w.Reindexed() > 0 })

	if err := os.WriteFile(filepath.Join(sub, "Late.glsl"), []byte("-- Fragment\nf\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "Late.glsl indexed", func() bool {
		_, err := m.Path("Late.glsl")
		return err == nil
	})

	if _, err := m.Get("Late.Fragment"); err != nil {
		t.Errorf("Get after watch reindex: %v", err)
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		debounce time.Duration
		want     time.Duration
	}{
		{time.Nanosecond, minWatchTick},
		{time.Microsecond, minWatchTick},
		{100 * time.Millisecond, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := tickInterval(tt.debounce); got != tt.want {
			t.Errorf("tickInterval(%v) = %v, want %v", tt.debounce, got, tt.want)
		}
	}
}

func TestWatchTinyDebounce(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	m, err := New(WithRoot(root), WithWatchDebounce(time.Nanosecond))
	if err != nil {
		t.Fatal(err)
	}
	w, err := m.Watch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(root, "Tiny.glsl"), []byte("-- Vertex\nv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "Tiny.glsl indexed", func() bool {
		_, err := m.Path("Tiny.glsl")
		return err == nil
	})
}

func TestWatchStopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	m, _ := newOSManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	w, err := m.Watch(ctx)
	if err != nil {
		t.Fatal(err)
	}

	cancel()
	w.Stop()
	w.Stop()
}

func TestWatchRequiresOSFs(t *testing.T) {
	m := newTestManager(t, map[string]string{"/shaders/A.glsl": "a\n"})
	_, err := m.Watch(context.Background())
	if !errors.Is(err, ErrWatchUnsupported) {
		t.Errorf("err = %v, want ErrWatchUnsupported", err)
	}
}

func TestWatchIgnoresOtherExtensions(t *testing.T) {
	defer goleak.VerifyNone(t)

	m, root := newOSManager(t)
	w, err := m.Watch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := afero.WriteFile(afero.NewOsFs(), filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if n := w.Reindexed(); n != 0 {
		t.Errorf("Reindexed = %d after a non-shader file, want 0", n)
	}
}
