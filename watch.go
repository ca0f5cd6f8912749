// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderfx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// ErrWatchUnsupported is returned by Watch when the Manager reads from a
// file system that is not backed by the operating system.
var ErrWatchUnsupported = errors.New("shaderfx: watch requires an OS file system")

// minWatchTick bounds how often pending events are checked.
const minWatchTick = time.Millisecond

// tickInterval returns the flush check period for a debounce.
func tickInterval(debounce time.Duration) time.Duration {
	return max(debounce/2, minWatchTick)
}

// Watcher re-indexes a Manager when shader files are added, removed or
// renamed under its root. File edits are ignored: cached sections never
// change.
type Watcher struct {
	m        *Manager
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	pending bool
	last    time.Time

	reindexed atomic.Int64

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Watch starts watching the root directory tree. The watcher stops when
// ctx is done or Stop is called.
func (m *Manager) Watch(ctx context.Context) (*Watcher, error) {
	if _, ok := m.opts.fs.(*afero.OsFs); !ok {
		return nil, ErrWatchUnsupported
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		m:        m,
		fsw:      fsw,
		debounce: m.opts.debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	if err := w.addTree(m.opts.root); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	m.logger().Info("shaderfx: watching shader tree", "root", m.opts.root)
	go w.run(ctx)
	return w, nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.doneCh
}

// Reindexed returns how many times the watcher has re-indexed.
func (w *Watcher) Reindexed() int64 {
	return w.reindexed.Load()
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(dir string) error {
	return afero.Walk(w.m.opts.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.m.logger().Error("shaderfx: closing watcher", "err", err)
		}
	}()

	tick := time.NewTicker(tickInterval(w.debounce))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.m.logger().Error("shaderfx: watcher error", "err", err)

		case <-tick.C:
			w.flush()
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := w.m.opts.fs.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.m.logger().Error("shaderfx: watching new directory", "dir", event.Name, "err", err)
			}
			w.mark()
			return
		}
	}

	// A removed directory can no longer be stat'ed; extensionless
	// names are treated as directories.
	ext := filepath.Ext(event.Name)
	if ext != w.m.opts.ext && ext != "" {
		return
	}
	w.m.logger().Debug("shaderfx: shader tree changed", "path", event.Name, "op", event.Op.String())
	w.mark()
}

func (w *Watcher) mark() {
	w.mu.Lock()
	w.pending = true
	w.last = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if !w.pending || time.Since(w.last) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.mu.Unlock()

	if err := w.m.Reindex(); err != nil {
		w.m.logger().Error("shaderfx: reindex failed", "err", err)
		return
	}
	w.reindexed.Add(1)
}
