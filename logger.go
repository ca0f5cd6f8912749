// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderfx

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the package logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by shaderfx and its backends.
// By default, shaderfx produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior. A Manager created with WithLogger uses its own logger
// instead.
//
// Log levels used by shaderfx:
//   - [slog.LevelDebug]: cache and index internals (file loads, parsed sections)
//   - [slog.LevelInfo]: lifecycle events (index built, watcher started)
//   - [slog.LevelWarn]: soft resolution failures (missing include, duplicate names)
//   - [slog.LevelError]: watcher failures
//
// Example:
//
//	shaderfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger.
// Backend packages call this to share the same configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
