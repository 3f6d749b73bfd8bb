package flashlight

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can race with logging from the render loop.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for flashlight and all its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: per-frame detail (wrap warps, reconfigure sizes)
//   - [slog.LevelInfo]: lifecycle events (adapter selected, capture size)
//   - [slog.LevelWarn]: recoverable surface conditions (lost, outdated, timeout)
//   - [slog.LevelError]: fatal surface errors
//
// Example:
//
//	flashlight.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	sinksMu.RLock()
	defer sinksMu.RUnlock()
	for _, fn := range sinks {
		fn(l)
	}
}

// Logger returns the current logger. Sub-packages call this instead of
// keeping their own copy so a single SetLogger call reaches everything.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// sinks receive the logger whenever it changes. Backends that wrap a
// library with its own logger (wgpu) register here.
var (
	sinksMu sync.RWMutex
	sinks   []func(*slog.Logger)
)

// PropagateLogger registers fn to receive the current logger now and on
// every later SetLogger call.
func PropagateLogger(fn func(*slog.Logger)) {
	sinksMu.Lock()
	sinks = append(sinks, fn)
	sinksMu.Unlock()
	fn(Logger())
}
