package particles

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

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while frame drivers are logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for particles and all its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by particles:
//   - [slog.LevelDebug]: regeneration diagnostics (particle and slice counts, canvas sizes)
//   - [slog.LevelInfo]: lifecycle events (engine created or destroyed, font loaded)
//   - [slog.LevelWarn]: non-fatal degradation (missing element, font not loaded yet)
//   - [slog.LevelError]: failures caught by [Guard]
//
// Example:
//
//	particles.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call this to share the
// same configuration. Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
