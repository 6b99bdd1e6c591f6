package datagen

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/ztaaha/basic-text-datagen/backend"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the package logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the package logger, used by every Renderer created
// without WithLogger. By default datagen produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by datagen:
//   - [slog.LevelDebug]: per-cluster alignment results, service request URLs
//   - [slog.LevelInfo]: render completion with tensor dimensions
//   - [slog.LevelWarn]: degenerate template search ranges
//
// Example:
//
//	datagen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// propagateLogger passes l to b if the backend accepts a logger.
func propagateLogger(b backend.Backend, l *slog.Logger) {
	if ls, ok := b.(backend.LoggerSetter); ok {
		ls.SetLogger(l)
	}
}
