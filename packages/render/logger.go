package render

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record; Enabled is false so nothing is
// formatted.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by render. By default nothing is logged.
// Passing nil restores the silent default.
//
// Levels:
//   - Debug: attributes that did not resolve, cache hits
//   - Info: program links, texture uploads
//   - Warn: images that failed to load
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
