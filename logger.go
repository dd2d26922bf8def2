package sketch

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Reporting every level as disabled lets
// slog skip building the record at all.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

var silent = slog.New(discard{})

// current is read on every log call and replaced by SetLogger, possibly
// from another goroutine.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger routes the log output of sketch, imagegen, studio and server
// to l. Nothing is logged until it is called; nil silences logging again.
//
// What gets logged, by level:
//   - [slog.LevelDebug]: checkpoint commits, undo and redo, raster
//     reallocation, dropped interactions, bridge requests
//   - [slog.LevelInfo]: generate and edit calls, bridge sessions
//   - [slog.LevelWarn]: rejected images, cleared credentials
//
// The binaries build l from the [log] table of their config file.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return current.Load()
}
