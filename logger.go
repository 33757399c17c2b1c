package lightscale

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record and reports every level as disabled.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var (
	silent = slog.New(discard{})
	logger atomic.Pointer[slog.Logger]
)

// SetLogger routes lightscale diagnostics to l, nil silences them again.
//
// New reports every built table at debug level, lightscaletool warns about
// ignored environment values and non-monotonic tables.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the logger set with SetLogger, or a silent one.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return silent
}
