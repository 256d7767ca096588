// Package wslog wires the workspace cache's structured logging to
// github.com/joeycumines/logiface, backed by the log/slog adapter
// (github.com/joeycumines/logiface-slog). It exists so that package
// workspace never has to import a specific logiface backend directly:
// callers configure logging once, here, and pass the result through
// workspace.Config.Logger.
package wslog

import (
	"io"
	"log/slog"

	"github.com/joeycumines/logiface"
	islog "github.com/joeycumines/logiface-slog"
)

// Logger is the type accepted by workspace.Config.Logger. It is a thin
// alias over the generic logiface.Logger, fixed to the slog-backed Event
// implementation, so workspace code can log without a generic type
// parameter of its own.
type Logger = *logiface.Logger[*islog.Event]

// NewDiscard returns a Logger that drops every event. It is the default
// used by workspace when no Logger is configured.
func NewDiscard() Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// New returns a Logger backed by handler, emitting at every logiface level
// (filtering, if any, is handler's responsibility).
func New(handler slog.Handler) Logger {
	return logiface.New[*islog.Event](islog.NewLogger(handler, islog.WithLevel(logiface.LevelTrace)))
}

// NewSlog returns a Logger backed by a standard slog.Handler already
// configured by the caller (e.g. slog.NewJSONHandler(os.Stderr, nil)),
// without forcing every logiface level through.
func NewSlog(handler slog.Handler) Logger {
	return logiface.New[*islog.Event](islog.NewLogger(handler))
}
