// Package simlog is the pluggable logging seam used across the engine: a
// silent default and a line-oriented text sink, so that every registration,
// integration and force application can be narrated without forcing a
// dependency on any particular log format.
package simlog

import (
	"io"
	"log/slog"
)

// Logger is the minimal narration surface the engine writes to. Production
// code should never need more than these four events; richer diagnostics
// belong in the caller's own wrapping, not in the core's log lines.
type Logger interface {
	Registered(kind, particle, generator string)
	Removed(kind, particle, generator string)
	Integrated(particle string, dt float64)
	ForceApplied(particle, generator string, magnitude float64)
}

// NoopLogger discards every event. It is the zero-value default: an engine
// constructed without an explicit logger narrates nothing.
type NoopLogger struct{}

func (NoopLogger) Registered(kind, particle, generator string)           {}
func (NoopLogger) Removed(kind, particle, generator string)              {}
func (NoopLogger) Integrated(particle string, dt float64)                {}
func (NoopLogger) ForceApplied(particle, generator string, magnitude float64) {}

// TextLogger writes one structured line per event via slog, in the shape the
// original engine's spdlog::info calls used: an event name followed by the
// relevant identifiers and magnitudes.
type TextLogger struct {
	log *slog.Logger
}

// NewTextLogger builds a TextLogger writing to w. The line format is not
// part of the engine's contract and may change.
func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{log: slog.New(slog.NewTextHandler(w, nil))}
}

func (t *TextLogger) Registered(kind, particle, generator string) {
	t.log.Info("registered", "kind", kind, "particle", particle, "generator", generator)
}

func (t *TextLogger) Removed(kind, particle, generator string) {
	t.log.Info("removed", "kind", kind, "particle", particle, "generator", generator)
}

func (t *TextLogger) Integrated(particle string, dt float64) {
	t.log.Info("integrated", "particle", particle, "dt", dt)
}

func (t *TextLogger) ForceApplied(particle, generator string, magnitude float64) {
	t.log.Info("force_applied", "particle", particle, "generator", generator, "magnitude", magnitude)
}
