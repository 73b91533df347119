// Package obslog is the ambient logging helper shared by the session,
// case runner, and backend packages. It mirrors the teacher's own mix of
// the standard library log package with bracketed component prefixes
// (e.g. "[executor] ...") and its bespoke elapsed-time progress writer
// (internal/output/progress.go) — no third-party structured-logging
// library is introduced here because the teacher itself reaches for
// neither logrus, zap, nor slog for this concern.
package obslog

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger writes "[component] message" lines, optionally silenced.
type Logger struct {
	component string
	enabled   bool
	std       *log.Logger
	start     time.Time
}

// New creates a Logger writing to w, prefixed with component.
func New(component string, w io.Writer, enabled bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		component: component,
		enabled:   enabled,
		std:       log.New(w, "", log.LstdFlags),
		start:     time.Now(),
	}
}

// Printf logs a formatted message if the logger is enabled.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.enabled {
		return
	}
	l.std.Printf("[%s] %s", l.component, fmt.Sprintf(format, args...))
}

// Elapsed logs a formatted message prefixed with elapsed time since the
// logger was created, matching the teacher's output.Progress.Log shape.
func (l *Logger) Elapsed(format string, args ...any) {
	if l == nil || !l.enabled {
		return
	}
	elapsed := time.Since(l.start).Round(time.Millisecond)
	l.std.Printf("[%s][%s] %s", l.component, elapsed, fmt.Sprintf(format, args...))
}

// Warnf logs a warning-level message; the teacher does not distinguish
// levels either, so this is purely a naming convenience for call sites.
func (l *Logger) Warnf(format string, args ...any) {
	l.Printf("WARN: "+format, args...)
}
