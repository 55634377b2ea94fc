// Package perf provides a lightweight operation timer. stash wraps it
// around the full-directory reload and AI round trips; timings go to
// the debug log and operations over their threshold are warned about.
package perf

import (
	"log/slog"
	"time"
)

type Timer struct {
	name     string
	logger   *slog.Logger
	start    time.Time
	threshMs int64
}

// NewTimer starts a timer. A nil logger disables reporting.
func NewTimer(name string, logger *slog.Logger, threshMs int64) *Timer {
	return &Timer{
		name:     name,
		logger:   logger,
		start:    time.Now(),
		threshMs: threshMs,
	}
}

// Stop reports the elapsed time.
func (t *Timer) Stop() {
	elapsed := time.Since(t.start)
	if t.logger != nil {
		t.logger.Debug(t.name, "duration_ms", elapsed.Milliseconds())
		if elapsed.Milliseconds() > t.threshMs {
			t.logger.Warn(t.name+"_slow", "duration_ms", elapsed.Milliseconds(), "threshold_ms", t.threshMs)
		}
	}
}
