package common

import (
	"fmt"
	"log/slog"
	"sync"
)

// RunLog accumulates the warnings raised during a single pipeline run so
// they can be replayed in the final summary. Warnings are also emitted
// through slog as they occur.
type RunLog struct {
	mu       sync.Mutex
	warnings []string
}

// NewRunLog returns an empty run log.
func NewRunLog() *RunLog {
	return &RunLog{}
}

// Warnf records and logs a formatted warning.
func (l *RunLog) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	slog.Warn(msg)

	l.mu.Lock()
	l.warnings = append(l.warnings, msg)
	l.mu.Unlock()
}

// Warnings returns a copy of all recorded warnings in order.
func (l *RunLog) Warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.warnings))
	copy(out, l.warnings)
	return out
}

// Count returns the number of recorded warnings.
func (l *RunLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warnings)
}
