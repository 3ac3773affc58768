// Package trace provides leveled tracing for the runtime core. The heap
// and the collection types emit events through a Tracer; a nop tracer
// keeps the hot paths free of formatting work when tracing is off.
package trace

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Tracer receives runtime events.
type Tracer interface {
	// Emit records one event. Must be goroutine-safe.
	Emit(level Level, event, detail string)

	// Level returns the current tracing level.
	Level() Level

	// Enabled reports whether events at the given level are recorded.
	Enabled(level Level) bool
}

// Nop returns a tracer that discards everything.
func Nop() Tracer { return nopTracer{} }

type nopTracer struct{}

func (nopTracer) Emit(Level, string, string) {}
func (nopTracer) Level() Level               { return LevelOff }
func (nopTracer) Enabled(Level) bool         { return false }

// Stream writes events as single lines to w.
type Stream struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// NewStream creates a stream tracer writing to w at the given level.
func NewStream(w io.Writer, level Level) *Stream {
	return &Stream{w: w, level: level}
}

// Emit writes the event if its level is enabled.
func (s *Stream) Emit(level Level, event, detail string) {
	if !s.Enabled(level) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := time.Now().Format("15:04:05.000")
	if detail == "" {
		fmt.Fprintf(s.w, "%s %-5s %s\n", ts, level, event)
		return
	}
	fmt.Fprintf(s.w, "%s %-5s %s: %s\n", ts, level, event, detail)
}

// Level returns the configured level.
func (s *Stream) Level() Level { return s.level }

// Enabled reports whether the given level is recorded.
func (s *Stream) Enabled(level Level) bool {
	return s.level != LevelOff && level <= s.level && level != LevelOff
}
