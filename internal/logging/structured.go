// Package logging provides structured JSON logging for engine components.
// Events go to stderr so stdout stays clean for piped transcript output.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Event represents a structured log event
type Event struct {
	Timestamp string         `json:"ts"`
	Level     Level          `json:"level"`
	Component string         `json:"component"`
	Event     string         `json:"event"`
	Session   string         `json:"session,omitempty"`
	Duration  int64          `json:"duration_ms,omitempty"`
	Error     string         `json:"error,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// Logger provides structured logging scoped to a component.
type Logger struct {
	component string
	session   string
	out       io.Writer
	mu        *sync.Mutex
	debug     bool
}

// New creates a new logger for a component. Debug events are emitted only
// when PTSTUDY_DEBUG is set.
func New(component string) *Logger {
	return &Logger{
		component: component,
		out:       os.Stderr,
		mu:        &sync.Mutex{},
		debug:     os.Getenv("PTSTUDY_DEBUG") != "",
	}
}

// WithSession returns a logger that tags every event with the session id.
func (l *Logger) WithSession(id string) *Logger {
	return &Logger{
		component: l.component,
		session:   id,
		out:       l.out,
		mu:        l.mu,
		debug:     l.debug,
	}
}

// WithOutput redirects events, mostly for tests.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	return &Logger{
		component: l.component,
		session:   l.session,
		out:       w,
		mu:        &sync.Mutex{},
		debug:     l.debug,
	}
}

func (l *Logger) log(level Level, event string, extra map[string]any, err error) {
	if level == LevelDebug && !l.debug {
		return
	}

	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: l.component,
		Event:     event,
		Session:   l.session,
		Extra:     extra,
	}

	if err != nil {
		e.Error = err.Error()
	}

	l.emit(e)
}

func (l *Logger) emit(e Event) {
	data, _ := json.Marshal(e)
	l.mu.Lock()
	fmt.Fprintln(l.out, string(data))
	l.mu.Unlock()
}

// Debug logs a debug event
func (l *Logger) Debug(event string, extra map[string]any) {
	l.log(LevelDebug, event, extra, nil)
}

// Info logs an info event
func (l *Logger) Info(event string, extra map[string]any) {
	l.log(LevelInfo, event, extra, nil)
}

// Warn logs a warning event
func (l *Logger) Warn(event string, extra map[string]any, err error) {
	l.log(LevelWarn, event, extra, err)
}

// Error logs an error event
func (l *Logger) Error(event string, extra map[string]any, err error) {
	l.log(LevelError, event, extra, err)
}

// TimedEvent logs an info event with duration since start.
func (l *Logger) TimedEvent(event string, start time.Time, extra map[string]any) {
	l.emit(Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     LevelInfo,
		Component: l.component,
		Event:     event,
		Session:   l.session,
		Duration:  time.Since(start).Milliseconds(),
		Extra:     extra,
	})
}
