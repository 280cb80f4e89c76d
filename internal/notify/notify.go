// Package notify is the UI-facing toast boundary: fire-and-forget messages
// with a severity, used for "saved offline, will sync" and "sync failed"
// notices.
package notify

import (
	"sync"

	"github.com/rs/zerolog"
)

// Severity of a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier delivers a notification to the user. Implementations must not
// block and must not fail.
type Notifier interface {
	Notify(severity Severity, message string)
}

// Logger is a Notifier that writes notifications to a zerolog logger. It is
// the default sink when no UI is attached.
type Logger struct {
	log zerolog.Logger
}

// NewLogger creates a logging notifier.
func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

// Notify implements Notifier.
func (l *Logger) Notify(severity Severity, message string) {
	switch severity {
	case SeverityError:
		l.log.Warn().Str("severity", string(severity)).Msg(message)
	default:
		l.log.Info().Str("severity", string(severity)).Msg(message)
	}
}

// Recorder is a Notifier that captures notifications for inspection in
// tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Entry is one recorded notification.
type Entry struct {
	Severity Severity
	Message  string
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify implements Notifier.
func (r *Recorder) Notify(severity Severity, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Severity: severity, Message: message})
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}
