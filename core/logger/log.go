package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// LogEntry is one logged shell event. Exactly one of the event fields is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart      *SessionStart      `json:"session_start,omitempty"`
	SessionEnd        *SessionEnd        `json:"session_end,omitempty"`
	RunCommand        *RunCommand        `json:"run_command,omitempty"`
	UnknownCommand    *UnknownCommand    `json:"unknown_command,omitempty"`
	InvalidInvocation *InvalidInvocation `json:"invalid_invocation,omitempty"`
	Builtin           *Builtin           `json:"builtin,omitempty"`
}

// Event is a loggable shell occurrence that knows its slot on a LogEntry.
type Event interface {
	attach(le *LogEntry)
}

// SessionStart records the beginning of a shell session.
type SessionStart struct {
	User        string `json:"user,omitempty"`
	WorkingDir  string `json:"working_dir,omitempty"`
	Interactive bool   `json:"interactive"`
}

func (e *SessionStart) attach(le *LogEntry) { le.SessionStart = e }

// Reasons a session can end.
const (
	EndReasonExit = "exit"
	EndReasonEOF  = "end-of-input"
)

// SessionEnd records the end of a shell session.
type SessionEnd struct {
	Reason string `json:"reason"`
}

func (e *SessionEnd) attach(le *LogEntry) { le.SessionEnd = e }

// RunCommand records one external program launch.
type RunCommand struct {
	Command      []string `json:"command"`
	ResolvedPath string   `json:"resolved_path,omitempty"`
	// ExitCode is the code the child exited with, or -1 if it never ran or
	// was ended by a signal.
	ExitCode       int    `json:"exit_code"`
	Signal         string `json:"signal,omitempty"`
	Error          string `json:"error,omitempty"`
	DurationMicros int64  `json:"duration_micros,omitempty"`
}

func (e *RunCommand) attach(le *LogEntry) { le.RunCommand = e }

// UnknownCommand records a command name that didn't resolve to a program.
type UnknownCommand struct {
	Command []string `json:"command"`
	Error   string   `json:"error,omitempty"`
}

func (e *UnknownCommand) attach(le *LogEntry) { le.UnknownCommand = e }

// InvalidInvocation records a builtin called with unusable arguments.
type InvalidInvocation struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (e *InvalidInvocation) attach(le *LogEntry) { le.InvalidInvocation = e }

// Builtin records a builtin dispatch.
type Builtin struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
}

func (e *Builtin) attach(le *LogEntry) { le.Builtin = e }

// LogRecorder is a callback that stores entries in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures interaction event logs for the shell.
type Logger struct {
	Record LogRecorder

	now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
		now: time.Now,
	}
}

// NewNopLogger creates a Logger that drops every entry.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(le *LogEntry) error { return nil },
		now:    time.Now,
	}
}

func (l *Logger) recordEvent(sessionID string, event Event) error {
	le := &LogEntry{}
	le.TimestampMicros = l.timestamp()
	le.SessionID = sessionID
	event.attach(le)

	return l.Record(le)
}

func (l *Logger) timestamp() int64 {
	if l.now == nil {
		return time.Now().UnixMicro()
	}
	return l.now().UnixMicro()
}

// NewSession creates a logger with an attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// Sessionless creates a logger without a session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: ""}
}

// SessionLogger logs events with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

func (l *SessionLogger) Record(event Event) error {
	return l.recordEvent(l.sessionID, event)
}
