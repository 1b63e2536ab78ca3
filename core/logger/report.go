package logger

import (
	"encoding/json"
	"io"
	"strconv"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Session           SessionReport           `json:"session_report"`
	RunCommand        RunCommandReport        `json:"run_command_report"`
	UnknownCommand    UnknownCommandReport    `json:"unknown_command_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
	Builtin           BuiltinReport           `json:"builtin_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch {
	case le.SessionStart != nil:
		r.Session.updateStart(le.SessionStart)
	case le.SessionEnd != nil:
		r.Session.updateEnd(le.SessionEnd)
	case le.RunCommand != nil:
		r.RunCommand.update(le.RunCommand)
	case le.UnknownCommand != nil:
		r.UnknownCommand.update(le.UnknownCommand)
	case le.InvalidInvocation != nil:
		r.InvalidInvocation.update(le.InvalidInvocation)
	case le.Builtin != nil:
		r.Builtin.update(le.Builtin)
	default:
		r.InvalidEntries.Increment("empty_entry")
	}
}

type SessionReport struct {
	// Number of sessions started.
	Started int `json:"started"`
	// List of users and their session counts.
	Users StrCounter `json:"users"`
	// List of end reasons and their counts.
	EndReasons StrCounter `json:"end_reasons"`
}

func (r *SessionReport) updateStart(e *SessionStart) {
	r.Started++
	r.Users.Increment(e.User)
}

func (r *SessionReport) updateEnd(e *SessionEnd) {
	r.EndReasons.Increment(e.Reason)
}

type RunCommandReport struct {
	// Resolved paths of launched commands.
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Names commands were invoked under.
	CommandNames StrCounter `json:"command_names"`
	// Exit codes, or signal names for signaled children.
	ExitStatuses StrCounter `json:"exit_statuses"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	r.ResolvedCommandPaths.Increment(rc.ResolvedPath)
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}

	if rc.Signal != "" {
		r.ExitStatuses.Increment("signal:" + rc.Signal)
	} else {
		r.ExitStatuses.Increment(strconv.Itoa(rc.ExitCode))
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type InvalidInvocationReport struct {
	CommandNames StrCounter `json:"command_counts"`
}

func (r *InvalidInvocationReport) update(logEntry *InvalidInvocation) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type BuiltinReport struct {
	Names StrCounter `json:"names"`
}

func (r *BuiltinReport) update(logEntry *Builtin) {
	r.Names.Increment(logEntry.Name)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}
