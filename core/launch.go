package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"syscall"
	"time"

	"github.com/tish-shell/tish/core/logger"
)

// Launcher starts external programs as child processes of the shell.
type Launcher struct {
	stdio *IO
	log   *logger.SessionLogger
}

func NewLauncher(stdio *IO, log *logger.SessionLogger) *Launcher {
	if log == nil {
		log = logger.NewNopLogger().Sessionless()
	}
	return &Launcher{stdio: stdio, log: log}
}

// Run resolves args[0] against PATH, starts the program with the shell's
// streams and the inherited environment and working directory, then blocks
// until the child reaches a terminal state. The shell keeps going no matter
// how the child ends, so Run always returns Continue.
func (l *Launcher) Run(args []string) Signal {
	path, err := exec.LookPath(args[0])
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			fmt.Fprintf(l.stdio.Stderr, "tish: %s: permission denied\n", args[0])
		} else {
			fmt.Fprintf(l.stdio.Stderr, "tish: %s: command not found\n", args[0])
		}
		l.log.Record(&logger.UnknownCommand{Command: args, Error: err.Error()})
		return Continue
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   args,
		Stdin:  l.stdio.Stdin,
		Stdout: l.stdio.Stdout,
		Stderr: l.stdio.Stderr,
	}

	entry := &logger.RunCommand{Command: args, ResolvedPath: path}
	start := time.Now()
	err = cmd.Run()
	entry.DurationMicros = time.Since(start).Microseconds()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		// Normal exit, code 0.
	case errors.As(err, &exitErr):
		// The child ran and ended on its own, by exiting or on a signal.
		// Both look the same from the prompt, the log keeps the detail.
		entry.ExitCode = exitErr.ExitCode()
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			entry.Signal = status.Signal().String()
		}
	default:
		// The child never ran.
		entry.ExitCode = -1
		entry.Error = err.Error()
		fmt.Fprintf(l.stdio.Stderr, "tish: %v\n", err)
	}
	l.log.Record(entry)

	return Continue
}
