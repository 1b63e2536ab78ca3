package core

import (
	"fmt"
	"io"
	"os"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/tish-shell/tish/core/config"
	"github.com/tish-shell/tish/core/logger"
)

// DefaultPrompt is used when the configuration doesn't set one.
const DefaultPrompt = "> "

func promptColor() *color.Color {
	return color.New(color.FgGreen, color.Bold)
}

// Shell is one interactive session. It reads a line at a time, splits it into
// tokens and runs the result, either as a builtin in-process or as a child
// process, waiting for each command to finish before reading the next.
type Shell struct {
	Config   *config.Configuration
	Readline *readline.Instance
	IO       *IO

	builtins *Registry
	launcher *Launcher
	log      *logger.SessionLogger
}

func NewShell(cfg *config.Configuration, stdio *IO, log *logger.SessionLogger) (*Shell, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNopLogger().Sessionless()
	}

	rlCfg := &readline.Config{
		Stdin:        readline.NewCancelableStdin(stdio.Stdin),
		Stdout:       stdio.Stdout,
		Stderr:       stdio.Stderr,
		HistoryFile:  cfg.HistoryFile(),
		HistoryLimit: cfg.HistoryLimit,
		FuncGetWidth: stdio.Width,
		FuncIsTerminal: func() bool {
			return stdio.Interactive()
		},
	}

	if err := rlCfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return nil, err
	}

	shell := &Shell{
		Config:   cfg,
		Readline: rl,
		IO:       stdio,
		builtins: AllBuiltins,
		launcher: NewLauncher(stdio, log),
		log:      log,
	}

	return shell, nil
}

func (s *Shell) prompt() string {
	prompt := s.Config.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	switch s.Config.Color {
	case config.ColorAlways:
		// Forced on, even when the output isn't a terminal.
		forced := promptColor()
		forced.EnableColor()
		return forced.Sprint(prompt)
	case config.ColorNever:
		return prompt
	default:
		if s.IO.Interactive() {
			return promptColor().Sprint(prompt)
		}
		return prompt
	}
}

// Run reads and dispatches commands until exit is called or input ends.
// Both are normal terminations, distinguished only in the session log.
func (s *Shell) Run() {
	s.log.Record(s.sessionStart())

	for {
		s.Readline.SetPrompt(s.prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			// Input closed.
			s.log.Record(&logger.SessionEnd{Reason: logger.EndReasonEOF})
			return

		case err == readline.ErrInterrupt:
			// Interrupt clears the line.
			continue

		case err != nil:
			fmt.Fprintf(s.IO.Stderr, "tish: %v\n", err)
			continue

		case len(line) == 0:
			continue // empty line

		default:
			if s.RunCommand(line) == Terminate {
				s.log.Record(&logger.SessionEnd{Reason: logger.EndReasonExit})
				return
			}
		}
	}
}

// RunCommand tokenizes and dispatches a single command line.
func (s *Shell) RunCommand(line string) Signal {
	return s.Dispatch(Tokenize(line))
}

// Dispatch routes a tokenized command to a builtin or the launcher. An empty
// command is a no-op.
func (s *Shell) Dispatch(args []string) Signal {
	if len(args) == 0 {
		return Continue
	}

	if builtin, ok := s.builtins.Lookup(args[0]); ok {
		s.log.Record(&logger.Builtin{Name: args[0], Args: args[1:]})
		return builtin.Main(s, args)
	}

	return s.launcher.Run(args)
}

func (s *Shell) Close() error {
	return s.Readline.Close()
}

func (s *Shell) sessionStart() *logger.SessionStart {
	wd, _ := os.Getwd()
	return &logger.SessionStart{
		User:        os.Getenv("USER"),
		WorkingDir:  wd,
		Interactive: s.IO.Interactive(),
	}
}
