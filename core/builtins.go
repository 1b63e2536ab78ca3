package core

import (
	"fmt"
	"os"

	"github.com/tish-shell/tish/core/logger"
)

// Signal tells the read-eval loop whether to keep accepting commands.
type Signal int

const (
	// Continue keeps the loop reading commands.
	Continue Signal = iota
	// Terminate ends the session normally.
	Terminate
)

// Builtin is a command the shell runs in-process instead of launching.
type Builtin interface {
	Main(s *Shell, args []string) Signal
}

type BuiltinFunc func(s *Shell, args []string) Signal

func (f BuiltinFunc) Main(s *Shell, args []string) Signal {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

// Registry is a fixed table of builtins. Lookup is by exact name and Names
// preserves registration order, which is the order help lists them in.
type Registry struct {
	names []string
	table map[string]Builtin
}

func newRegistry() *Registry {
	return &Registry{table: make(map[string]Builtin)}
}

func (r *Registry) register(name string, builtin Builtin) {
	if _, exists := r.table[name]; exists {
		panic("duplicate builtin: " + name)
	}
	r.names = append(r.names, name)
	r.table[name] = builtin
}

// Lookup finds a builtin by exact name.
func (r *Registry) Lookup(name string) (Builtin, bool) {
	builtin, ok := r.table[name]
	return builtin, ok
}

// Names returns the builtin names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Len reports the number of registered builtins.
func (r *Registry) Len() int {
	return len(r.names)
}

// AllBuiltins holds all registered shell builtins.
var AllBuiltins = newRegistry()

// Cd is the cd shell builtin. It changes the process-wide working directory,
// which every later child process inherits.
func Cd(s *Shell, args []string) Signal {
	if len(args) < 2 {
		fmt.Fprintf(s.IO.Stderr, "tish: expected argument to %q\n", args[0])
		s.log.Record(&logger.InvalidInvocation{Command: args, Error: "expected argument"})
		return Continue
	}

	// Arguments after the target directory are ignored.
	if err := os.Chdir(args[1]); err != nil {
		fmt.Fprintf(s.IO.Stderr, "tish: %v\n", err)
	}
	return Continue
}

// Help prints a short banner and the builtins in registration order.
func Help(s *Shell, args []string) Signal {
	w := s.IO.Stdout
	fmt.Fprintln(w, "tish, a tiny shell")
	fmt.Fprintln(w, "Type program names and arguments, then hit enter.")
	fmt.Fprintf(w, "The following %d commands are built in:\n", s.builtins.Len())
	for _, name := range s.builtins.Names() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w, "Use the man command for information on other programs.")
	return Continue
}

// Exit quits the shell. Arguments are ignored.
func Exit(s *Shell, args []string) Signal {
	return Terminate
}

func init() {
	AllBuiltins.register("cd", BuiltinFunc(Cd))
	AllBuiltins.register("help", BuiltinFunc(Help))
	AllBuiltins.register("exit", BuiltinFunc(Exit))
}
