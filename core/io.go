package core

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IO holds the standard streams shared by the shell and the processes it
// launches. Children inherit the streams directly so their output interleaves
// with the shell's own.
type IO struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
}

// NewIO builds an IO from the given streams. Nil streams are replaced with a
// /dev/null style placeholder, reads give EOF and writes are discarded.
func NewIO(stdin io.Reader, stdout, stderr io.Writer) *IO {
	return &IO{
		Stdin:  toReadCloserOrDiscard(stdin),
		Stdout: toWriterOrDiscard(stdout),
		Stderr: toWriterOrDiscard(stderr),
	}
}

// StandardIO returns an IO wired to the process's own streams.
func StandardIO() *IO {
	return NewIO(os.Stdin, os.Stdout, os.Stderr)
}

// Interactive reports whether Stdin is attached to a terminal.
func (s *IO) Interactive() bool {
	if fd, ok := s.Stdin.(hasFd); ok {
		return term.IsTerminal(int(fd.Fd()))
	}
	return false
}

// Width reports the terminal width of Stdout, or 80 when there is no
// terminal to measure.
func (s *IO) Width() int {
	if fd, ok := s.Stdout.(hasFd); ok {
		if width, _, err := term.GetSize(int(fd.Fd())); err == nil {
			return width
		}
	}
	return 80
}

type hasFd interface {
	Fd() uintptr
}

func toWriterOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return &devNull{}
	}
	return w
}

func toReadCloserOrDiscard(r io.Reader) io.ReadCloser {
	if r == nil {
		return &devNull{}
	}
	if rc, ok := r.(io.ReadCloser); ok {
		return rc
	}

	return io.NopCloser(r)
}

// devNull gives EOF on reads and discards writes. Children launched with it
// as stdin see their input closed, the same as reading /dev/null.
type devNull struct{}

var _ io.ReadCloser = (*devNull)(nil)
var _ io.WriteCloser = (*devNull)(nil)

func (*devNull) Read([]byte) (int, error) {
	return 0, io.EOF
}

func (*devNull) Close() error {
	return nil
}

func (*devNull) Write(b []byte) (int, error) {
	return len(b), nil
}
