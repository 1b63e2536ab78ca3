package core

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIONilStreams(t *testing.T) {
	stdio := NewIO(nil, nil, nil)

	n, err := stdio.Stdout.Write([]byte("dropped"))
	assert.Nil(t, err)
	assert.Equal(t, 7, n)

	_, err = stdio.Stdin.Read(make([]byte, 1))
	assert.Equal(t, io.EOF, err)
}

func TestIOBuffers(t *testing.T) {
	stdio := NewIO(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})

	assert.False(t, stdio.Interactive())
	assert.Equal(t, 80, stdio.Width())
}
