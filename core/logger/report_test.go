package logger

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"sigs.k8s.io/yaml"
)

func TestReport(t *testing.T) {
	entries := []*LogEntry{
		{SessionStart: &SessionStart{User: "kim", WorkingDir: "/home/kim", Interactive: true}},
		{Builtin: &Builtin{Name: "cd", Args: []string{"/tmp"}}},
		{RunCommand: &RunCommand{Command: []string{"ls", "-l"}, ResolvedPath: "/bin/ls", ExitCode: 0}},
		{RunCommand: &RunCommand{Command: []string{"ls", "missing"}, ResolvedPath: "/bin/ls", ExitCode: 2}},
		{RunCommand: &RunCommand{Command: []string{"sleep", "100"}, ResolvedPath: "/bin/sleep", ExitCode: -1, Signal: "terminated"}},
		{UnknownCommand: &UnknownCommand{Command: []string{"frobnicate"}}},
		{InvalidInvocation: &InvalidInvocation{Command: []string{"cd"}, Error: "expected argument"}},
		{Builtin: &Builtin{Name: "exit"}},
		{SessionEnd: &SessionEnd{Reason: EndReasonExit}},
		{},
	}

	report := &Report{}
	for _, entry := range entries {
		report.Update(entry)
	}
	assert.Equal(t, len(entries), report.LogEntries)

	out, err := yaml.Marshal(report)
	assert.Nil(t, err)

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)
	g.Assert(t, "report", out)
}

func TestReadJSONLinesLog(t *testing.T) {
	contents := `{"timestamp_micros":1,"session_end":{"reason":"exit"}}
{"timestamp_micros":2,"session_end":{"reason":"end-of-input"}}
`
	var got []string
	err := ReadJSONLinesLog(strings.NewReader(contents), func(le *LogEntry) {
		got = append(got, le.SessionEnd.Reason)
	})
	assert.Nil(t, err)
	assert.Equal(t, []string{"exit", "end-of-input"}, got)
}

func TestReadJSONLinesLogBadInput(t *testing.T) {
	err := ReadJSONLinesLog(strings.NewReader("{certainly not json}"), func(le *LogEntry) {
		t.Error("handler shouldn't be called")
	})
	assert.NotNil(t, err)
}

func TestStrCounter(t *testing.T) {
	var counter StrCounter
	counter.Increment("a")
	counter.Increment("b")
	counter.Increment("a")

	out, err := counter.MarshalJSON()
	assert.Nil(t, err)
	assert.Equal(t, `{"a":2,"b":1}`, string(out))
}
