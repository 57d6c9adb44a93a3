package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystaldolphin/pairbus/internal/bus"
	"github.com/crystaldolphin/pairbus/internal/logging"
)

func newRunner(t *testing.T, opts ...bus.Option) (*Runner, *bytes.Buffer) {
	t.Helper()
	set, err := bus.NewPairedSet([]bus.Pair{bus.NewPair("pass", "receive")}, opts...)
	require.NoError(t, err)
	var out bytes.Buffer
	return NewRunner(bus.NewGuarded(set), &out, logging.Nop()), &out
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - op: pass
    name: pass
    args: [herald, ruth, 3]
  - op: receive
    name: receive
    label: h1
  - op: clear
`))
	require.NoError(t, err)
	require.Len(t, s.Steps, 3)
	assert.Equal(t, OpPass, s.Steps[0].Op)
	assert.Equal(t, []any{"herald", "ruth", 3}, s.Steps[0].Args)
	assert.Equal(t, "h1", s.Steps[1].Label)
	assert.Equal(t, OpClear, s.Steps[2].Op)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":       "steps: [",
		"no steps":     "steps: []",
		"unknown op":   "steps: [{op: shout, name: pass}]",
		"missing name": "steps: [{op: pass}]",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - op: clear\n"), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Steps, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunner_Run(t *testing.T) {
	r, out := newRunner(t)

	err := r.Run(context.Background(), &Script{Steps: []Step{
		{Op: OpPass, Name: "pass", Args: []any{"jim"}},
		{Op: OpReceive, Name: "receive", Label: "h"},
		{Op: OpPass, Name: "pass", Args: []any{"herald", 2}},
		{Op: OpHistory, Name: "pass"},
		{Op: OpClear},
		{Op: OpReceive, Name: "receive", Label: "h2"},
		{Op: OpHistory, Name: "receive"},
	}})
	require.NoError(t, err)

	assert.Equal(t, `h <- ["jim"]
h <- ["herald", 2]
pass: 2 call(s)
  #1 ["jim"]
  #2 ["herald", 2]
cleared
receive: 0 call(s)
`, out.String())
}

func TestRunner_RecordingDisabled(t *testing.T) {
	r, out := newRunner(t, bus.WithRecording(false))

	err := r.Run(context.Background(), &Script{Steps: []Step{
		{Op: OpPass, Name: "pass", Args: []any{"data"}},
		{Op: OpReceive, Name: "receive"},
		{Op: OpPass, Name: "pass", Args: []any{"more"}},
		{Op: OpHistory, Name: "pass"},
	}})
	require.NoError(t, err)

	assert.NotContains(t, out.String(), "<-")
	assert.Contains(t, out.String(), "pass: 2 call(s)")
}

func TestRunner_UnboundName(t *testing.T) {
	r, _ := newRunner(t)

	err := r.Run(context.Background(), &Script{Steps: []Step{
		{Op: OpPass, Name: "pass"},
		{Op: OpPass, Name: "receive"},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2")

	var unbound *bus.UnboundNameError
	require.True(t, errors.As(err, &unbound))
	assert.Equal(t, bus.KindConsumer, unbound.Got)

	err = r.Exec(Step{Op: OpReceive, Name: "nope"})
	require.True(t, errors.As(err, &unbound))
	assert.Equal(t, "nope", unbound.Name)

	err = r.Exec(Step{Op: OpHistory, Name: "nope"})
	assert.Error(t, err)
}

func TestRunner_Cancelled(t *testing.T) {
	r, out := newRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx, &Script{Steps: []Step{{Op: OpClear}}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestFormatArgs(t *testing.T) {
	assert.Equal(t, "[]", FormatArgs(nil))
	assert.Equal(t, `["a b", 1, true, null, 2.5]`, FormatArgs([]any{"a b", 1, true, nil, 2.5}))
}
