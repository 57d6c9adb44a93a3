package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want Step
	}{
		{"pass pass jim", Step{Op: OpPass, Name: "pass", Args: []any{"jim"}}},
		{"pass pass", Step{Op: OpPass, Name: "pass"}},
		{`PASS send "herald ruth" 42 true 2.5 ~`, Step{Op: OpPass, Name: "send", Args: []any{"herald ruth", 42, true, 2.5, nil}}},
		{`pass send '42' "" [x`, Step{Op: OpPass, Name: "send", Args: []any{"42", "", "[x"}}},
		{"pass send #tag", Step{Op: OpPass, Name: "send", Args: []any{"#tag"}}},
		{"receive receive", Step{Op: OpReceive, Name: "receive"}},
		{"receive receive h1", Step{Op: OpReceive, Name: "receive", Label: "h1"}},
		{"  history\tpass  ", Step{Op: OpHistory, Name: "pass"}},
		{"clear", Step{Op: OpClear}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			step, ok, err := ParseLine(tt.line)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, step)
		})
	}
}

func TestParseLine_Skipped(t *testing.T) {
	for _, line := range []string{"", "   ", "# comment"} {
		_, ok, err := ParseLine(line)
		assert.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestParseLine_Errors(t *testing.T) {
	for _, line := range []string{
		"shout pass",
		"pass",
		"receive",
		"receive a b c",
		"history",
		"clear now",
		`pass send "open`,
	} {
		t.Run(line, func(t *testing.T) {
			_, ok, err := ParseLine(line)
			assert.Error(t, err)
			assert.False(t, ok)
		})
	}
}
