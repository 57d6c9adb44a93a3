package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystaldolphin/pairbus/internal/bus"
	"github.com/crystaldolphin/pairbus/internal/config"
)

func TestNew_Default(t *testing.T) {
	cfg := config.DefaultConfig()
	c, err := New(&cfg)
	require.NoError(t, err)

	require.NotNil(t, c.Logger())
	require.NotNil(t, c.PairedSet())
	assert.Same(t, c.PairedSet(), c.Guarded().Unwrap())
	assert.True(t, c.PairedSet().Recording())
	assert.Equal(t, []string{"pass", "receive"}, c.PairedSet().Names())
	assert.False(t, c.Scheduler().Enabled())
}

func TestNew_WiresConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pairs = []any{[]any{"emit", "on"}, []any{"send", "onSend"}}
	cfg.Recording = false
	cfg.Retention.Schedule = "@hourly"

	c, err := New(&cfg)
	require.NoError(t, err)
	assert.False(t, c.PairedSet().Recording())
	assert.Len(t, c.PairedSet().Pairs(), 2)
	assert.True(t, c.Scheduler().Enabled())
}

func TestNew_InvalidPairs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pairs = []any{}

	c, err := New(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, bus.ErrInvalidConfiguration)
	assert.Nil(t, c)
}
