package retention

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystaldolphin/pairbus/internal/bus"
	"github.com/crystaldolphin/pairbus/internal/logging"
)

type countingClearer struct{ n atomic.Int64 }

func (c *countingClearer) Clear() { c.n.Add(1) }

func TestParseSchedule(t *testing.T) {
	for _, expr := range []string{"*/5 * * * *", "0 3 * * 1-5", "@hourly", "@every 10m"} {
		_, err := ParseSchedule(expr)
		assert.NoError(t, err, expr)
	}
	for _, expr := range []string{"", "not a cron", "* * * * * *", "61 * * * *"} {
		_, err := ParseSchedule(expr)
		assert.Error(t, err, expr)
	}
}

func TestNewScheduler_InvalidExpr(t *testing.T) {
	s, err := NewScheduler(&countingClearer{}, "every tuesday", logging.Nop())
	require.Error(t, err)
	assert.Nil(t, s)
}

func TestScheduler_Disabled(t *testing.T) {
	s, err := NewScheduler(&countingClearer{}, "", logging.Nop())
	require.NoError(t, err)
	assert.False(t, s.Enabled())
	assert.True(t, s.Next(time.Now()).IsZero())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestScheduler_Next(t *testing.T) {
	s, err := NewScheduler(&countingClearer{}, "0 * * * *", logging.Nop())
	require.NoError(t, err)
	require.True(t, s.Enabled())

	now := time.Date(2026, 1, 2, 10, 15, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 2, 11, 0, 0, 0, time.UTC), s.Next(now))
}

func TestScheduler_ClearsTarget(t *testing.T) {
	set, err := bus.NewPairedSet([]bus.Pair{bus.NewPair("pass", "receive")})
	require.NoError(t, err)
	guarded := bus.NewGuarded(set)
	guarded.Pass("pass", "old")

	s, err := NewScheduler(guarded, "@every 1s", logging.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Start(ctx) }()

	require.Eventually(t, func() bool { return s.Runs() >= 1 }, 3*time.Second, 20*time.Millisecond)
	cancel()

	hist, ok := guarded.History("pass")
	require.True(t, ok)
	assert.Empty(t, hist)
}

func TestScheduler_ClearCountsRuns(t *testing.T) {
	target := &countingClearer{}
	s, err := NewScheduler(target, "@daily", logging.Nop())
	require.NoError(t, err)

	s.clear()
	s.clear()
	assert.Equal(t, int64(2), target.n.Load())
	assert.Equal(t, int64(2), s.Runs())
}
