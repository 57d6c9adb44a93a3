// Package retention clears paired-set history on a cron schedule, for
// long-lived sets whose producers keep appending.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	robfigcron "github.com/robfig/cron/v3"
)

// Clearer is anything whose stored history can be dropped.
type Clearer interface {
	Clear()
}

var parser = robfigcron.NewParser(
	robfigcron.Minute | robfigcron.Hour | robfigcron.Dom | robfigcron.Month | robfigcron.Dow | robfigcron.Descriptor,
)

// ParseSchedule parses a standard 5-field cron expression or a descriptor
// such as "@hourly" or "@every 10m".
func ParseSchedule(expr string) (robfigcron.Schedule, error) {
	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", expr, err)
	}
	return sched, nil
}

// Scheduler calls Clear on its target every time the schedule fires.
type Scheduler struct {
	target   Clearer
	expr     string
	schedule robfigcron.Schedule // nil when disabled
	logger   *slog.Logger
	runs     atomic.Int64
}

// NewScheduler creates a Scheduler. An empty expr yields a disabled
// scheduler whose Start only waits for cancellation.
func NewScheduler(target Clearer, expr string, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{target: target, expr: expr, logger: logger}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if expr == "" {
		return s, nil
	}

	sched, err := ParseSchedule(expr)
	if err != nil {
		return nil, err
	}
	s.schedule = sched
	return s, nil
}

func (s *Scheduler) Enabled() bool { return s.schedule != nil }

// Runs returns how many times the target has been cleared.
func (s *Scheduler) Runs() int64 { return s.runs.Load() }

// Next returns the next fire time after now, or the zero time when disabled.
func (s *Scheduler) Next(now time.Time) time.Time {
	if s.schedule == nil {
		return time.Time{}
	}
	return s.schedule.Next(now)
}

// Start runs the schedule until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.schedule == nil {
		s.logger.Debug("retention: disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	c := robfigcron.New(robfigcron.WithParser(parser))
	c.Schedule(s.schedule, robfigcron.FuncJob(s.clear))
	c.Start()
	s.logger.Info("retention: started", "schedule", s.expr, "next", s.Next(time.Now()))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("retention: stopped", "runs", s.Runs())
	return ctx.Err()
}

func (s *Scheduler) clear() {
	s.target.Clear()
	n := s.runs.Add(1)
	s.logger.Info("retention: history cleared", "run", n)
}
