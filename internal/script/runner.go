package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/crystaldolphin/pairbus/internal/bus"
)

// Runner executes steps against a guarded set and writes deliveries and
// history listings to out.
type Runner struct {
	target *bus.Guarded
	out    io.Writer
	logger *slog.Logger
}

func NewRunner(target *bus.Guarded, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{target: target, out: out, logger: logger}
}

// Run executes every step in order. It stops at the first failing step or
// when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, s *Script) error {
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Exec(step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	r.logger.Debug("script: done", "steps", len(s.Steps))
	return nil
}

// Exec runs a single step. Names that are not bound to the kind the step
// needs are reported as *bus.UnboundNameError instead of panicking.
func (r *Runner) Exec(step Step) error {
	switch step.Op {
	case OpPass:
		if err := r.check(step.Name, bus.KindProducer); err != nil {
			return err
		}
		r.target.Pass(step.Name, step.Args...)

	case OpReceive:
		if err := r.check(step.Name, bus.KindConsumer); err != nil {
			return err
		}
		label := step.Label
		if label == "" {
			label = step.Name
		}
		r.target.Receive(step.Name, func(args ...any) {
			fmt.Fprintf(r.out, "%s <- %s\n", label, FormatArgs(args))
		})

	case OpClear:
		r.target.Clear()
		fmt.Fprintln(r.out, "cleared")

	case OpHistory:
		hist, ok := r.target.History(step.Name)
		if !ok {
			return &bus.UnboundNameError{Name: step.Name, Want: bus.KindProducer}
		}
		fmt.Fprintf(r.out, "%s: %d call(s)\n", step.Name, len(hist))
		for i, rec := range hist {
			fmt.Fprintf(r.out, "  #%d %s\n", i+1, FormatArgs(rec.Args()))
		}

	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}

	r.logger.Debug("script: step", "op", step.Op, "name", step.Name, "args", len(step.Args))
	return nil
}

func (r *Runner) check(name string, want bus.Kind) error {
	b, ok := r.target.Lookup(name)
	if !ok {
		return &bus.UnboundNameError{Name: name, Want: want}
	}
	if b.Kind != want {
		return &bus.UnboundNameError{Name: name, Want: want, Got: b.Kind}
	}
	return nil
}

// FormatArgs renders an argument list as ["jim", 42, true].
func FormatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			parts[i] = strconv.Quote(v)
		case nil:
			parts[i] = "null"
		default:
			parts[i] = fmt.Sprintf("%v", v)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
