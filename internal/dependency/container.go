// Package dependency wires pairbus services using go.uber.org/dig.
package dependency

import (
	"log/slog"

	"go.uber.org/dig"

	"github.com/crystaldolphin/pairbus/internal/bus"
	"github.com/crystaldolphin/pairbus/internal/config"
	"github.com/crystaldolphin/pairbus/internal/logging"
	"github.com/crystaldolphin/pairbus/internal/retention"
)

// Container holds the resolved service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	logger    *slog.Logger
	set       *bus.PairedSet
	guarded   *bus.Guarded
	scheduler *retention.Scheduler
}

func (c *Container) Logger() *slog.Logger            { return c.logger }
func (c *Container) PairedSet() *bus.PairedSet       { return c.set }
func (c *Container) Guarded() *bus.Guarded           { return c.guarded }
func (c *Container) Scheduler() *retention.Scheduler { return c.scheduler }

// New validates cfg and builds all services from it.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(newLogger); err != nil {
		return nil, err
	}
	if err := d.Provide(newPairs); err != nil {
		return nil, err
	}
	if err := d.Provide(newPairedSet); err != nil {
		return nil, err
	}
	if err := d.Provide(bus.NewGuarded); err != nil {
		return nil, err
	}
	if err := d.Provide(newScheduler); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		logger *slog.Logger,
		set *bus.PairedSet,
		guarded *bus.Guarded,
		scheduler *retention.Scheduler,
	) {
		result = &Container{
			logger:    logger,
			set:       set,
			guarded:   guarded,
			scheduler: scheduler,
		}
	})
	if err != nil {
		// unwrap dig's provider chain so callers can match on the cause
		return nil, dig.RootCause(err)
	}
	return result, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(cfg.LoggingConfig())
}

func newPairs(cfg *config.Config) ([]bus.Pair, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.PairList()
}

func newPairedSet(cfg *config.Config, pairs []bus.Pair, logger *slog.Logger) (*bus.PairedSet, error) {
	return bus.NewPairedSet(pairs,
		bus.WithRecording(cfg.Recording),
		bus.WithLogger(logger),
	)
}

func newScheduler(cfg *config.Config, g *bus.Guarded, logger *slog.Logger) (*retention.Scheduler, error) {
	return retention.NewScheduler(g, cfg.Retention.Schedule, logger)
}
