// Package dependency wires core scheduledisplay services using go.uber.org/dig.
package dependency

import (
	"log/slog"

	"go.uber.org/dig"

	"github.com/crystaldolphin/scheduledisplay/internal/config"
	"github.com/crystaldolphin/scheduledisplay/internal/display"
	"github.com/crystaldolphin/scheduledisplay/internal/feed"
	"github.com/crystaldolphin/scheduledisplay/internal/jobstore"
	"github.com/crystaldolphin/scheduledisplay/internal/logging"
	"github.com/crystaldolphin/scheduledisplay/internal/recurrence"
	"github.com/crystaldolphin/scheduledisplay/internal/schedule"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	cfg     *config.Config
	log     *slog.Logger
	planner *schedule.Planner
	display *display.Service
	store   *jobstore.Store
	feed    *feed.Server
}

func (c *Container) Config() *config.Config     { return c.cfg }
func (c *Container) Logger() *slog.Logger       { return c.log }
func (c *Container) Planner() *schedule.Planner { return c.planner }
func (c *Container) Display() *display.Service  { return c.display }
func (c *Container) JobStore() *jobstore.Store  { return c.store }
func (c *Container) Feed() *feed.Server         { return c.feed }

// New builds and wires all core services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(newLogger); err != nil {
		return nil, err
	}
	if err := d.Provide(recurrence.NewCache); err != nil {
		return nil, err
	}
	if err := d.Provide(schedule.NewPlanner); err != nil {
		return nil, err
	}
	if err := d.Provide(display.NewService); err != nil {
		return nil, err
	}
	if err := d.Provide(newJobStore); err != nil {
		return nil, err
	}
	if err := d.Provide(newFeedServer); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		log *slog.Logger,
		planner *schedule.Planner,
		svc *display.Service,
		store *jobstore.Store,
		srv *feed.Server,
	) {
		result = &Container{
			cfg:     cfg,
			log:     log,
			planner: planner,
			display: svc,
			store:   store,
			feed:    srv,
		}
	})
	return result, err
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.Setup(cfg.Logging.Level, false)
}

// newJobStore returns an unloaded store; callers Load before reading.
func newJobStore(cfg *config.Config) *jobstore.Store {
	return jobstore.New(cfg.JobsPath())
}

func newFeedServer(cfg *config.Config, svc *display.Service, log *slog.Logger) *feed.Server {
	return feed.NewServer(cfg.Server.Addr, cfg.Server.Refresh(), svc, log)
}
