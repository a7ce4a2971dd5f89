// Package display assembles the upcoming-builds listing: it reads the job
// file, plans with the configured options and formats the result.
package display

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/crystaldolphin/scheduledisplay/internal/config"
	"github.com/crystaldolphin/scheduledisplay/internal/jobstore"
	"github.com/crystaldolphin/scheduledisplay/internal/render"
	"github.com/crystaldolphin/scheduledisplay/internal/schedule"
)

// Query selects what one listing shows. Zero values fall back to the
// configuration.
type Query struct {
	View     string
	Now      time.Time
	MaxCount int
	MaxDays  int
}

// Service produces listings. Each call reads the job file afresh, so a
// Service holds no per-query state.
type Service struct {
	cfg      *config.Config
	jobsPath string
	planner  *schedule.Planner
	log      *slog.Logger
}

// NewService creates a Service reading jobs from cfg.JobsPath().
func NewService(cfg *config.Config, planner *schedule.Planner, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{cfg: cfg, jobsPath: cfg.JobsPath(), planner: planner, log: log}
}

// WithJobsPath returns a copy reading jobs from path instead.
func (s *Service) WithJobsPath(path string) *Service {
	c := *s
	c.jobsPath = path
	return &c
}

// JobsPath returns the job file this service reads.
func (s *Service) JobsPath() string { return s.jobsPath }

// Snapshot returns the listing for q.
func (s *Service) Snapshot(q Query) (render.Document, error) {
	rows, opts, err := s.Rows(q)
	if err != nil {
		return render.Document{}, err
	}
	return render.NewDocument(rows, s.cfg.Display.Layout(), q.View, opts.Now), nil
}

// Rows plans q and returns the styled rows with the options used.
func (s *Service) Rows(q Query) ([]schedule.Row, schedule.Options, error) {
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	opts, err := s.cfg.Display.Options(now)
	if err != nil {
		return nil, schedule.Options{}, fmt.Errorf("display options: %w", err)
	}
	if q.MaxCount != 0 {
		opts.MaxCount = schedule.ClampMaxCount(q.MaxCount)
	}
	if q.MaxDays != 0 {
		opts.MaxDays = schedule.ClampMaxDays(q.MaxDays)
	}

	store := jobstore.New(s.jobsPath)
	if err := store.Load(); err != nil {
		return nil, schedule.Options{}, fmt.Errorf("load jobs: %w", err)
	}

	view := ""
	if s.cfg.Display.FilterCurrentView {
		view = q.View
	}
	jobs := store.Jobs(view)

	queue, errs := store.Queue(opts.Now.Location())
	for _, err := range errs {
		s.log.Warn("display: skipping queue entry", "err", err)
	}

	return s.planner.Plan(jobs, queue, opts), opts, nil
}
