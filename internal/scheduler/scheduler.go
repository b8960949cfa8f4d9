// Package scheduler runs one job on a wall-clock schedule and on demand.
// Runs never overlap: a trigger that arrives while a run is in flight joins
// it and receives the same result.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"docflow/pkg/requestcontext"
)

// ErrNotRunning is returned by Trigger before Run started or after it stopped.
var ErrNotRunning = errors.New("scheduler is not running")

// Job is a self-contained unit of scheduled work.
type Job[R any] interface {
	Name() string
	Run(ctx context.Context) (R, error)
}

type config struct {
	interval time.Duration
	hour     int
	minute   int
	location *time.Location
	now      func() time.Time
	after    func(time.Duration) <-chan time.Time
	logger   *slog.Logger
}

type Option func(*config)

// WithInterval sets the period between scheduled runs.
func WithInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithStartAt sets the wall-clock time of the first run.
func WithStartAt(hour, minute int, loc *time.Location) Option {
	return func(c *config) {
		c.hour, c.minute = hour, minute
		if loc != nil {
			c.location = loc
		}
	}
}

// WithClock replaces time.Now and time.After, for tests.
func WithClock(now func() time.Time, after func(time.Duration) <-chan time.Time) Option {
	return func(c *config) {
		c.now = now
		c.after = after
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Scheduler drives a Job.
type Scheduler[R any] struct {
	job   Job[R]
	cfg   config
	group singleflight.Group

	mu      sync.Mutex
	baseCtx context.Context
}

func New[R any](job Job[R], opts ...Option) (*Scheduler[R], error) {
	if job == nil {
		return nil, errors.New("job is required")
	}
	cfg := config{
		interval: 24 * time.Hour,
		location: time.UTC,
		now:      time.Now,
		after:    time.After,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.hour < 0 || cfg.hour > 23 || cfg.minute < 0 || cfg.minute > 59 {
		return nil, fmt.Errorf("invalid start time %02d:%02d", cfg.hour, cfg.minute)
	}
	return &Scheduler[R]{job: job, cfg: cfg}, nil
}

// FirstRun returns the first configured wall-clock start strictly after t.
func (s *Scheduler[R]) FirstRun(t time.Time) time.Time {
	local := t.In(s.cfg.location)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.cfg.hour, s.cfg.minute, 0, 0, s.cfg.location)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run blocks until ctx is done, running the job at every scheduled time.
// Missed ticks are skipped, not replayed. A failing run is logged and does
// not stop the schedule.
func (s *Scheduler[R]) Run(ctx context.Context) error {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.baseCtx = nil
		s.mu.Unlock()
	}()

	next := s.FirstRun(s.cfg.now())
	s.cfg.logger.Info("job scheduled", "job", s.job.Name(), "next_run", next, "interval", s.cfg.interval)
	for {
		select {
		case <-ctx.Done():
			s.cfg.logger.Info("scheduler stopped", "job", s.job.Name())
			return nil
		case <-s.cfg.after(next.Sub(s.cfg.now())):
		}

		if _, _, err := s.do(ctx, "schedule"); err != nil && ctx.Err() == nil {
			s.cfg.logger.Error("scheduled run failed", "job", s.job.Name(), "error", err)
		}

		now := s.cfg.now()
		for !next.After(now) {
			next = next.Add(s.cfg.interval)
		}
	}
}

// Trigger runs the job now, under the scheduler's context, and waits for the
// result or for ctx. shared reports whether the call joined a run already in
// flight.
func (s *Scheduler[R]) Trigger(ctx context.Context) (result R, shared bool, err error) {
	s.mu.Lock()
	base := s.baseCtx
	s.mu.Unlock()
	if base == nil {
		return result, false, ErrNotRunning
	}

	ch := s.group.DoChan(s.job.Name(), func() (any, error) {
		return s.run(base, "trigger")
	})
	select {
	case <-ctx.Done():
		return result, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return result, res.Shared, res.Err
		}
		val, _ := res.Val.(R)
		return val, res.Shared, nil
	}
}

func (s *Scheduler[R]) do(ctx context.Context, reason string) (R, bool, error) {
	v, err, shared := s.group.Do(s.job.Name(), func() (any, error) {
		return s.run(ctx, reason)
	})
	val, _ := v.(R)
	return val, shared, err
}

func (s *Scheduler[R]) run(ctx context.Context, reason string) (any, error) {
	runID := uuid.NewString()
	ctx = requestcontext.WithRunID(ctx, runID)
	start := s.cfg.now()
	s.cfg.logger.InfoContext(ctx, "job run started", "job", s.job.Name(), "run_id", runID, "reason", reason)

	result, err := s.job.Run(ctx)
	if err != nil {
		return result, fmt.Errorf("%s: %w", s.job.Name(), err)
	}
	s.cfg.logger.InfoContext(ctx, "job run finished",
		"job", s.job.Name(),
		"run_id", runID,
		"elapsed", s.cfg.now().Sub(start),
	)
	return result, nil
}
