// Package scheduler runs a job after a first delay and then on a fixed
// interval, never letting two runs overlap.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"
)

// Job is the unit of scheduled work. It receives the scheduler's context.
type Job func(ctx context.Context)

// Config configures a Scheduler.
type Config struct {
	// FirstDelay is the wait before the first run.
	FirstDelay time.Duration

	// Interval is the period between runs after the first.
	Interval time.Duration

	// OnSkip is called when a tick is dropped because the previous run is
	// still in progress. Optional.
	OnSkip func()

	Logger *slog.Logger
}

// Scheduler fires a Job on a fixed cadence with skip-if-busy semantics.
type Scheduler struct {
	cfg  Config
	job  Job
	busy *semaphore.Weighted
}

// New creates a Scheduler for job.
func New(cfg Config, job Job) *Scheduler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Scheduler{cfg: cfg, job: job, busy: semaphore.NewWeighted(1)}
}

// Run blocks until ctx is cancelled. Ticks that arrive while the job is
// still running are dropped. On cancellation Run returns at once; a job
// in flight sees the cancelled context and is not waited for.
func (s *Scheduler) Run(ctx context.Context) {
	logger := s.cfg.Logger.With(slog.String("component", "scheduler"))
	logger.Info("scheduler started",
		slog.Duration("first_delay", s.cfg.FirstDelay),
		slog.Duration("interval", s.cfg.Interval),
	)

	first := time.NewTimer(s.cfg.FirstDelay)
	defer first.Stop()

	select {
	case <-ctx.Done():
		logger.Info("scheduler stopped")
		return
	case <-first.C:
		s.fire(ctx, logger)
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.fire(ctx, logger)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, logger *slog.Logger) {
	if !s.busy.TryAcquire(1) {
		logger.Warn("previous run still in progress, skipping tick")
		if s.cfg.OnSkip != nil {
			s.cfg.OnSkip()
		}
		return
	}
	go func() {
		defer s.busy.Release(1)
		defer func() {
			if r := recover(); r != nil {
				logger.Error("scheduled job panicked", slog.Any("panic", r))
			}
		}()
		s.job(ctx)
	}()
}
