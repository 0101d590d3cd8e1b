package service

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type Clock interface {
	Now() time.Time
}

type processFn func(ctx context.Context) error

type Scheduler struct {
	refresh         processFn
	refreshInterval time.Duration

	log *slog.Logger
}

func NewScheduler(stations *Stations, refreshInterval time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{
		refresh:         stations.Refresh,
		refreshInterval: refreshInterval,
		log:             log.With("component", "scheduler"),
	}
}

// Start blocks until ctx is done. Stations are refreshed right away so that the API can
// serve data without waiting a whole interval after a restart.
func (s *Scheduler) Start(ctx context.Context) {
	s.run(ctx, s.refreshInterval, "refresh_stations", s.refresh)
}

func (s *Scheduler) run(ctx context.Context, interval time.Duration, process string, fn processFn) {
	log := s.log.With("process", process)
	defer func() {
		log.InfoContext(ctx, "Stopped scheduler")
	}()

	log.InfoContext(ctx, "Starting scheduler", "interval", interval)
	s.execute(ctx, fn, log)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.execute(ctx, fn, log)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, fn processFn, log *slog.Logger) {
	err := withRecovery(ctx, fn, log)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		log.InfoContext(ctx, "Action execution interrupted", "error", err)
		return
	}
	log.ErrorContext(ctx, "Failed to run process", "error", err)
}

func withRecovery(ctx context.Context, fn processFn, log *slog.Logger) error {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "Recovered from panic", "error", r)
		}
	}()
	return fn(ctx)
}
