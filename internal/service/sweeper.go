package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// SessionSweeper discards sessions that have been idle longer than the TTL.
type SessionSweeper struct {
	sessions repo.SessionRepo
	notifier Notifier
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
	cron     *cron.Cron
}

// NewSessionSweeper constructs a SessionSweeper. A nil notifier is allowed.
func NewSessionSweeper(sessions repo.SessionRepo, notifier Notifier, ttl time.Duration, logger *slog.Logger) *SessionSweeper {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &SessionSweeper{
		sessions: sessions,
		notifier: notifier,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start schedules Sweep on the given cron spec (e.g. "@every 1m") and starts
// the scheduler in its own goroutine.
func (s *SessionSweeper) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() { s.Sweep(context.Background()) }); err != nil {
		return fmt.Errorf("service.SessionSweeper.Start: schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	s.logger.Info("session sweeper started", "schedule", schedule, "ttl", s.ttl.String())
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *SessionSweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("session sweeper stopped")
}

// Sweep removes idle sessions once and returns how many were removed.
func (s *SessionSweeper) Sweep(ctx context.Context) int {
	removed, err := s.sessions.DeleteIdle(ctx, s.now().Add(-s.ttl))
	if err != nil {
		s.logger.ErrorContext(ctx, "session sweep failed", "error", err)
		return 0
	}
	for _, id := range removed {
		s.notifier.SessionClosed(id)
	}
	if len(removed) > 0 {
		s.logger.InfoContext(ctx, "idle sessions removed", "count", len(removed))
	}
	return len(removed)
}
