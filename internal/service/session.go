// Package service contains the business logic for the trip planner API.
// Services orchestrate repo calls and publish session events.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/planner"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// Event kinds published to a Notifier.
const (
	EventSessionStarted    = "session.started"
	EventSessionUpdated    = "session.updated"
	EventSessionReset      = "session.reset"
	EventSessionClosed     = "session.closed"
	EventCurationStarted   = "curation.started"
	EventCurationDecided   = "curation.decided"
	EventCurationCompleted = "curation.completed"
)

// Notifier receives a notification after every successful session transition.
// SessionChanged is called while the session is locked: implementations must
// not block and must not call back into the SessionService.
type Notifier interface {
	SessionChanged(kind string, snap planner.Snapshot)
	SessionClosed(id uuid.UUID)
}

type nopNotifier struct{}

func (nopNotifier) SessionChanged(string, planner.Snapshot) {}
func (nopNotifier) SessionClosed(uuid.UUID)                 {}

// SessionService drives planning sessions through the wizard.
type SessionService struct {
	catalog  repo.CatalogRepo
	sessions repo.SessionRepo
	notifier Notifier
	now      func() time.Time
	horizon  int
}

// Option configures a SessionService.
type Option func(*SessionService)

// WithNotifier sets the Notifier that receives session events.
func WithNotifier(n Notifier) Option {
	return func(s *SessionService) { s.notifier = n }
}

// WithClock replaces time.Now. Tests use it to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *SessionService) { s.now = now }
}

// WithHorizon sets the number of selectable days in the calendar window.
func WithHorizon(days int) Option {
	return func(s *SessionService) { s.horizon = days }
}

// NewSessionService constructs a SessionService backed by the provided repos.
func NewSessionService(catalog repo.CatalogRepo, sessions repo.SessionRepo, opts ...Option) *SessionService {
	s := &SessionService{
		catalog:  catalog,
		sessions: sessions,
		notifier: nopNotifier{},
		now:      time.Now,
		horizon:  planner.DefaultHorizon,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates a new session against the current catalog.
func (s *SessionService) Start(ctx context.Context) (planner.Snapshot, error) {
	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return planner.Snapshot{}, fmt.Errorf("service.SessionService.Start: %w", err)
	}

	sess := planner.NewSession(uuid.New(), catalog, s.now(), s.horizon)
	if err := s.sessions.Create(ctx, sess); err != nil {
		return planner.Snapshot{}, fmt.Errorf("service.SessionService.Start: %w", err)
	}

	snap := sess.Snapshot()
	s.notifier.SessionChanged(EventSessionStarted, snap)
	return snap, nil
}

// Get returns the current snapshot of a session.
func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (planner.Snapshot, error) {
	snap, err := s.sessions.Get(ctx, id)
	if err != nil {
		return planner.Snapshot{}, fmt.Errorf("service.SessionService.Get: %w", err)
	}
	return snap, nil
}

// Abandon discards a session.
func (s *SessionService) Abandon(ctx context.Context, id uuid.UUID) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.SessionService.Abandon: %w", err)
	}
	s.notifier.SessionClosed(id)
	return nil
}

// Reset drops every choice the traveller made, including curation progress.
func (s *SessionService) Reset(ctx context.Context, id uuid.UUID) (planner.Snapshot, error) {
	return s.update(ctx, id, "Reset", EventSessionReset, func(sess *planner.Session) error {
		sess.Reset()
		return nil
	})
}

// SelectCountry picks the destination country.
func (s *SessionService) SelectCountry(ctx context.Context, id uuid.UUID, country string) (planner.Snapshot, error) {
	return s.update(ctx, id, "SelectCountry", EventSessionUpdated, func(sess *planner.Session) error {
		return sess.SelectCountry(country)
	})
}

// SelectCity picks a city of the selected country.
func (s *SessionService) SelectCity(ctx context.Context, id uuid.UUID, city string) (planner.Snapshot, error) {
	return s.update(ctx, id, "SelectCity", EventSessionUpdated, func(sess *planner.Session) error {
		return sess.SelectCity(city)
	})
}

// SetBudgetBand picks the budget band.
func (s *SessionService) SetBudgetBand(ctx context.Context, id uuid.UUID, band string) (planner.Snapshot, error) {
	return s.update(ctx, id, "SetBudgetBand", EventSessionUpdated, func(sess *planner.Session) error {
		return sess.SetBudgetBand(band)
	})
}

// ToggleTripType flips membership of one trip type.
func (s *SessionService) ToggleTripType(ctx context.Context, id uuid.UUID, tripType string) (planner.Snapshot, error) {
	return s.update(ctx, id, "ToggleTripType", EventSessionUpdated, func(sess *planner.Session) error {
		_, err := sess.ToggleTripType(tripType)
		return err
	})
}

// OpenCalendar regenerates the calendar window from today and returns it.
func (s *SessionService) OpenCalendar(ctx context.Context, id uuid.UUID) (planner.Calendar, error) {
	var cal planner.Calendar
	_, err := s.sessions.Update(ctx, id, func(sess *planner.Session) error {
		now := s.now()
		cal = sess.OpenCalendar(now)
		sess.Touch(now)
		return nil
	})
	if err != nil {
		return planner.Calendar{}, fmt.Errorf("service.SessionService.OpenCalendar: %w", err)
	}
	return cal, nil
}

// SelectDate taps a date on the calendar and returns the updated view.
func (s *SessionService) SelectDate(ctx context.Context, id uuid.UUID, date time.Time) (planner.Calendar, error) {
	var cal planner.Calendar
	_, err := s.update(ctx, id, "SelectDate", EventSessionUpdated, func(sess *planner.Session) error {
		if _, err := sess.SelectDate(date); err != nil {
			return err
		}
		cal = sess.Calendar()
		return nil
	})
	if err != nil {
		return planner.Calendar{}, err
	}
	return cal, nil
}

// BeginCuration starts the curation stream once the configuration is ready.
func (s *SessionService) BeginCuration(ctx context.Context, id uuid.UUID) (planner.Snapshot, error) {
	return s.update(ctx, id, "BeginCuration", EventCurationStarted, func(sess *planner.Session) error {
		return sess.BeginCuration()
	})
}

// Decide records a like or pass on the current candidate.
func (s *SessionService) Decide(ctx context.Context, id uuid.UUID, like bool) (planner.Snapshot, error) {
	return s.update(ctx, id, "Decide", EventCurationDecided, func(sess *planner.Session) error {
		return sess.Decide(like)
	})
}

// Summary returns the liked places once curation is terminal.
func (s *SessionService) Summary(ctx context.Context, id uuid.UUID) (planner.Summary, error) {
	var sum planner.Summary
	err := s.sessions.View(ctx, id, func(sess *planner.Session) error {
		var err error
		sum, err = sess.Summary()
		return err
	})
	if err != nil {
		return planner.Summary{}, fmt.Errorf("service.SessionService.Summary: %w", err)
	}
	return sum, nil
}

// Handoff returns the itinerary renderer payload once curation is terminal.
func (s *SessionService) Handoff(ctx context.Context, id uuid.UUID) (planner.Handoff, error) {
	var h planner.Handoff
	err := s.sessions.View(ctx, id, func(sess *planner.Session) error {
		var err error
		h, err = sess.Handoff()
		return err
	})
	if err != nil {
		return planner.Handoff{}, fmt.Errorf("service.SessionService.Handoff: %w", err)
	}
	return h, nil
}

// update applies fn under the session lock, stamps the activity time and
// publishes event. Publishing happens before the lock is released, so a
// session's events reach the notifier in the order they were applied. A
// curation step that finishes the stream is followed by curation.completed.
func (s *SessionService) update(ctx context.Context, id uuid.UUID, op, event string, fn func(*planner.Session) error) (planner.Snapshot, error) {
	now := s.now()
	snap, err := s.sessions.Update(ctx, id, func(sess *planner.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		sess.Touch(now)

		snap := sess.Snapshot()
		s.notifier.SessionChanged(event, snap)
		if snap.Phase == planner.PhaseComplete && (event == EventCurationStarted || event == EventCurationDecided) {
			s.notifier.SessionChanged(EventCurationCompleted, snap)
		}
		return nil
	})
	if err != nil {
		return planner.Snapshot{}, fmt.Errorf("service.SessionService.%s: %w", op, err)
	}
	return snap, nil
}
