package repo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/planner"
)

// SessionRepo holds the live planning sessions. Sessions are never written
// to durable storage; a restart drops them.
//
// A *planner.Session is not safe for concurrent use, so callers never get the
// pointer back: Update and View run fn while the session is exclusively held,
// and Get returns an immutable snapshot.
type SessionRepo interface {
	// Create stores a new session. It fails if the ID is already taken.
	Create(ctx context.Context, s *planner.Session) error

	// Get returns a snapshot of the session.
	// Returns domain.ErrNotFound if no session with that ID exists.
	Get(ctx context.Context, id uuid.UUID) (planner.Snapshot, error)

	// Update runs fn with exclusive access to the session and returns the
	// snapshot taken after fn. An error from fn is returned unchanged.
	// Returns domain.ErrNotFound if no session with that ID exists.
	Update(ctx context.Context, id uuid.UUID, fn func(*planner.Session) error) (planner.Snapshot, error)

	// View runs fn with exclusive access to the session without changing it.
	// Returns domain.ErrNotFound if no session with that ID exists.
	View(ctx context.Context, id uuid.UUID, fn func(*planner.Session) error) error

	// Delete removes a session. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteIdle removes every session last updated before cutoff and returns
	// their IDs.
	DeleteIdle(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}

// entry pairs a session with the lock that serializes its transitions.
type entry struct {
	mu      sync.Mutex
	session *planner.Session
}

// memSessionRepo is the in-memory implementation of SessionRepo.
// The map lock only guards membership; each session has its own lock so
// transitions on different sessions never wait on each other.
type memSessionRepo struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry
}

// NewSessionRepo constructs an empty in-memory SessionRepo.
func NewSessionRepo() SessionRepo {
	return &memSessionRepo{sessions: make(map[uuid.UUID]*entry)}
}

func (r *memSessionRepo) Create(_ context.Context, s *planner.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.ID]; exists {
		return fmt.Errorf("repo.SessionRepo.Create: session %s already exists", s.ID)
	}
	r.sessions[s.ID] = &entry{session: s}
	return nil
}

func (r *memSessionRepo) Get(ctx context.Context, id uuid.UUID) (planner.Snapshot, error) {
	var snap planner.Snapshot
	err := r.View(ctx, id, func(s *planner.Session) error {
		snap = s.Snapshot()
		return nil
	})
	if err != nil {
		return planner.Snapshot{}, fmt.Errorf("repo.SessionRepo.Get: %w", err)
	}
	return snap, nil
}

func (r *memSessionRepo) Update(ctx context.Context, id uuid.UUID, fn func(*planner.Session) error) (planner.Snapshot, error) {
	var snap planner.Snapshot
	err := r.View(ctx, id, func(s *planner.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		snap = s.Snapshot()
		return nil
	})
	if err != nil {
		return planner.Snapshot{}, err
	}
	return snap, nil
}

func (r *memSessionRepo) View(_ context.Context, id uuid.UUID, fn func(*planner.Session) error) error {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

func (r *memSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) DeleteIdle(_ context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []uuid.UUID
	for id, e := range r.sessions {
		e.mu.Lock()
		idle := e.session.UpdatedAt.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed, nil
}
