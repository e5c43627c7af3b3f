package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Phase is where a Session stands in the wizard.
type Phase string

const (
	PhaseConfiguring Phase = "configuring"
	PhaseCurating    Phase = "curating"
	PhaseComplete    Phase = "complete"
)

// Handoff is what the itinerary renderer receives once curation is done.
type Handoff struct {
	SessionID     uuid.UUID
	Configuration Configuration
	LikedPlaces   []domain.Place
}

// CalendarDay is one selectable date as the calendar shows it.
type CalendarDay struct {
	Date     time.Time
	Selected bool // start or end of the range
	InRange  bool
}

// Calendar is the picker's view: the window plus the current selection.
type Calendar struct {
	Days     []CalendarDay
	Range    DateRange
	Phase    DatePhase
	Complete bool
}

// Progress describes a curation stream in flight.
type Progress struct {
	Index    int
	Total    int
	Current  *domain.Place
	Liked    []domain.Place
	Terminal bool
}

// Snapshot is an immutable view of a Session, safe to hand to other goroutines.
type Snapshot struct {
	ID            uuid.UUID
	Phase         Phase
	Configuration Configuration
	DatePhase     DatePhase
	Curation      *Progress // nil until curation begins
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Session is one traveller's pass through the wizard: configuration first,
// then, once Ready, place curation.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	catalog  *domain.Catalog
	config   *TripConfiguration
	calendar *DateRangeSelector
	curation *CurationStream
}

// NewSession returns an empty session created at now.
func NewSession(id uuid.UUID, catalog *domain.Catalog, now time.Time, horizon int) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		catalog:   catalog,
		config:    NewTripConfiguration(catalog),
		calendar:  NewDateRangeSelector(now, horizon),
	}
}

// Touch records activity at now.
func (s *Session) Touch(now time.Time) { s.UpdatedAt = now }

// Phase derives the session phase from its curation stream.
func (s *Session) Phase() Phase {
	switch {
	case s.curation == nil:
		return PhaseConfiguring
	case s.curation.IsTerminal():
		return PhaseComplete
	default:
		return PhaseCurating
	}
}

// Config exposes the configuration for read access.
func (s *Session) Config() *TripConfiguration { return s.config }

func (s *Session) configuring() error {
	if p := s.Phase(); p != PhaseConfiguring {
		return fmt.Errorf("%w: configuration is locked while %s", domain.ErrConflict, p)
	}
	return nil
}

// SelectCountry forwards to the configuration while configuring.
func (s *Session) SelectCountry(country string) error {
	if err := s.configuring(); err != nil {
		return err
	}
	return s.config.SelectCountry(country)
}

// SelectCity forwards to the configuration while configuring.
func (s *Session) SelectCity(city string) error {
	if err := s.configuring(); err != nil {
		return err
	}
	return s.config.SelectCity(city)
}

// SetBudgetBand forwards to the configuration while configuring.
func (s *Session) SetBudgetBand(band string) error {
	if err := s.configuring(); err != nil {
		return err
	}
	return s.config.SetBudgetBand(band)
}

// ToggleTripType forwards to the configuration while configuring.
func (s *Session) ToggleTripType(id string) (bool, error) {
	if err := s.configuring(); err != nil {
		return false, err
	}
	return s.config.ToggleTripType(id)
}

// OpenCalendar regenerates the calendar window from today and returns the view.
func (s *Session) OpenCalendar(today time.Time) Calendar {
	s.calendar.Open(today)
	return s.Calendar()
}

// SelectDate taps d on the calendar and writes the range through to the
// configuration.
func (s *Session) SelectDate(d time.Time) (DateRange, error) {
	if err := s.configuring(); err != nil {
		return DateRange{}, err
	}
	r, err := s.calendar.Select(d)
	if err != nil {
		return r, err
	}
	s.config.SetDateRange(r)
	return r, nil
}

// Calendar returns the current calendar view without regenerating the window.
func (s *Session) Calendar() Calendar {
	r := s.calendar.Range()
	window := s.calendar.Window()
	days := make([]CalendarDay, len(window))
	for i, d := range window {
		days[i] = CalendarDay{
			Date:     d,
			Selected: d.Equal(r.Start) || d.Equal(r.End),
			InRange:  r.Contains(d),
		}
	}
	return Calendar{
		Days:     days,
		Range:    r,
		Phase:    s.calendar.Phase(),
		Complete: s.calendar.Complete(),
	}
}

// BeginCuration passes the readiness gate and starts the curation stream over
// the configured city's candidates.
func (s *Session) BeginCuration() error {
	if s.curation != nil {
		return fmt.Errorf("%w: curation already started", domain.ErrConflict)
	}
	if !s.config.Ready() {
		return fmt.Errorf("%w: trip configuration is not ready", domain.ErrConflict)
	}
	s.curation = NewCurationStream(s.catalog.Places(s.config.City()))
	return nil
}

// Decide records a like or pass on the current candidate.
func (s *Session) Decide(like bool) error {
	if s.curation == nil {
		return fmt.Errorf("%w: curation has not started", domain.ErrConflict)
	}
	return s.curation.Decide(like)
}

// Summary returns the curation summary once the stream is terminal.
func (s *Session) Summary() (Summary, error) {
	if s.curation == nil {
		return Summary{}, fmt.Errorf("%w: curation has not started", domain.ErrConflict)
	}
	return s.curation.Summary()
}

// Handoff returns the renderer payload once curation is complete.
func (s *Session) Handoff() (Handoff, error) {
	sum, err := s.Summary()
	if err != nil {
		return Handoff{}, err
	}
	return Handoff{
		SessionID:     s.ID,
		Configuration: s.config.Snapshot(),
		LikedPlaces:   sum.Liked,
	}, nil
}

// Reset restarts configuration: everything the traveller chose is dropped,
// including any curation in progress.
func (s *Session) Reset() {
	s.config = NewTripConfiguration(s.catalog)
	s.calendar.Reset()
	s.curation = nil
}

// Snapshot returns an immutable view of the session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:            s.ID,
		Phase:         s.Phase(),
		Configuration: s.config.Snapshot(),
		DatePhase:     s.calendar.Phase(),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if s.curation != nil {
		p := &Progress{
			Index:    s.curation.Index(),
			Total:    s.curation.Len(),
			Liked:    s.curation.Liked(),
			Terminal: s.curation.IsTerminal(),
		}
		if cur, ok := s.curation.Current(); ok {
			p.Current = &cur
		}
		snap.Curation = p
	}
	return snap
}
