package planner

import (
	"fmt"
	"math"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// DefaultHorizon is the number of selectable days the calendar offers.
const DefaultHorizon = 30

// DateRange is the selected trip window. A zero Start means nothing is
// selected; a zero End means only the start has been picked.
type DateRange struct {
	Start time.Time
	End   time.Time
	Days  int
}

// HasStart reports whether a start date is set.
func (r DateRange) HasStart() bool { return !r.Start.IsZero() }

// HasEnd reports whether an end date is set.
func (r DateRange) HasEnd() bool { return !r.End.IsZero() }

// Contains reports whether d falls inside a complete range, endpoints included.
func (r DateRange) Contains(d time.Time) bool {
	if !r.HasStart() || !r.HasEnd() {
		return false
	}
	d = CalendarDate(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// DatePhase is the state of a DateRangeSelector.
type DatePhase string

const (
	DatePhaseEmpty     DatePhase = "empty"
	DatePhaseStartOnly DatePhase = "start_only"
	DatePhaseFull      DatePhase = "full"
)

// CalendarDate truncates t to midnight UTC of the calendar date t falls on in
// its own location. All comparisons in this package are on calendar dates.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetweenInclusive counts trip days from a to b with both endpoints
// included: ceil(|b-a| in days) + 1.
func DaysBetweenInclusive(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours()/24)) + 1
}

// DateRangeSelector is the two-tap calendar picker.
//
// The first tap sets the start. A second tap on or after the start closes the
// range; a second tap before the start restarts selection there. Any tap on a
// full range restarts selection at the tapped date.
type DateRangeSelector struct {
	horizon int
	window  []time.Time
	rng     DateRange
}

// NewDateRangeSelector returns a selector whose window starts at today.
// A horizon below 1 falls back to DefaultHorizon.
func NewDateRangeSelector(today time.Time, horizon int) *DateRangeSelector {
	if horizon < 1 {
		horizon = DefaultHorizon
	}
	s := &DateRangeSelector{horizon: horizon}
	s.Open(today)
	return s
}

// Open regenerates the window of selectable dates from today. The current
// selection is kept; reopening later simply shifts the window forward.
func (s *DateRangeSelector) Open(today time.Time) {
	first := CalendarDate(today)
	s.window = make([]time.Time, s.horizon)
	for i := range s.window {
		s.window[i] = first.AddDate(0, 0, i)
	}
}

// Window returns a copy of the selectable dates, earliest first.
func (s *DateRangeSelector) Window() []time.Time {
	return append([]time.Time(nil), s.window...)
}

// Range returns the current selection.
func (s *DateRangeSelector) Range() DateRange { return s.rng }

// Phase returns which of the three selection states the picker is in.
func (s *DateRangeSelector) Phase() DatePhase {
	switch {
	case !s.rng.HasStart():
		return DatePhaseEmpty
	case !s.rng.HasEnd():
		return DatePhaseStartOnly
	default:
		return DatePhaseFull
	}
}

// Complete reports whether both ends of the range are picked.
func (s *DateRangeSelector) Complete() bool { return s.Phase() == DatePhaseFull }

// Select applies a tap on d and returns the new range.
// Returns domain.ErrValidation, leaving the selection unchanged, when d is not
// in the current window.
func (s *DateRangeSelector) Select(d time.Time) (DateRange, error) {
	d = CalendarDate(d)
	if !s.inWindow(d) {
		return s.rng, fmt.Errorf("%w: %s is outside the selectable window", domain.ErrValidation, d.Format(time.DateOnly))
	}

	if s.Phase() == DatePhaseStartOnly && !d.Before(s.rng.Start) {
		s.rng.End = d
		s.rng.Days = DaysBetweenInclusive(s.rng.Start, d)
		return s.rng, nil
	}

	s.rng = DateRange{Start: d, Days: 1}
	return s.rng, nil
}

// Reset clears the selection. The window is left as is.
func (s *DateRangeSelector) Reset() {
	s.rng = DateRange{}
}

func (s *DateRangeSelector) inWindow(d time.Time) bool {
	if len(s.window) == 0 {
		return false
	}
	return !d.Before(s.window[0]) && !d.After(s.window[len(s.window)-1])
}
