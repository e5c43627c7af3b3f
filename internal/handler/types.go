package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/planner"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Configuration mirrors planner.Configuration. Unset choices are empty
// strings; unset dates are omitted.
type Configuration struct {
	Country    string              `json:"country"`
	City       string              `json:"city"`
	StartDate  *openapi_types.Date `json:"start_date,omitempty"`
	EndDate    *openapi_types.Date `json:"end_date,omitempty"`
	Days       int                 `json:"days"`
	BudgetBand string              `json:"budget_band"`
	TripTypes  []string            `json:"trip_types"`
	Ready      bool                `json:"ready"`
}

// Curation is the progress of a running or finished curation stream.
type Curation struct {
	Index    int            `json:"index"`
	Total    int            `json:"total"`
	Current  *domain.Place  `json:"current,omitempty"`
	Liked    []domain.Place `json:"liked"`
	Terminal bool           `json:"terminal"`
}

// Session is the JSON view of a planning session.
type Session struct {
	ID            openapi_types.UUID `json:"id"`
	Phase         string             `json:"phase"`
	Configuration Configuration      `json:"configuration"`
	DatePhase     string             `json:"date_phase"`
	Curation      *Curation          `json:"curation,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// CalendarDay is one selectable date.
type CalendarDay struct {
	Date     openapi_types.Date `json:"date"`
	Selected bool               `json:"selected"`
	InRange  bool               `json:"in_range"`
}

// Calendar is the date picker view.
type Calendar struct {
	Days      []CalendarDay       `json:"days"`
	StartDate *openapi_types.Date `json:"start_date,omitempty"`
	EndDate   *openapi_types.Date `json:"end_date,omitempty"`
	TripDays  int                 `json:"trip_days"`
	Phase     string              `json:"phase"`
	Complete  bool                `json:"complete"`
}

// Summary is the body of GET /sessions/{id}/summary.
type Summary struct {
	LikedCount int            `json:"liked_count"`
	Liked      []domain.Place `json:"liked"`
}

// Handoff is what the itinerary renderer consumes.
type Handoff struct {
	SessionID     openapi_types.UUID `json:"session_id"`
	Configuration Configuration      `json:"configuration"`
	LikedPlaces   []domain.Place     `json:"liked_places"`
}

// Country is one destination country and its cities.
type Country struct {
	Name   string   `json:"name"`
	Cities []string `json:"cities"`
}

// TripType is one selectable interest tag.
type TripType struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Emoji string `json:"emoji"`
}

// Catalog is the body of GET /catalog.
type Catalog struct {
	Countries   []Country  `json:"countries"`
	BudgetBands []string   `json:"budget_bands"`
	TripTypes   []TripType `json:"trip_types"`
}

// Pagination describes one page of a list.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// PlaceList is the body of GET /catalog/places.
type PlaceList struct {
	Data       []domain.Place `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// ExportRow is one row of GET /sessions/{id}/export. Place fields are omitted
// when nothing was liked.
type ExportRow struct {
	SessionID     openapi_types.UUID  `json:"session_id"`
	Country       string              `json:"country"`
	City          string              `json:"city"`
	StartDate     *openapi_types.Date `json:"start_date,omitempty"`
	EndDate       *openapi_types.Date `json:"end_date,omitempty"`
	Days          int                 `json:"days"`
	BudgetBand    string              `json:"budget_band"`
	TripTypes     []string            `json:"trip_types"`
	Position      *int                `json:"position,omitempty"`
	PlaceID       *int64              `json:"place_id,omitempty"`
	PlaceName     *string             `json:"place_name,omitempty"`
	PlaceCategory *string             `json:"place_category,omitempty"`
	PlaceRating   *float64            `json:"place_rating,omitempty"`
	PlaceDuration *string             `json:"place_duration,omitempty"`
}

// selectCountryRequest is the body of PUT /sessions/{id}/country.
type selectCountryRequest struct {
	Country string `json:"country"`
}

// selectCityRequest is the body of PUT /sessions/{id}/city.
type selectCityRequest struct {
	City string `json:"city"`
}

// setBudgetRequest is the body of PUT /sessions/{id}/budget.
type setBudgetRequest struct {
	BudgetBand string `json:"budget_band"`
}

// selectDateRequest is the body of POST /sessions/{id}/calendar/select.
type selectDateRequest struct {
	Date *openapi_types.Date `json:"date"`
}

// decideRequest is the body of POST /sessions/{id}/curation/decisions.
type decideRequest struct {
	Like *bool `json:"like"`
}

// --- mapping helpers --------------------------------------------------------

// SessionPayload maps a snapshot to its JSON view. The events hub uses it to
// encode session events the same way the REST API does.
func SessionPayload(s planner.Snapshot) any {
	return sessionToResponse(s)
}

func sessionToResponse(s planner.Snapshot) Session {
	out := Session{
		ID:            s.ID,
		Phase:         string(s.Phase),
		Configuration: configToResponse(s.Configuration),
		DatePhase:     string(s.DatePhase),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if p := s.Curation; p != nil {
		out.Curation = &Curation{
			Index:    p.Index,
			Total:    p.Total,
			Current:  p.Current,
			Liked:    nonNilPlaces(p.Liked),
			Terminal: p.Terminal,
		}
	}
	return out
}

func configToResponse(c planner.Configuration) Configuration {
	out := Configuration{
		Country:    c.Country,
		City:       c.City,
		Days:       c.DateRange.Days,
		BudgetBand: c.BudgetBand,
		TripTypes:  c.TripTypes,
		Ready:      c.Ready,
	}
	if out.TripTypes == nil {
		out.TripTypes = []string{}
	}
	out.StartDate, out.EndDate = rangeDates(c.DateRange)
	return out
}

func calendarToResponse(c planner.Calendar) Calendar {
	days := make([]CalendarDay, len(c.Days))
	for i, d := range c.Days {
		days[i] = CalendarDay{
			Date:     openapi_types.Date{Time: d.Date},
			Selected: d.Selected,
			InRange:  d.InRange,
		}
	}
	out := Calendar{
		Days:     days,
		TripDays: c.Range.Days,
		Phase:    string(c.Phase),
		Complete: c.Complete,
	}
	out.StartDate, out.EndDate = rangeDates(c.Range)
	return out
}

func handoffToResponse(h planner.Handoff) Handoff {
	return Handoff{
		SessionID:     h.SessionID,
		Configuration: configToResponse(h.Configuration),
		LikedPlaces:   nonNilPlaces(h.LikedPlaces),
	}
}

func catalogToResponse(c *domain.Catalog) Catalog {
	countries := c.Countries()
	out := Catalog{
		Countries:   make([]Country, len(countries)),
		BudgetBands: c.BudgetBands(),
	}
	for i, country := range countries {
		out.Countries[i] = Country{Name: country.Name, Cities: country.Cities}
	}
	for _, tt := range c.TripTypes() {
		out.TripTypes = append(out.TripTypes, TripType{ID: tt.ID, Title: tt.Title, Emoji: tt.Emoji})
	}
	return out
}

// rangeDates returns the set endpoints of r as API dates.
func rangeDates(r planner.DateRange) (start, end *openapi_types.Date) {
	if r.HasStart() {
		start = &openapi_types.Date{Time: r.Start}
	}
	if r.HasEnd() {
		end = &openapi_types.Date{Time: r.End}
	}
	return start, end
}

func nonNilPlaces(p []domain.Place) []domain.Place {
	if p == nil {
		return []domain.Place{}
	}
	return p
}
