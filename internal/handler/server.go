// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, session.go, curation.go, etc.) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/planner"
)

// SessionServicer defines the session operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the service layer.
type SessionServicer interface {
	Start(ctx context.Context) (planner.Snapshot, error)
	Get(ctx context.Context, id uuid.UUID) (planner.Snapshot, error)
	Abandon(ctx context.Context, id uuid.UUID) error
	Reset(ctx context.Context, id uuid.UUID) (planner.Snapshot, error)
	SelectCountry(ctx context.Context, id uuid.UUID, country string) (planner.Snapshot, error)
	SelectCity(ctx context.Context, id uuid.UUID, city string) (planner.Snapshot, error)
	SetBudgetBand(ctx context.Context, id uuid.UUID, band string) (planner.Snapshot, error)
	ToggleTripType(ctx context.Context, id uuid.UUID, tripType string) (planner.Snapshot, error)
	OpenCalendar(ctx context.Context, id uuid.UUID) (planner.Calendar, error)
	SelectDate(ctx context.Context, id uuid.UUID, date time.Time) (planner.Calendar, error)
	BeginCuration(ctx context.Context, id uuid.UUID) (planner.Snapshot, error)
	Decide(ctx context.Context, id uuid.UUID, like bool) (planner.Snapshot, error)
	Summary(ctx context.Context, id uuid.UUID) (planner.Summary, error)
	Handoff(ctx context.Context, id uuid.UUID) (planner.Handoff, error)
}

// CatalogServicer defines the catalog read operations.
type CatalogServicer interface {
	Catalog(ctx context.Context) (*domain.Catalog, error)
	Places(ctx context.Context, city string, p domain.PaginationParams) ([]domain.Place, int, error)
}

// ExportServicer flattens a finished session for export.
type ExportServicer interface {
	Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error)
}

// EventStreamer attaches a WebSocket client to a session's event stream.
type EventStreamer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, sessionID uuid.UUID)
}

// Server holds the dependencies of every endpoint.
// Wire it in main.go via Routes.
type Server struct {
	sessions SessionServicer
	catalog  CatalogServicer
	export   ExportServicer
	events   EventStreamer
}

// NewServer constructs the Server with all its dependencies.
// Any of them may be nil in tests that do not exercise the matching routes.
func NewServer(sessions SessionServicer, catalog CatalogServicer, export ExportServicer, events EventStreamer) *Server {
	return &Server{sessions: sessions, catalog: catalog, export: export, events: events}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes registers every endpoint on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", s.GetCatalog)
		r.Get("/places", s.ListPlaces)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/reset", s.ResetSession)

			r.Put("/country", s.SelectCountry)
			r.Put("/city", s.SelectCity)
			r.Put("/budget", s.SetBudgetBand)
			r.Post("/trip-types/{type}/toggle", s.ToggleTripType)

			r.Get("/calendar", s.GetCalendar)
			r.Post("/calendar/select", s.SelectDate)

			r.Post("/curation", s.BeginCuration)
			r.Post("/curation/decisions", s.Decide)
			r.Get("/summary", s.GetSummary)
			r.Get("/handoff", s.GetHandoff)

			r.Get("/export", s.GetExport)
			r.Get("/events", s.StreamEvents)
		})
	})

	return r
}
