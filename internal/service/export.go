package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/planner"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// ExportService flattens a completed session into export rows.
type ExportService struct {
	sessions repo.SessionRepo
}

// NewExportService constructs an ExportService backed by the provided SessionRepo.
func NewExportService(sessions repo.SessionRepo) *ExportService {
	return &ExportService{sessions: sessions}
}

// Export returns one ExportRow per liked place of a completed session.
// A session with no liked places contributes one row with empty place fields.
// Returns domain.ErrConflict while curation is still running.
func (s *ExportService) Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
	var h planner.Handoff
	err := s.sessions.View(ctx, id, func(sess *planner.Session) error {
		var err error
		h, err = sess.Handoff()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	return exportRows(h), nil
}

func exportRows(h planner.Handoff) []domain.ExportRow {
	cfg := h.Configuration
	base := domain.ExportRow{
		SessionID:  h.SessionID.String(),
		Country:    cfg.Country,
		City:       cfg.City,
		Days:       cfg.DateRange.Days,
		BudgetBand: cfg.BudgetBand,
		TripTypes:  cfg.TripTypes,
	}
	if cfg.DateRange.HasStart() {
		base.StartDate = cfg.DateRange.Start.Format(time.DateOnly)
	}
	if cfg.DateRange.HasEnd() {
		base.EndDate = cfg.DateRange.End.Format(time.DateOnly)
	}

	if len(h.LikedPlaces) == 0 {
		return []domain.ExportRow{base}
	}

	rows := make([]domain.ExportRow, 0, len(h.LikedPlaces))
	for i, p := range h.LikedPlaces {
		row := base
		row.Position = i + 1
		row.PlaceID = p.ID
		row.PlaceName = p.Name
		row.PlaceCategory = p.Category
		row.PlaceRating = p.Rating
		row.PlaceDuration = p.Duration
		rows = append(rows, row)
	}
	return rows
}
