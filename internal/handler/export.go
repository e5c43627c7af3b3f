package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"session_id", "country", "city", "start_date", "end_date", "days",
	"budget_band", "trip_types", "position", "place_id", "place_name",
	"place_category", "place_rating", "place_duration",
}

// GetExport handles GET /sessions/{id}/export.
// It returns one row per liked place of a finished session.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("format must be json or csv"))
		return
	}

	rows, err := s.export.Export(r.Context(), id)
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONResponse(rows))
}

// buildJSONResponse converts domain rows to the JSON response type.
func buildJSONResponse(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domainRowToResponse(r))
	}
	return out
}

// writeCSV encodes domain rows as CSV.
// Trip types within a row are pipe-separated ("|") to keep each place on a
// single CSV line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToResponse maps a domain.ExportRow to the JSON row type.
// Place fields of a row without a place become nil (omitted in JSON).
func domainRowToResponse(r domain.ExportRow) ExportRow {
	sessionID, _ := uuid.Parse(r.SessionID)

	row := ExportRow{
		SessionID:  sessionID,
		Country:    r.Country,
		City:       r.City,
		StartDate:  optionalDate(r.StartDate),
		EndDate:    optionalDate(r.EndDate),
		Days:       r.Days,
		BudgetBand: r.BudgetBand,
		TripTypes:  r.TripTypes,
	}
	if row.TripTypes == nil {
		row.TripTypes = []string{}
	}
	if r.Position > 0 {
		row.Position = &r.Position
		row.PlaceID = &r.PlaceID
		row.PlaceName = &r.PlaceName
		row.PlaceCategory = &r.PlaceCategory
		row.PlaceRating = &r.PlaceRating
		row.PlaceDuration = &r.PlaceDuration
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Place columns of a row without a place are empty strings.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	rec := []string{
		r.SessionID,
		r.Country,
		r.City,
		r.StartDate,
		r.EndDate,
		strconv.Itoa(r.Days),
		r.BudgetBand,
		strings.Join(r.TripTypes, "|"),
		"", "", "", "", "", "",
	}
	if r.Position > 0 {
		rec[8] = strconv.Itoa(r.Position)
		rec[9] = strconv.FormatInt(r.PlaceID, 10)
		rec[10] = r.PlaceName
		rec[11] = r.PlaceCategory
		rec[12] = strconv.FormatFloat(r.PlaceRating, 'f', 1, 64)
		rec[13] = r.PlaceDuration
	}
	return rec
}

// optionalDate parses a "2006-01-02" string into an openapi_types.Date.
// Empty or malformed input yields nil.
func optionalDate(s string) *openapi_types.Date {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &openapi_types.Date{Time: t}
}
