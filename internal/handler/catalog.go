package handler

import (
	"net/http"
	"strconv"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// GetCatalog handles GET /catalog.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := s.catalog.Catalog(r.Context())
	if err != nil {
		writeError(w, r, err, "catalog not found")
		return
	}
	writeJSON(w, http.StatusOK, catalogToResponse(c))
}

// ListPlaces handles GET /catalog/places?city=.
// Supports ?page= and ?limit= (see domain.NewPaginationParams for defaults).
func (s *Server) ListPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := q.Get("city")
	if city == "" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("city query parameter is required"))
		return
	}
	page, ok := intParam(w, q.Get("page"), "page")
	if !ok {
		return
	}
	limit, ok := intParam(w, q.Get("limit"), "limit")
	if !ok {
		return
	}

	params := domain.NewPaginationParams(page, limit)
	places, total, err := s.catalog.Places(r.Context(), city, params)
	if err != nil {
		writeError(w, r, err, "city not found")
		return
	}

	writeJSON(w, http.StatusOK, PlaceList{
		Data:       nonNilPlaces(places),
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// intParam parses an optional integer query parameter. An empty value yields
// nil; a malformed one writes a 422 and returns ok=false.
func intParam(w http.ResponseWriter, raw, name string) (v *int, ok bool) {
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(name+" must be an integer"))
		return nil, false
	}
	return &n, true
}
