package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const sessionNotFound = "session not found"

// sessionID reads the {id} path parameter. A malformed id cannot name a
// session, so it is answered with 404.
func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody(sessionNotFound))
		return uuid.Nil, false
	}
	return id, true
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.sessions.Start(r.Context())
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	w.Header().Set("Location", "/sessions/"+snap.ID.String())
	writeJSON(w, http.StatusCreated, sessionToResponse(snap))
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	snap, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(snap))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Abandon(r.Context(), id); err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetSession handles POST /sessions/{id}/reset.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	snap, err := s.sessions.Reset(r.Context(), id)
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(snap))
}

// SelectCountry handles PUT /sessions/{id}/country.
func (s *Server) SelectCountry(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var body selectCountryRequest
	if !decodeBody(w, r, &body) {
		return
	}
	snap, err := s.sessions.SelectCountry(r.Context(), id, body.Country)
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(snap))
}

// SelectCity handles PUT /sessions/{id}/city.
func (s *Server) SelectCity(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var body selectCityRequest
	if !decodeBody(w, r, &body) {
		return
	}
	snap, err := s.sessions.SelectCity(r.Context(), id, body.City)
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(snap))
}

// SetBudgetBand handles PUT /sessions/{id}/budget.
func (s *Server) SetBudgetBand(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var body setBudgetRequest
	if !decodeBody(w, r, &body) {
		return
	}
	snap, err := s.sessions.SetBudgetBand(r.Context(), id, body.BudgetBand)
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(snap))
}

// ToggleTripType handles POST /sessions/{id}/trip-types/{type}/toggle.
func (s *Server) ToggleTripType(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	snap, err := s.sessions.ToggleTripType(r.Context(), id, chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(snap))
}
