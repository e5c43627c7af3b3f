package handler

import (
	"net/http"
)

// BeginCuration handles POST /sessions/{id}/curation.
// Returns 409 until the configuration is ready.
func (s *Server) BeginCuration(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	snap, err := s.sessions.BeginCuration(r.Context(), id)
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(snap))
}

// Decide handles POST /sessions/{id}/curation/decisions with {"like": bool}.
func (s *Server) Decide(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var body decideRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Like == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("like is required"))
		return
	}
	snap, err := s.sessions.Decide(r.Context(), id, *body.Like)
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(snap))
}

// GetSummary handles GET /sessions/{id}/summary.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	sum, err := s.sessions.Summary(r.Context(), id)
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, Summary{LikedCount: sum.LikedCount, Liked: nonNilPlaces(sum.Liked)})
}

// GetHandoff handles GET /sessions/{id}/handoff.
func (s *Server) GetHandoff(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	h, err := s.sessions.Handoff(r.Context(), id)
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, handoffToResponse(h))
}
