package handler

import (
	"net/http"
)

// StreamEvents handles GET /sessions/{id}/events by upgrading to a WebSocket
// that receives every change to the session.
func (s *Server) StreamEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if _, err := s.sessions.Get(r.Context(), id); err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	s.events.ServeWS(w, r, id)
}
