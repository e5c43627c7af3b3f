package handler

import (
	"net/http"
)

// GetCalendar handles GET /sessions/{id}/calendar.
// Opening the calendar regenerates the selectable window from today.
func (s *Server) GetCalendar(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	cal, err := s.sessions.OpenCalendar(r.Context(), id)
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, calendarToResponse(cal))
}

// SelectDate handles POST /sessions/{id}/calendar/select.
func (s *Server) SelectDate(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var body selectDateRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Date == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("date is required"))
		return
	}
	cal, err := s.sessions.SelectDate(r.Context(), id, body.Date.Time)
	if err != nil {
		writeError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, calendarToResponse(cal))
}
