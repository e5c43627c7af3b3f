package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/handler"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// TestWizardFlow drives one session from creation to handoff through the real
// services and the built-in catalog.
func TestWizardFlow(t *testing.T) {
	today := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	catalog := repo.NewBuiltinCatalogRepo()
	sessions := repo.NewSessionRepo()
	h := handler.NewServer(
		service.NewSessionService(catalog, sessions, service.WithClock(func() time.Time { return today })),
		service.NewCatalogService(catalog),
		service.NewExportService(sessions),
		nil,
	).Routes()

	rec := do(h, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var sess handler.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sess))
	base := "/sessions/" + sess.ID.String()

	steps := []struct {
		method, path string
		body         any
	}{
		{http.MethodPut, base + "/country", map[string]string{"country": "Türkiye"}},
		{http.MethodPut, base + "/city", map[string]string{"city": "İstanbul"}},
		{http.MethodPut, base + "/budget", map[string]string{"budget_band": "₺1,000 - ₺2,500"}},
		{http.MethodPost, base + "/trip-types/food/toggle", nil},
		{http.MethodPost, base + "/calendar/select", map[string]string{"date": "2025-06-10"}},
		{http.MethodPost, base + "/calendar/select", map[string]string{"date": "2025-06-12"}},
	}
	for _, step := range steps {
		var body *bytes.Buffer
		if step.body != nil {
			body = jsonBody(t, step.body)
		}
		rec := do(h, step.method, step.path, body)
		require.Equal(t, http.StatusOK, rec.Code, "%s %s: %s", step.method, step.path, rec.Body.String())
	}

	rec = do(h, http.MethodGet, base, nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sess))
	assert.True(t, sess.Configuration.Ready)
	assert.Equal(t, 3, sess.Configuration.Days)

	rec = do(h, http.MethodGet, base+"/summary", nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "summary before curation")

	rec = do(h, http.MethodPost, base+"/curation", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, like := range []bool{true, true, false, false, true} {
		rec = do(h, http.MethodPost, base+"/curation/decisions", jsonBody(t, map[string]bool{"like": like}))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sess))
	assert.Equal(t, "complete", sess.Phase)

	rec = do(h, http.MethodPost, base+"/curation/decisions", jsonBody(t, map[string]bool{"like": true}))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(h, http.MethodPut, base+"/country", jsonBody(t, map[string]string{"country": "Fransa"}))
	assert.Equal(t, http.StatusConflict, rec.Code, "configuration is locked after curation")

	rec = do(h, http.MethodGet, base+"/handoff", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var handoff handler.Handoff
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&handoff))
	names := make([]string, len(handoff.LikedPlaces))
	for i, p := range handoff.LikedPlaces {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"Galata Kulesi", "Karaköy Lokantası", "Rooftop Bar"}, names)

	rec = do(h, http.MethodGet, base+"/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sess))
	assert.Equal(t, "configuring", sess.Phase)
	assert.Nil(t, sess.Curation)

	rec = do(h, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(h, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
