package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/middleware"
)

// countryDecoder decodes a {"country": ...} body the way the session handlers
// do and answers 413 when the body reader hits its limit.
var countryDecoder = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Country string `json:"country"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusOK)
})

func countryBody(padding int) string {
	return `{"country":"Türkiye` + strings.Repeat(" ", padding) + `"}`
}

func TestMaxBodySizeHandler(t *testing.T) {
	const limit = 64

	tests := []struct {
		name          string
		body          string
		contentLength int64
		want          int
	}{
		{name: "within limit", body: countryBody(0), contentLength: int64(len(countryBody(0))), want: http.StatusOK},
		{name: "advertised length over limit", body: countryBody(100), contentLength: int64(len(countryBody(100))), want: http.StatusRequestEntityTooLarge},
		{name: "unknown length over limit", body: countryBody(100), contentLength: -1, want: http.StatusRequestEntityTooLarge},
		{name: "unknown length within limit", body: countryBody(0), contentLength: -1, want: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := middleware.NewMaxBodySizeHandler(limit)(countryDecoder)

			req := httptest.NewRequest(http.MethodPut, "/sessions/abc/country", strings.NewReader(tc.body))
			req.ContentLength = tc.contentLength
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

// TestMaxBodySizeHandler_RejectsBeforeHandler verifies that an oversized
// Content-Length never reaches the handler and gets the API error envelope.
func TestMaxBodySizeHandler_RejectsBeforeHandler(t *testing.T) {
	called := false
	h := middleware.NewMaxBodySizeHandler(16)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	body := countryBody(0)
	req := httptest.NewRequest(http.MethodPut, "/sessions/abc/country", strings.NewReader(body))
	req.ContentLength = int64(len(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "request body too large", resp.Error.Message)
}
