package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordlys-ai/assistant-platform/internal/http/handlers"
	"github.com/nordlys-ai/assistant-platform/internal/sanitize"
)

func TestRouterHealth(t *testing.T) {
	r := New(&Config{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterSanitizeRoute(t *testing.T) {
	r := New(&Config{
		SanitizeHandler: handlers.NewSanitizeHandler(sanitize.New(nil), nil, nil),
	})

	body := []byte(`{"text":"fnr 01129500197"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sanitize", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fnr ***********"`)
}

func TestRouterUnknownRoute(t *testing.T) {
	r := New(&Config{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
