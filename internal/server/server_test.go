package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/smartcanteen/backend/config"
	"github.com/pageza/smartcanteen/backend/internal/api"
	"github.com/pageza/smartcanteen/backend/internal/middleware"
	"github.com/pageza/smartcanteen/backend/internal/testhelpers/mocks"
)

func newTestServer(checks map[string]HealthCheck) *Server {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		ServerHost:  "localhost",
		ServerPort:  "8080",
		CORSOrigins: []string{"http://localhost:5173"},
	}
	return New(cfg, api.Dependencies{
		Profiles:  new(mocks.MockProfileService),
		Menu:      new(mocks.MockMenuService),
		Orders:    new(mocks.MockOrderService),
		Analytics: new(mocks.MockAnalyticsService),
		Validator: middleware.NewJWTValidator("secret", ""),
	}, checks)
}

func TestHealthEndpoint(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]HealthCheck
		wantStatus int
		wantState  string
	}{
		{name: "no checks", checks: nil, wantStatus: http.StatusOK, wantState: `"status":"healthy"`},
		{name: "all up", checks: map[string]HealthCheck{"database": ok}, wantStatus: http.StatusOK, wantState: `"database":"ok"`},
		{name: "database down", checks: map[string]HealthCheck{"database": down, "redis": ok}, wantStatus: http.StatusServiceUnavailable, wantState: `"database":"unavailable"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(tt.checks)
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantState)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil)

	// One request so the HTTP collectors have a sample.
	srv.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "canteen_http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/menu/intelligent", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPIRequiresToken(t *testing.T) {
	srv := newTestServer(nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/menu/intelligent", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
