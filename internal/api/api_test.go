package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/smartcanteen/backend/internal/middleware"
	"github.com/pageza/smartcanteen/backend/internal/testhelpers"
	"github.com/pageza/smartcanteen/backend/internal/testhelpers/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServices struct {
	profiles  *mocks.MockProfileService
	menu      *mocks.MockMenuService
	orders    *mocks.MockOrderService
	analytics *mocks.MockAnalyticsService
}

// setupRouter wires the real auth middleware in front of mocked services.
func setupRouter(t *testing.T) (*gin.Engine, *testServices) {
	t.Helper()
	svc := &testServices{
		profiles:  new(mocks.MockProfileService),
		menu:      new(mocks.MockMenuService),
		orders:    new(mocks.MockOrderService),
		analytics: new(mocks.MockAnalyticsService),
	}
	router := gin.New()
	SetupAPI(router, Dependencies{
		Profiles:  svc.profiles,
		Menu:      svc.menu,
		Orders:    svc.orders,
		Analytics: svc.analytics,
		Validator: middleware.NewJWTValidator(testhelpers.TestJWTSecret, ""),
	})
	t.Cleanup(func() {
		svc.profiles.AssertExpectations(t)
		svc.menu.AssertExpectations(t)
		svc.orders.AssertExpectations(t)
		svc.analytics.AssertExpectations(t)
	})
	return router, svc
}

// performRequest sends body as JSON with a bearer token for userID.
func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req.Header.Set("Authorization", "Bearer "+testhelpers.GenerateTestToken(t, userID, "test"))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestRoutesRequireAuthentication(t *testing.T) {
	router, _ := setupRouter(t)
	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/health/step1"},
		{http.MethodGet, "/api/v1/health/report"},
		{http.MethodGet, "/api/v1/menu/intelligent"},
		{http.MethodPost, "/api/v1/menu/order"},
		{http.MethodPost, "/api/v1/chatbot/query"},
	} {
		w := performRequest(t, router, route.method, route.path, nil, uuid.Nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", route.method, route.path, w.Code)
		}
	}
}
