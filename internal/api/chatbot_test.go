package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartcanteen/backend/internal/chatbot"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var out []interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestChatbotQuery(t *testing.T) {
	router, svc := setupRouter(t)
	userID := uuid.New()
	svc.menu.On("Ask", mock.Anything, userID, "Chocolate Cake").Return(&chatbot.Answer{
		Query:      "Chocolate Cake",
		Matched:    true,
		RiskLevel:  types.RiskDanger,
		Confidence: 0.95,
		Chips:      []string{"Find Safer Option", "Why is this risky?"},
	}, nil)

	w := performRequest(t, router, http.MethodPost, "/api/v1/chatbot/query", gin.H{"query": "  Chocolate Cake "}, userID)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, 0.95, resp["confidence"])
	assert.Equal(t, float64(types.RiskDanger), resp["risk_level"])
}

func TestChatbotQueryAcceptsMessage(t *testing.T) {
	router, svc := setupRouter(t)
	userID := uuid.New()
	svc.menu.On("Ask", mock.Anything, userID, "lentil soup").Return(&chatbot.Answer{Generic: true, Confidence: 0.5}, nil)

	w := performRequest(t, router, http.MethodPost, "/api/v1/chatbot/query", gin.H{"message": "lentil soup"}, userID)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChatbotQueryRequiresText(t *testing.T) {
	router, _ := setupRouter(t)
	w := performRequest(t, router, http.MethodPost, "/api/v1/chatbot/query", gin.H{"query": "   "}, uuid.New())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatbotHandlerWithoutUser(t *testing.T) {
	handler := NewChatbotHandler(nil, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/chatbot/query", nil)

	handler.Query(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
