package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartcanteen/backend/internal/logging"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestLogger(base))
	r.GET("/items/:id", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info().Msg("inside handler")
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
	})

	req := httptest.NewRequest(http.MethodGet, "/items/7", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inner, done map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &inner))
	require.NoError(t, json.Unmarshal(lines[1], &done))

	assert.Equal(t, "req-123", inner["request_id"])
	assert.Equal(t, "request completed", done["message"])
	assert.Equal(t, "warn", done["level"])
	assert.Equal(t, "/items/:id", done["route"])
	assert.Equal(t, float64(http.StatusNotFound), done["status"])
}

func TestRequestLoggerGeneratesID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}
