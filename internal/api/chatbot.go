package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartcanteen/backend/internal/middleware"
	"github.com/pageza/smartcanteen/backend/internal/service"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

// ChatbotHandler answers free-text food questions.
type ChatbotHandler struct {
	menu    service.IMenuService
	limiter *middleware.RateLimiter
}

// NewChatbotHandler creates the handler; limiter may be nil.
func NewChatbotHandler(menu service.IMenuService, limiter *middleware.RateLimiter) *ChatbotHandler {
	return &ChatbotHandler{menu: menu, limiter: limiter}
}

func (h *ChatbotHandler) RegisterRoutes(router *gin.RouterGroup) {
	chatbot := router.Group("/chatbot")
	if h.limiter != nil {
		chatbot.Use(h.limiter.RateLimitMiddleware())
	}
	chatbot.POST("/query", h.Query)
}

func (h *ChatbotHandler) Query(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req types.ChatQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	query := strings.TrimSpace(req.Text())
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	answer, err := h.menu.Ask(c.Request.Context(), userID, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}
