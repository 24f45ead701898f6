package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/smartcanteen/backend/internal/middleware"
	"github.com/pageza/smartcanteen/backend/internal/service"
)

// Dependencies are the collaborators of the /api/v1 routes. The rate
// limiters are optional.
type Dependencies struct {
	Profiles    service.IProfileService
	Menu        service.IMenuService
	Orders      service.IOrderService
	Analytics   service.IAnalyticsService
	Validator   middleware.TokenValidator
	RateLimiter *middleware.RateLimiter
	ChatLimiter *middleware.RateLimiter
}

// SetupAPI registers the authenticated /api/v1 routes.
func SetupAPI(router *gin.Engine, deps Dependencies) {
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(deps.Validator))
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.RateLimitMiddleware())
	}
	{
		healthHandler := NewHealthHandler(deps.Profiles, deps.Analytics)
		menuHandler := NewMenuHandler(deps.Menu, deps.Orders)
		chatbotHandler := NewChatbotHandler(deps.Menu, deps.ChatLimiter)

		healthHandler.RegisterRoutes(v1)
		menuHandler.RegisterRoutes(v1)
		chatbotHandler.RegisterRoutes(v1)
	}
}
