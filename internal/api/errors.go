package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/smartcanteen/backend/internal/service"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

// userIDFrom returns the authenticated user id set by the auth middleware.
func userIDFrom(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	switch id := v.(type) {
	case uuid.UUID:
		return id, id != uuid.Nil
	case string:
		parsed, err := uuid.Parse(id)
		return parsed, err == nil
	}
	return uuid.Nil, false
}

// requireUser writes a 401 and returns false when no user is authenticated.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return userID, ok
}

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	var rejection *service.OrderRejection
	if errors.As(err, &rejection) {
		status := http.StatusConflict
		if errors.Is(err, service.ErrItemNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": rejection.Reason, "item_id": rejection.ItemID})
		return
	}

	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "health profile not found"})
	case errors.Is(err, service.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
	case errors.Is(err, service.ErrStepOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": "complete the previous onboarding step first"})
	case errors.Is(err, service.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order items cannot be empty."})
	case errors.Is(err, service.ErrInvalidProfile), errors.Is(err, types.ErrInvalidHealthValue):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProfileConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "profile was modified concurrently, please retry"})
	case errors.Is(err, service.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{"error": "item is out of stock"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
