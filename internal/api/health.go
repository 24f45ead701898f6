package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartcanteen/backend/internal/models"
	"github.com/pageza/smartcanteen/backend/internal/service"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

// HealthHandler serves health onboarding, reports and nutrition tracking.
type HealthHandler struct {
	profiles  service.IProfileService
	analytics service.IAnalyticsService
}

func NewHealthHandler(profiles service.IProfileService, analytics service.IAnalyticsService) *HealthHandler {
	return &HealthHandler{profiles: profiles, analytics: analytics}
}

func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	health := router.Group("/health")
	{
		health.POST("/step1", h.SaveStep1)
		health.POST("/step2", h.SaveStep2)
		health.POST("/finalize", h.Finalize)
		health.POST("/profile", h.CreateProfile)
		health.GET("/profile", h.GetProfile)
		health.GET("/profile/history", h.GetProfileHistory)
		health.GET("/check", h.CheckProfile)
		health.GET("/report", h.GetReport)
		health.GET("/escalation", h.GetEscalation)
		health.GET("/nutrition", h.GetNutrition)
	}
}

func (h *HealthHandler) SaveStep1(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req types.Step1Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rec, err := h.profiles.SaveStep1(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Step 1 saved", "bmi": rec.BMI, "bmi_category": rec.BMICategory})
}

func (h *HealthHandler) SaveStep2(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req types.Step2Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rec, err := h.profiles.SaveStep2(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Step 2 saved", "condition_status": rec.ConditionStatus})
}

func (h *HealthHandler) Finalize(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	rec, err := h.profiles.Finalize(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile finalized", "risk_score": rec.RiskScore, "risk_level": rec.RiskCategory})
}

// CreateProfile runs every onboarding step from a single payload.
func (h *HealthHandler) CreateProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req types.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rec, err := h.profiles.CreateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *HealthHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	rec, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GetProfileHistory lists the user's onboarding writes, oldest first.
func (h *HealthHandler) GetProfileHistory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	history, err := h.profiles.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// CheckProfile reports onboarding progress; a missing profile is step 0.
func (h *HealthHandler) CheckProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	rec, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if errors.Is(err, service.ErrProfileNotFound) {
		rec, err = &models.HealthProfile{}, nil
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_profile": rec.Completed, "onboarding_step": rec.Step, "user_id": userID})
}

func (h *HealthHandler) GetReport(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	report, err := h.profiles.Report(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *HealthHandler) GetEscalation(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	out, err := h.analytics.CheckEscalation(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetNutrition returns one day's totals (default today, ?date=YYYY-MM-DD)
// and the weekly sodium trend.
func (h *HealthHandler) GetNutrition(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	ctx := c.Request.Context()
	daily, err := h.analytics.DailyNutrition(ctx, userID, day)
	if err != nil {
		respondError(c, err)
		return
	}
	sodium, err := h.analytics.WeeklySodium(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily": daily, "weekly_sodium": sodium})
}
