package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/smartcanteen/backend/internal/models"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

// Escalation thresholds.
const (
	dailyCalorieLimit  = 2500 // kcal, overweight and obese profiles
	dailySugarLimit    = 50   // g, diabetic profiles
	weeklySodiumLimit  = 2300 // mg per day averaged over 7 days, hypertensive profiles
	sodiumTrendDays    = 7
	analyticsDayLayout = "2006-01-02"
)

// DailyNutrition sums one day of orders.
type DailyNutrition struct {
	Date          string  `json:"date"`
	TotalCalories float64 `json:"total_calories"`
	TotalSugar    float64 `json:"total_sugar"`
	TotalSodium   float64 `json:"total_sodium"`
	OrderCount    int     `json:"order_count"`
}

// SodiumTrend is the average daily sodium over the last week, counting only
// days with orders.
type SodiumTrend struct {
	Average float64            `json:"seven_day_average"`
	Daily   map[string]float64 `json:"daily_breakdown"`
}

// Escalation reports consumption that conflicts with the user's conditions.
type Escalation struct {
	Escalated    bool           `json:"escalated"`
	Warnings     []string       `json:"warnings"`
	Today        DailyNutrition `json:"today"`
	WeeklySodium float64        `json:"weekly_avg_sodium"`
}

// AnalyticsService aggregates a user's orders into nutrition summaries.
type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

// Ensure AnalyticsService implements IAnalyticsService
var _ IAnalyticsService = (*AnalyticsService)(nil)

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db, now: time.Now}
}

// DailyNutrition totals the user's orders placed on day (UTC).
func (s *AnalyticsService) DailyNutrition(ctx context.Context, userID uuid.UUID, day time.Time) (*DailyNutrition, error) {
	start := truncateDay(day)
	orders, err := s.ordersBetween(ctx, userID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	out := &DailyNutrition{Date: start.Format(analyticsDayLayout), OrderCount: len(orders)}
	for _, o := range orders {
		out.TotalCalories += o.TotalCalories
		out.TotalSugar += o.TotalSugar
		out.TotalSodium += o.TotalSodium
	}
	return out, nil
}

// WeeklySodium averages sodium per day over the seven days ending today.
func (s *AnalyticsService) WeeklySodium(ctx context.Context, userID uuid.UUID) (*SodiumTrend, error) {
	end := truncateDay(s.now()).AddDate(0, 0, 1)
	orders, err := s.ordersBetween(ctx, userID, end.AddDate(0, 0, -sodiumTrendDays), end)
	if err != nil {
		return nil, err
	}
	trend := &SodiumTrend{Daily: map[string]float64{}}
	var total float64
	for _, o := range orders {
		key := o.CreatedAt.UTC().Format(analyticsDayLayout)
		trend.Daily[key] += o.TotalSodium
		total += o.TotalSodium
	}
	if n := len(trend.Daily); n > 0 {
		trend.Average = total / float64(n)
	}
	return trend, nil
}

// CheckEscalation compares today's intake and the weekly sodium trend with
// the user's stored profile.
func (s *AnalyticsService) CheckEscalation(ctx context.Context, userID uuid.UUID) (*Escalation, error) {
	out := &Escalation{Warnings: []string{}}

	var rec models.HealthProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, nil
		}
		return nil, fmt.Errorf("failed to load health profile: %w", err)
	}
	profile := rec.ToDomain()

	today, err := s.DailyNutrition(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	trend, err := s.WeeklySodium(ctx, userID)
	if err != nil {
		return nil, err
	}
	out.Today = *today
	out.WeeklySodium = trend.Average

	if (profile.BMICategory == types.BMIObese || profile.BMICategory == types.BMIOverweight) && today.TotalCalories > dailyCalorieLimit {
		out.Warnings = append(out.Warnings, "Daily calorie intake significantly exceeds target for weight management.")
	}
	if st := profile.StatusOf(types.Diabetes); (st == types.StatusHigh || st == types.StatusElevated) && today.TotalSugar > dailySugarLimit {
		out.Warnings = append(out.Warnings, "Daily sugar intake is dangerously high for diabetic profile.")
	}
	if st := profile.StatusOf(types.Hypertension); (st == types.StatusCritical || st == types.StatusElevated) && trend.Average > weeklySodiumLimit {
		out.Warnings = append(out.Warnings, fmt.Sprintf("7-day average sodium (%.0fmg) exceeds hypertension limits.", trend.Average))
	}
	out.Escalated = len(out.Warnings) > 0
	return out, nil
}

func (s *AnalyticsService) ordersBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
