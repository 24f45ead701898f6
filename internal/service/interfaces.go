package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/smartcanteen/backend/internal/chatbot"
	"github.com/pageza/smartcanteen/backend/internal/models"
	"github.com/pageza/smartcanteen/backend/internal/recommend"
	"github.com/pageza/smartcanteen/backend/internal/risk"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

// IProfileService defines the interface for health onboarding and profile reads
type IProfileService interface {
	SaveStep1(ctx context.Context, userID uuid.UUID, req *types.Step1Request) (*models.HealthProfile, error)
	SaveStep2(ctx context.Context, userID uuid.UUID, req *types.Step2Request) (*models.HealthProfile, error)
	Finalize(ctx context.Context, userID uuid.UUID) (*models.HealthProfile, error)
	CreateProfile(ctx context.Context, userID uuid.UUID, req *types.CreateProfileRequest) (*models.HealthProfile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.HealthProfile, error)
	LoadProfile(ctx context.Context, userID uuid.UUID) (types.HealthProfile, error)
	Report(ctx context.Context, userID uuid.UUID) (*risk.HealthReport, error)
	History(ctx context.Context, userID uuid.UUID) ([]models.ProfileHistory, error)
}

// ICatalogService defines the interface for catalog reads and imports
type ICatalogService interface {
	Catalog(ctx context.Context) ([]types.FoodItem, error)
	Item(ctx context.Context, id uint) (*types.FoodItem, error)
	Import(ctx context.Context, items []types.FoodItem) (int, error)
	Nearest(ctx context.Context, id uint, limit int) ([]types.FoodItem, error)
}

// IMenuService defines the interface for personalised menus and the food chatbot
type IMenuService interface {
	Menu(ctx context.Context, userID uuid.UUID, filter recommend.MenuFilter) ([]types.ScoredItem, error)
	Alternatives(ctx context.Context, userID uuid.UUID, itemID uint, limit int) ([]types.ScoredItem, error)
	Ask(ctx context.Context, userID uuid.UUID, query string) (*chatbot.Answer, error)
}

// IOrderService defines the interface for order placement
type IOrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, itemIDs []uint) (*models.Order, error)
	History(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// IAnalyticsService defines the interface for nutrition tracking
type IAnalyticsService interface {
	DailyNutrition(ctx context.Context, userID uuid.UUID, day time.Time) (*DailyNutrition, error)
	WeeklySodium(ctx context.Context, userID uuid.UUID) (*SodiumTrend, error)
	CheckEscalation(ctx context.Context, userID uuid.UUID) (*Escalation, error)
}
