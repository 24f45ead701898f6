// Package mocks provides testify mocks of the service interfaces for handler tests.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/smartcanteen/backend/internal/chatbot"
	"github.com/pageza/smartcanteen/backend/internal/models"
	"github.com/pageza/smartcanteen/backend/internal/recommend"
	"github.com/pageza/smartcanteen/backend/internal/risk"
	"github.com/pageza/smartcanteen/backend/internal/service"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

var (
	_ service.IProfileService   = (*MockProfileService)(nil)
	_ service.IMenuService      = (*MockMenuService)(nil)
	_ service.IOrderService     = (*MockOrderService)(nil)
	_ service.IAnalyticsService = (*MockAnalyticsService)(nil)
)

// MockTokenValidator is a mock implementation of middleware.TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockProfileService is a mock implementation of the IProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) profile(args mock.Arguments) (*models.HealthProfile, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HealthProfile), args.Error(1)
}

func (m *MockProfileService) SaveStep1(ctx context.Context, userID uuid.UUID, req *types.Step1Request) (*models.HealthProfile, error) {
	return m.profile(m.Called(ctx, userID, req))
}

func (m *MockProfileService) SaveStep2(ctx context.Context, userID uuid.UUID, req *types.Step2Request) (*models.HealthProfile, error) {
	return m.profile(m.Called(ctx, userID, req))
}

func (m *MockProfileService) Finalize(ctx context.Context, userID uuid.UUID) (*models.HealthProfile, error) {
	return m.profile(m.Called(ctx, userID))
}

func (m *MockProfileService) CreateProfile(ctx context.Context, userID uuid.UUID, req *types.CreateProfileRequest) (*models.HealthProfile, error) {
	return m.profile(m.Called(ctx, userID, req))
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.HealthProfile, error) {
	return m.profile(m.Called(ctx, userID))
}

func (m *MockProfileService) LoadProfile(ctx context.Context, userID uuid.UUID) (types.HealthProfile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(types.HealthProfile), args.Error(1)
}

func (m *MockProfileService) Report(ctx context.Context, userID uuid.UUID) (*risk.HealthReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*risk.HealthReport), args.Error(1)
}

func (m *MockProfileService) History(ctx context.Context, userID uuid.UUID) ([]models.ProfileHistory, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.ProfileHistory), args.Error(1)
}

// MockMenuService is a mock implementation of the IMenuService interface
type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) Menu(ctx context.Context, userID uuid.UUID, filter recommend.MenuFilter) ([]types.ScoredItem, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ScoredItem), args.Error(1)
}

func (m *MockMenuService) Alternatives(ctx context.Context, userID uuid.UUID, itemID uint, limit int) ([]types.ScoredItem, error) {
	args := m.Called(ctx, userID, itemID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ScoredItem), args.Error(1)
}

func (m *MockMenuService) Ask(ctx context.Context, userID uuid.UUID, query string) (*chatbot.Answer, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chatbot.Answer), args.Error(1)
}

// MockOrderService is a mock implementation of the IOrderService interface
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, userID uuid.UUID, itemIDs []uint) (*models.Order, error) {
	args := m.Called(ctx, userID, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) History(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

// MockAnalyticsService is a mock implementation of the IAnalyticsService interface
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) DailyNutrition(ctx context.Context, userID uuid.UUID, day time.Time) (*service.DailyNutrition, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DailyNutrition), args.Error(1)
}

func (m *MockAnalyticsService) WeeklySodium(ctx context.Context, userID uuid.UUID) (*service.SodiumTrend, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SodiumTrend), args.Error(1)
}

func (m *MockAnalyticsService) CheckEscalation(ctx context.Context, userID uuid.UUID) (*service.Escalation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Escalation), args.Error(1)
}
