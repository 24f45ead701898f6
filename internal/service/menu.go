package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/smartcanteen/backend/internal/chatbot"
	"github.com/pageza/smartcanteen/backend/internal/logging"
	"github.com/pageza/smartcanteen/backend/internal/recommend"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

// ProfileLoader supplies the typed profile of a user.
type ProfileLoader interface {
	LoadProfile(ctx context.Context, userID uuid.UUID) (types.HealthProfile, error)
}

// MenuService composes personalised menus and answers food questions.
type MenuService struct {
	profiles ProfileLoader
	catalog  ICatalogService
	composer *recommend.Composer
	analyzer *chatbot.Analyzer
	logger   zerolog.Logger
}

// Ensure MenuService implements IMenuService
var _ IMenuService = (*MenuService)(nil)

func NewMenuService(profiles ProfileLoader, catalog ICatalogService, composer *recommend.Composer) *MenuService {
	logger := logging.Component("menu")
	return &MenuService{
		profiles: profiles,
		catalog:  catalog,
		composer: composer,
		analyzer: chatbot.NewAnalyzer(composer.Engine(), logger),
		logger:   logger,
	}
}

// profileFor returns the user's profile, or the default low-risk profile when
// the user has not onboarded so the catalog stays browsable.
func (s *MenuService) profileFor(ctx context.Context, userID uuid.UUID) (types.HealthProfile, error) {
	p, err := s.profiles.LoadProfile(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		return types.DefaultProfile(), nil
	}
	return p, err
}

// Menu scores the catalog for the user and applies filter.
func (s *MenuService) Menu(ctx context.Context, userID uuid.UUID, filter recommend.MenuFilter) ([]types.ScoredItem, error) {
	profile, err := s.profileFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(s.composer.Compose(ctx, catalog, profile)), nil
}

// Alternatives returns items near itemID in nutrition space that score as
// safer for the user than itemID itself.
func (s *MenuService) Alternatives(ctx context.Context, userID uuid.UUID, itemID uint, limit int) ([]types.ScoredItem, error) {
	if limit <= 0 {
		limit = 3
	}
	profile, err := s.profileFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	ref, err := s.catalog.Item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	base := s.composer.Engine().Evaluate(ctx, *ref, profile)

	near, err := s.catalog.Nearest(ctx, itemID, limit*4)
	if err != nil {
		return nil, err
	}

	out := make([]types.ScoredItem, 0, limit)
	for _, it := range s.composer.Compose(ctx, near, profile) {
		if it.RiskLevel < base.RiskLevel || (it.RiskLevel == base.RiskLevel && it.MatchScore > base.FinalScore) {
			out = append(out, it)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// Ask answers a free-text question about a food.
func (s *MenuService) Ask(ctx context.Context, userID uuid.UUID, query string) (*chatbot.Answer, error) {
	profile, err := s.profileFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	answer := s.analyzer.Analyze(ctx, query, catalog, profile)
	return &answer, nil
}
