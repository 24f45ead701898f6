package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartcanteen/backend/internal/estimator"
	"github.com/pageza/smartcanteen/backend/internal/recommend"
	"github.com/pageza/smartcanteen/backend/internal/risk"
	"github.com/pageza/smartcanteen/backend/internal/testhelpers"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

type stubProfiles struct {
	profile types.HealthProfile
	err     error
}

func (s stubProfiles) LoadProfile(context.Context, uuid.UUID) (types.HealthProfile, error) {
	return s.profile, s.err
}

func newMenuService(t *testing.T, profiles ProfileLoader) *MenuService {
	t.Helper()
	db := testhelpers.SetupSQLiteDB(t)
	testhelpers.SeedCatalog(t, db)
	engine := recommend.NewEngine(estimator.Fixed{P: 1.0}, risk.DefaultSeverityWeights(), 0.6)
	return NewMenuService(profiles, NewCatalogService(db), recommend.NewComposer(engine, 4))
}

func diabeticProfile() types.HealthProfile {
	p := types.DefaultProfile()
	p.Diseases = []string{"Diabetes"}
	p.Severities[types.Diabetes] = types.SeveritySevere
	return p
}

func TestMenuFallsBackToDefaultProfile(t *testing.T) {
	svc := newMenuService(t, stubProfiles{err: ErrProfileNotFound})

	menu, err := svc.Menu(context.Background(), uuid.New(), recommend.MenuFilter{})
	require.NoError(t, err)
	require.Len(t, menu, len(recommend.DefaultCatalog()))

	for _, it := range menu {
		if it.ID == 102 {
			assert.Equal(t, 97, it.MatchScore)
			assert.Equal(t, types.RiskSafe, it.RiskLevel)
		}
	}
}

func TestMenuAppliesFilter(t *testing.T) {
	svc := newMenuService(t, stubProfiles{profile: diabeticProfile()})
	safe := types.RiskSafe

	menu, err := svc.Menu(context.Background(), uuid.New(), recommend.MenuFilter{MaxRisk: &safe, Limit: 5, SortByScore: true})
	require.NoError(t, err)
	require.NotEmpty(t, menu)
	assert.LessOrEqual(t, len(menu), 5)
	for i, it := range menu {
		assert.Equal(t, types.RiskSafe, it.RiskLevel)
		assert.NotEqual(t, uint(119), it.ID)
		if i > 0 {
			assert.GreaterOrEqual(t, menu[i-1].MatchScore, it.MatchScore)
		}
	}
}

func TestMenuPropagatesProfileErrors(t *testing.T) {
	svc := newMenuService(t, stubProfiles{err: errors.New("connection reset")})

	_, err := svc.Menu(context.Background(), uuid.New(), recommend.MenuFilter{})
	assert.EqualError(t, err, "connection reset")
}

func TestAlternativesAreSaferThanReference(t *testing.T) {
	svc := newMenuService(t, stubProfiles{profile: diabeticProfile()})
	ctx := context.Background()

	donut := recommend.DefaultCatalog()[18]
	require.Equal(t, uint(119), donut.ID)
	base := svc.composer.Engine().Evaluate(ctx, donut, diabeticProfile())

	alts, err := svc.Alternatives(ctx, uuid.New(), donut.ID, 3)
	require.NoError(t, err)
	require.NotEmpty(t, alts)
	assert.LessOrEqual(t, len(alts), 3)
	for _, it := range alts {
		assert.NotEqual(t, donut.ID, it.ID)
		saferTier := it.RiskLevel < base.RiskLevel
		sameTierHigher := it.RiskLevel == base.RiskLevel && it.MatchScore > base.FinalScore
		assert.True(t, saferTier || sameTierHigher, "%s is not safer than the reference", it.Name)
	}

	_, err = svc.Alternatives(ctx, uuid.New(), 999, 3)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestAskMatchesCatalogOrFallsBack(t *testing.T) {
	svc := newMenuService(t, stubProfiles{err: ErrProfileNotFound})
	ctx := context.Background()

	answer, err := svc.Ask(ctx, uuid.New(), "fresh green salad")
	require.NoError(t, err)
	assert.True(t, answer.Matched)
	require.NotNil(t, answer.Item)
	assert.Equal(t, uint(102), answer.Item.ID)
	require.NotNil(t, answer.Result)
	assert.Equal(t, 97, answer.Result.FinalScore)

	answer, err = svc.Ask(ctx, uuid.New(), "kale smoothie")
	require.NoError(t, err)
	assert.False(t, answer.Matched)
	assert.True(t, answer.Generic)
	assert.Nil(t, answer.Result)
}
