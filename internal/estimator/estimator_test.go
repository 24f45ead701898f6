package estimator

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartcanteen/backend/config"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

func testConfig() config.EstimatorConfig {
	cfg := config.DefaultScoringConfig().Estimator
	cfg.Timeout = 20 * time.Millisecond
	return cfg
}

func TestNewSelectsByMode(t *testing.T) {
	cfg := testConfig()

	cfg.Mode = config.EstimatorFixed
	e, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, Fixed{}, e)

	cfg.Mode = config.EstimatorStandIn
	e, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, StandIn{}, e)

	cfg.Mode = config.EstimatorLogistic
	e, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, Logistic{}, e)

	cfg.Mode = "oracle"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestStandInIsBoundedAndDeterministic(t *testing.T) {
	s := StandIn{Min: 0.40, Max: 0.95}
	profile := types.DefaultProfile()
	seen := map[float64]bool{}

	for id := uint(1); id <= 200; id++ {
		item := types.FoodItem{ID: id, Name: "Item"}
		p, err := s.Estimate(context.Background(), profile, item)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, 0.40)
		assert.LessOrEqual(t, p, 0.95)

		again, _ := s.Estimate(context.Background(), profile, item)
		assert.Equal(t, p, again)
		seen[p] = true
	}
	assert.Greater(t, len(seen), 1, "stand-in must not be a constant")
}

func TestLogisticPenalisesSugarAndSodium(t *testing.T) {
	l := Logistic{Coef: config.DefaultScoringConfig().Estimator.Logistic}
	profile := types.DefaultProfile()
	profile.BMI = 22

	salad, err := l.Estimate(context.Background(), profile, types.FoodItem{Calories: 150, Sugar: 2, Sodium: 150})
	require.NoError(t, err)
	burger, err := l.Estimate(context.Background(), profile, types.FoodItem{Calories: 850, Sugar: 12, Sodium: 1500})
	require.NoError(t, err)

	assert.Greater(t, salad, burger)
	assert.True(t, salad > 0 && salad < 1)
	assert.True(t, burger > 0 && burger < 1)
}

func TestLogisticHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Logistic{}.Estimate(ctx, types.DefaultProfile(), types.FoodItem{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGuardFallsBackToNeutral(t *testing.T) {
	tests := []struct {
		name  string
		inner Estimator
	}{
		{"error", Func(func(context.Context, types.HealthProfile, types.FoodItem) (float64, error) {
			return 0, errors.New("model unavailable")
		})},
		{"slow", Func(func(ctx context.Context, _ types.HealthProfile, _ types.FoodItem) (float64, error) {
			select {
			case <-time.After(time.Second):
				return 0.9, nil
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		})},
		{"ignores context", Func(func(context.Context, types.HealthProfile, types.FoodItem) (float64, error) {
			time.Sleep(200 * time.Millisecond)
			return 0.9, nil
		})},
		{"above one", Fixed{P: 1.5}},
		{"negative", Fixed{P: -0.1}},
		{"nan", Fixed{P: math.NaN()}},
		{"panic", Func(func(context.Context, types.HealthProfile, types.FoodItem) (float64, error) {
			panic("boom")
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard(tt.inner, testConfig(), zerolog.Nop())
			start := time.Now()
			p, err := g.Estimate(context.Background(), types.DefaultProfile(), types.FoodItem{ID: 1})
			assert.NoError(t, err)
			assert.Equal(t, Neutral, p)
			assert.Less(t, time.Since(start), 150*time.Millisecond)
		})
	}
}

func TestGuardPassesThroughHealthyEstimates(t *testing.T) {
	g := NewGuard(Fixed{P: 0.83}, testConfig(), zerolog.Nop())
	p, err := g.Estimate(context.Background(), types.DefaultProfile(), types.FoodItem{})
	assert.NoError(t, err)
	assert.Equal(t, 0.83, p)
}

func TestGuardOpensBreakerAfterRepeatedFailures(t *testing.T) {
	var calls int32
	failing := Func(func(context.Context, types.HealthProfile, types.FoodItem) (float64, error) {
		atomic.AddInt32(&calls, 1)
		return 0, errors.New("down")
	})

	cfg := testConfig()
	cfg.Breaker.MinRequests = 3
	cfg.Breaker.FailureRatio = 0.5
	cfg.Breaker.OpenTimeout = time.Minute
	g := NewGuard(failing, cfg, zerolog.Nop())

	for i := 0; i < 10; i++ {
		p, err := g.Estimate(context.Background(), types.DefaultProfile(), types.FoodItem{})
		assert.NoError(t, err)
		assert.Equal(t, Neutral, p)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "open breaker must stop calling the estimator")
}

func TestFallbackReason(t *testing.T) {
	assert.Equal(t, "timeout", fallbackReason(context.DeadlineExceeded))
	assert.Equal(t, "out_of_range", fallbackReason(ErrOutOfRange))
	assert.Equal(t, "error", fallbackReason(errors.New("x")))
}
