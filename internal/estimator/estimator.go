// Package estimator provides the probabilistic half of the hybrid score: a
// swappable function returning the probability that an item suits a profile.
package estimator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/pageza/smartcanteen/backend/config"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

// Neutral is returned whenever an estimate cannot be trusted.
const Neutral = 0.5

var ErrOutOfRange = errors.New("estimator output out of range")

// Estimator scores a (profile, item) pair with a probability in [0,1].
type Estimator interface {
	Estimate(ctx context.Context, profile types.HealthProfile, item types.FoodItem) (float64, error)
}

// Func adapts a function to the Estimator interface.
type Func func(ctx context.Context, profile types.HealthProfile, item types.FoodItem) (float64, error)

func (f Func) Estimate(ctx context.Context, profile types.HealthProfile, item types.FoodItem) (float64, error) {
	return f(ctx, profile, item)
}

// Fixed always returns P. Used in tests and as a deterministic baseline.
type Fixed struct {
	P float64
}

func (f Fixed) Estimate(context.Context, types.HealthProfile, types.FoodItem) (float64, error) {
	return f.P, nil
}

// StandIn returns a deterministic pseudo-probability in [Min, Max] derived
// from a hash of the profile and item. It carries no clinical signal.
type StandIn struct {
	Min, Max float64
}

func (s StandIn) Estimate(_ context.Context, p types.HealthProfile, item types.FoodItem) (float64, error) {
	h := xxhash.New()
	fmt.Fprintf(h, "%d|%.2f|%s|%s|%d|%s", p.Age, p.BMI, p.Diet, strings.Join(p.Diseases, ","), item.ID, strings.ToLower(item.Name))
	frac := float64(h.Sum64()%10001) / 10000
	return s.Min + frac*(s.Max-s.Min), nil
}

// Logistic is a linear model over [age, bmi, calories, sugar, sodium]
// squashed through a sigmoid.
type Logistic struct {
	Coef config.LogisticConfig
}

func (l Logistic) Estimate(ctx context.Context, p types.HealthProfile, item types.FoodItem) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	z := l.Coef.Intercept +
		l.Coef.Age*float64(p.Age) +
		l.Coef.BMI*p.BMI +
		l.Coef.Calories*item.Calories +
		l.Coef.Sugar*item.Sugar +
		l.Coef.Sodium*item.Sodium
	return 1 / (1 + math.Exp(-z)), nil
}

// New builds the estimator selected by cfg.Mode.
func New(cfg config.EstimatorConfig) (Estimator, error) {
	switch cfg.Mode {
	case config.EstimatorLogistic:
		return Logistic{Coef: cfg.Logistic}, nil
	case config.EstimatorStandIn:
		return StandIn{Min: cfg.StandInMin, Max: cfg.StandInMax}, nil
	case config.EstimatorFixed:
		return Fixed{P: cfg.FixedProbability}, nil
	}
	return nil, fmt.Errorf("unknown estimator mode %q", cfg.Mode)
}
