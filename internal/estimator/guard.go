package estimator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/pageza/smartcanteen/backend/config"
	"github.com/pageza/smartcanteen/backend/internal/metrics"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

var _ Estimator = (*Guard)(nil)

var errPanic = errors.New("estimator panicked")

// Guard isolates an estimator behind a per-call timeout and a circuit
// breaker. Any failure yields Neutral; Estimate never returns an error.
type Guard struct {
	inner   Estimator
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[float64]
	logger  zerolog.Logger
}

// NewGuard wraps inner with the timeout and breaker settings from cfg.
func NewGuard(inner Estimator, cfg config.EstimatorConfig, logger zerolog.Logger) *Guard {
	name := "estimator-" + cfg.Mode
	br := cfg.Breaker
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[float64](gobreaker.Settings{
		Name:        name,
		MaxRequests: br.MaxRequests,
		Interval:    br.Interval,
		Timeout:     br.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < br.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= br.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("estimator breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
		// Caller cancellation does not count as a failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Guard{
		inner:   inner,
		timeout: cfg.Timeout,
		cb:      cb,
		logger:  logger.With().Str("component", "estimator").Logger(),
	}
}

// Estimate returns the inner estimate or Neutral on any failure.
func (g *Guard) Estimate(ctx context.Context, profile types.HealthProfile, item types.FoodItem) (float64, error) {
	start := time.Now()
	p, err := g.cb.Execute(func() (float64, error) {
		return g.call(ctx, profile, item)
	})
	metrics.EstimatorDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		reason := fallbackReason(err)
		metrics.EstimatorFallbacks.WithLabelValues(reason).Inc()
		g.logger.Warn().Err(err).Str("reason", reason).Uint("item_id", item.ID).Msg("estimator fallback to neutral probability")
		return Neutral, nil
	}
	return p, nil
}

type estimate struct {
	p   float64
	err error
}

func (g *Guard) call(ctx context.Context, profile types.HealthProfile, item types.FoodItem) (float64, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	done := make(chan estimate, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- estimate{err: fmt.Errorf("%w: %v", errPanic, r)}
			}
		}()
		p, err := g.inner.Estimate(ctx, profile, item)
		done <- estimate{p: p, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return 0, res.err
		}
		if math.IsNaN(res.p) || res.p < 0 || res.p > 1 {
			return 0, fmt.Errorf("%w: %v", ErrOutOfRange, res.p)
		}
		return res.p, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, errPanic):
		return "panic"
	}
	return "error"
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	}
	return 0
}
