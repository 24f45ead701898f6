package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/pageza/smartcanteen/backend/internal/risk"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

// ScoringEnvPrefix prefixes environment overrides of the scoring config.
// Nested keys use a double underscore: SCORING_ESTIMATOR__MODE=fixed.
const ScoringEnvPrefix = "SCORING_"

// Estimator modes.
const (
	EstimatorLogistic = "logistic"
	EstimatorStandIn  = "standin"
	EstimatorFixed    = "fixed"
)

// ScoringConfig tunes the recommendation engine without a code change.
type ScoringConfig struct {
	Alpha              float64               `koanf:"alpha"`
	SeverityWeights    SeverityWeightsConfig `koanf:"severity_weights"`
	StrictHealthValues bool                  `koanf:"strict_health_values"`
	Estimator          EstimatorConfig       `koanf:"estimator"`
	Menu               MenuConfig            `koanf:"menu"`
}

// SeverityWeightsConfig is the severity multiplier table.
type SeverityWeightsConfig struct {
	Mild     float64 `koanf:"mild"`
	Moderate float64 `koanf:"moderate"`
	Severe   float64 `koanf:"severe"`
}

// EstimatorConfig selects and tunes the probabilistic estimator.
type EstimatorConfig struct {
	Mode             string         `koanf:"mode"`
	Timeout          time.Duration  `koanf:"timeout"`
	FixedProbability float64        `koanf:"fixed_probability"`
	StandInMin       float64        `koanf:"standin_min"`
	StandInMax       float64        `koanf:"standin_max"`
	Logistic         LogisticConfig `koanf:"logistic"`
	Breaker          BreakerConfig  `koanf:"breaker"`
}

// LogisticConfig holds the coefficients of the logistic scorer over
// [age, bmi, calories, sugar, sodium].
type LogisticConfig struct {
	Intercept float64 `koanf:"intercept"`
	Age       float64 `koanf:"age"`
	BMI       float64 `koanf:"bmi"`
	Calories  float64 `koanf:"calories"`
	Sugar     float64 `koanf:"sugar"`
	Sodium    float64 `koanf:"sodium"`
}

// BreakerConfig configures the estimator circuit breaker.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	OpenTimeout  time.Duration `koanf:"open_timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// MenuConfig controls menu composition.
type MenuConfig struct {
	Workers int `koanf:"workers"`
}

// DefaultScoringConfig returns the built-in scoring configuration.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Alpha: 0.6,
		SeverityWeights: SeverityWeightsConfig{
			Mild:     0.5,
			Moderate: 0.75,
			Severe:   1.0,
		},
		Estimator: EstimatorConfig{
			Mode:             EstimatorLogistic,
			Timeout:          50 * time.Millisecond,
			FixedProbability: 0.5,
			StandInMin:       0.40,
			StandInMax:       0.95,
			Logistic: LogisticConfig{
				Intercept: 2.0,
				Age:       -0.01,
				BMI:       -0.04,
				Calories:  -0.002,
				Sugar:     -0.03,
				Sodium:    -0.0008,
			},
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				OpenTimeout:  30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Menu: MenuConfig{Workers: 8},
	}
}

// LoadScoringConfig layers defaults, the optional YAML file at path and
// SCORING_* environment variables, in increasing priority.
func LoadScoringConfig(path string) (*ScoringConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultScoringConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load scoring defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("scoring config %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load scoring config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(ScoringEnvPrefix, ".", scoringEnvKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load scoring environment: %w", err)
	}

	cfg := &ScoringConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scoring config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// scoringEnvKey maps SCORING_ESTIMATOR__TIMEOUT to estimator.timeout.
func scoringEnvKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, ScoringEnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Validate checks the ranges the engine relies on.
func (c *ScoringConfig) Validate() error {
	var errs []error
	if math.IsNaN(c.Alpha) || c.Alpha < 0 || c.Alpha > 1 {
		errs = append(errs, ValidationError{Field: "alpha", Message: "must be within [0,1]"})
	}
	w := c.SeverityWeights
	if w.Mild < 0 || w.Moderate < 0 || w.Severe < 0 {
		errs = append(errs, ValidationError{Field: "severity_weights", Message: "must not be negative"})
	}
	switch c.Estimator.Mode {
	case EstimatorLogistic, EstimatorStandIn, EstimatorFixed:
	default:
		errs = append(errs, ValidationError{Field: "estimator.mode", Message: fmt.Sprintf("unknown mode %q", c.Estimator.Mode)})
	}
	if c.Estimator.Timeout <= 0 {
		errs = append(errs, ValidationError{Field: "estimator.timeout", Message: "must be positive"})
	}
	if p := c.Estimator.FixedProbability; p < 0 || p > 1 {
		errs = append(errs, ValidationError{Field: "estimator.fixed_probability", Message: "must be within [0,1]"})
	}
	if lo, hi := c.Estimator.StandInMin, c.Estimator.StandInMax; lo < 0 || hi > 1 || lo > hi {
		errs = append(errs, ValidationError{Field: "estimator.standin_min", Message: "stand-in range must satisfy 0 <= min <= max <= 1"})
	}
	if c.Menu.Workers < 1 {
		errs = append(errs, ValidationError{Field: "menu.workers", Message: "must be at least 1"})
	}
	if len(errs) > 0 {
		return fmt.Errorf("scoring configuration invalid: %w", errors.Join(errs...))
	}
	return nil
}

// Weights converts the configured table into the classifier's type.
func (c *ScoringConfig) Weights() risk.SeverityWeights {
	return risk.SeverityWeights{
		types.SeverityMild:     c.SeverityWeights.Mild,
		types.SeverityModerate: c.SeverityWeights.Moderate,
		types.SeveritySevere:   c.SeverityWeights.Severe,
	}
}
