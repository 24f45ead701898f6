// Package recommend scores catalog items against a health profile by blending
// clinical rules with a probabilistic estimate, and composes scored menus.
package recommend

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/pageza/smartcanteen/backend/internal/estimator"
	"github.com/pageza/smartcanteen/backend/internal/metrics"
	"github.com/pageza/smartcanteen/backend/internal/risk"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

// Rule thresholds, grams for sugar and carbs, milligrams for sodium.
const (
	baseRuleScore = 95.0

	severeSugarLimit  = 15
	severeSodiumLimit = 1200

	sugarPenaltyAbove  = 10
	carbsPenaltyAbove  = 50
	sodiumPenaltyAbove = 800

	sugarPenalty  = 20
	carbsPenalty  = 10
	sodiumPenalty = 25

	safeScore    = 80
	cautionScore = 50
)

// Engine evaluates one item for one profile. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	estimator estimator.Estimator
	weights   risk.SeverityWeights
	alpha     float64
}

// NewEngine builds an engine. alpha weights the rule score against the
// estimator probability.
func NewEngine(est estimator.Estimator, weights risk.SeverityWeights, alpha float64) *Engine {
	return &Engine{estimator: est, weights: weights, alpha: alpha}
}

func blocked(rule, insight string) types.EvaluationResult {
	metrics.HardBlocks.WithLabelValues(rule).Inc()
	metrics.Evaluations.WithLabelValues(types.RiskDanger.String()).Inc()
	return types.EvaluationResult{
		FinalScore: 0,
		RiskLevel:  types.RiskDanger,
		Insight:    insight,
		Tag:        "Danger",
		Blocked:    true,
	}
}

// Evaluate scores item for profile. Hard filters short-circuit in order:
// allergen, severe diabetes sugar, severe hypertension sodium, diet.
func (e *Engine) Evaluate(ctx context.Context, item types.FoodItem, profile types.HealthProfile) types.EvaluationResult {
	name := strings.ToLower(item.Name)

	for _, a := range profile.Allergies {
		stem := allergenStem(a.Name)
		if stem == "" {
			continue
		}
		if strings.Contains(name, stem) {
			return blocked("allergen", fmt.Sprintf("Blocked: Contains %s (Allergen)", strings.TrimSpace(a.Name)))
		}
	}

	diabetic := profile.HasCondition(types.Diabetes)
	diabetesSeverity := profile.SeverityOf(types.Diabetes, types.SeverityModerate)
	if diabetic && diabetesSeverity == types.SeveritySevere && item.Sugar > severeSugarLimit {
		return blocked("diabetes_sugar", "Blocked: Excessive sugar for Severe Diabetes")
	}

	hypertensive := profile.HasCondition(types.Hypertension)
	hypertensionSeverity := profile.SeverityOf(types.Hypertension, types.SeverityModerate)
	if hypertensive && hypertensionSeverity == types.SeveritySevere && item.Sodium > severeSodiumLimit {
		return blocked("hypertension_sodium", "Blocked: Excessive sodium for Severe Hypertension")
	}

	switch profile.Diet {
	case types.DietVegan:
		if _, ok := dietKeyword(item.Name, meatKeywords); ok {
			return blocked("diet", "Violates Vegan Preference")
		}
		if _, ok := dietKeyword(item.Name, dairyKeywords); ok {
			return blocked("diet", "Violates Vegan Preference")
		}
	case types.DietVeg:
		if _, ok := dietKeyword(item.Name, meatKeywords); ok {
			return blocked("diet", "Violates Veg Preference")
		}
	}

	rule := baseRuleScore
	var penalties []string
	if diabetic {
		w := e.weights.Weight(diabetesSeverity)
		if item.Sugar > sugarPenaltyAbove {
			rule -= sugarPenalty * w
			penalties = append(penalties, "High Sugar")
		}
		if item.Carbs > carbsPenaltyAbove {
			rule -= carbsPenalty * w
			penalties = append(penalties, "High Carbs")
		}
	}
	if hypertensive && item.Sodium > sodiumPenaltyAbove {
		rule -= sodiumPenalty * e.weights.Weight(hypertensionSeverity)
		penalties = append(penalties, "High Sodium")
	}
	rule = math.Max(0, math.Min(100, rule)) / 100

	prob := e.probability(ctx, profile, item)
	score := Blend(e.alpha, rule, prob)

	res := types.EvaluationResult{
		FinalScore: score,
		Tag:        tagFor(item),
		Penalties:  penalties,
	}
	switch {
	case score >= safeScore:
		res.RiskLevel = types.RiskSafe
		res.Insight = "Perfect match for your health profile."
	case score >= cautionScore:
		res.RiskLevel = types.RiskCaution
		res.Insight = "Moderate nutrition match."
		if len(penalties) > 0 {
			res.Insight = "Caution: " + strings.Join(penalties, ", ")
		}
	default:
		res.RiskLevel = types.RiskDanger
		res.Insight = "High risk for your profile."
		if len(penalties) > 0 {
			res.Insight = "Restricted: " + strings.Join(penalties, ", ")
		}
	}
	metrics.Evaluations.WithLabelValues(res.RiskLevel.String()).Inc()
	return res
}

// probability asks the estimator and falls back to the neutral value.
func (e *Engine) probability(ctx context.Context, profile types.HealthProfile, item types.FoodItem) float64 {
	if e.estimator == nil {
		return estimator.Neutral
	}
	p, err := e.estimator.Estimate(ctx, profile, item)
	if err != nil || math.IsNaN(p) || p < 0 || p > 1 {
		return estimator.Neutral
	}
	return p
}

// Blend returns floor(100*(alpha*rule + (1-alpha)*prob)). The small epsilon
// keeps exact decimal products such as 0.77 from flooring to 76.
func Blend(alpha, rule, prob float64) int {
	final := alpha*rule + (1-alpha)*prob
	return int(math.Floor(final*100 + 1e-9))
}

func tagFor(item types.FoodItem) string {
	switch {
	case item.Sugar == 0:
		return "Sugar Free"
	case containsAny(item.Name, lowGIKeywords):
		return "Low GI"
	case item.Carbs < 20:
		return "Low Carb"
	case item.Protein > 25:
		return "High Protein"
	case item.Sugar < 5:
		return "Low Sugar"
	}
	return "Standard"
}
