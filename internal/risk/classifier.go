// Package risk grades biometric readings and aggregates them into an overall
// 0-100 risk score for a health profile.
package risk

import (
	"math"

	"github.com/pageza/smartcanteen/backend/internal/types"
)

// BMI returns weight(kg)/height(m)^2 rounded to two decimals, zero when height is missing.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return 0
	}
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*100) / 100
}

// BMICategory buckets bmi using half-open intervals at 18.5, 25 and 30.
func BMICategory(bmi float64) types.BMICategory {
	switch {
	case bmi < 18.5:
		return types.BMIUnderweight
	case bmi < 25:
		return types.BMINormal
	case bmi < 30:
		return types.BMIOverweight
	default:
		return types.BMIObese
	}
}

// StatusFor grades a numeric reading. Zero means "not measured" and is Normal.
func StatusFor(cond types.Condition, value float64) types.Status {
	if value <= 0 {
		return types.StatusNormal
	}
	switch cond {
	case types.Diabetes:
		switch {
		case value < 100:
			return types.StatusNormal
		case value <= 125:
			return types.StatusElevated
		default:
			return types.StatusHigh
		}
	case types.Hypertension:
		switch {
		case value < 120:
			return types.StatusNormal
		case value <= 139:
			return types.StatusElevated
		default:
			return types.StatusCritical
		}
	case types.Cholesterol:
		switch {
		case value < 130:
			return types.StatusNormal
		case value <= 159:
			return types.StatusElevated
		default:
			return types.StatusHigh
		}
	}
	return types.StatusNormal
}

// ClassifyReading parses raw and grades it. The parse error is returned so
// callers can decide whether to reject or log it; the status is Normal then.
func ClassifyReading(cond types.Condition, raw string) (types.Status, float64, error) {
	v, err := types.ParseReading(cond, raw)
	if err != nil {
		return types.StatusNormal, 0, err
	}
	return StatusFor(cond, v), v, nil
}

// ConditionStatus grades a raw reading, treating malformed input as Normal.
func ConditionStatus(cond types.Condition, raw string) types.Status {
	status, _, _ := ClassifyReading(cond, raw)
	return status
}

// conditionPoints are the disease sub-score contributions per graded status.
var conditionPoints = map[types.Condition]struct{ high, elevated float64 }{
	types.Diabetes:     {40, 20},
	types.Hypertension: {40, 20},
	types.Cholesterol:  {20, 10},
}

// OverallRisk computes the weighted 0-100 risk score and its level.
func OverallRisk(p types.HealthProfile, weights SeverityWeights) (float64, types.RiskCategory) {
	var bmiRisk float64
	switch p.BMICategory {
	case types.BMIObese:
		bmiRisk = 100
	case types.BMIOverweight:
		bmiRisk = 60
	case types.BMIUnderweight:
		bmiRisk = 50
	}

	var diseaseRisk float64
	for _, cond := range types.Conditions {
		pts := conditionPoints[cond]
		switch status := p.StatusOf(cond); {
		case status.Severe():
			diseaseRisk += pts.high * weights.Weight(p.SeverityOf(cond, types.SeverityModerate))
		case status == types.StatusElevated:
			diseaseRisk += pts.elevated * weights.Weight(p.SeverityOf(cond, types.SeverityMild))
		}
	}
	diseaseRisk = math.Min(diseaseRisk, 100)

	dietRisk := 20.0
	if p.Diet == types.DietNonVeg {
		dietRisk += 10
	}

	var allergyRisk float64
	for _, a := range p.Allergies {
		switch a.Severity {
		case types.SeveritySevere:
			allergyRisk += 50
		case types.SeverityModerate:
			allergyRisk += 30
		default:
			allergyRisk += 10
		}
	}
	allergyRisk = math.Min(allergyRisk, 100)

	total := bmiRisk*0.25 + diseaseRisk*0.40 + dietRisk*0.20 + allergyRisk*0.15
	score := math.Round(math.Min(total, 100)*10) / 10
	return score, Level(score)
}

// Level maps a score onto Low (<=30), Moderate (<=60) or High.
func Level(score float64) types.RiskCategory {
	switch {
	case score <= 30:
		return types.RiskLow
	case score <= 60:
		return types.RiskModerate
	default:
		return types.RiskHigh
	}
}
