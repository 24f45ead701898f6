package types

import (
	"strings"
)

// Severity is the clinical severity label attached to a disease or allergy.
type Severity string

const (
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

// Valid reports whether s is one of the known severity labels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// Condition is a disease the classifier knows how to grade from a reading.
type Condition string

const (
	Diabetes     Condition = "diabetes"
	Hypertension Condition = "hypertension"
	Cholesterol  Condition = "cholesterol"
)

// Conditions lists every graded condition in a stable order.
var Conditions = []Condition{Diabetes, Hypertension, Cholesterol}

// Status is the graded state of a condition reading.
type Status string

const (
	StatusNormal   Status = "Normal"
	StatusElevated Status = "Elevated"
	StatusHigh     Status = "High"
	StatusCritical Status = "Critical"
)

// Severe reports whether the status sits in the top band of its scale.
func (s Status) Severe() bool {
	return s == StatusHigh || s == StatusCritical
}

// BMICategory buckets a body mass index.
type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal"
	BMIOverweight  BMICategory = "Overweight"
	BMIObese       BMICategory = "Obese"
)

// DietaryPreference is the user's declared diet.
type DietaryPreference string

const (
	DietVeg    DietaryPreference = "Veg"
	DietVegan  DietaryPreference = "Vegan"
	DietNonVeg DietaryPreference = "Non-Veg"
)

// RiskCategory is the coarse label derived from the overall risk score.
type RiskCategory string

const (
	RiskLow      RiskCategory = "Low"
	RiskModerate RiskCategory = "Moderate"
	RiskHigh     RiskCategory = "High"
)

// Allergy is a single declared allergen.
type Allergy struct {
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
}

// HealthProfile is the validated, typed view of a user's health data that
// scoring code works with. Persistence records are converted into this shape
// at the storage boundary.
type HealthProfile struct {
	Age         int                    `json:"age"`
	Gender      string                 `json:"gender,omitempty"`
	HeightCm    float64                `json:"height_cm"`
	WeightKg    float64                `json:"weight_kg"`
	BMI         float64                `json:"bmi"`
	BMICategory BMICategory            `json:"bmi_category"`
	Diseases    []string               `json:"diseases"`
	Severities  map[Condition]Severity `json:"disease_severity"`
	Readings    map[Condition]float64  `json:"health_values"`
	Statuses    map[Condition]Status   `json:"statuses"`
	Diet        DietaryPreference      `json:"dietary_preference"`
	Allergies   []Allergy              `json:"allergies"`

	RiskScore    float64      `json:"overall_risk_score"`
	RiskCategory RiskCategory `json:"overall_risk_level,omitempty"`
}

// DefaultProfile is the low-risk profile used when a user has not onboarded yet.
func DefaultProfile() HealthProfile {
	return HealthProfile{
		Age:         25,
		BMICategory: BMINormal,
		Diet:        DietNonVeg,
		Severities:  map[Condition]Severity{},
		Readings:    map[Condition]float64{},
		Statuses:    map[Condition]Status{},
	}
}

// HasCondition reports whether any declared disease maps onto c.
func (p HealthProfile) HasCondition(c Condition) bool {
	for _, d := range p.Diseases {
		if cond, ok := ConditionFromDisease(d); ok && cond == c {
			return true
		}
	}
	return false
}

// SeverityOf returns the declared severity for c, or def when none is recorded.
func (p HealthProfile) SeverityOf(c Condition, def Severity) Severity {
	if s, ok := p.Severities[c]; ok && s.Valid() {
		return s
	}
	return def
}

// StatusOf returns the stored status for c, Normal when missing.
func (p HealthProfile) StatusOf(c Condition) Status {
	if s, ok := p.Statuses[c]; ok && s != "" {
		return s
	}
	return StatusNormal
}

// ConditionFromDisease maps a free-form disease name onto a graded condition.
func ConditionFromDisease(name string) (Condition, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case n == "":
		return "", false
	case strings.Contains(n, "diabet"):
		return Diabetes, true
	case strings.Contains(n, "hypotension"), strings.Contains(n, "low blood pressure"):
		return "", false
	case strings.Contains(n, "hypertension"), strings.Contains(n, "blood pressure"):
		return Hypertension, true
	case strings.Contains(n, "cholesterol"):
		return Cholesterol, true
	}
	return "", false
}
