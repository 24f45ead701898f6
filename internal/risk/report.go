package risk

import "github.com/pageza/smartcanteen/backend/internal/types"

// HealthReport summarises a finalized profile with lifestyle recommendations.
type HealthReport struct {
	Age             int                `json:"age"`
	Gender          string             `json:"gender,omitempty"`
	WeightKg        float64            `json:"weight_kg"`
	HeightCm        float64            `json:"height_cm"`
	BMI             float64            `json:"bmi"`
	BMICategory     types.BMICategory  `json:"bmi_category"`
	Diseases        []string           `json:"diseases"`
	Allergies       []types.Allergy    `json:"allergies"`
	RiskScore       float64            `json:"risk_score"`
	RiskLevel       types.RiskCategory `json:"risk_level"`
	Recommendations []string           `json:"recommendations"`
}

// Report builds the health report for p.
func Report(p types.HealthProfile) HealthReport {
	recs := []string{
		"Stay hydrated with 3L water daily.",
		"Maintain a regular sleep cycle.",
	}
	if p.HasCondition(types.Diabetes) {
		recs = append(recs,
			"Focus on low-GI complex carbohydrates.",
			"Restrict added sugars and sugary beverages.")
	}
	if p.HasCondition(types.Hypertension) {
		recs = append(recs, "Reduce sodium intake to less than 2300mg/day.")
	}
	if p.BMICategory == types.BMIObese || p.BMICategory == types.BMIOverweight {
		recs = append(recs, "Incorporate 30 mins of moderate cardio daily.")
	}
	if len(p.Diseases) == 0 {
		recs = append(recs, "Keep up the balanced diet to prevent future risks.")
	}

	category := p.BMICategory
	if category == "" {
		category = types.BMINormal
	}
	level := p.RiskCategory
	if level == "" {
		level = types.RiskLow
	}
	diseases := p.Diseases
	if diseases == nil {
		diseases = []string{}
	}
	allergies := p.Allergies
	if allergies == nil {
		allergies = []types.Allergy{}
	}

	return HealthReport{
		Age:             p.Age,
		Gender:          p.Gender,
		WeightKg:        p.WeightKg,
		HeightCm:        p.HeightCm,
		BMI:             p.BMI,
		BMICategory:     category,
		Diseases:        diseases,
		Allergies:       allergies,
		RiskScore:       p.RiskScore,
		RiskLevel:       level,
		Recommendations: recs,
	}
}
