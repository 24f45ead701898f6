package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/smartcanteen/backend/internal/types"
)

// Onboarding steps recorded on HealthProfile.Step.
const (
	StepBasics    = 1
	StepMedical   = 2
	StepFinalized = 3
)

// HealthProfile is the stored form of a user's health data. Free-form columns
// are JSON; they are validated on the way in by the profile service and
// converted to types.HealthProfile on the way out.
type HealthProfile struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Step      int            `gorm:"not null;default:0" json:"step"`
	Completed bool           `gorm:"not null;default:false" json:"completed"`
	Version   int            `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Age               int     `json:"age"`
	Gender            string  `gorm:"size:32" json:"gender"`
	HeightCm          float64 `json:"height"`
	WeightKg          float64 `json:"weight"`
	BMI               float64 `json:"bmi"`
	BMICategory       string  `gorm:"size:16" json:"bmi_category"`
	DietaryPreference string  `gorm:"size:16;not null;default:'Non-Veg'" json:"dietary_preference"`

	Diseases        JSONList[string]         `gorm:"not null" json:"diseases"`
	DiseaseSeverity JSONMap[string, string]  `gorm:"not null" json:"disease_severity"`
	HealthValues    JSONMap[string, float64] `gorm:"not null" json:"health_values"`
	ConditionStatus JSONMap[string, string]  `gorm:"not null" json:"condition_status"`
	Allergies       JSONList[types.Allergy]  `gorm:"not null" json:"allergies"`

	RiskScore    float64 `json:"overall_risk_score"`
	RiskCategory string  `gorm:"size:16" json:"overall_risk_level"`
}

func (HealthProfile) TableName() string {
	return "health_profiles"
}

// BeforeCreate assigns an id when none is set.
func (p *HealthProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ToDomain converts the record into the typed profile used by scoring.
// Unknown labels fall back to their safe defaults.
func (p *HealthProfile) ToDomain() types.HealthProfile {
	out := types.DefaultProfile()
	out.Age = p.Age
	out.Gender = p.Gender
	out.HeightCm = p.HeightCm
	out.WeightKg = p.WeightKg
	out.BMI = p.BMI
	if p.BMICategory != "" {
		out.BMICategory = types.BMICategory(p.BMICategory)
	}
	if diet, err := types.ParseDietaryPreference(p.DietaryPreference); err == nil {
		out.Diet = diet
	}

	out.Diseases = append([]string(nil), p.Diseases...)
	for name, sev := range p.DiseaseSeverity {
		if cond, ok := types.ConditionFromDisease(name); ok {
			out.Severities[cond] = types.ParseSeverity(sev)
		}
	}
	for _, cond := range types.Conditions {
		if v, ok := p.HealthValues[string(cond)]; ok {
			out.Readings[cond] = v
		}
		if s, ok := p.ConditionStatus[string(cond)]; ok {
			out.Statuses[cond] = parseStatus(s)
		}
	}
	for _, a := range p.Allergies {
		out.Allergies = append(out.Allergies, types.Allergy{Name: a.Name, Severity: types.ParseSeverity(string(a.Severity))})
	}

	out.RiskScore = p.RiskScore
	out.RiskCategory = types.RiskCategory(p.RiskCategory)
	return out
}

func parseStatus(s string) types.Status {
	switch types.Status(s) {
	case types.StatusElevated, types.StatusHigh, types.StatusCritical:
		return types.Status(s)
	}
	return types.StatusNormal
}
