package types

// Step1Request carries the basic body measurements and diet.
type Step1Request struct {
	Age               int     `json:"age" binding:"required,gt=0,lt=130"`
	Gender            string  `json:"gender" binding:"omitempty,max=32"`
	WeightKg          float64 `json:"weight" binding:"required,gt=0,lt=500"`
	HeightCm          float64 `json:"height" binding:"required,gt=0,lt=300"`
	DietaryPreference string  `json:"dietary_preference" binding:"required"`
}

// AllergyInput is an allergy as submitted by a client.
type AllergyInput struct {
	Name     string `json:"name" binding:"required,max=64"`
	Severity string `json:"severity"`
}

// Step2Request carries the medical history. Severity labels and readings are
// free-form here and normalised by the profile service.
type Step2Request struct {
	Diseases        []string              `json:"diseases" binding:"max=20,dive,max=64"`
	DiseaseSeverity map[string]string     `json:"disease_severity"`
	HealthValues    map[string]RawReading `json:"health_values"`
	Allergies       []AllergyInput        `json:"allergies" binding:"max=20,dive"`
}

// CreateProfileRequest is the single-call onboarding payload.
type CreateProfileRequest struct {
	Step1Request
	Step2Request
}

// OrderRequest lists catalog ids; an id may repeat to order several units.
type OrderRequest struct {
	ItemIDs []uint `json:"item_ids"`
}

// ChatQueryRequest is a free-text question about a food. Message is accepted
// as an alias of Query.
type ChatQueryRequest struct {
	Query   string `json:"query" binding:"max=200"`
	Message string `json:"message" binding:"max=200"`
}

// Text returns the question, preferring Query.
func (r ChatQueryRequest) Text() string {
	if r.Query != "" {
		return r.Query
	}
	return r.Message
}

// MenuQuery holds the optional menu filters.
type MenuQuery struct {
	MaxRisk *int   `form:"max_risk" binding:"omitempty,min=0,max=2"`
	Tag     string `form:"tag"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Sort    string `form:"sort" binding:"omitempty,oneof=score catalog"`
}
