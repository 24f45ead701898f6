package types

// RiskLevel is the per-item risk tier shown to the user.
type RiskLevel int

const (
	RiskSafe RiskLevel = iota
	RiskCaution
	RiskDanger
)

func (r RiskLevel) String() string {
	switch r {
	case RiskSafe:
		return "SAFE"
	case RiskCaution:
		return "CAUTION"
	case RiskDanger:
		return "DANGER"
	}
	return "UNKNOWN"
}

// FoodItem is a catalog entry. Nil StockQuantity means stock is not tracked,
// nil IsAvailable means the item is available.
type FoodItem struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Image         string  `json:"image,omitempty"`
	Price         float64 `json:"price"`
	Calories      float64 `json:"calories"`
	Sugar         float64 `json:"sugar"`
	Protein       float64 `json:"protein"`
	Sodium        float64 `json:"sodium"`
	Carbs         float64 `json:"carbs"`
	StockQuantity *int    `json:"stock_quantity,omitempty"`
	IsAvailable   *bool   `json:"is_available,omitempty"`
}

// Orderable reports whether the item can currently be offered.
func (f FoodItem) Orderable() bool {
	if f.IsAvailable != nil && !*f.IsAvailable {
		return false
	}
	return f.StockQuantity == nil || *f.StockQuantity > 0
}

// HasStock reports whether qty units can be sold.
func (f FoodItem) HasStock(qty int) bool {
	if f.IsAvailable != nil && !*f.IsAvailable {
		return false
	}
	return f.StockQuantity == nil || *f.StockQuantity >= qty
}

// Nutrition returns the vector used for similarity lookups:
// calories, sugar, protein, sodium, carbs.
func (f FoodItem) Nutrition() []float32 {
	return []float32{
		float32(f.Calories),
		float32(f.Sugar),
		float32(f.Protein),
		float32(f.Sodium),
		float32(f.Carbs),
	}
}

// EvaluationResult is the outcome of scoring one item for one profile.
type EvaluationResult struct {
	FinalScore int       `json:"final_score"`
	RiskLevel  RiskLevel `json:"risk_level"`
	Insight    string    `json:"insight"`
	Tag        string    `json:"tag"`
	Penalties  []string  `json:"penalties,omitempty"`
	Blocked    bool      `json:"blocked"`
}

// ScoredItem is a catalog item annotated with its evaluation.
type ScoredItem struct {
	FoodItem
	MatchScore int       `json:"match_score"`
	RiskLevel  RiskLevel `json:"risk_level"`
	Insight    string    `json:"ai_insight"`
	Tag        string    `json:"tag"`
}

// Annotate copies item and attaches the evaluation fields.
func Annotate(item FoodItem, res EvaluationResult) ScoredItem {
	return ScoredItem{
		FoodItem:   item,
		MatchScore: res.FinalScore,
		RiskLevel:  res.RiskLevel,
		Insight:    res.Insight,
		Tag:        res.Tag,
	}
}

// IntPtr and BoolPtr help build optional catalog fields.
func IntPtr(v int) *int { return &v }

func BoolPtr(v bool) *bool { return &v }
