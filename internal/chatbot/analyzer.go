// Package chatbot answers free-text "is this food safe for me" questions using
// the same scoring engine as the menu.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pageza/smartcanteen/backend/internal/metrics"
	"github.com/pageza/smartcanteen/backend/internal/recommend"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

const (
	catalogConfidence = 0.95
	genericConfidence = 0.5
)

var junkKeywords = []string{"burger", "pizza", "fries", "soda", "cake", "sweets", "donut"}

// Answer is the analyzer's reply to one query. Generic answers are not backed
// by catalog data and carry no Item or Result.
type Answer struct {
	Query      string                  `json:"query"`
	Matched    bool                    `json:"matched"`
	Generic    bool                    `json:"generic"`
	Item       *types.FoodItem         `json:"item,omitempty"`
	Result     *types.EvaluationResult `json:"result,omitempty"`
	RiskLevel  types.RiskLevel         `json:"risk_level"`
	Confidence float64                 `json:"confidence"`
	Text       string                  `json:"text"`
	Chips      []string                `json:"chips"`
}

// Analyzer resolves a query against the catalog and scores it.
type Analyzer struct {
	engine *recommend.Engine
	logger zerolog.Logger
}

func NewAnalyzer(engine *recommend.Engine, logger zerolog.Logger) *Analyzer {
	return &Analyzer{engine: engine, logger: logger.With().Str("component", "chatbot").Logger()}
}

// Analyze looks for an exact, case-insensitive name match in catalog and
// evaluates it for profile. Unknown foods get a keyword-based generic answer.
func (a *Analyzer) Analyze(ctx context.Context, query string, catalog []types.FoodItem, profile types.HealthProfile) Answer {
	q := normalizeQuery(query)

	for i := range catalog {
		if !strings.EqualFold(catalog[i].Name, q) {
			continue
		}
		item := catalog[i]
		res := a.engine.Evaluate(ctx, item, profile)
		metrics.ChatQueries.WithLabelValues("catalog").Inc()

		label := res.RiskLevel.String()
		return Answer{
			Query:      q,
			Matched:    true,
			Item:       &item,
			Result:     &res,
			RiskLevel:  res.RiskLevel,
			Confidence: catalogConfidence,
			Text:       fmt.Sprintf("Analysis for '%s': Classified as **%s** (%d/100). %s", item.Name, label, res.FinalScore, res.Insight),
			Chips:      chipsFor(res.RiskLevel),
		}
	}

	metrics.ChatQueries.WithLabelValues("generic").Inc()
	a.logger.Debug().Str("query", q).Msg("no catalog match, using generic analysis")
	return generic(q)
}

func generic(q string) Answer {
	level := types.RiskSafe
	reason := "I don't have the exact nutrition data, but it seems moderately safe."
	lower := strings.ToLower(q)
	for _, kw := range junkKeywords {
		if strings.Contains(lower, kw) {
			level = types.RiskDanger
			reason = "Generally high in junk fats/sugars."
			break
		}
	}
	return Answer{
		Query:      q,
		Generic:    true,
		RiskLevel:  level,
		Confidence: genericConfidence,
		Text:       fmt.Sprintf("Generic Analysis for '%s': Classified as **%s**. %s", q, level, reason),
		Chips:      []string{"Try common menu items"},
	}
}

func chipsFor(level types.RiskLevel) []string {
	if level == types.RiskDanger {
		return []string{"Find Safer Option", "Why is this risky?"}
	}
	return []string{"Add to Tray", "Nutrition Facts"}
}

// normalizeQuery trims whitespace and trailing question marks.
func normalizeQuery(q string) string {
	q = strings.TrimSpace(q)
	q = strings.TrimRight(q, "?!. ")
	return strings.Join(strings.Fields(q), " ")
}
