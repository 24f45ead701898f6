package risk

import "github.com/pageza/smartcanteen/backend/internal/types"

// SeverityWeights maps a severity label to the multiplier applied to a penalty.
type SeverityWeights map[types.Severity]float64

// DefaultSeverityWeights is used when configuration supplies no table.
func DefaultSeverityWeights() SeverityWeights {
	return SeverityWeights{
		types.SeverityMild:     0.5,
		types.SeverityModerate: 0.75,
		types.SeveritySevere:   1.0,
	}
}

// Weight returns the multiplier for s. Unknown labels weigh 1.0.
func (w SeverityWeights) Weight(s types.Severity) float64 {
	if v, ok := w[s]; ok {
		return v
	}
	return 1.0
}
