// Package scoring folds step results into the three SIA trust dimensions:
// Security, Integrity, and Accuracy.
package scoring

import (
	"math"

	"github.com/JaimeStill/vigil/internal/capability"
)

// DefaultConfidence weights a step result that does not declare its own confidence.
const DefaultConfidence = 0.5

// CriticalPenalty is subtracted from a dimension for each critical flag in
// that category. A flat penalty that blending cannot wash out.
const CriticalPenalty = 5

// Scores holds the aggregated trust dimensions, each clamped to [0,100].
type Scores struct {
	Security  int `json:"security"`
	Integrity int `json:"integrity"`
	Accuracy  int `json:"accuracy"`
}

// Aggregate folds step results into the baseline scores. Each result
// carrying a score blends into the dimension named by its type:
// new = old*(1-confidence) + score*confidence. Critical flags subtract
// CriticalPenalty from the dimension named by their category. Results are
// folded in the order given; callers pass workflow declaration order so
// aggregation is deterministic. Dimensions clamp to [0,100] after folding.
func Aggregate(base Scores, results []*capability.Result) Scores {
	dims := map[string]float64{
		capability.DimensionSecurity:  float64(base.Security),
		capability.DimensionIntegrity: float64(base.Integrity),
		capability.DimensionAccuracy:  float64(base.Accuracy),
	}

	for _, r := range results {
		if r == nil {
			continue
		}

		if r.Score != nil {
			if old, ok := dims[r.Type]; ok {
				conf := DefaultConfidence
				if r.Confidence != nil {
					conf = *r.Confidence
				}
				dims[r.Type] = old*(1-conf) + *r.Score*conf
			}
		}

		for _, f := range r.Flags {
			if f.Severity != capability.SeverityCritical {
				continue
			}
			if _, ok := dims[f.Category]; ok {
				dims[f.Category] -= CriticalPenalty
			}
		}
	}

	return Scores{
		Security:  clamp(dims[capability.DimensionSecurity]),
		Integrity: clamp(dims[capability.DimensionIntegrity]),
		Accuracy:  clamp(dims[capability.DimensionAccuracy]),
	}
}

func clamp(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
