package validator

import "invox/internal/domain"

// Per-finding confidence penalties and the clean-result bonus.
const (
	criticalPenalty = 0.3
	majorPenalty    = 0.15
	minorPenalty    = 0.05
	cleanBonus      = 0.10

	confidenceFloor = 0.1
	confidenceCeil  = 0.99
)

// AdjustConfidence folds the validation findings into the extractor's raw
// confidence. Warnings carry their own negative impact; a finding-free
// invoice earns a small bonus. The result is always within
// [confidenceFloor, confidenceCeil].
func AdjustConfidence(original float64, result domain.ValidationResult) float64 {
	criticals, majors, minors := result.Counts()
	adjusted := original -
		criticalPenalty*float64(criticals) -
		majorPenalty*float64(majors) -
		minorPenalty*float64(minors)
	for _, w := range result.Warnings {
		adjusted += w.ConfidenceImpact
	}
	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		adjusted += cleanBonus
	}
	return Clamp(adjusted)
}

// Clamp bounds a post-adjustment confidence to [0.1, 0.99].
func Clamp(v float64) float64 {
	if v < confidenceFloor {
		return confidenceFloor
	}
	if v > confidenceCeil {
		return confidenceCeil
	}
	return v
}
