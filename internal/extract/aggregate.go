package extract

import (
	"sort"

	"invox/internal/domain"
)

// Deduplicate collapses the pooled candidates to at most one
// FieldConfidence per canonical field, keeping the maximum-confidence
// candidate. Ties keep the earliest pooled candidate. The returned list is
// ordered by field name.
func Deduplicate(candidates []domain.Candidate) []domain.FieldConfidence {
	best := make(map[string]domain.Candidate)
	for _, c := range candidates {
		cur, seen := best[c.Field]
		if !seen || c.Confidence > cur.Confidence {
			best[c.Field] = c
		}
	}

	fields := make([]domain.FieldConfidence, 0, len(best))
	for _, c := range best {
		fields = append(fields, domain.FieldConfidence{
			Field:      c.Field,
			Value:      c.Value,
			Confidence: c.Confidence,
			Method:     c.Method,
		})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return fields
}

// OverallConfidence weights the critical fields (invoice number, vendor
// name, total) at 0.7 and everything else at 0.3. Each term is the mean
// over the fields of that group that are present; an absent group
// contributes 0 to its term.
func OverallConfidence(fields []domain.FieldConfidence) float64 {
	critical := make(map[string]bool, len(domain.CriticalFields))
	for _, f := range domain.CriticalFields {
		critical[f] = true
	}

	var critSum, otherSum float64
	var critN, otherN int
	for _, f := range fields {
		if critical[f.Field] {
			critSum += f.Confidence
			critN++
		} else {
			otherSum += f.Confidence
			otherN++
		}
	}

	var critMean, otherMean float64
	if critN > 0 {
		critMean = critSum / float64(critN)
	}
	if otherN > 0 {
		otherMean = otherSum / float64(otherN)
	}
	return 0.7*critMean + 0.3*otherMean
}
