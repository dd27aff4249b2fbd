package extract

import (
	"strings"

	"github.com/agext/levenshtein"

	"invox/internal/docstruct"
	"invox/internal/domain"
)

const (
	fuzzyConfidence  = 0.6
	fuzzyMaxDistance = 2
)

// fuzzyCriticalFields is the small set worth a last-resort scan when the
// earlier layers found nothing for them.
var fuzzyCriticalFields = []string{
	domain.FieldInvoiceNumber,
	domain.FieldInvoiceDate,
	domain.FieldVendorName,
	domain.FieldTotal,
}

// fuzzyLayer runs only for critical fields still unmatched after layers
// 1-4. It scans every line and accepts a field-name synonym match within
// edit distance 2, taking the remainder of the line as the value.
func fuzzyLayer(s *docstruct.Structure, matched map[string]bool) []domain.Candidate {
	var out []domain.Candidate
	for _, field := range fuzzyCriticalFields {
		if matched[field] {
			continue
		}
		synonyms := SynonymsFor(field)
		for i, line := range s.Lines {
			label, value := splitFuzzyLine(line)
			if label == "" || value == "" {
				continue
			}
			if !fuzzyMatches(label, synonyms) {
				continue
			}
			if !ValidValue(field, value) {
				continue
			}
			cleaned, ok := CleanValue(field, value)
			if !ok {
				continue
			}
			out = append(out, domain.Candidate{
				Field: field, Value: cleaned, Confidence: fuzzyConfidence,
				Method: domain.MethodFuzzy, Context: "fuzzy_label", Line: i,
			})
			break // first hit per field is enough at this confidence
		}
	}
	return out
}

// splitFuzzyLine separates a probable label from its value: on the first
// colon if present, otherwise on the last run of spaces.
func splitFuzzyLine(line string) (label, value string) {
	if k, v, ok := docstruct.SplitColonPair(line); ok {
		return NormalizeLabel(k), v
	}
	cols := splitColumns(strings.TrimSpace(line))
	if len(cols) == 2 {
		return NormalizeLabel(cols[0]), cols[1]
	}
	return "", ""
}

func fuzzyMatches(label string, synonyms []string) bool {
	for _, syn := range synonyms {
		if levenshtein.Distance(label, syn, nil) <= fuzzyMaxDistance {
			return true
		}
	}
	return false
}
