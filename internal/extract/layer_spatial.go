package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"invox/internal/docstruct"
	"invox/internal/domain"
)

// spatial sub-heuristic confidences, all within [0.6, 0.85].
const (
	colonPairConfidence  = 0.75
	twoColumnConfidence  = 0.70
	labelValueConfidence = 0.65
	tableRowConfidence   = 0.70
	proximityConfidence  = 0.60
)

var (
	multiSpaceRe   = regexp.MustCompile(`\t+| {3,}`)
	numericCellRe  = regexp.MustCompile(`^[$€£]?\s*\d[\d.,]*\s*[$€£]?$`)
	proximityKWRe  = regexp.MustCompile(`(?i)\b(total|amount|date|invoice|balance|due)\b`)
	inlineAmountRe = regexp.MustCompile(`[$€£]\s*\d[\d.,]*|\d[\d.,]*\s*[€£]`)
	qtyCellRe      = regexp.MustCompile(`^\d{1,5}$`)
)

// spatialLayer applies five per-line proximity heuristics: colon pairs,
// two-column tab/multi-space pairs, label-line-then-value pairs, fixed-width
// line-item rows, and keyword-proximity extraction.
func spatialLayer(s *docstruct.Structure) []domain.Candidate {
	var out []domain.Candidate
	var items []domain.LineItem

	for i, line := range s.Lines {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}

		// 1. colon-separated pair
		if key, value, ok := docstruct.SplitColonPair(t); ok && value != "" {
			if c, ok := candidateFromPair(key, value, colonPairConfidence, "colon_pair", i); ok {
				out = append(out, c)
			}
		}

		// 2. tab / multi-space two-column pair
		cols := splitColumns(t)
		if len(cols) == 2 && !strings.Contains(t, ":") {
			if c, ok := candidateFromPair(cols[0], cols[1], twoColumnConfidence, "two_column", i); ok {
				out = append(out, c)
			}
		}

		// 3. label line followed by the value on the next line
		if field, ok := CanonicalField(t); ok && !strings.Contains(t, ":") && i+1 < len(s.Lines) {
			next := strings.TrimSpace(s.Lines[i+1])
			if next != "" && !isLabelOnly(next) {
				if cleaned, ok := CleanValue(field, next); ok && ValidValue(field, next) {
					out = append(out, domain.Candidate{
						Field: field, Value: cleaned, Confidence: labelValueConfidence,
						Method: domain.MethodSpatial, Context: "label_then_value", Line: i,
					})
				}
			}
		}

		// 4. fixed-width table row: description plus >= 2 numeric columns
		if item, ok := parseItemRow(cols); ok {
			item.LineNumber = len(items) + 1
			items = append(items, item)
		}

		// 5. keyword proximity: amount/date tokens near known keywords
		if proximityKWRe.MatchString(t) && !strings.Contains(t, ":") {
			if amt := inlineAmountRe.FindString(t); amt != "" {
				if field, ok := proximityField(t); ok {
					if cleaned, ok := CleanValue(field, amt); ok {
						out = append(out, domain.Candidate{
							Field: field, Value: cleaned, Confidence: proximityConfidence,
							Method: domain.MethodSpatial, Context: "keyword_proximity", Line: i,
						})
					}
				}
			}
		}
	}

	if len(items) > 0 {
		if encoded, err := json.Marshal(items); err == nil {
			out = append(out, domain.Candidate{
				Field: domain.FieldLineItems, Value: string(encoded),
				Confidence: tableRowConfidence, Method: domain.MethodSpatial,
				Context: "table_rows",
			})
		}
	}
	return out
}

func splitColumns(line string) []string {
	parts := multiSpaceRe.Split(line, -1)
	cols := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cols = append(cols, p)
		}
	}
	return cols
}

func candidateFromPair(key, value string, conf float64, context string, line int) (domain.Candidate, bool) {
	field, ok := CanonicalField(key)
	if !ok || !ValidValue(field, value) {
		return domain.Candidate{}, false
	}
	cleaned, ok := CleanValue(field, value)
	if !ok {
		return domain.Candidate{}, false
	}
	return domain.Candidate{
		Field: field, Value: cleaned, Confidence: conf,
		Method: domain.MethodSpatial, Context: context, Line: line,
	}, true
}

// isLabelOnly reports whether a line is itself a field label, so the
// label-then-value heuristic does not chain labels together.
func isLabelOnly(line string) bool {
	_, ok := CanonicalField(line)
	return ok
}

// parseItemRow reads a fixed-width row of the form
// [description] [qty]? [unit price] [amount] with at least two trailing
// numeric columns.
func parseItemRow(cols []string) (domain.LineItem, bool) {
	if len(cols) < 3 {
		return domain.LineItem{}, false
	}
	numeric := 0
	for _, c := range cols[1:] {
		if numericCellRe.MatchString(c) {
			numeric++
		}
	}
	if numeric < 2 || numericCellRe.MatchString(cols[0]) {
		return domain.LineItem{}, false
	}

	item := domain.LineItem{Description: cols[0], Quantity: 1}
	rest := cols[1:]
	if qtyCellRe.MatchString(rest[0]) && len(rest) >= 3 {
		q, _ := strconv.ParseFloat(rest[0], 64)
		item.Quantity = q
		rest = rest[1:]
	}
	unit, ok1 := ParseAmount(rest[0])
	amount, ok2 := ParseAmount(rest[len(rest)-1])
	if !ok1 || !ok2 {
		return domain.LineItem{}, false
	}
	item.UnitPrice = unit
	item.Amount = amount
	return item, true
}

// proximityField picks the target field implied by a keyword on the line.
func proximityField(line string) (string, bool) {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "subtotal"):
		return domain.FieldSubtotal, true
	case strings.Contains(lower, "total") || strings.Contains(lower, "balance") || strings.Contains(lower, "due"):
		return domain.FieldTotal, true
	case strings.Contains(lower, "amount"):
		return domain.FieldTotal, true
	default:
		return "", false
	}
}
