package extract

import (
	"invox/internal/domain"

	"invox/internal/docstruct"
)

const markupTableConfidence = 0.9

// markupLayer reads two-column delimited rows from markup tables and maps
// the left cell through the synonym dictionary.
func markupLayer(s *docstruct.Structure) []domain.Candidate {
	var out []domain.Candidate
	for _, table := range s.Tables {
		rows := table.Rows
		if len(table.Header) == 2 {
			// two-column tables are label/value lists; the header row is data
			rows = append([][]string{table.Header}, rows...)
		}
		for i, row := range rows {
			if len(row) != 2 {
				continue
			}
			field, ok := CanonicalField(row[0])
			if !ok {
				continue
			}
			if !ValidValue(field, row[1]) {
				continue
			}
			cleaned, ok := CleanValue(field, row[1])
			if !ok {
				continue
			}
			out = append(out, domain.Candidate{
				Field:      field,
				Value:      cleaned,
				Confidence: markupTableConfidence,
				Method:     domain.MethodMarkupTable,
				Context:    "markup_table",
				Line:       table.StartLine + i,
			})
		}
	}
	return out
}
