// Package extract implements the multi-layer candidate extractor: five
// independent strategies pool scored field candidates, which are then
// deduplicated into one winning value per canonical field.
package extract

import (
	"log"

	"invox/internal/docstruct"
	"invox/internal/domain"
)

// Result is the primary extractor output: the full candidate pool, the
// deduplicated per-field winners, and the pre-adjustment overall
// confidence.
type Result struct {
	Candidates []domain.Candidate
	Fields     []domain.FieldConfidence
	Confidence float64
}

// Extractor runs the five candidate layers. It is stateless; one instance
// may serve concurrent requests.
type Extractor struct {
	matchers []Matcher
}

// New creates an Extractor with the default matcher table.
func New() *Extractor {
	return &Extractor{matchers: DefaultMatchers()}
}

// Extract pools candidates from all five layers and aggregates them.
// It returns domain.ErrNoCandidates when no critical field attracted a
// single candidate: the primary strategy found nothing worth trusting and
// the cascade moves on.
func (e *Extractor) Extract(doc domain.RawDocument) (*Result, error) {
	s := docstruct.Analyze(doc.Text, doc.Markup)

	pool := patternLayer(doc.Text, e.matchers)
	pool = append(pool, markupLayer(s)...)
	pool = append(pool, spatialLayer(s)...)
	pool = append(pool, templateLayer(s, doc.Text)...)

	matched := make(map[string]bool)
	for _, c := range pool {
		matched[c.Field] = true
	}
	pool = append(pool, fuzzyLayer(s, matched)...)

	fields := Deduplicate(pool)

	anyCritical := false
	for _, f := range fields {
		for _, crit := range domain.CriticalFields {
			if f.Field == crit {
				anyCritical = true
			}
		}
	}
	if !anyCritical {
		log.Printf("extract.Extractor: no critical field candidates (pool=%d)", len(pool))
		return nil, domain.ErrNoCandidates
	}

	return &Result{
		Candidates: pool,
		Fields:     fields,
		Confidence: OverallConfidence(fields),
	}, nil
}
