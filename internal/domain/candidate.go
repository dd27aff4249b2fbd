package domain

// Candidate is one raw (field, value, confidence) proposal from a single
// extraction layer, before deduplication. Many may exist per field; all are
// discarded once the winning FieldConfidence is chosen.
type Candidate struct {
	Field      string           `json:"field"`
	Value      string           `json:"value"`
	Confidence float64          `json:"confidence"`
	Method     ExtractionMethod `json:"method"`
	Context    string           `json:"context,omitempty"`
	Line       int              `json:"line"`
}

// FieldConfidence is the winning value for one canonical field after
// aggregation, exactly one per field.
type FieldConfidence struct {
	Field      string           `json:"field"`
	Value      string           `json:"value"`
	Confidence float64          `json:"confidence"`
	Method     ExtractionMethod `json:"method"`
}
