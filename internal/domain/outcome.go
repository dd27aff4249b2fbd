package domain

// EnhancementResult is the response of the external enhancement
// collaborator: a corrected invoice, its self-reported confidence, ordered
// human-readable improvement notes, and any residual validation notes.
type EnhancementResult struct {
	Invoice         CanonicalInvoice `json:"invoice"`
	Confidence      float64          `json:"confidence"`
	Improvements    []string         `json:"improvements"`
	ValidationNotes []string         `json:"validation_errors"`
}

// ParseOutcome is the terminal emission of one pipeline invocation.
// Confidence is always the post-validation-adjusted value in [0.1, 0.99],
// never a raw extractor score.
type ParseOutcome struct {
	RunID             string            `json:"run_id"`
	Invoice           CanonicalInvoice  `json:"invoice"`
	Confidence        float64           `json:"confidence"`
	FieldConfidences  []FieldConfidence `json:"field_confidences"`
	FallbackUsed      bool              `json:"fallback_used"`
	LLMEnhanced       bool              `json:"llm_enhanced"`
	Action            string            `json:"action"`
	Validation        ValidationResult  `json:"validation_results"`
	Improvements      []string          `json:"improvements"`
	ExtractionDetails []Candidate       `json:"extraction_details,omitempty"`
}
