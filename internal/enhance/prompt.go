package enhance

import (
	"encoding/json"
	"fmt"

	"invox/internal/domain"
)

// BuildEnhancementPrompt returns the correction prompt given the raw OCR
// text, the current structured guess, and its confidence.
func BuildEnhancementPrompt(rawText string, invoice *domain.CanonicalInvoice, confidence float64) string {
	current, err := json.MarshalIndent(invoice, "", "  ")
	if err != nil {
		current = []byte("{}")
	}
	return fmt.Sprintf(`You are an invoice data correction assistant. A rule-based extractor parsed the OCR text below with overall confidence %.2f. Review the extraction against the text and correct any mistakes.

IMPORTANT INSTRUCTIONS:
- Correct wrong or missing field values; keep values that are already right.
- Normalize all dates to YYYY-MM-DD format.
- Amounts are plain decimal numbers with no currency symbols or thousands separators.
- Extract EVERY line item present in the text. Do not skip, summarize, or omit any items.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation — just the raw JSON object.

Return four top-level keys:
{
  "invoice": { ...same schema as the current extraction below... },
  "confidence": 0.0,
  "improvements": ["one short note per correction made"],
  "validation_errors": ["any remaining issues you could not resolve"]
}

"confidence" is your overall confidence in the corrected invoice, between 0.0 and 1.0.

OCR TEXT:
%s

CURRENT EXTRACTION:
%s`, confidence, rawText, string(current))
}

// DecodeEnhancementResponse parses the model's JSON text into an
// EnhancementResult.
func DecodeEnhancementResponse(text string) (*domain.EnhancementResult, error) {
	var result domain.EnhancementResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(text, 500))
	}
	return &result, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
