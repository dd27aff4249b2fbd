package port

import (
	"context"

	"invox/internal/domain"
)

// EnhanceInput carries the data handed to the enhancement collaborator:
// the raw OCR text, the current structured guess, and its confidence.
type EnhanceInput struct {
	RawText    string
	Invoice    domain.CanonicalInvoice
	Confidence float64
}

// Enhancer abstracts the external language-model enhancement collaborator.
// It may fail or return unparseable content; callers absorb both.
type Enhancer interface {
	Enhance(ctx context.Context, input EnhanceInput) (*domain.EnhancementResult, error)
}
