// Package enhance decides when the external language-model collaborator is
// worth consulting and whether to adopt what it returns. Collaborator
// failures are absorbed here; the pipeline never sees them.
package enhance

import (
	"context"
	"log"

	"invox/internal/domain"
	"invox/internal/port"
	"invox/internal/validator"
)

const (
	// invokeThreshold is the adjusted confidence below which enhancement
	// is attempted.
	invokeThreshold = 0.8
	// adoptionDelta allows a slightly lower-confidence result through when
	// it reports many improvements.
	adoptionDelta        = 0.05
	adoptionImprovements = 2
	// regressFloor caps how much adopted confidence may regress.
	regressFloor = 0.95
)

// Outcome reports what enhancement did to the current invoice.
type Outcome struct {
	Invoice      domain.CanonicalInvoice
	Confidence   float64
	Validation   domain.ValidationResult
	Enhanced     bool
	Improvements []string
}

// Orchestrator wraps an Enhancer with the invoke/adopt policy.
type Orchestrator struct {
	enhancer port.Enhancer
}

// NewOrchestrator builds an orchestrator. A nil enhancer disables
// enhancement; ShouldEnhance then always reports false.
func NewOrchestrator(enhancer port.Enhancer) *Orchestrator {
	return &Orchestrator{enhancer: enhancer}
}

// ShouldEnhance reports whether the current result is weak enough to spend
// a collaborator call on: low adjusted confidence or any critical finding.
func (o *Orchestrator) ShouldEnhance(confidence float64, validation domain.ValidationResult) bool {
	if o.enhancer == nil {
		return false
	}
	return confidence < invokeThreshold || validation.HasCritical()
}

// Run calls the collaborator, re-validates its result, and applies the
// adoption rule. Any collaborator failure keeps the original; the returned
// Outcome is always usable.
func (o *Orchestrator) Run(ctx context.Context, rawText string, invoice domain.CanonicalInvoice, confidence float64, validation domain.ValidationResult) Outcome {
	kept := Outcome{Invoice: invoice, Confidence: confidence, Validation: validation}

	result, err := o.enhancer.Enhance(ctx, port.EnhanceInput{
		RawText:    rawText,
		Invoice:    invoice,
		Confidence: confidence,
	})
	if err != nil {
		log.Printf("enhance.Orchestrator: enhancement failed, keeping original: %v", err)
		return kept
	}

	newValidation := validator.Validate(&result.Invoice)
	newConfidence := validator.AdjustConfidence(result.Confidence, newValidation)

	if !adopt(newConfidence, confidence, len(result.Improvements)) {
		log.Printf("enhance.Orchestrator: discarding enhancement (confidence %.2f vs %.2f, %d improvements)",
			newConfidence, confidence, len(result.Improvements))
		return kept
	}

	final := newConfidence
	if floor := confidence * regressFloor; final < floor {
		final = floor
	}
	return Outcome{
		Invoice:      result.Invoice,
		Confidence:   validator.Clamp(final),
		Validation:   newValidation,
		Enhanced:     true,
		Improvements: result.Improvements,
	}
}

// adopt applies the adoption rule: strictly better confidence wins, and a
// marginally worse one is still accepted when the collaborator reports
// enough concrete improvements.
func adopt(newConfidence, oldConfidence float64, improvements int) bool {
	if newConfidence > oldConfidence {
		return true
	}
	delta := oldConfidence - newConfidence
	if delta < 0 {
		delta = -delta
	}
	return improvements > adoptionImprovements && delta < adoptionDelta
}
