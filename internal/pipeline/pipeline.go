// Package pipeline wires the extraction cascade, validation, and optional
// enhancement into a single per-request invocation. The pipeline itself is
// stateless; independent requests may run it concurrently.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"invox/internal/domain"
	"invox/internal/enhance"
	"invox/internal/extract"
	"invox/internal/fallback"
	"invox/internal/port"
	"invox/internal/validator"
)

// Pipeline orchestrates one parse per call: extract, validate, maybe
// enhance, validate again, emit.
type Pipeline struct {
	extractor *extract.Extractor
	markup    fallback.MarkupParser
	det       fallback.DeterministicParser
	enhancer  *enhance.Orchestrator
	ocr       port.OCRService
	store     port.InvoiceStore
}

// New builds a pipeline. ocr and store may be nil when the caller supplies
// text directly and discards results.
func New(enhancer *enhance.Orchestrator, ocr port.OCRService, store port.InvoiceStore) *Pipeline {
	if enhancer == nil {
		enhancer = enhance.NewOrchestrator(nil)
	}
	return &Pipeline{
		extractor: extract.New(),
		enhancer:  enhancer,
		ocr:       ocr,
		store:     store,
	}
}

// ProcessReference runs the pipeline on a document reference: OCR first,
// then Process. An OCR failure is the one unrecoverable outcome and is
// reported as domain.ErrUpstreamOCR.
func (p *Pipeline) ProcessReference(ctx context.Context, documentRef string) (*domain.ParseOutcome, error) {
	if p.ocr == nil {
		return nil, fmt.Errorf("no OCR service configured: %w", domain.ErrUpstreamOCR)
	}
	ocrResult, err := p.ocr.ExtractText(ctx, documentRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamOCR, err)
	}
	return p.Process(ctx, domain.RawDocument{Text: ocrResult.Text, Markup: ocrResult.Markup})
}

// Process runs the pipeline on already-extracted text. The only errors it
// returns are domain.ErrEmptyInput for a document with neither text nor
// markup; every other internal failure is converted into a cascade step and
// the call still yields a best-effort outcome.
func (p *Pipeline) Process(ctx context.Context, doc domain.RawDocument) (*domain.ParseOutcome, error) {
	if doc.Empty() {
		return nil, domain.ErrEmptyInput
	}
	runID := uuid.New().String()

	outcome := p.runCascade(ctx, runID, doc)
	outcome.RunID = runID

	if p.store != nil {
		if err := p.store.SaveInvoice(ctx, &outcome.Invoice); err != nil {
			log.Printf("pipeline.Pipeline: run %s: saving invoice: %v", runID, err)
		}
	}
	return outcome, nil
}

func (p *Pipeline) runCascade(ctx context.Context, runID string, doc domain.RawDocument) *domain.ParseOutcome {
	result, err := p.extractor.Extract(doc)
	if err == nil {
		return p.primaryOutcome(ctx, doc, result)
	}
	log.Printf("pipeline.Pipeline: run %s: primary extraction failed: %v", runID, err)

	if strings.TrimSpace(doc.Markup) != "" {
		fb, mErr := p.markup.Parse(doc)
		if mErr == nil {
			return p.fallbackOutcome(fb)
		}
		log.Printf("pipeline.Pipeline: run %s: markup fallback failed: %v", runID, mErr)
	}

	return p.fallbackOutcome(p.det.Parse(doc, 1.0))
}

// primaryOutcome validates the primary extraction, consults the enhancer
// when the result is weak, and re-validates anything adopted.
func (p *Pipeline) primaryOutcome(ctx context.Context, doc domain.RawDocument, result *extract.Result) *domain.ParseOutcome {
	invoice := extract.BuildInvoice(result.Fields, doc.Text)
	validation := validator.Validate(&invoice)
	confidence := validator.AdjustConfidence(result.Confidence, validation)

	enhanced := false
	var improvements []string
	if p.enhancer.ShouldEnhance(confidence, validation) {
		out := p.enhancer.Run(ctx, doc.Text, invoice, confidence, validation)
		invoice = out.Invoice
		confidence = out.Confidence
		validation = out.Validation
		enhanced = out.Enhanced
		improvements = out.Improvements
	}

	return &domain.ParseOutcome{
		Invoice:           invoice,
		Confidence:        confidence,
		FieldConfidences:  result.Fields,
		FallbackUsed:      false,
		LLMEnhanced:       enhanced,
		Action:            recommend(confidence, validation, enhanced),
		Validation:        validation,
		Improvements:      improvements,
		ExtractionDetails: result.Candidates,
	}
}

// fallbackOutcome validates a fallback result. Fallback paths never consult
// the enhancer.
func (p *Pipeline) fallbackOutcome(fb *fallback.Result) *domain.ParseOutcome {
	validation := validator.Validate(&fb.Invoice)
	confidence := validator.AdjustConfidence(fb.Confidence, validation)
	return &domain.ParseOutcome{
		Invoice:          fb.Invoice,
		Confidence:       confidence,
		FieldConfidences: fb.Fields,
		FallbackUsed:     true,
		Action:           recommend(confidence, validation, false),
		Validation:       validation,
		Improvements:     []string{},
	}
}

// recommend selects the human-readable action string by confidence band.
func recommend(confidence float64, validation domain.ValidationResult, enhanced bool) string {
	suffix := ""
	if enhanced {
		suffix = " (LLM-enhanced)"
	}
	switch {
	case confidence > 0.9 && len(validation.Errors) == 0:
		return "Auto-approve: high confidence, no validation errors" + suffix
	case confidence > 0.8:
		return "Quick review recommended: good confidence" + suffix
	default:
		return "Manual review required: low confidence or validation findings" + suffix
	}
}

// IsUpstreamFailure reports whether err is the unrecoverable OCR outcome.
func IsUpstreamFailure(err error) bool {
	return errors.Is(err, domain.ErrUpstreamOCR)
}
