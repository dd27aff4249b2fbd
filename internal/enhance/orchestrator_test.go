package enhance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invox/internal/domain"
	"invox/internal/port"
)

type fakeEnhancer struct {
	result *domain.EnhancementResult
	err    error
	calls  int
}

func (f *fakeEnhancer) Enhance(_ context.Context, _ port.EnhanceInput) (*domain.EnhancementResult, error) {
	f.calls++
	return f.result, f.err
}

func baseInvoice() domain.CanonicalInvoice {
	return domain.CanonicalInvoice{
		InvoiceNumber: "INV-1",
		InvoiceDate:   "2026-01-10",
		VendorName:    "Acme",
		Currency:      "USD",
		Subtotal:      100,
		Tax:           10,
		Total:         110,
		LineItems:     []domain.LineItem{},
	}
}

func TestShouldEnhance(t *testing.T) {
	o := NewOrchestrator(&fakeEnhancer{})

	critical := domain.ValidationResult{
		Errors: []domain.ValidationError{{Severity: domain.SeverityCritical}},
	}
	clean := domain.ValidationResult{IsValid: true}

	assert.True(t, o.ShouldEnhance(0.6, critical), "low confidence with critical error")
	assert.True(t, o.ShouldEnhance(0.6, clean), "low confidence alone")
	assert.True(t, o.ShouldEnhance(0.95, critical), "critical error alone")
	assert.False(t, o.ShouldEnhance(0.85, clean))
}

func TestShouldEnhance_NilEnhancer(t *testing.T) {
	o := NewOrchestrator(nil)
	critical := domain.ValidationResult{
		Errors: []domain.ValidationError{{Severity: domain.SeverityCritical}},
	}
	assert.False(t, o.ShouldEnhance(0.3, critical))
}

func TestRun_AdoptsHigherConfidence(t *testing.T) {
	enhanced := baseInvoice()
	enhanced.BillTo = "John Smith"
	fake := &fakeEnhancer{result: &domain.EnhancementResult{
		Invoice:      enhanced,
		Confidence:   0.9,
		Improvements: []string{"filled bill_to"},
	}}
	o := NewOrchestrator(fake)

	out := o.Run(context.Background(), "raw", baseInvoice(), 0.6, domain.ValidationResult{})
	assert.True(t, out.Enhanced)
	assert.Equal(t, "John Smith", out.Invoice.BillTo)
	// clean enhanced invoice: 0.9 + 0.10 bonus, clamped
	assert.InDelta(t, 0.99, out.Confidence, 0.0001)
	assert.Equal(t, []string{"filled bill_to"}, out.Improvements)
	assert.Equal(t, 1, fake.calls)
}

func TestRun_RejectsLowerConfidenceWithFewImprovements(t *testing.T) {
	enhanced := baseInvoice()
	enhanced.VendorName = "" // keeps the re-validated confidence below the original
	fake := &fakeEnhancer{result: &domain.EnhancementResult{
		Invoice:      enhanced,
		Confidence:   0.55,
		Improvements: []string{"one note"},
	}}
	o := NewOrchestrator(fake)

	original := baseInvoice()
	out := o.Run(context.Background(), "raw", original, 0.6, domain.ValidationResult{})
	assert.False(t, out.Enhanced)
	assert.InDelta(t, 0.6, out.Confidence, 0.0001)
	assert.Equal(t, original, out.Invoice)
	assert.Empty(t, out.Improvements)
}

func TestRun_AdoptsManyImprovementsWithinDelta(t *testing.T) {
	enhanced := baseInvoice()
	fake := &fakeEnhancer{result: &domain.EnhancementResult{
		Invoice:      enhanced,
		Confidence:   0.58,
		Improvements: []string{"a", "b", "c"},
	}}
	o := NewOrchestrator(fake)

	// re-validated: 0.58 + 0.10 clean bonus = 0.68; above 0.65 so the
	// strictly-greater branch adopts it outright
	out := o.Run(context.Background(), "raw", baseInvoice(), 0.65, domain.ValidationResult{})
	assert.True(t, out.Enhanced)
}

func TestRun_RegressFloorOnAdoption(t *testing.T) {
	enhanced := baseInvoice()
	enhanced.VendorName = "" // −0.1 warning keeps the new confidence below the floor
	fake := &fakeEnhancer{result: &domain.EnhancementResult{
		Invoice:      enhanced,
		Confidence:   0.855,
		Improvements: []string{"a", "b", "c", "d"},
	}}
	o := NewOrchestrator(fake)

	// new adjusted = 0.855 − 0.1 = 0.755; delta vs 0.8 is 0.045 with 4
	// improvements, so it is adopted but floored at 0.8 × 0.95 = 0.76
	out := o.Run(context.Background(), "raw", baseInvoice(), 0.8, domain.ValidationResult{})
	assert.True(t, out.Enhanced)
	assert.InDelta(t, 0.76, out.Confidence, 0.0001)
}

func TestRun_AbsorbsEnhancerFailure(t *testing.T) {
	fake := &fakeEnhancer{err: errors.New("boom")}
	o := NewOrchestrator(fake)

	original := baseInvoice()
	validation := domain.ValidationResult{IsValid: true}
	out := o.Run(context.Background(), "raw", original, 0.7, validation)

	require.NotNil(t, out)
	assert.False(t, out.Enhanced)
	assert.Equal(t, original, out.Invoice)
	assert.InDelta(t, 0.7, out.Confidence, 0.0001)
	assert.Equal(t, validation, out.Validation)
}
