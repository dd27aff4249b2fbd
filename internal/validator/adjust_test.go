package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invox/internal/domain"
)

func TestAdjustConfidence_CleanBonus(t *testing.T) {
	result := domain.ValidationResult{IsValid: true}
	assert.InDelta(t, 0.8, AdjustConfidence(0.7, result), 0.0001)
}

func TestAdjustConfidence_Penalties(t *testing.T) {
	result := domain.ValidationResult{
		Errors: []domain.ValidationError{
			{Severity: domain.SeverityCritical},
			{Severity: domain.SeverityMajor},
			{Severity: domain.SeverityMinor},
		},
		Warnings: []domain.ValidationWarning{
			{ConfidenceImpact: -0.1},
		},
	}
	// 0.9 - 0.3 - 0.15 - 0.05 - 0.1 = 0.3
	assert.InDelta(t, 0.3, AdjustConfidence(0.9, result), 0.0001)
}

func TestAdjustConfidence_Clamped(t *testing.T) {
	critical := domain.ValidationResult{
		Errors: []domain.ValidationError{
			{Severity: domain.SeverityCritical},
			{Severity: domain.SeverityCritical},
			{Severity: domain.SeverityCritical},
		},
	}
	assert.InDelta(t, 0.1, AdjustConfidence(0.5, critical), 0.0001)

	clean := domain.ValidationResult{}
	assert.InDelta(t, 0.99, AdjustConfidence(0.95, clean), 0.0001)
}

func TestClamp(t *testing.T) {
	assert.InDelta(t, 0.1, Clamp(-2), 0.0001)
	assert.InDelta(t, 0.99, Clamp(1.5), 0.0001)
	assert.InDelta(t, 0.42, Clamp(0.42), 0.0001)
}
