package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invox/internal/domain"
)

func cleanInvoice() domain.CanonicalInvoice {
	return domain.CanonicalInvoice{
		InvoiceNumber: "INV-2024-001",
		InvoiceDate:   "2026-03-05",
		VendorName:    "Acme Supplies Inc",
		Currency:      "USD",
		Subtotal:      100,
		Tax:           10,
		Shipping:      0,
		Total:         110,
		LineItems:     []domain.LineItem{},
	}
}

func findError(t *testing.T, result domain.ValidationResult, field string) domain.ValidationError {
	t.Helper()
	for _, e := range result.Errors {
		if e.Field == field {
			return e
		}
	}
	t.Fatalf("no error for field %q in %+v", field, result.Errors)
	return domain.ValidationError{}
}

func findWarning(result domain.ValidationResult, field string) (domain.ValidationWarning, bool) {
	for _, w := range result.Warnings {
		if w.Field == field {
			return w, true
		}
	}
	return domain.ValidationWarning{}, false
}

func TestValidate_CleanInvoice(t *testing.T) {
	inv := cleanInvoice()
	result := Validate(&inv)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidate_TotalsMathWithinTolerance(t *testing.T) {
	inv := cleanInvoice()
	inv.Total = 111.5 // within 2% of 110
	result := Validate(&inv)
	assert.Empty(t, result.Errors)
}

func TestValidate_TotalLessThanSubtotal(t *testing.T) {
	inv := cleanInvoice()
	inv.Subtotal = 150
	inv.Tax = 0
	inv.Total = 100

	result := Validate(&inv)
	require.Len(t, result.Errors, 1)
	e := findError(t, result, domain.FieldTotal)
	assert.Equal(t, domain.SeverityMajor, e.Severity)
	assert.Contains(t, e.Message, "cannot be less than subtotal")
	assert.True(t, result.IsValid, "major errors alone keep the invoice valid")
}

func TestValidate_SubtotalSuggestedFix(t *testing.T) {
	inv := cleanInvoice()
	inv.LineItems = []domain.LineItem{
		{LineNumber: 1, Description: "Widget A", Quantity: 1, UnitPrice: 10, Amount: 10},
		{LineNumber: 2, Description: "Widget B", Quantity: 1, UnitPrice: 20, Amount: 20},
	}
	inv.Subtotal = 40
	inv.Tax = 0
	inv.Total = 40

	result := Validate(&inv)
	e := findError(t, result, domain.FieldSubtotal)
	assert.Equal(t, domain.SeverityMajor, e.Severity)
	assert.Equal(t, "Set subtotal to 30.00", e.SuggestedFix)
}

func TestValidate_LineItemAmountMismatch(t *testing.T) {
	inv := cleanInvoice()
	inv.LineItems = []domain.LineItem{
		{LineNumber: 1, Description: "Widget", Quantity: 2, UnitPrice: 10, Amount: 50},
	}
	inv.Subtotal = 50
	inv.Tax = 0
	inv.Total = 50

	result := Validate(&inv)
	w, ok := findWarning(result, "line_items[0].amount")
	require.True(t, ok)
	assert.InDelta(t, -0.2, w.ConfidenceImpact, 0.0001)
}

func TestValidate_MissingTotalIsCritical(t *testing.T) {
	inv := cleanInvoice()
	inv.Subtotal = 0
	inv.Tax = 0
	inv.Total = 0

	result := Validate(&inv)
	e := findError(t, result, domain.FieldTotal)
	assert.Equal(t, domain.SeverityCritical, e.Severity)
	assert.False(t, result.IsValid)
}

func TestValidate_MissingVendorAndDateAreWarnings(t *testing.T) {
	inv := cleanInvoice()
	inv.VendorName = ""
	inv.InvoiceDate = ""

	result := Validate(&inv)
	assert.True(t, result.IsValid)

	w, ok := findWarning(result, domain.FieldVendorName)
	require.True(t, ok)
	assert.InDelta(t, -0.1, w.ConfidenceImpact, 0.0001)

	w, ok = findWarning(result, domain.FieldInvoiceDate)
	require.True(t, ok)
	assert.InDelta(t, -0.1, w.ConfidenceImpact, 0.0001)
}

func TestValidate_NonISODateIsMinor(t *testing.T) {
	inv := cleanInvoice()
	inv.InvoiceDate = "03/05/2026"

	result := Validate(&inv)
	e := findError(t, result, domain.FieldInvoiceDate)
	assert.Equal(t, domain.SeverityMinor, e.Severity)
}

func TestValidate_FarFutureDateWarning(t *testing.T) {
	inv := cleanInvoice()
	inv.InvoiceDate = "2045-01-01"

	result := Validate(&inv)
	w, ok := findWarning(result, domain.FieldInvoiceDate)
	require.True(t, ok)
	assert.InDelta(t, -0.1, w.ConfidenceImpact, 0.0001)
}

func TestValidate_UnknownCurrencyWarning(t *testing.T) {
	inv := cleanInvoice()
	inv.Currency = "XYZ"

	result := Validate(&inv)
	w, ok := findWarning(result, domain.FieldCurrency)
	require.True(t, ok)
	assert.InDelta(t, -0.05, w.ConfidenceImpact, 0.0001)
}

func TestValidate_NegativeAmountIsMajor(t *testing.T) {
	inv := cleanInvoice()
	inv.Tax = -5
	inv.Total = 95

	result := Validate(&inv)
	e := findError(t, result, domain.FieldTax)
	assert.Equal(t, domain.SeverityMajor, e.Severity)
}

func TestValidate_BusinessRuleWarnings(t *testing.T) {
	t.Run("tax exceeds subtotal", func(t *testing.T) {
		inv := cleanInvoice()
		inv.Tax = 150
		inv.Total = 250
		result := Validate(&inv)
		w, ok := findWarning(result, domain.FieldTax)
		require.True(t, ok)
		assert.InDelta(t, -0.15, w.ConfidenceImpact, 0.0001)
	})

	t.Run("shipping exceeds half of subtotal", func(t *testing.T) {
		inv := cleanInvoice()
		inv.Shipping = 60
		inv.Total = 170
		result := Validate(&inv)
		w, ok := findWarning(result, domain.FieldShipping)
		require.True(t, ok)
		assert.InDelta(t, -0.1, w.ConfidenceImpact, 0.0001)
	})
}

func TestValidate_LineItemShape(t *testing.T) {
	inv := cleanInvoice()
	inv.LineItems = []domain.LineItem{
		{LineNumber: 1, Description: "", Quantity: 0, UnitPrice: -1, Amount: 100},
	}
	inv.Subtotal = 100
	inv.Tax = 0
	inv.Total = 100

	result := Validate(&inv)
	assert.True(t, result.IsValid)

	minors := 0
	for _, e := range result.Errors {
		if e.Severity == domain.SeverityMinor {
			minors++
		}
	}
	assert.Equal(t, 3, minors)
}

func TestValidate_Pure(t *testing.T) {
	inv := cleanInvoice()
	inv.Subtotal = 150
	inv.Total = 100

	first := Validate(&inv)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Validate(&inv))
	}
}
