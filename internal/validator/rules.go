// Package validator runs the cross-field checks on a canonical invoice and
// converts findings into a confidence adjustment. Validation is pure: the
// same invoice always yields the same result.
package validator

import (
	"fmt"
	"math"
	"time"

	"invox/internal/domain"
)

// relTolerance is the relative arithmetic slack granted to OCR-extracted
// amounts.
const relTolerance = 0.02

// Rule is one validation check. Rules only read the invoice and append
// findings; they never mutate it.
type Rule struct {
	Key   string
	Name  string
	Check func(inv *domain.CanonicalInvoice, now time.Time) ([]domain.ValidationError, []domain.ValidationWarning)
}

// Validate runs every rule and assembles the result. isValid means no
// critical errors; major and minor errors leave the invoice valid but
// reduce confidence.
func Validate(inv *domain.CanonicalInvoice) domain.ValidationResult {
	return validateAt(inv, time.Now())
}

func validateAt(inv *domain.CanonicalInvoice, now time.Time) domain.ValidationResult {
	result := domain.ValidationResult{
		Errors:   []domain.ValidationError{},
		Warnings: []domain.ValidationWarning{},
	}
	for _, rule := range AllRules() {
		errs, warns := rule.Check(inv, now)
		result.Errors = append(result.Errors, errs...)
		result.Warnings = append(result.Warnings, warns...)
	}
	result.IsValid = !result.HasCritical()
	return result
}

// AllRules returns the full rule table in evaluation order.
func AllRules() []Rule {
	return []Rule{
		{Key: "math.line_items_vs_subtotal", Name: "Math: Line Items vs Subtotal", Check: checkLineItemsVsSubtotal},
		{Key: "math.totals", Name: "Math: Subtotal + Tax + Shipping vs Total", Check: checkTotals},
		{Key: "math.line_item_amounts", Name: "Math: Line Item Amounts", Check: checkLineItemAmounts},
		{Key: "dates.invoice_date", Name: "Dates: Invoice Date", Check: checkInvoiceDate},
		{Key: "completeness.required", Name: "Completeness: Required Fields", Check: checkCompleteness},
		{Key: "format.currency_and_signs", Name: "Format: Currency and Signs", Check: checkFormat},
		{Key: "business.ratios", Name: "Business: Amount Ratios", Check: checkBusinessRules},
		{Key: "line_items.shape", Name: "Line Items: Shape", Check: checkLineItemShape},
	}
}

func withinTolerance(actual, expected float64) bool {
	if expected == 0 {
		return actual == 0
	}
	return math.Abs(actual-expected) <= relTolerance*math.Abs(expected)
}

func checkLineItemsVsSubtotal(inv *domain.CanonicalInvoice, _ time.Time) ([]domain.ValidationError, []domain.ValidationWarning) {
	if len(inv.LineItems) == 0 {
		return nil, nil
	}
	var sum float64
	for _, item := range inv.LineItems {
		sum += item.Amount
	}
	if withinTolerance(inv.Subtotal, sum) {
		return nil, nil
	}
	return []domain.ValidationError{{
		Field:        domain.FieldSubtotal,
		Message:      fmt.Sprintf("subtotal %.2f does not match line item sum %.2f", inv.Subtotal, sum),
		Severity:     domain.SeverityMajor,
		SuggestedFix: fmt.Sprintf("Set subtotal to %.2f", sum),
	}}, nil
}

func checkTotals(inv *domain.CanonicalInvoice, _ time.Time) ([]domain.ValidationError, []domain.ValidationWarning) {
	expected := inv.Subtotal + inv.Tax + inv.Shipping
	if expected == 0 || withinTolerance(inv.Total, expected) {
		return nil, nil
	}
	if inv.Total > 0 && inv.Total < inv.Subtotal {
		return nil, nil // reported by the business rule as total < subtotal
	}
	return []domain.ValidationError{{
		Field:        domain.FieldTotal,
		Message:      fmt.Sprintf("total %.2f does not match subtotal + tax + shipping = %.2f", inv.Total, expected),
		Severity:     domain.SeverityMajor,
		SuggestedFix: fmt.Sprintf("Set total to %.2f", expected),
	}}, nil
}

func checkLineItemAmounts(inv *domain.CanonicalInvoice, _ time.Time) ([]domain.ValidationError, []domain.ValidationWarning) {
	var warns []domain.ValidationWarning
	for i, item := range inv.LineItems {
		calculated := item.Quantity * item.UnitPrice
		if calculated <= 0 || withinTolerance(item.Amount, calculated) {
			continue
		}
		warns = append(warns, domain.ValidationWarning{
			Field:            fmt.Sprintf("line_items[%d].amount", i),
			Message:          fmt.Sprintf("amount %.2f does not match qty × unit price = %.2f", item.Amount, calculated),
			ConfidenceImpact: -0.2,
		})
	}
	return nil, warns
}

func checkInvoiceDate(inv *domain.CanonicalInvoice, now time.Time) ([]domain.ValidationError, []domain.ValidationWarning) {
	if inv.InvoiceDate == "" {
		return nil, nil // missing date is a completeness finding
	}
	parsed, err := time.Parse("2006-01-02", inv.InvoiceDate)
	if err != nil {
		return []domain.ValidationError{{
			Field:    domain.FieldInvoiceDate,
			Message:  fmt.Sprintf("date %q is not in YYYY-MM-DD format", inv.InvoiceDate),
			Severity: domain.SeverityMinor,
		}}, nil
	}
	if diff := parsed.Year() - now.Year(); diff > 10 || diff < -10 {
		return nil, []domain.ValidationWarning{{
			Field:            domain.FieldInvoiceDate,
			Message:          fmt.Sprintf("year %d is more than 10 years from today", parsed.Year()),
			ConfidenceImpact: -0.1,
		}}
	}
	return nil, nil
}

func checkCompleteness(inv *domain.CanonicalInvoice, _ time.Time) ([]domain.ValidationError, []domain.ValidationWarning) {
	var errs []domain.ValidationError
	var warns []domain.ValidationWarning
	if inv.Total <= 0 {
		errs = append(errs, domain.ValidationError{
			Field:    domain.FieldTotal,
			Message:  "total amount is missing or not positive",
			Severity: domain.SeverityCritical,
		})
	}
	if inv.VendorName == "" {
		warns = append(warns, domain.ValidationWarning{
			Field:            domain.FieldVendorName,
			Message:          "vendor name is missing",
			ConfidenceImpact: -0.1,
		})
	}
	if inv.InvoiceDate == "" {
		warns = append(warns, domain.ValidationWarning{
			Field:            domain.FieldInvoiceDate,
			Message:          "invoice date is missing",
			ConfidenceImpact: -0.1,
		})
	}
	return errs, warns
}

// knownCurrencies is the accepted ISO-4217 subset; anything else costs a
// small confidence penalty but is not an error.
var knownCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "CAD": true, "AUD": true,
	"INR": true, "JPY": true, "CHF": true, "CNY": true, "MXN": true,
	"SEK": true, "NOK": true, "DKK": true, "SGD": true, "NZD": true,
}

func checkFormat(inv *domain.CanonicalInvoice, _ time.Time) ([]domain.ValidationError, []domain.ValidationWarning) {
	var errs []domain.ValidationError
	var warns []domain.ValidationWarning
	if inv.Currency != "" && !knownCurrencies[inv.Currency] {
		warns = append(warns, domain.ValidationWarning{
			Field:            domain.FieldCurrency,
			Message:          fmt.Sprintf("unrecognized currency code %q", inv.Currency),
			ConfidenceImpact: -0.05,
		})
	}
	amounts := []struct {
		field string
		value float64
	}{
		{domain.FieldSubtotal, inv.Subtotal},
		{domain.FieldTax, inv.Tax},
		{domain.FieldShipping, inv.Shipping},
		{domain.FieldTotal, inv.Total},
	}
	for _, a := range amounts {
		if a.value < 0 {
			errs = append(errs, domain.ValidationError{
				Field:    a.field,
				Message:  fmt.Sprintf("%s is negative (%.2f)", a.field, a.value),
				Severity: domain.SeverityMajor,
			})
		}
	}
	return errs, warns
}

func checkBusinessRules(inv *domain.CanonicalInvoice, _ time.Time) ([]domain.ValidationError, []domain.ValidationWarning) {
	var errs []domain.ValidationError
	var warns []domain.ValidationWarning
	if inv.Subtotal > 0 && inv.Tax > inv.Subtotal {
		warns = append(warns, domain.ValidationWarning{
			Field:            domain.FieldTax,
			Message:          fmt.Sprintf("tax %.2f exceeds subtotal %.2f", inv.Tax, inv.Subtotal),
			ConfidenceImpact: -0.15,
		})
	}
	if inv.Subtotal > 0 && inv.Shipping > 0.5*inv.Subtotal {
		warns = append(warns, domain.ValidationWarning{
			Field:            domain.FieldShipping,
			Message:          fmt.Sprintf("shipping %.2f exceeds half of subtotal %.2f", inv.Shipping, inv.Subtotal),
			ConfidenceImpact: -0.1,
		})
	}
	if inv.Subtotal > 0 && inv.Total > 0 && inv.Total < inv.Subtotal {
		errs = append(errs, domain.ValidationError{
			Field:    domain.FieldTotal,
			Message:  fmt.Sprintf("total %.2f cannot be less than subtotal %.2f", inv.Total, inv.Subtotal),
			Severity: domain.SeverityMajor,
		})
	}
	return errs, warns
}

func checkLineItemShape(inv *domain.CanonicalInvoice, _ time.Time) ([]domain.ValidationError, []domain.ValidationWarning) {
	var errs []domain.ValidationError
	for i, item := range inv.LineItems {
		if item.Description == "" {
			errs = append(errs, domain.ValidationError{
				Field:    fmt.Sprintf("line_items[%d].description", i),
				Message:  "description is empty",
				Severity: domain.SeverityMinor,
			})
		}
		if item.Quantity <= 0 {
			errs = append(errs, domain.ValidationError{
				Field:    fmt.Sprintf("line_items[%d].qty", i),
				Message:  fmt.Sprintf("quantity %.2f is not positive", item.Quantity),
				Severity: domain.SeverityMinor,
			})
		}
		if item.UnitPrice < 0 || item.Amount < 0 {
			errs = append(errs, domain.ValidationError{
				Field:    fmt.Sprintf("line_items[%d].amount", i),
				Message:  "unit price or amount is negative",
				Severity: domain.SeverityMinor,
			})
		}
	}
	return errs, nil
}
