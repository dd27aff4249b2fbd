package extract

import (
	"regexp"
	"strings"
	"unicode"

	"invox/internal/domain"
)

// Matcher is one declarative extraction rule: a pattern with a base
// confidence, a context tag, an optional first-N-lines restriction, and an
// optional exclusion pattern for known false positives. New document
// layouts are supported by adding matchers, not code.
type Matcher struct {
	Field      string
	Pattern    *regexp.Regexp
	Confidence float64
	Context    string
	FirstLines int            // 0 means search the whole document
	Exclude    *regexp.Regexp // rejects captured values, e.g. the literal "TOTAL"
	Global     bool           // apply repeatedly across the document
}

// amount and date sub-expressions shared by the matcher table.
const (
	amountExpr = `([$€£]?\s*\d[\d.,]*\s*[$€£]?)`
	dateExpr   = `(\d{1,4}[\/\-.]\d{1,2}[\/\-.]\d{1,4}|[A-Za-z]{3,9}\.?\s+\d{1,2},?\s+\d{4}|\d{1,2}\s+[A-Za-z]{3,9},?\s+\d{4})`
)

var literalTotalRe = regexp.MustCompile(`(?i)^(?:sub)?total$`)

// DefaultMatchers returns the ordered per-field matcher table for the
// pattern layer.
func DefaultMatchers() []Matcher {
	return []Matcher{
		// invoice_number
		{
			Field:      domain.FieldInvoiceNumber,
			Pattern:    regexp.MustCompile(`(?im)^.*invoice\s*(?:number|no\.?|#)\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9\-\/]{1,31})\s*$`),
			Confidence: 0.9, Context: "labeled",
		},
		{
			Field:      domain.FieldInvoiceNumber,
			Pattern:    regexp.MustCompile(`(?im)^.*\binvoice\s*[:#]\s*([A-Za-z0-9][A-Za-z0-9\-\/]{1,31})\s*$`),
			Confidence: 0.85, Context: "labeled",
		},
		{
			Field:      domain.FieldInvoiceNumber,
			Pattern:    regexp.MustCompile(`\b(INV[-\/]?[A-Z0-9][A-Z0-9\-]{1,24})\b`),
			Confidence: 0.75, Context: "prefix", Global: true,
		},
		{
			Field:      domain.FieldInvoiceNumber,
			Pattern:    regexp.MustCompile(`\b([A-Z]{2,4}-\d{3,10})\b`),
			Confidence: 0.6, Context: "generic_code", Global: true,
			Exclude: literalTotalRe,
		},
		// invoice_date
		{
			Field:      domain.FieldInvoiceDate,
			Pattern:    regexp.MustCompile(`(?i)invoice\s*date\s*[:#]?\s*` + dateExpr),
			Confidence: 0.9, Context: "labeled",
		},
		{
			Field:      domain.FieldInvoiceDate,
			Pattern:    regexp.MustCompile(`(?i)\b(?:date|dated)\s*[:]\s*` + dateExpr),
			Confidence: 0.8, Context: "labeled",
		},
		{
			Field:      domain.FieldInvoiceDate,
			Pattern:    regexp.MustCompile(dateExpr),
			Confidence: 0.5, Context: "bare_date", FirstLines: 10,
		},
		// due_date
		{
			Field:      domain.FieldDueDate,
			Pattern:    regexp.MustCompile(`(?i)(?:due\s*date|payment\s*due)\s*[:#]?\s*` + dateExpr),
			Confidence: 0.85, Context: "labeled",
		},
		// vendor_name
		{
			Field:      domain.FieldVendorName,
			Pattern:    regexp.MustCompile(`(?im)^\s*(?:vendor|seller|supplier|sold\s+by|from)\s*[:]\s*(.{2,60})\s*$`),
			Confidence: 0.85, Context: "labeled",
		},
		{
			Field:      domain.FieldVendorName,
			Pattern:    regexp.MustCompile(`(?m)^([A-Z][A-Za-z0-9&.,'\- ]{2,48}(?:Inc|LLC|Ltd|Corp|Co|GmbH)\.?)\s*$`),
			Confidence: 0.7, Context: "company_suffix", FirstLines: 8,
		},
		// addresses
		{
			Field:      domain.FieldBillTo,
			Pattern:    regexp.MustCompile(`(?im)^\s*bill(?:ed)?\s+to\s*[:]?\s*(.{2,80})\s*$`),
			Confidence: 0.85, Context: "labeled",
		},
		{
			Field:      domain.FieldShipTo,
			Pattern:    regexp.MustCompile(`(?im)^\s*(?:ship|deliver)\s+to\s*[:]?\s*(.{2,80})\s*$`),
			Confidence: 0.85, Context: "labeled",
		},
		// money fields
		{
			Field:      domain.FieldSubtotal,
			Pattern:    regexp.MustCompile(`(?im)^.*\bsub[\s\-]?total\s*[:]?\s*` + amountExpr + `\s*$`),
			Confidence: 0.9, Context: "labeled",
		},
		{
			Field:      domain.FieldTax,
			Pattern:    regexp.MustCompile(`(?im)^.*\b(?:sales\s+tax|tax|vat|gst)\s*(?:\(\s*\d+(?:\.\d+)?\s*%\s*\))?\s*[:]?\s*` + amountExpr + `\s*$`),
			Confidence: 0.85, Context: "labeled",
		},
		{
			Field:      domain.FieldShipping,
			Pattern:    regexp.MustCompile(`(?im)^.*\b(?:shipping|freight|delivery|postage)(?:\s*&\s*handling)?\s*[:]?\s*` + amountExpr + `\s*$`),
			Confidence: 0.85, Context: "labeled",
		},
		{
			Field:      domain.FieldTotal,
			Pattern:    regexp.MustCompile(`(?im)^.*\b(?:grand\s+)?total(?:\s+(?:due|amount))?\s*[:]?\s*` + amountExpr + `\s*$`),
			Confidence: 0.9, Context: "labeled",
			Exclude: regexp.MustCompile(`(?i)sub[\s\-]?total`),
		},
		{
			Field:      domain.FieldTotal,
			Pattern:    regexp.MustCompile(`(?im)^.*\b(?:amount|balance)\s+due\s*[:]?\s*` + amountExpr + `\s*$`),
			Confidence: 0.85, Context: "labeled",
		},
		// currency
		{
			Field:      domain.FieldCurrency,
			Pattern:    regexp.MustCompile(`\b(USD|EUR|GBP|CAD|AUD|INR|JPY|CHF|MXN|CNY|SGD)\b`),
			Confidence: 0.8, Context: "code", Global: true,
		},
		// payment terms
		{
			Field:      domain.FieldPaymentTerms,
			Pattern:    regexp.MustCompile(`(?im)^\s*(?:payment\s+)?terms\s*[:]\s*(.{2,60})\s*$`),
			Confidence: 0.8, Context: "labeled",
		},
	}
}

// ValidValue applies the per-field validity predicate that rejects
// implausible captures before they become candidates.
func ValidValue(field, value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}
	switch field {
	case domain.FieldInvoiceNumber:
		return len(v) >= 3 && hasAlnum(v)
	case domain.FieldInvoiceDate, domain.FieldDueDate:
		return hasDigit(v)
	case domain.FieldSubtotal, domain.FieldTax, domain.FieldShipping, domain.FieldTotal:
		return hasDigit(v)
	case domain.FieldCurrency:
		return len(v) == 3
	default:
		return len(v) >= 2
	}
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// CleanValue normalizes a captured value per field class: money fields are
// reduced to a plain decimal string, dates to ISO form, everything else is
// whitespace-trimmed. It reports false when cleaning invalidates the value.
func CleanValue(field, raw string) (string, bool) {
	switch {
	case domain.MoneyFields[field]:
		return CleanAmountString(raw)
	case domain.DateFields[field]:
		return NormalizeDate(raw)
	default:
		v := strings.Join(strings.Fields(raw), " ")
		return v, v != ""
	}
}
