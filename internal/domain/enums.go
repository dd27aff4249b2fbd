package domain

// Severity classifies a detected data inconsistency.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// ExtractionMethod identifies which strategy produced a candidate.
type ExtractionMethod string

const (
	MethodPattern        ExtractionMethod = "pattern"
	MethodMarkupTable    ExtractionMethod = "markup_table"
	MethodSpatial        ExtractionMethod = "spatial"
	MethodTemplate       ExtractionMethod = "template"
	MethodFuzzy          ExtractionMethod = "fuzzy"
	MethodDeterministic  ExtractionMethod = "deterministic_fallback"
	MethodMarkupFallback ExtractionMethod = "markup_fallback"
)

// Canonical field names used across all extraction layers.
const (
	FieldInvoiceNumber = "invoice_number"
	FieldInvoiceDate   = "invoice_date"
	FieldDueDate       = "due_date"
	FieldVendorName    = "vendor_name"
	FieldVendorAddress = "vendor_address"
	FieldBillTo        = "bill_to"
	FieldShipTo        = "ship_to"
	FieldCurrency      = "currency"
	FieldSubtotal      = "subtotal"
	FieldTax           = "tax_amount"
	FieldShipping      = "shipping"
	FieldTotal         = "total_amount"
	FieldLineItems     = "line_items"
	FieldPaymentTerms  = "payment_terms"
)

// CriticalFields are the fields that dominate the overall confidence score
// and gate the extraction-failure cascade.
var CriticalFields = []string{FieldInvoiceNumber, FieldVendorName, FieldTotal}

// MoneyFields are cleaned through the locale amount parsers.
var MoneyFields = map[string]bool{
	FieldSubtotal: true,
	FieldTax:      true,
	FieldShipping: true,
	FieldTotal:    true,
}

// DateFields are normalized to ISO (year-month-day) form.
var DateFields = map[string]bool{
	FieldInvoiceDate: true,
	FieldDueDate:     true,
}
