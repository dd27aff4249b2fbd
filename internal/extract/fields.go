package extract

import (
	"strings"

	"github.com/agext/levenshtein"

	"invox/internal/domain"
)

// synonym maps one raw label spelling to its canonical field. The list is
// ordered so canonicalization is deterministic.
type synonym struct {
	Label string
	Field string
}

var fieldSynonyms = []synonym{
	{"invoice number", domain.FieldInvoiceNumber},
	{"invoice no", domain.FieldInvoiceNumber},
	{"invoice #", domain.FieldInvoiceNumber},
	{"inv no", domain.FieldInvoiceNumber},
	{"inv number", domain.FieldInvoiceNumber},
	{"bill number", domain.FieldInvoiceNumber},
	{"reference number", domain.FieldInvoiceNumber},
	{"invoice date", domain.FieldInvoiceDate},
	{"bill date", domain.FieldInvoiceDate},
	{"issue date", domain.FieldInvoiceDate},
	{"date of invoice", domain.FieldInvoiceDate},
	{"date", domain.FieldInvoiceDate},
	{"due date", domain.FieldDueDate},
	{"payment due", domain.FieldDueDate},
	{"vendor", domain.FieldVendorName},
	{"vendor name", domain.FieldVendorName},
	{"seller", domain.FieldVendorName},
	{"supplier", domain.FieldVendorName},
	{"sold by", domain.FieldVendorName},
	{"from", domain.FieldVendorName},
	{"company", domain.FieldVendorName},
	{"vendor address", domain.FieldVendorAddress},
	{"address", domain.FieldVendorAddress},
	{"bill to", domain.FieldBillTo},
	{"billed to", domain.FieldBillTo},
	{"billing address", domain.FieldBillTo},
	{"customer", domain.FieldBillTo},
	{"invoice to", domain.FieldBillTo},
	{"ship to", domain.FieldShipTo},
	{"deliver to", domain.FieldShipTo},
	{"shipping address", domain.FieldShipTo},
	{"currency", domain.FieldCurrency},
	{"subtotal", domain.FieldSubtotal},
	{"sub total", domain.FieldSubtotal},
	{"sub-total", domain.FieldSubtotal},
	{"net amount", domain.FieldSubtotal},
	{"tax", domain.FieldTax},
	{"sales tax", domain.FieldTax},
	{"tax amount", domain.FieldTax},
	{"vat", domain.FieldTax},
	{"gst", domain.FieldTax},
	{"shipping", domain.FieldShipping},
	{"shipping & handling", domain.FieldShipping},
	{"freight", domain.FieldShipping},
	{"delivery", domain.FieldShipping},
	{"postage", domain.FieldShipping},
	{"total", domain.FieldTotal},
	{"total due", domain.FieldTotal},
	{"total amount", domain.FieldTotal},
	{"amount due", domain.FieldTotal},
	{"balance due", domain.FieldTotal},
	{"grand total", domain.FieldTotal},
	{"amount payable", domain.FieldTotal},
	{"payment terms", domain.FieldPaymentTerms},
	{"terms", domain.FieldPaymentTerms},
}

const (
	similarityThreshold  = 0.8
	wordOverlapThreshold = 0.6
)

// NormalizeLabel lower-cases a raw label and strips surrounding punctuation
// so repeated canonicalization of the same string is idempotent.
func NormalizeLabel(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	l = strings.Trim(l, ":#.*-_ \t")
	return strings.Join(strings.Fields(l), " ")
}

// CanonicalField maps a raw label to a canonical field name. Resolution
// order: exact dictionary lookup, whole-string similarity >= 0.8, partial
// word overlap >= 0.6, no match. Pure and deterministic: the synonym list
// is scanned in declaration order.
func CanonicalField(label string) (string, bool) {
	norm := NormalizeLabel(label)
	if norm == "" {
		return "", false
	}

	for _, s := range fieldSynonyms {
		if s.Label == norm {
			return s.Field, true
		}
	}

	bestField, bestScore := "", 0.0
	for _, s := range fieldSynonyms {
		if score := levenshtein.Similarity(norm, s.Label, nil); score >= similarityThreshold && score > bestScore {
			bestField, bestScore = s.Field, score
		}
	}
	if bestField != "" {
		return bestField, true
	}

	bestField, bestScore = "", 0.0
	for _, s := range fieldSynonyms {
		if score := wordOverlap(norm, s.Label); score >= wordOverlapThreshold && score > bestScore {
			bestField, bestScore = s.Field, score
		}
	}
	if bestField != "" {
		return bestField, true
	}

	return "", false
}

// wordOverlap scores two labels by shared words over the larger word count.
func wordOverlap(a, b string) float64 {
	aw, bw := strings.Fields(a), strings.Fields(b)
	if len(aw) == 0 || len(bw) == 0 {
		return 0
	}
	set := make(map[string]bool, len(aw))
	for _, w := range aw {
		set[w] = true
	}
	shared := 0
	for _, w := range bw {
		if set[w] {
			shared++
		}
	}
	max := len(aw)
	if len(bw) > max {
		max = len(bw)
	}
	return float64(shared) / float64(max)
}

// SynonymsFor returns the known label spellings for a canonical field, used
// by the fuzzy layer.
func SynonymsFor(field string) []string {
	var labels []string
	for _, s := range fieldSynonyms {
		if s.Field == field {
			labels = append(labels, s.Label)
		}
	}
	return labels
}
