// Package fallback holds the two simpler single-pass parsing strategies
// invoked when the primary candidate extractor fails outright.
package fallback

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"invox/internal/domain"
	"invox/internal/extract"
)

// detMatcher is one first-match-wins rule of the deterministic parser.
type detMatcher struct {
	field      string
	pattern    *regexp.Regexp
	confidence float64
}

// Ordered by field: the first matching pattern per field wins and scanning
// for that field stops. No multi-layer pooling.
var detMatchers = []detMatcher{
	{domain.FieldInvoiceNumber, regexp.MustCompile(`(?im)^.*invoice\s*(?:number|no\.?|#)?\s*[:#]\s*([A-Za-z0-9][A-Za-z0-9\-\/]{2,31})\s*$`), 0.85},
	{domain.FieldInvoiceNumber, regexp.MustCompile(`\b(INV[-\/]?[A-Z0-9][A-Z0-9\-]{1,24})\b`), 0.7},
	{domain.FieldInvoiceDate, regexp.MustCompile(`(?i)(?:invoice\s*)?date\s*[:]\s*(\d{1,4}[\/\-.]\d{1,2}[\/\-.]\d{1,4}|[A-Za-z]{3,9}\.?\s+\d{1,2},?\s+\d{4})`), 0.8},
	{domain.FieldVendorName, regexp.MustCompile(`(?im)^\s*(?:vendor|seller|supplier|from)\s*[:]\s*(.{2,60})\s*$`), 0.8},
	{domain.FieldBillTo, regexp.MustCompile(`(?im)^\s*bill(?:ed)?\s+to\s*[:]?\s*(.{2,80})\s*$`), 0.8},
	{domain.FieldShipTo, regexp.MustCompile(`(?im)^\s*(?:ship|deliver)\s+to\s*[:]?\s*(.{2,80})\s*$`), 0.8},
	{domain.FieldSubtotal, regexp.MustCompile(`(?im)^.*\bsub[\s\-]?total\s*[:]?\s*([$€£]?\s*\d[\d.,]*\s*[$€£]?)\s*$`), 0.8},
	{domain.FieldTax, regexp.MustCompile(`(?im)^.*\b(?:tax|vat|gst)\s*[:]?\s*([$€£]?\s*\d[\d.,]*\s*[$€£]?)\s*$`), 0.75},
	{domain.FieldShipping, regexp.MustCompile(`(?im)^.*\b(?:shipping|freight|delivery)\s*[:]?\s*([$€£]?\s*\d[\d.,]*\s*[$€£]?)\s*$`), 0.75},
	{domain.FieldTotal, regexp.MustCompile(`(?im)^.*\b(?:grand\s+)?total(?:\s+due)?\s*[:]?\s*([$€£]?\s*\d[\d.,]*\s*[$€£]?)\s*$`), 0.8},
	{domain.FieldCurrency, regexp.MustCompile(`\b(USD|EUR|GBP|CAD|AUD|INR|JPY|CHF|MXN)\b`), 0.7},
}

var (
	// US style row: DESC  2  10.00  20.00
	usItemRowRe = regexp.MustCompile(`^(.{3,60}?)\s{2,}(\d{1,5})\s{2,}(\d[\d,]*\.\d{2})\s{2,}(\d[\d,]*\.\d{2})$`)
	// European style row with trailing currency: DESC  2  10,00 €  20,00 €
	euItemRowRe = regexp.MustCompile(`^(.{3,60}?)\s{2,}(\d{1,5})\s{2,}(\d[\d.]*,\d{2})\s*[€$£]?\s{2,}(\d[\d.]*,\d{2})\s*[€$£]?$`)

	subtotalLineRe = regexp.MustCompile(`(?i)\bsub[\s\-]?total\b`)
)

// DeterministicParser is the last cascade step: single-pass,
// first-match-wins extraction that always yields a result.
type DeterministicParser struct{}

// Result is the uniform fallback output shape.
type Result struct {
	Invoice    domain.CanonicalInvoice
	Fields     []domain.FieldConfidence
	Confidence float64
}

// Parse extracts fields with one regex pass per field and scans line-item
// rows for the two supported numeric locales. ocrSimilarity is the
// caller-supplied OCR similarity score; pass 1.0 when not applicable.
func (DeterministicParser) Parse(doc domain.RawDocument, ocrSimilarity float64) *Result {
	text := doc.Text
	if text == "" {
		text = doc.Markup
	}

	won := make(map[string]domain.FieldConfidence)
	for _, m := range detMatchers {
		if _, done := won[m.field]; done {
			continue
		}
		match := m.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value := match[0]
		if len(match) > 1 {
			value = match[1]
		}
		cleaned, ok := extract.CleanValue(m.field, value)
		if !ok {
			continue
		}
		won[m.field] = domain.FieldConfidence{
			Field: m.field, Value: cleaned,
			Confidence: m.confidence, Method: domain.MethodDeterministic,
		}
	}

	fields := make([]domain.FieldConfidence, 0, len(won))
	for _, f := range won {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })

	inv := extract.BuildInvoice(fields, doc.Text)
	inv.LineItems = scanLineItems(text)

	var sum float64
	for _, f := range fields {
		sum += f.Confidence
	}
	var mean float64
	if len(fields) > 0 {
		mean = sum / float64(len(fields))
	}

	return &Result{
		Invoice:    inv,
		Fields:     fields,
		Confidence: 0.8*mean + 0.2*ocrSimilarity,
	}
}

// scanLineItems reads fixed-width item rows, accepting US decimal-dot and
// European decimal-comma-with-currency-suffix layouts. It stops at the
// subtotal line.
func scanLineItems(text string) []domain.LineItem {
	items := []domain.LineItem{}
	for _, line := range strings.Split(text, "\n") {
		t := strings.TrimRight(line, " \t")
		if subtotalLineRe.MatchString(t) {
			break
		}
		m := usItemRowRe.FindStringSubmatch(t)
		if m == nil {
			m = euItemRowRe.FindStringSubmatch(t)
		}
		if m == nil {
			continue
		}
		qty, _ := strconv.ParseFloat(m[2], 64)
		if qty == 0 {
			qty = 1
		}
		unit, ok1 := extract.ParseAmount(m[3])
		amount, ok2 := extract.ParseAmount(m[4])
		if !ok1 || !ok2 {
			continue
		}
		items = append(items, domain.LineItem{
			LineNumber:  len(items) + 1,
			Description: strings.TrimSpace(m[1]),
			Quantity:    qty,
			UnitPrice:   unit,
			Amount:      amount,
		})
	}
	return items
}
