package fallback

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"invox/internal/docstruct"
	"invox/internal/domain"
	"invox/internal/extract"
)

var (
	boldRe        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldNumericRe = regexp.MustCompile(`\*\*\s*[$€£]?\s*(\d[\d.,]*)\s*[$€£]?\s*\*\*`)
)

// MarkupParser is the middle cascade step: it reads structured markup only
// and leans on layout cues (tables, bold runs, headings) that the raw text
// lost.
type MarkupParser struct{}

// Parse extracts from the markup rendering of the page. It fails when the
// document has no markup, or when the markup yields no critical field, so
// the cascade can continue to the deterministic parser.
func (MarkupParser) Parse(doc domain.RawDocument) (*Result, error) {
	if strings.TrimSpace(doc.Markup) == "" {
		return nil, domain.ErrNoMarkup
	}
	// The markup is the only rendering this parser reads, so it feeds both
	// the line-oriented and the markup-oriented analyzer passes.
	s := docstruct.Analyze(doc.Markup, doc.Markup)

	won := make(map[string]domain.FieldConfidence)
	claim := func(field, raw string, conf float64) {
		if _, done := won[field]; done {
			return
		}
		cleaned, ok := extract.CleanValue(field, raw)
		if !ok {
			return
		}
		won[field] = domain.FieldConfidence{
			Field: field, Value: cleaned,
			Confidence: conf, Method: domain.MethodMarkupFallback,
		}
	}

	// Two-cell delimited rows are label/value pairs, whether or not they
	// belong to a full table.
	for _, line := range s.MarkupLines {
		cells, ok := docstruct.SplitTableRow(line)
		if !ok || len(cells) != 2 {
			continue
		}
		field, ok := extract.CanonicalField(cells[0])
		if !ok {
			continue
		}
		claim(field, cells[1], 0.85)
	}

	// Colon pairs in the markup text.
	for _, region := range s.KeyValueRegions {
		for _, pair := range region.Pairs {
			field, ok := extract.CanonicalField(pair.Key)
			if !ok {
				continue
			}
			claim(field, pair.Value, 0.8)
		}
	}

	// Invoices put the vendor in the first bold run; failing that, the
	// first heading.
	if _, done := won[domain.FieldVendorName]; !done {
		if m := boldRe.FindStringSubmatch(doc.Markup); m != nil && !looksNumeric(m[1]) {
			claim(domain.FieldVendorName, m[1], 0.7)
		}
	}
	if _, done := won[domain.FieldVendorName]; !done && len(s.Headers) > 0 {
		claim(domain.FieldVendorName, s.Headers[0].Text, 0.6)
	}

	// The last bold numeric token is the total.
	if _, done := won[domain.FieldTotal]; !done {
		if all := boldNumericRe.FindAllStringSubmatch(doc.Markup, -1); len(all) > 0 {
			claim(domain.FieldTotal, all[len(all)-1][1], 0.7)
		}
	}

	// Address blocks from the section structure.
	for _, sec := range s.Sections {
		field := ""
		switch sec.Name {
		case "bill to", "billed to":
			field = domain.FieldBillTo
		case "ship to", "deliver to":
			field = domain.FieldShipTo
		}
		if field == "" {
			continue
		}
		if block := sectionBody(sec); block != "" {
			claim(field, block, 0.7)
		}
	}

	anyCritical := false
	for _, crit := range domain.CriticalFields {
		if _, ok := won[crit]; ok {
			anyCritical = true
		}
	}
	if !anyCritical {
		return nil, fmt.Errorf("fallback.MarkupParser: no critical fields in markup: %w", domain.ErrNoCandidates)
	}

	fields := make([]domain.FieldConfidence, 0, len(won))
	for _, f := range won {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })

	inv := extract.BuildInvoice(fields, doc.Text)
	inv.LineItems = itemsFromTables(s.Tables)

	var sum float64
	for _, f := range fields {
		sum += f.Confidence
	}
	return &Result{
		Invoice:    inv,
		Fields:     fields,
		Confidence: sum / float64(len(fields)),
	}, nil
}

// sectionBody joins the lines after the section's anchor line, stripping
// markup emphasis.
func sectionBody(sec docstruct.Section) string {
	var parts []string
	for i, line := range sec.Lines {
		if i == 0 {
			// Keep anything after the anchor label on the same line.
			if _, v, ok := docstruct.SplitColonPair(line); ok && v != "" {
				parts = append(parts, v)
			}
			continue
		}
		t := strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
		if t == "" {
			break
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, ", ")
}

// itemsFromTables reads line items out of the widest markup table with
// numeric trailing columns.
func itemsFromTables(tables []docstruct.Table) []domain.LineItem {
	items := []domain.LineItem{}
	for _, table := range tables {
		if len(table.Header) < 3 {
			continue
		}
		for _, row := range table.Rows {
			if len(row) < 3 {
				continue
			}
			amount, ok := extract.ParseAmount(row[len(row)-1])
			if !ok {
				continue
			}
			unit, ok := extract.ParseAmount(row[len(row)-2])
			if !ok {
				continue
			}
			item := domain.LineItem{
				LineNumber:  len(items) + 1,
				Description: row[0],
				Quantity:    1,
				UnitPrice:   unit,
				Amount:      amount,
			}
			if len(row) >= 4 {
				if qty, ok := extract.ParseAmount(row[1]); ok && qty > 0 {
					item.Quantity = qty
				}
			}
			items = append(items, item)
		}
		if len(items) > 0 {
			break
		}
	}
	return items
}

func looksNumeric(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits > len(s)/2
}
