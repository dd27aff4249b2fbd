package extract

import (
	"encoding/json"
	"log"

	"invox/internal/domain"
)

// BuildInvoice assembles the canonical invoice from the winning field
// values. Numeric fields parse or default to 0, currency defaults to
// "USD", and line items come from a single aggregated JSON-encoded
// candidate or default to an empty sequence.
func BuildInvoice(fields []domain.FieldConfidence, rawText string) domain.CanonicalInvoice {
	byField := make(map[string]string, len(fields))
	for _, f := range fields {
		byField[f.Field] = f.Value
	}

	inv := domain.CanonicalInvoice{
		InvoiceNumber: byField[domain.FieldInvoiceNumber],
		InvoiceDate:   byField[domain.FieldInvoiceDate],
		VendorName:    byField[domain.FieldVendorName],
		VendorAddress: byField[domain.FieldVendorAddress],
		BillTo:        byField[domain.FieldBillTo],
		ShipTo:        byField[domain.FieldShipTo],
		Currency:      "USD",
		Subtotal:      amountOrZero(byField[domain.FieldSubtotal]),
		Tax:           amountOrZero(byField[domain.FieldTax]),
		Shipping:      amountOrZero(byField[domain.FieldShipping]),
		Total:         amountOrZero(byField[domain.FieldTotal]),
		LineItems:     []domain.LineItem{},
		RawText:       rawText,
	}
	if c := byField[domain.FieldCurrency]; c != "" {
		inv.Currency = c
	}

	if encoded := byField[domain.FieldLineItems]; encoded != "" {
		var items []domain.LineItem
		if err := json.Unmarshal([]byte(encoded), &items); err != nil {
			log.Printf("extract.BuildInvoice: discarding unparseable line items: %v", err)
		} else {
			inv.LineItems = normalizeLineItems(items)
		}
	}
	return inv
}

// normalizeLineItems enforces the line-item invariants: 1-based sequential
// line numbers and a default quantity of 1.
func normalizeLineItems(items []domain.LineItem) []domain.LineItem {
	for i := range items {
		items[i].LineNumber = i + 1
		if items[i].Quantity == 0 {
			items[i].Quantity = 1
		}
	}
	return items
}

func amountOrZero(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, ok := ParseAmount(raw)
	if !ok {
		return 0
	}
	return v
}
