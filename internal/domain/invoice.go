package domain

// RawDocument is the immutable input to one pipeline invocation: plain OCR
// text plus optional structured markup of the same source page.
type RawDocument struct {
	Text   string `json:"text"`
	Markup string `json:"markup,omitempty"`
}

// Empty reports whether the document carries neither text nor markup.
func (d RawDocument) Empty() bool {
	return d.Text == "" && d.Markup == ""
}

// LineItem is a single invoice line. LineNumber is 1-based and sequential
// within an invoice; Quantity defaults to 1.
type LineItem struct {
	LineNumber  int     `json:"line_number"`
	SKU         *string `json:"sku"`
	Description string  `json:"description"`
	Quantity    float64 `json:"qty"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
	Tax         float64 `json:"tax"`
}

// CanonicalInvoice is the normalized structured record the pipeline
// produces. Numeric fields are never negative by construction (value
// cleaning strips non-numeric leading characters); consumers still treat a
// negative value as a validation error rather than a parser crash.
type CanonicalInvoice struct {
	InvoiceNumber string     `json:"invoice_number"`
	InvoiceDate   string     `json:"invoice_date"`
	VendorName    string     `json:"vendor_name"`
	VendorAddress string     `json:"vendor_address"`
	BillTo        string     `json:"bill_to"`
	ShipTo        string     `json:"ship_to"`
	Currency      string     `json:"currency"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	Shipping      float64    `json:"shipping"`
	Total         float64    `json:"total"`
	LineItems     []LineItem `json:"line_items"`
	RawText       string     `json:"raw_text,omitempty"`
}
