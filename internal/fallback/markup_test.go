package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invox/internal/domain"
)

const sampleMarkup = `# Invoice

| Invoice Number | INV-2024-7 |
| Invoice Date | 2024-01-15 |

**Acme Corporation**

Bill To:
John Smith
123 Main St

| Description | Qty | Unit Price | Amount |
| Widget A | 2 | 10.00 | 20.00 |
| Widget B | 1 | 15.00 | 15.00 |

**$35.00**`

func TestMarkupParse_NoMarkup(t *testing.T) {
	var p MarkupParser
	_, err := p.Parse(domain.RawDocument{Text: "plain text only"})
	assert.ErrorIs(t, err, domain.ErrNoMarkup)
}

func TestMarkupParse_Fields(t *testing.T) {
	var p MarkupParser
	result, err := p.Parse(domain.RawDocument{Markup: sampleMarkup})
	require.NoError(t, err)

	assert.Equal(t, "INV-2024-7", result.Invoice.InvoiceNumber)
	assert.Equal(t, "2024-01-15", result.Invoice.InvoiceDate)
	assert.Equal(t, "Acme Corporation", result.Invoice.VendorName)
	assert.Equal(t, "John Smith, 123 Main St", result.Invoice.BillTo)
	assert.InDelta(t, 35.0, result.Invoice.Total, 0.001)
}

func TestMarkupParse_LineItemsFromTable(t *testing.T) {
	var p MarkupParser
	result, err := p.Parse(domain.RawDocument{Markup: sampleMarkup})
	require.NoError(t, err)

	require.Len(t, result.Invoice.LineItems, 2)
	assert.Equal(t, "Widget A", result.Invoice.LineItems[0].Description)
	assert.InDelta(t, 2.0, result.Invoice.LineItems[0].Quantity, 0.001)
	assert.InDelta(t, 20.0, result.Invoice.LineItems[0].Amount, 0.001)
}

func TestMarkupParse_MethodAndConfidence(t *testing.T) {
	var p MarkupParser
	result, err := p.Parse(domain.RawDocument{Markup: sampleMarkup})
	require.NoError(t, err)

	require.NotEmpty(t, result.Fields)
	var sum float64
	for _, f := range result.Fields {
		assert.Equal(t, domain.MethodMarkupFallback, f.Method)
		sum += f.Confidence
	}
	assert.InDelta(t, sum/float64(len(result.Fields)), result.Confidence, 0.0001)
}

func TestMarkupParse_HeadingVendorFallback(t *testing.T) {
	markup := `# Northwind Traders

| Total | 42.00 |`
	var p MarkupParser
	result, err := p.Parse(domain.RawDocument{Markup: markup})
	require.NoError(t, err)
	assert.Equal(t, "Northwind Traders", result.Invoice.VendorName)
	assert.InDelta(t, 42.0, result.Invoice.Total, 0.001)
}

func TestMarkupParse_NoCriticalFields(t *testing.T) {
	var p MarkupParser
	_, err := p.Parse(domain.RawDocument{Markup: "just some prose\nwith nothing structured"})
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
}
