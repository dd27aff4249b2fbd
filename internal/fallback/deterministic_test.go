package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invox/internal/domain"
)

const detSampleText = `Invoice Number: INV-100
Vendor: Acme Supplies
Date: 2024-03-05
Widget A        2    10.00    20.00
Widget B        1    10.00    10.00
Subtotal: $30.00
Tax: $3.00
Total: $33.00`

func TestDeterministicParse_Fields(t *testing.T) {
	var p DeterministicParser
	result := p.Parse(domain.RawDocument{Text: detSampleText}, 1.0)

	assert.Equal(t, "INV-100", result.Invoice.InvoiceNumber)
	assert.Equal(t, "Acme Supplies", result.Invoice.VendorName)
	assert.Equal(t, "2024-03-05", result.Invoice.InvoiceDate)
	assert.InDelta(t, 30.0, result.Invoice.Subtotal, 0.001)
	assert.InDelta(t, 3.0, result.Invoice.Tax, 0.001)
	assert.InDelta(t, 33.0, result.Invoice.Total, 0.001)
}

func TestDeterministicParse_LineItems(t *testing.T) {
	var p DeterministicParser
	result := p.Parse(domain.RawDocument{Text: detSampleText}, 1.0)

	require.Len(t, result.Invoice.LineItems, 2)
	first := result.Invoice.LineItems[0]
	assert.Equal(t, 1, first.LineNumber)
	assert.Equal(t, "Widget A", first.Description)
	assert.InDelta(t, 2.0, first.Quantity, 0.001)
	assert.InDelta(t, 10.0, first.UnitPrice, 0.001)
	assert.InDelta(t, 20.0, first.Amount, 0.001)
}

func TestDeterministicParse_EuropeanLineItems(t *testing.T) {
	text := `Rechnung: R-2024-9
Teil A        3    1.000,00 €    3.000,00 €
Subtotal: 3.000,00 €`
	var p DeterministicParser
	result := p.Parse(domain.RawDocument{Text: text}, 1.0)

	require.Len(t, result.Invoice.LineItems, 1)
	assert.InDelta(t, 1000.0, result.Invoice.LineItems[0].UnitPrice, 0.001)
	assert.InDelta(t, 3000.0, result.Invoice.LineItems[0].Amount, 0.001)
}

func TestDeterministicParse_ConfidenceFormula(t *testing.T) {
	var p DeterministicParser
	result := p.Parse(domain.RawDocument{Text: detSampleText}, 1.0)

	var sum float64
	for _, f := range result.Fields {
		sum += f.Confidence
	}
	mean := sum / float64(len(result.Fields))
	assert.InDelta(t, 0.8*mean+0.2, result.Confidence, 0.0001)

	// a lower OCR similarity score lowers the blended confidence
	lower := p.Parse(domain.RawDocument{Text: detSampleText}, 0.5)
	assert.InDelta(t, 0.8*mean+0.2*0.5, lower.Confidence, 0.0001)
}

func TestDeterministicParse_AlwaysYields(t *testing.T) {
	var p DeterministicParser
	result := p.Parse(domain.RawDocument{Text: "nothing recognizable at all"}, 1.0)
	require.NotNil(t, result)
	assert.Empty(t, result.Fields)
	assert.InDelta(t, 0.2, result.Confidence, 0.0001)
	for _, f := range result.Fields {
		assert.Equal(t, domain.MethodDeterministic, f.Method)
	}
}
