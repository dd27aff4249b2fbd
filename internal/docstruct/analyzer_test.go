package docstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analyzerText = `ACME SUPPLIES INC
Invoice Number: INV-55
Invoice Date: 2024-02-01

Bill To:
John Smith

Items
Widget A  2  10.00  20.00

Total: 20.00`

const analyzerMarkup = `# Acme Supplies

| Description | Qty | Amount |
| --- | --- | --- |
| Widget A | 2 | 20.00 |`

func TestAnalyze_Headers(t *testing.T) {
	s := Analyze(analyzerText, analyzerMarkup)

	var texts []string
	for _, h := range s.Headers {
		texts = append(texts, h.Text)
	}
	assert.Contains(t, texts, "ACME SUPPLIES INC")
	assert.Contains(t, texts, "Acme Supplies")
}

func TestAnalyze_Tables(t *testing.T) {
	s := Analyze("", analyzerMarkup)

	require.Len(t, s.Tables, 1)
	table := s.Tables[0]
	assert.Equal(t, []string{"Description", "Qty", "Amount"}, table.Header)
	require.Len(t, table.Rows, 1, "the separator row is not data")
	assert.Equal(t, []string{"Widget A", "2", "20.00"}, table.Rows[0])
}

func TestAnalyze_Sections(t *testing.T) {
	s := Analyze(analyzerText, "")

	var names []string
	for _, sec := range s.Sections {
		names = append(names, sec.Name)
	}
	assert.Contains(t, names, "bill to")
	assert.Contains(t, names, "items")
	assert.Contains(t, names, "total")
}

func TestAnalyze_KeyValueRegions(t *testing.T) {
	s := Analyze(analyzerText, "")

	require.NotEmpty(t, s.KeyValueRegions)
	first := s.KeyValueRegions[0]
	require.Len(t, first.Pairs, 2)
	assert.Equal(t, "Invoice Number", first.Pairs[0].Key)
	assert.Equal(t, "INV-55", first.Pairs[0].Value)
	assert.Equal(t, "Invoice Date", first.Pairs[1].Key)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	s := Analyze("", "")
	assert.Empty(t, s.Lines)
	assert.Empty(t, s.Tables)
	assert.Empty(t, s.Headers)
}

func TestSplitColonPair(t *testing.T) {
	k, v, ok := SplitColonPair("Total: 20.00")
	require.True(t, ok)
	assert.Equal(t, "Total", k)
	assert.Equal(t, "20.00", v)

	_, _, ok = SplitColonPair("no pair here")
	assert.False(t, ok)

	_, _, ok = SplitColonPair(": leading colon")
	assert.False(t, ok)
}

func TestSplitTableRow(t *testing.T) {
	cells, ok := SplitTableRow("| a | b | c |")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, cells)

	_, ok = SplitTableRow("no pipes")
	assert.False(t, ok)
}
