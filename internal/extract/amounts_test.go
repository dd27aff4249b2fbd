package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount_DotLocale(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"$1,234.56", 1234.56},
		{"100.00", 100},
		{"  $99.95  ", 99.95},
		{"USD 42", 42},
		{"1,000,000.01", 1000000.01},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestParseAmount_CommaLocale(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"1.234,56 €", 1234.56},
		{"99,95", 99.95},
		{"1.000.000,01", 1000000.01},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestParseAmount_NoNumber(t *testing.T) {
	for _, raw := range []string{"", "no amount here", "$", "TOTAL"} {
		_, ok := ParseAmount(raw)
		assert.False(t, ok, "raw %q should not parse", raw)
	}
}

func TestCleanAmountString(t *testing.T) {
	got, ok := CleanAmountString("$1,234.5")
	require.True(t, ok)
	assert.Equal(t, "1234.50", got)

	got, ok = CleanAmountString("1.234,56 €")
	require.True(t, ok)
	assert.Equal(t, "1234.56", got)

	_, ok = CleanAmountString("n/a")
	assert.False(t, ok)
}
