package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invox/internal/config"
	"invox/internal/domain"
	"invox/internal/enhance"
	"invox/internal/port"
)

func testConfig() *config.EnhancerProviderConfig {
	return &config.EnhancerProviderConfig{
		Provider: "openai",
		APIKey:   "test-key",
	}
}

func chatResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]interface{}{"content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestEnhance_Success(t *testing.T) {
	payload := domain.EnhancementResult{
		Invoice:      domain.CanonicalInvoice{InvoiceNumber: "INV-9", VendorName: "Acme", Total: 110, Currency: "USD"},
		Confidence:   0.9,
		Improvements: []string{"corrected total"},
	}
	encoded, err := json.Marshal(payload)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(chatResponse(string(encoded)))
	}))
	defer srv.Close()

	e := NewEnhancerWithEndpoint(testConfig(), srv.URL)
	result, err := e.Enhance(context.Background(), port.EnhanceInput{RawText: "Total: 110", Confidence: 0.6})
	require.NoError(t, err)

	assert.Equal(t, "INV-9", result.Invoice.InvoiceNumber)
	assert.InDelta(t, 0.9, result.Confidence, 0.0001)
	assert.Equal(t, []string{"corrected total"}, result.Improvements)
}

func TestEnhance_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	e := NewEnhancerWithEndpoint(testConfig(), srv.URL)
	_, err := e.Enhance(context.Background(), port.EnhanceInput{RawText: "x"})
	require.Error(t, err)

	var rateErr *enhance.RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, "openai", rateErr.Provider)
	assert.Equal(t, float64(30), rateErr.RetryAfter.Seconds())
}

func TestEnhance_UnparseableContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(chatResponse("not json at all"))
	}))
	defer srv.Close()

	e := NewEnhancerWithEndpoint(testConfig(), srv.URL)
	_, err := e.Enhance(context.Background(), port.EnhanceInput{RawText: "x"})
	assert.Error(t, err)
}

func TestEnhance_Truncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"message":       map[string]interface{}{"content": "{"},
					"finish_reason": "length",
				},
			},
		})
	}))
	defer srv.Close()

	e := NewEnhancerWithEndpoint(testConfig(), srv.URL)
	_, err := e.Enhance(context.Background(), port.EnhanceInput{RawText: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}
