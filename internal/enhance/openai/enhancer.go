package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"invox/internal/config"
	"invox/internal/domain"
	"invox/internal/enhance"
	"invox/internal/port"
)

const (
	apiURL = "https://api.openai.com/v1/chat/completions"
)

// Enhancer implements port.Enhancer using the OpenAI Chat Completions API.
type Enhancer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewEnhancer creates an OpenAI-based enhancer from a provider config.
func NewEnhancer(cfg *config.EnhancerProviderConfig) *Enhancer {
	return newEnhancer(cfg, apiURL)
}

// NewEnhancerWithEndpoint creates an enhancer pointing at a custom API endpoint (for testing).
func NewEnhancerWithEndpoint(cfg *config.EnhancerProviderConfig, endpoint string) *Enhancer {
	return newEnhancer(cfg, endpoint)
}

func newEnhancer(cfg *config.EnhancerProviderConfig, endpoint string) *Enhancer {
	model := cfg.DefaultModel
	if model == "" {
		model = "gpt-4o"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Enhancer{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (e *Enhancer) Enhance(ctx context.Context, input port.EnhanceInput) (*domain.EnhancementResult, error) {
	prompt := enhance.BuildEnhancementPrompt(input.RawText, &input.Invoice, input.Confidence)

	reqBody := map[string]interface{}{
		"model":                 e.model,
		"max_completion_tokens": 16384,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := enhance.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, enhance.NewRateLimitError("openai", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody)
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte) (*domain.EnhancementResult, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}

	if resp.Choices[0].FinishReason == "length" {
		return nil, fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}

	return enhance.DecodeEnhancementResponse(resp.Choices[0].Message.Content)
}
