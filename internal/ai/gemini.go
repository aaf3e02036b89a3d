package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"voyago/internal/provider"
)

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	retry   provider.RetryPolicy
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string, timeout time.Duration, retry provider.RetryPolicy) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Use Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Set a reasonable temperature for creative but structured output.
	model.SetTemperature(0.4)

	return &GeminiProvider{
		client:  client,
		model:   model,
		timeout: timeout,
		retry:   retry,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// GenerateJSON calls the model and returns the raw JSON of its reply.
// Transient failures are retried per the provider's policy; each attempt
// carries its own timeout.
func (p *GeminiProvider) GenerateJSON(ctx context.Context, prompt string) ([]byte, error) {
	var out []byte
	err := provider.Do(ctx, p.retry, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()

		resp, err := p.model.GenerateContent(callCtx, genai.Text(prompt))
		if err != nil {
			return classifyGeminiError(err)
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return provider.E(provider.KindMalformedResponse, "gemini.generate",
				errors.New("no response candidates"))
		}

		var responseText strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				responseText.WriteString(string(txt))
			}
		}

		// Clean up potential markdown formatting (though json mode should handle this, safety first).
		clean := cleanJSONString(responseText.String())
		if clean == "" {
			return provider.E(provider.KindMalformedResponse, "gemini.generate",
				errors.New("empty response text"))
		}
		out = []byte(clean)
		return nil
	})
	return out, err
}

// classifyGeminiError maps transport and API errors into the shared taxonomy.
func classifyGeminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return provider.E(provider.KindRateLimited, "gemini.generate", err)
		case apiErr.Code >= 400 && apiErr.Code < 500:
			return provider.E(provider.KindInvalidRequest, "gemini.generate", err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return provider.E(provider.KindUnavailable, "gemini.generate", err)
	}
	return provider.E(provider.KindUnavailable, "gemini.generate", err)
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
