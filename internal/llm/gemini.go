package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider calls the Gemini API. It sits first in the chain: fast,
// cheap, and rate-limited enough that transient failures are common, so it
// retries with linear backoff before giving up.
type GeminiProvider struct {
	client     *genai.Client
	model      string
	maxRetries int
	retryWait  time.Duration
}

// NewGeminiProvider builds a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{
		client:     client,
		model:      model,
		maxRetries: 3,
		retryWait:  2 * time.Second,
	}, nil
}

func (g *GeminiProvider) Name() string { return "gemini" }

// Generate calls the model, retrying transient failures up to maxRetries
// times with linearly growing waits. Non-transient errors abort immediately
// so the chain can move to the next provider.
func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.Temperature > 0 {
		t := float32(opts.Temperature)
		cfg.Temperature = &t
	}

	return retryTransient(ctx, g.maxRetries, g.retryWait, func() (string, error) {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err != nil {
			return "", err
		}
		if resp == nil {
			return "", fmt.Errorf("empty response")
		}
		return resp.Text(), nil
	})
}

// retryTransient runs call up to maxRetries times with linearly growing waits
// between attempts. Non-transient errors abort immediately, and the final
// failure returns without waiting so the chain can move on.
func retryTransient(ctx context.Context, maxRetries int, wait time.Duration, call func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		text, err := call()
		if err == nil {
			return text, nil
		}

		lastErr = err
		if !isTransient(err) {
			return "", fmt.Errorf("gemini: %w", err)
		}
		if attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt) * wait):
		}
	}
	return "", fmt.Errorf("gemini: %d attempts failed: %w", maxRetries, lastErr)
}
