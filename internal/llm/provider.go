// Package llm holds the text-generation providers and the ordered chain that
// tries them. Providers are interchangeable behind a single Generate call;
// availability, not quality, decides which one answers.
package llm

import (
	"context"
	"strings"
)

// GenerateOptions carries per-call generation parameters. Zero values mean
// provider defaults.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
}

// Provider is a single text-generation backend. Implementations return the
// raw generated text; the chain treats empty output as a miss.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// transientMarkers are error-message fragments that indicate a failure worth
// retrying: rate limits, server-side errors and dropped connections. Auth and
// bad-request failures are absent on purpose, retrying those wastes quota.
var transientMarkers = []string{
	"429",
	"500",
	"502",
	"503",
	"rate limit",
	"too many requests",
	"timeout",
	"deadline exceeded",
	"connection reset",
	"connection refused",
	"no such host",
	"EOF",
	"overloaded",
}

// isTransient reports whether err is worth retrying against the same
// provider. Classification is by message content because the providers wrap
// their HTTP errors in incompatible types.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
