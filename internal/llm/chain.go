package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"careerai/internal/logger"
)

const defaultCallTimeout = 30 * time.Second

// ErrAllProvidersFailed is returned when every provider in the chain errored
// or produced empty output.
var ErrAllProvidersFailed = errors.New("llm: all providers failed or returned empty output")

// Chain tries providers in priority order and returns the first non-empty
// response. A provider failure or empty answer moves on to the next entry;
// there is no scoring or load balancing.
type Chain struct {
	providers []Provider
	timeout   time.Duration
}

// ChainOption customizes a Chain.
type ChainOption func(*Chain)

// WithCallTimeout bounds each individual provider call.
func WithCallTimeout(d time.Duration) ChainOption {
	return func(c *Chain) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewChain builds a chain over the given providers, in the order they should
// be tried.
func NewChain(providers []Provider, opts ...ChainOption) *Chain {
	c := &Chain{
		providers: providers,
		timeout:   defaultCallTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate runs the prompt through the chain. Each provider gets its own
// timeout carved from ctx so one hung backend cannot stall the whole
// request.
func (c *Chain) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	for _, p := range c.providers {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		text, err := p.Generate(callCtx, prompt, opts)
		cancel()

		if err != nil {
			logger.Warn().Err(err).Str("provider", p.Name()).Msg("provider failed, trying next")
			continue
		}
		if strings.TrimSpace(text) == "" {
			logger.Warn().Str("provider", p.Name()).Msg("provider returned empty output, trying next")
			continue
		}

		logger.Debug().Str("provider", p.Name()).Int("chars", len(text)).Msg("provider responded")
		return text, nil
	}
	return "", ErrAllProvidersFailed
}
