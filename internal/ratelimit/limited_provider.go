package ratelimit

import (
	"context"

	"careerai/internal/llm"
)

// LimitedProvider wraps an llm.Provider behind a token bucket. Calls block
// until a token frees up, so a burst of analysis requests queues instead of
// burning the provider's quota.
type LimitedProvider struct {
	inner  llm.Provider
	bucket *TokenBucket
}

// NewLimitedProvider wraps p with a qpm limit.
func NewLimitedProvider(p llm.Provider, qpm int) *LimitedProvider {
	if qpm <= 0 {
		qpm = 30
	}
	return &LimitedProvider{
		inner:  p,
		bucket: NewTokenBucket(qpm, qpm/2),
	}
}

func (l *LimitedProvider) Name() string { return l.inner.Name() }

func (l *LimitedProvider) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	if err := l.bucket.Wait(ctx); err != nil {
		return "", err
	}
	return l.inner.Generate(ctx, prompt, opts)
}
