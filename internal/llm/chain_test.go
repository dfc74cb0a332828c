package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name   string
	output string
	err    error
	calls  int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(_ context.Context, _ string, _ GenerateOptions) (string, error) {
	s.calls++
	return s.output, s.err
}

func TestChainFirstNonEmptyWins(t *testing.T) {
	first := &stubProvider{name: "first", output: "answer from first"}
	second := &stubProvider{name: "second", output: "answer from second"}

	chain := NewChain([]Provider{first, second})
	got, err := chain.Generate(context.Background(), "prompt", GenerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, "answer from first", got)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestChainSkipsFailingProvider(t *testing.T) {
	first := &stubProvider{name: "first", err: errors.New("quota exceeded")}
	second := &stubProvider{name: "second", output: "rescued"}

	chain := NewChain([]Provider{first, second})
	got, err := chain.Generate(context.Background(), "prompt", GenerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, "rescued", got)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestChainSkipsEmptyOutput(t *testing.T) {
	first := &stubProvider{name: "first", output: "   \n"}
	second := &stubProvider{name: "second", output: "real answer"}

	chain := NewChain([]Provider{first, second})
	got, err := chain.Generate(context.Background(), "prompt", GenerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, "real answer", got)
}

func TestChainAllFail(t *testing.T) {
	first := &stubProvider{name: "first", err: errors.New("down")}
	second := &stubProvider{name: "second", output: ""}

	chain := NewChain([]Provider{first, second})
	_, err := chain.Generate(context.Background(), "prompt", GenerateOptions{})

	assert.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestChainNoProviders(t *testing.T) {
	chain := NewChain(nil)
	_, err := chain.Generate(context.Background(), "prompt", GenerateOptions{})
	assert.ErrorIs(t, err, ErrAllProvidersFailed)
}

func TestWithCallTimeout(t *testing.T) {
	chain := NewChain(nil, WithCallTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, chain.timeout)

	chain = NewChain(nil, WithCallTimeout(0))
	assert.Equal(t, defaultCallTimeout, chain.timeout)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("429 Too Many Requests"), true},
		{errors.New("context deadline exceeded"), true},
		{errors.New("read tcp: connection reset by peer"), true},
		{errors.New("dial tcp: no such host"), true},
		{errors.New("401 Unauthorized"), false},
		{errors.New("invalid request payload"), false},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, isTransient(tt.err), "err=%v", tt.err)
	}
}
