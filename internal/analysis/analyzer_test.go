package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerai/internal/llm"
	"careerai/internal/types"
)

// stubGenerator plays the provider chain in tests.
type stubGenerator struct {
	output string
	err    error
	calls  int
}

func (s *stubGenerator) Generate(_ context.Context, _ string, _ llm.GenerateOptions) (string, error) {
	s.calls++
	return s.output, s.err
}

const sampleResume = `John Smith
SUMMARY
Backend engineer.
EXPERIENCE
Acme Corp, 2019-2023
SKILLS
Go, SQL`

func TestAnalyzeHappyPath(t *testing.T) {
	payload := `{"atsScore": 82, "atsMessage": "Solid resume.", "suggestions": ["Add metrics."], "missingKeywords": ["kubernetes"], "sectionFeedback": {"summary": ["Good."]}, "sectionMissingKeywords": {"skills": ["kubernetes"]}, "improvements": {}}`
	gen := &stubGenerator{output: "```json\n" + payload + "\n```"}

	result := NewAnalyzer(gen).Analyze(context.Background(), sampleResume)

	assert.Equal(t, 82, result.ATSScore)
	assert.Equal(t, "Solid resume.", result.ATSMessage)
	assert.Equal(t, []string{"kubernetes"}, result.MissingKeywords)
	assert.Equal(t, []string{"Good."}, result.SectionFeedback[types.SectionSummary])
	assert.False(t, result.FromFallback)
}

func TestAnalyzeFallsBackOnChainError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("all providers failed")}

	result := NewAnalyzer(gen).Analyze(context.Background(), sampleResume)

	assert.True(t, result.FromFallback)
	assert.Equal(t, 60, result.ATSScore)
	assert.NotEmpty(t, result.ATSMessage)
	assert.NotEmpty(t, result.Suggestions)
	// Every canonical section gets feedback, detected or not.
	for _, key := range types.CanonicalSections {
		assert.NotEmptyf(t, result.SectionFeedback[key], "no feedback for %s", key)
		assert.NotNilf(t, result.SectionMissingKeywords[key], "nil missing keywords for %s", key)
	}
	// Sections absent from the sample resume get improvement entries.
	assert.NotEmpty(t, result.Improvements[types.SectionEducation])
	assert.Empty(t, result.Improvements[types.SectionSummary])
}

func TestAnalyzeFallsBackOnNonJSONOutput(t *testing.T) {
	gen := &stubGenerator{output: "I'm sorry, I can't produce JSON today."}

	result := NewAnalyzer(gen).Analyze(context.Background(), sampleResume)

	assert.True(t, result.FromFallback)
	assert.Equal(t, 60, result.ATSScore)
}

func TestAnalyzeClampsScore(t *testing.T) {
	gen := &stubGenerator{output: `{"atsScore": 140, "atsMessage": "x"}`}

	result := NewAnalyzer(gen).Analyze(context.Background(), sampleResume)

	assert.Equal(t, 100, result.ATSScore)
	assert.False(t, result.FromFallback)
}

func TestAnalyzeNeverSerializesNulls(t *testing.T) {
	gen := &stubGenerator{output: `{"atsScore": 50, "atsMessage": "x"}`}

	result := NewAnalyzer(gen).Analyze(context.Background(), sampleResume)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "null")
	assert.NotContains(t, string(data), "fromFallback")
	assert.NotContains(t, string(data), "FromFallback")
}

func TestAnalyzeRepairsBrokenQuotes(t *testing.T) {
	gen := &stubGenerator{output: `{"atsScore": 65, "atsMessage": "Avoid phrases like "team player" here"}`}

	result := NewAnalyzer(gen).Analyze(context.Background(), sampleResume)

	assert.False(t, result.FromFallback)
	assert.Equal(t, 65, result.ATSScore)
	assert.Equal(t, `Avoid phrases like "team player" here`, result.ATSMessage)
}

func TestCompareHappyPath(t *testing.T) {
	gen := &stubGenerator{output: `{"matchPercentage": 74, "missingKeywords": ["terraform"], "keywordSuggestions": [{"keyword": "terraform", "suggestion": "Mention it in skills."}], "suggestions": []}`}

	result := NewAnalyzer(gen).Compare(context.Background(), sampleResume, "Go engineer with terraform")

	assert.Equal(t, 74, result.MatchPercentage)
	assert.Equal(t, []string{"terraform"}, result.MissingKeywords)
	assert.False(t, result.FromFallback)
}

func TestCompareFallsBackToKeywordMatch(t *testing.T) {
	gen := &stubGenerator{err: errors.New("all providers failed")}

	result := NewAnalyzer(gen).Compare(
		context.Background(),
		"Experienced Python developer",
		"Looking for Python and AWS engineer",
	)

	assert.True(t, result.FromFallback)
	assert.Equal(t, 25, result.MatchPercentage)
	assert.Contains(t, result.MissingKeywords, "engineer")
}

func TestRewriteHappyPath(t *testing.T) {
	gen := &stubGenerator{output: "<s>[INST] Shipped billing pipeline handling 2M events/day. [/INST]</s>"}

	got := NewAnalyzer(gen).Rewrite(context.Background(), "worked on billing", nil, "experience")

	assert.Equal(t, "Shipped billing pipeline handling 2M events/day.", got)
}

func TestRewriteOfflineSentinel(t *testing.T) {
	gen := &stubGenerator{err: errors.New("all providers failed")}

	got := NewAnalyzer(gen).Rewrite(context.Background(), "worked on billing", nil, "")

	assert.Equal(t, OfflineMessage, got)
}

func TestRewriteEmptyOutputFallsBackToSentinel(t *testing.T) {
	gen := &stubGenerator{output: "<s>[INST][/INST]</s>"}

	got := NewAnalyzer(gen).Rewrite(context.Background(), "text", nil, "")

	assert.Equal(t, OfflineMessage, got)
}

func TestSanitizeModelText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"artifacts stripped", "<s>hello</s> world <|im_end|>", "hello world"},
		{"json untouched", `{"key": "<s>value</s>"}`, `{"key": "<s>value</s>"}`},
		{"array untouched", `[1, 2]`, `[1, 2]`},
		{"plain text", "  plain  ", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeModelText(tt.in))
		})
	}
}
