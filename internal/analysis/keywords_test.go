package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercase and punctuation",
			text: "Senior Go/Python Engineer!",
			want: []string{"senior", "python", "engineer"},
		},
		{
			name: "stopwords and short tokens dropped",
			text: "the team is looking for an SQL expert",
			want: []string{"team", "looking", "sql", "expert"},
		},
		{
			name: "duplicates keep first position",
			text: "python loves python",
			want: []string{"python", "loves"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestMatchKeywords(t *testing.T) {
	result := MatchKeywords(
		"Experienced Python developer",
		"Looking for Python and AWS engineer",
	)

	// jd tokens: looking, python, aws, engineer; only python matches.
	assert.Equal(t, 25, result.MatchPercentage)
	assert.Contains(t, result.MissingKeywords, "engineer")
	assert.Contains(t, result.MissingKeywords, "looking")
	assert.NotContains(t, result.MissingKeywords, "python")

	require.NotEmpty(t, result.KeywordSuggestions)
	assert.Equal(t, result.MissingKeywords[0], result.KeywordSuggestions[0].Keyword)
	assert.NotEmpty(t, result.Suggestions)
}

func TestMatchKeywordsBounds(t *testing.T) {
	cases := []struct {
		resume string
		jd     string
	}{
		{"", ""},
		{"go engineer", ""},
		{"", "go engineer"},
		{"python sql docker", "python sql docker"},
		{"completely unrelated words here", "golang kubernetes terraform"},
	}

	for _, c := range cases {
		result := MatchKeywords(c.resume, c.jd)
		assert.GreaterOrEqual(t, result.MatchPercentage, 0)
		assert.LessOrEqual(t, result.MatchPercentage, 100)
	}
}

func TestMatchKeywordsFullOverlap(t *testing.T) {
	result := MatchKeywords("python sql docker", "python sql docker")

	assert.Equal(t, 100, result.MatchPercentage)
	assert.Empty(t, result.MissingKeywords)
}

func TestMatchKeywordsEmptyJobDescription(t *testing.T) {
	result := MatchKeywords("whatever resume text", "")

	assert.Equal(t, 0, result.MatchPercentage)
	assert.Empty(t, result.MissingKeywords)
}

func TestMatchKeywordsMissingCap(t *testing.T) {
	jd := ""
	for i := 0; i < 30; i++ {
		jd += fmt.Sprintf("keyword%02d ", i)
	}

	result := MatchKeywords("nothing in common", jd)

	assert.Len(t, result.MissingKeywords, maxMissingKeywords)
	assert.Len(t, result.KeywordSuggestions, maxMissingKeywords)
	// First-seen order from the job description.
	assert.Equal(t, "keyword00", result.MissingKeywords[0])
}
