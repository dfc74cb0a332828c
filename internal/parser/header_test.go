package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHeader(t *testing.T) {
	lines := NormalizeLines(
		"John Smith\n" +
			"Senior Software Engineer\n" +
			"john.smith@example.com | +1 (415) 555-0188\n" +
			"linkedin.com/in/johnsmith | github.com/jsmith\n" +
			"San Francisco, CA\n",
	)

	h := ExtractHeader(lines)

	assert.Equal(t, "John Smith", h.Name)
	assert.Equal(t, "john.smith@example.com", h.Email)
	assert.Equal(t, "+1 (415) 555-0188", h.Phone)
	assert.Equal(t, "linkedin.com/in/johnsmith", h.LinkedIn)
	assert.Equal(t, "github.com/jsmith", h.GitHub)
	assert.Equal(t, "San Francisco, CA", h.Location)
}

func TestExtractHeaderFirstMatchWins(t *testing.T) {
	lines := []string{
		"first@example.com",
		"second@example.com",
	}

	h := ExtractHeader(lines)
	assert.Equal(t, "first@example.com", h.Email)
}

func TestExtractHeaderScanWindow(t *testing.T) {
	// Contact details past the sixth line are ignored.
	lines := []string{"a", "b", "c", "d", "e", "f", "late@example.com"}

	h := ExtractHeader(lines)
	assert.Empty(t, h.Email)
}

func TestExtractHeaderNoMatches(t *testing.T) {
	h := ExtractHeader([]string{"x", "y"})

	assert.Empty(t, h.Name)
	assert.Empty(t, h.Email)
	assert.Empty(t, h.Phone)
	assert.Empty(t, h.LinkedIn)
	assert.Empty(t, h.GitHub)
	assert.Empty(t, h.Location)
}

func TestExtractHeaderDeterministic(t *testing.T) {
	lines := NormalizeLines("Jane Doe\njane@example.com\n555-123-4567")

	first := ExtractHeader(lines)
	second := ExtractHeader(lines)
	assert.Equal(t, first, second)
}

func TestFindPhone(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"international", "call +86 138 1234 5678 anytime", "+86 138 1234 5678"},
		{"dashed", "555-123-4567", "555-123-4567"},
		{"too few digits", "room 12-34", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findPhone(tt.line))
		})
	}
}
