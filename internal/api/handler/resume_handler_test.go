package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerai/internal/types"
)

const sampleResume = `John Smith
john.smith@example.com | 555-123-4567
SUMMARY
Backend engineer with eight years of experience.
EXPERIENCE
Acme Corp, 2019-2023
Built billing pipelines in Go.
SKILLS
Go, Python, MySQL, Docker`

func TestParseStructure(t *testing.T) {
	structure := ParseStructure(sampleResume)

	assert.Equal(t, "John Smith", structure.Header.Name)
	assert.Equal(t, "john.smith@example.com", structure.Header.Email)
	assert.Equal(t, "Backend engineer with eight years of experience.", structure.Sections[types.SectionSummary])
	assert.Contains(t, structure.Sections[types.SectionExperience], "Acme Corp")
	assert.Contains(t, structure.CategorizedSkills, "Languages: Go, Python")
	assert.Contains(t, structure.CategorizedSkills, "Databases: MySQL")
}

func TestParseStructureEmptyText(t *testing.T) {
	structure := ParseStructure("")

	for _, key := range types.CanonicalSections {
		body, ok := structure.Sections[key]
		require.True(t, ok)
		assert.Equal(t, "", body)
	}
	assert.Equal(t, "", structure.CategorizedSkills)
	assert.Equal(t, types.ContactHeader{}, structure.Header)
}

func TestHandleStructureWithoutStorage(t *testing.T) {
	h := NewResumeHandler(nil)

	structure := h.HandleStructure(context.Background(), sampleResume)
	assert.Equal(t, "John Smith", structure.Header.Name)
}

func TestHandleReportsWithoutStorage(t *testing.T) {
	h := NewResumeHandler(nil)

	_, err := h.HandleReports(context.Background(), "resume-1", 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrResumeNotFound)
}

func TestHandleOriginalWithoutStorage(t *testing.T) {
	h := NewResumeHandler(nil)

	_, _, err := h.HandleOriginal(context.Background(), "resume-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrResumeNotFound)
}
