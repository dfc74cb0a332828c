package types

// SectionKey identifies a canonical resume section.
type SectionKey string

const (
	SectionSummary        SectionKey = "summary"
	SectionExperience     SectionKey = "experience"
	SectionEducation      SectionKey = "education"
	SectionSkills         SectionKey = "skills"
	SectionProjects       SectionKey = "projects"
	SectionAchievements   SectionKey = "achievements"
	SectionCertifications SectionKey = "certifications"

	// SectionOther collects lines that precede any recognized heading and do
	// not look like experience entries. It is only serialized when non-empty.
	SectionOther SectionKey = "other"
)

// CanonicalSections lists the guaranteed section keys in serialization order.
// Every SectionMap produced by the parser carries all of them, empty or not.
var CanonicalSections = []SectionKey{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionAchievements,
	SectionCertifications,
}

// SectionMap maps each canonical section to its body text, lines joined by
// newlines. Absent sections map to the empty string, never a missing key.
type SectionMap map[SectionKey]string

// ContactHeader holds contact details pulled from the top of a resume.
// Every field is best-effort and may be empty.
type ContactHeader struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Location string `json:"location"`
}

// SkillCategory is one labeled bucket of categorized skills. Order inside
// Skills preserves first appearance in the source text.
type SkillCategory struct {
	Label  string   `json:"label"`
	Skills []string `json:"skills"`
}

// KeywordSuggestion pairs a missing job-description keyword with templated
// advice on where to work it in.
type KeywordSuggestion struct {
	Keyword    string `json:"keyword"`
	Suggestion string `json:"suggestion"`
}

// MatchResult is the resume-vs-job-description comparison payload. The AI
// path and the deterministic keyword path produce the same shape, so the
// client cannot tell which one served the request.
type MatchResult struct {
	MatchPercentage    int                 `json:"matchPercentage"`
	MissingKeywords    []string            `json:"missingKeywords"`
	KeywordSuggestions []KeywordSuggestion `json:"keywordSuggestions"`
	Suggestions        []string            `json:"suggestions"`

	// FromFallback records internally that the deterministic path served this
	// result. Never serialized to the client.
	FromFallback bool `json:"-"`
}

// Improvement is one concrete fix for a section, with an example rewrite.
type Improvement struct {
	Issue          string `json:"issue"`
	Recommendation string `json:"recommendation"`
	Example        string `json:"example"`
}

// AnalysisResult is the full ATS-style resume report.
type AnalysisResult struct {
	ATSScore               int                          `json:"atsScore"`
	ATSMessage             string                       `json:"atsMessage"`
	Suggestions            []string                     `json:"suggestions"`
	MissingKeywords        []string                     `json:"missingKeywords"`
	SectionFeedback        map[SectionKey][]string      `json:"sectionFeedback"`
	SectionMissingKeywords map[SectionKey][]string      `json:"sectionMissingKeywords"`
	Improvements           map[SectionKey][]Improvement `json:"improvements"`

	// FromFallback records internally that the deterministic path served this
	// result. Never serialized to the client.
	FromFallback bool `json:"-"`
}

// ResumeStructure is the parsed-resume preview: contact header, grouped
// section bodies and the rendered skills breakdown.
type ResumeStructure struct {
	Header            ContactHeader `json:"header"`
	Sections          SectionMap    `json:"sections"`
	CategorizedSkills string        `json:"categorizedSkills"`
}
