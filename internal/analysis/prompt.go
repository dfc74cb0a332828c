package analysis

import (
	"fmt"
	"strings"
)

// The prompts carry their response schema inline. Every field name must stay
// aligned with the JSON tags on types.AnalysisResult and types.MatchResult;
// the client consumes the model output unmodified after extraction.

const analysisPromptTemplate = `You are an ATS (applicant tracking system) resume reviewer.
Analyze the resume below and respond with ONLY a JSON object, no prose before or after.

Required JSON shape:
{
  "atsScore": <integer 0-100, how well this resume survives automated screening>,
  "atsMessage": "<one-sentence overall verdict>",
  "suggestions": ["<concrete improvement>", ...],
  "missingKeywords": ["<keyword the resume should add>", ...],
  "sectionFeedback": {"summary": ["<feedback>"], "experience": ["<feedback>"], "education": [], "skills": [], "projects": [], "achievements": [], "certifications": []},
  "sectionMissingKeywords": {"summary": [], "experience": [], "education": [], "skills": [], "projects": [], "achievements": [], "certifications": []},
  "improvements": {"experience": [{"issue": "<what is weak>", "recommendation": "<how to fix it>", "example": "<rewritten line>"}]}
}

Rules:
- atsScore must be an integer between 0 and 100.
- Use only the section keys shown above.
- Output raw JSON. No markdown fences, no commentary.

Resume:
%s`

const comparePromptTemplate = `You are an ATS resume reviewer comparing a resume against a job description.
Respond with ONLY a JSON object, no prose before or after.

Required JSON shape:
{
  "matchPercentage": <integer 0-100>,
  "missingKeywords": ["<job description keyword absent from the resume>", ...],
  "keywordSuggestions": [{"keyword": "<missing keyword>", "suggestion": "<where and how to add it>"}],
  "suggestions": ["<concrete improvement for this specific role>", ...]
}

Rules:
- matchPercentage must be an integer between 0 and 100.
- List at most 10 missing keywords, most important first.
- Output raw JSON. No markdown fences, no commentary.

Resume:
%s

Job description:
%s`

const rewritePromptTemplate = `You are an expert resume writer. Rewrite the text below to be stronger for
automated resume screening: active verbs, measurable outcomes, no filler.
Keep it truthful to the original content. Respond with ONLY the rewritten
text, no preamble and no explanation.`

func buildAnalysisPrompt(resumeText string) string {
	return fmt.Sprintf(analysisPromptTemplate, resumeText)
}

func buildComparePrompt(resumeText, jdText string) string {
	return fmt.Sprintf(comparePromptTemplate, resumeText, jdText)
}

func buildRewritePrompt(text string, keywords []string, section string) string {
	var b strings.Builder
	b.WriteString(rewritePromptTemplate)
	if section != "" {
		fmt.Fprintf(&b, "\nThe text is from the resume's %s section.", section)
	}
	if len(keywords) > 0 {
		fmt.Fprintf(&b, "\nWork in these keywords where they fit naturally: %s.", strings.Join(keywords, ", "))
	}
	b.WriteString("\n\nText:\n")
	b.WriteString(text)
	return b.String()
}
