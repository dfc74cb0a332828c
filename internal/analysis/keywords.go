// Package analysis implements the ATS scoring pipeline: deterministic
// keyword matching, the LLM-backed analyzer, and the fallback reports served
// when no model is reachable.
package analysis

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"careerai/internal/types"
)

// maxMissingKeywords caps how many absent job-description keywords are
// reported back; past ten the list stops being advice and becomes noise.
const maxMissingKeywords = 10

// stopwords are excluded from both keyword sets. Two-letter words never get
// here, the tokenizer drops them by length.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "you": {}, "your": {},
	"our": {}, "are": {}, "will": {}, "that": {}, "this": {}, "have": {},
	"has": {}, "had": {}, "from": {}, "not": {}, "but": {}, "all": {},
	"can": {}, "who": {}, "what": {}, "when": {}, "where": {}, "how": {},
	"why": {}, "their": {}, "they": {}, "them": {}, "was": {}, "were": {},
	"been": {}, "being": {}, "about": {}, "into": {}, "over": {}, "under": {},
	"more": {}, "most": {}, "some": {}, "such": {}, "than": {}, "then": {},
	"its": {}, "also": {}, "per": {}, "etc": {}, "via": {}, "any": {},
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Tokenize lowercases text, strips punctuation, and returns the unique tokens
// longer than two characters in first-seen order, stopwords excluded.
func Tokenize(text string) []string {
	cleaned := nonAlnumRe.ReplaceAllString(strings.ToLower(text), " ")

	seen := make(map[string]struct{})
	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}

// MatchKeywords computes the deterministic resume-vs-job-description overlap.
// The percentage is the share of unique job-description keywords present in
// the resume; missing keywords keep job-description order and are capped.
func MatchKeywords(resumeText, jdText string) types.MatchResult {
	resumeTokens := Tokenize(resumeText)
	jdTokens := Tokenize(jdText)

	resumeSet := make(map[string]struct{}, len(resumeTokens))
	for _, tok := range resumeTokens {
		resumeSet[tok] = struct{}{}
	}

	matched := 0
	missing := []string{}
	for _, tok := range jdTokens {
		if _, ok := resumeSet[tok]; ok {
			matched++
			continue
		}
		// Short leftovers like "aws" still count against the percentage but
		// make poor suggestions, so only longer words are reported.
		if len(tok) > 3 && len(missing) < maxMissingKeywords {
			missing = append(missing, tok)
		}
	}

	denom := len(jdTokens)
	if denom == 0 {
		denom = 1
	}
	pct := int(math.Round(float64(matched) / float64(denom) * 100))

	suggestions := make([]types.KeywordSuggestion, 0, len(missing))
	for _, kw := range missing {
		suggestions = append(suggestions, types.KeywordSuggestion{
			Keyword:    kw,
			Suggestion: fmt.Sprintf("Add %q where it reflects real experience, ideally in your experience or skills section.", kw),
		})
	}

	return types.MatchResult{
		MatchPercentage:    pct,
		MissingKeywords:    missing,
		KeywordSuggestions: suggestions,
		Suggestions:        matchAdvice(pct),
	}
}

// matchAdvice returns generic next steps scaled to how close the match is.
func matchAdvice(pct int) []string {
	advice := []string{
		"Mirror the job description's exact terminology where it matches your experience.",
		"Lead experience bullets with measurable outcomes rather than responsibilities.",
	}
	if pct < 50 {
		advice = append(advice, "Tailor your summary to this role; a generic summary drags the match down.")
	}
	return advice
}
