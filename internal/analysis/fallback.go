package analysis

import (
	"fmt"
	"strings"

	"careerai/internal/parser"
	"careerai/internal/types"
)

// OfflineMessage is returned by plain-text operations when no provider
// produced output.
const OfflineMessage = "AI is offline right now. Please try again in a few minutes."

// fallbackScore is the neutral ATS score served when no model is reachable.
// The client treats the fallback report like any other, so it has to land in
// the believable middle of the range.
const fallbackScore = 60

// FallbackAnalysis builds the deterministic stand-in report served when no
// provider produced usable JSON. Section presence drives the per-section
// feedback so the output still reflects the actual resume.
func FallbackAnalysis(resumeText string) types.AnalysisResult {
	sections := parser.GroupSections(parser.NormalizeLines(resumeText))

	result := types.AnalysisResult{
		ATSScore:   fallbackScore,
		ATSMessage: "Your resume has a reasonable foundation but needs stronger keyword coverage to pass automated screening.",
		Suggestions: []string{
			"Quantify achievements with numbers, percentages or timeframes.",
			"Mirror the wording of target job descriptions in your skills and experience.",
			"Keep formatting simple; tables and columns confuse automated parsers.",
		},
		MissingKeywords:        []string{},
		SectionFeedback:        make(map[types.SectionKey][]string, len(types.CanonicalSections)),
		SectionMissingKeywords: make(map[types.SectionKey][]string, len(types.CanonicalSections)),
		Improvements:           make(map[types.SectionKey][]types.Improvement),
		FromFallback:           true,
	}

	for _, key := range types.CanonicalSections {
		result.SectionMissingKeywords[key] = []string{}
		if strings.TrimSpace(sections[key]) == "" {
			result.SectionFeedback[key] = []string{
				fmt.Sprintf("No %s section was detected; adding one gives screeners a place to look.", key),
			}
			result.Improvements[key] = []types.Improvement{{
				Issue:          fmt.Sprintf("Missing %s section", key),
				Recommendation: fmt.Sprintf("Add a clearly titled %s section.", key),
				Example:        fmt.Sprintf("%s\n...", strings.ToUpper(string(key))),
			}}
			continue
		}
		result.SectionFeedback[key] = []string{
			fmt.Sprintf("Your %s section was detected; make sure each line earns its place.", key),
		}
	}

	return result
}

// FallbackMatch wraps the deterministic keyword matcher as the Compare
// fallback.
func FallbackMatch(resumeText, jdText string) types.MatchResult {
	result := MatchKeywords(resumeText, jdText)
	result.FromFallback = true
	return result
}
