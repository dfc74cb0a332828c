package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"careerai/internal/llm"
	"careerai/internal/logger"
	"careerai/internal/logsafe"
	"careerai/internal/types"
)

// Generator is the slice of the provider chain the analyzer needs. llm.Chain
// satisfies it; tests plug in stubs.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error)
}

// Analyzer orchestrates the LLM-backed analysis operations. Every operation
// degrades to a deterministic result instead of surfacing provider errors;
// the caller always gets a complete payload.
type Analyzer struct {
	gen         Generator
	maxTokens   int
	temperature float64
}

// AnalyzerOption customizes an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithMaxTokens caps generated output length.
func WithMaxTokens(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

// WithTemperature sets sampling temperature for all operations.
func WithTemperature(t float64) AnalyzerOption {
	return func(a *Analyzer) {
		if t > 0 {
			a.temperature = t
		}
	}
}

// NewAnalyzer builds an analyzer over the given generator.
func NewAnalyzer(gen Generator, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		gen:         gen,
		maxTokens:   2048,
		temperature: 0.3,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze produces the full ATS report for a resume. Provider failure or
// unparseable output falls back to the deterministic report; the degradation
// is logged but invisible to the caller.
func (a *Analyzer) Analyze(ctx context.Context, resumeText string) types.AnalysisResult {
	raw, err := a.gen.Generate(ctx, buildAnalysisPrompt(resumeText), a.options())
	if err != nil {
		logger.Warn().Err(err).Msg("analysis: provider chain exhausted, serving fallback report")
		return FallbackAnalysis(resumeText)
	}

	result, err := parseAnalysisJSON(raw)
	if err != nil {
		logger.Warn().Err(err).Str("output", logsafe.Snippet(raw)).Msg("analysis: unusable model output, serving fallback report")
		return FallbackAnalysis(resumeText)
	}
	return result
}

// Compare scores a resume against a job description. The fallback is the
// deterministic keyword matcher, which produces the identical shape.
func (a *Analyzer) Compare(ctx context.Context, resumeText, jdText string) types.MatchResult {
	raw, err := a.gen.Generate(ctx, buildComparePrompt(resumeText, jdText), a.options())
	if err != nil {
		logger.Warn().Err(err).Msg("compare: provider chain exhausted, serving keyword match")
		return FallbackMatch(resumeText, jdText)
	}

	result, err := parseMatchJSON(raw)
	if err != nil {
		logger.Warn().Err(err).Str("output", logsafe.Snippet(raw)).Msg("compare: unusable model output, serving keyword match")
		return FallbackMatch(resumeText, jdText)
	}
	return result
}

// Rewrite returns the text rewritten for screening impact. This is the one
// plain-text operation: no JSON parsing, just artifact scrubbing, and an
// offline sentinel instead of a structured fallback.
func (a *Analyzer) Rewrite(ctx context.Context, text string, keywords []string, section string) string {
	raw, err := a.gen.Generate(ctx, buildRewritePrompt(text, keywords, section), a.options())
	if err != nil {
		logger.Warn().Err(err).Msg("rewrite: provider chain exhausted, serving offline message")
		return OfflineMessage
	}

	out := SanitizeModelText(raw)
	if strings.TrimSpace(out) == "" {
		return OfflineMessage
	}
	return out
}

func (a *Analyzer) options() llm.GenerateOptions {
	return llm.GenerateOptions{
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	}
}

// parseAnalysisJSON extracts, decodes and normalizes an analysis payload.
// A repair pass runs before giving up on malformed JSON.
func parseAnalysisJSON(raw string) (types.AnalysisResult, error) {
	var result types.AnalysisResult

	payload := extractJSON(raw)
	if payload == "" {
		return result, fmt.Errorf("no JSON object in model output")
	}

	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		repaired := repairJSON(payload)
		if err2 := json.Unmarshal([]byte(repaired), &result); err2 != nil {
			return result, fmt.Errorf("decode analysis payload: %w", err)
		}
	}

	result.ATSScore = clampScore(result.ATSScore)
	if result.ATSMessage == "" {
		result.ATSMessage = "Resume analyzed."
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	if result.MissingKeywords == nil {
		result.MissingKeywords = []string{}
	}
	if result.SectionFeedback == nil {
		result.SectionFeedback = map[types.SectionKey][]string{}
	}
	if result.SectionMissingKeywords == nil {
		result.SectionMissingKeywords = map[types.SectionKey][]string{}
	}
	if result.Improvements == nil {
		result.Improvements = map[types.SectionKey][]types.Improvement{}
	}
	return result, nil
}

// parseMatchJSON extracts, decodes and normalizes a match payload.
func parseMatchJSON(raw string) (types.MatchResult, error) {
	var result types.MatchResult

	payload := extractJSON(raw)
	if payload == "" {
		return result, fmt.Errorf("no JSON object in model output")
	}

	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		repaired := repairJSON(payload)
		if err2 := json.Unmarshal([]byte(repaired), &result); err2 != nil {
			return result, fmt.Errorf("decode match payload: %w", err)
		}
	}

	result.MatchPercentage = clampScore(result.MatchPercentage)
	if result.MissingKeywords == nil {
		result.MissingKeywords = []string{}
	}
	if len(result.MissingKeywords) > maxMissingKeywords {
		result.MissingKeywords = result.MissingKeywords[:maxMissingKeywords]
	}
	if result.KeywordSuggestions == nil {
		result.KeywordSuggestions = []types.KeywordSuggestion{}
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return result, nil
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// artifactTokens are chat-template fragments that leak into plain-text
// completions from instruction-tuned models.
var artifactTokens = []string{
	"<s>", "</s>",
	"[INST]", "[/INST]",
	"<<SYS>>", "<</SYS>>",
	"<|im_start|>", "<|im_end|>",
}

// SanitizeModelText strips chat-template artifacts from plain-text model
// output. Output that looks like JSON is returned untouched, stripping could
// corrupt a payload the caller wants verbatim.
func SanitizeModelText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return trimmed
	}

	for _, tok := range artifactTokens {
		trimmed = strings.ReplaceAll(trimmed, tok, "")
	}
	return strings.TrimSpace(trimmed)
}
