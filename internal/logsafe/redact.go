// Package logsafe keeps resume content and contact details out of log lines.
// Resumes are PII end to end, so anything derived from one gets masked or
// truncated before it reaches a log event.
package logsafe

import "strings"

const (
	// MaxValueLength bounds generic attribute values.
	MaxValueLength = 200

	// MaxResumeLength bounds logged resume or model-output snippets.
	MaxResumeLength = 150
)

// piiKeywords flags attribute names whose values must be masked instead of
// merely truncated.
var piiKeywords = []string{
	"email",
	"phone",
	"name",
	"address",
	"location",
	"password",
	"secret",
	"token",
}

// Value masks PII-named attributes and truncates everything else.
func Value(name, value string) string {
	lower := strings.ToLower(name)
	for _, keyword := range piiKeywords {
		if strings.Contains(lower, keyword) {
			return Mask(value)
		}
	}
	return Truncate(value, MaxValueLength)
}

// Mask hides the middle of a value, keeping just enough of the edges to
// correlate log lines: "myemail@example.com" -> "my***************om".
func Mask(value string) string {
	if value == "" {
		return ""
	}

	runes := []rune(value)
	length := len(runes)

	if length <= 1 {
		return "*"
	}
	if length <= 4 {
		if length == 2 {
			return string(runes[:1]) + "*"
		}
		return string(runes[:1]) + strings.Repeat("*", length-2) + string(runes[length-1:])
	}
	return string(runes[:2]) + strings.Repeat("*", length-4) + string(runes[length-2:])
}

// Truncate shortens s to maxLength runes, keeping the head and tail with an
// ellipsis between them.
func Truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}

	half := (maxLength - 3) / 2
	if half < 1 {
		half = 1
	}
	return string(runes[:half]) + "..." + string(runes[len(runes)-half:])
}

// Snippet bounds a resume or model-output excerpt for logging.
func Snippet(content string) string {
	return Truncate(content, MaxResumeLength)
}
