// Package parser turns raw resume text into structured data: normalized
// lines, a contact header, grouped sections and a categorized skills
// breakdown. Everything here is deterministic and side-effect free.
package parser

import "strings"

// NormalizeLines splits raw extracted document text into trimmed, non-empty
// lines. CRLF collapses to LF and tabs become single spaces before splitting,
// so PDF and DOCX extractions normalize to the same shape.
func NormalizeLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	raw = strings.ReplaceAll(raw, "\t", " ")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// CollapseSpaces squeezes internal whitespace runs down to single spaces.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
