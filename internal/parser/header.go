package parser

import (
	"regexp"
	"strings"

	"careerai/internal/types"
)

// headerScanLines bounds the contact scan to the top of the document. Contact
// details buried deeper are ignored on purpose.
const headerScanLines = 6

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`\+?\(?\d[\d\s().\-]{5,}\d`)
	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/[^\s|,;]+`)
	githubRe   = regexp.MustCompile(`(?i)github\.com/[^\s|,;]+`)

	// Two or more consecutive word groups of letters, the usual shape of a
	// person's name line.
	nameRe     = regexp.MustCompile(`\b[A-Za-z]{2,}(?:\s+[A-Za-z.'\-]{2,})+\b`)
	locationRe = regexp.MustCompile(`^[A-Za-z .'\-]+,\s*[A-Za-z .'\-]+$`)
)

// ExtractHeader scans the first lines of a resume for contact details. Each
// field keeps its first match; later candidates never overwrite it. The input
// must already be normalized by NormalizeLines.
func ExtractHeader(lines []string) types.ContactHeader {
	var h types.ContactHeader

	limit := headerScanLines
	if len(lines) < limit {
		limit = len(lines)
	}

	for i := 0; i < limit; i++ {
		line := lines[i]

		if h.Email == "" {
			h.Email = emailRe.FindString(line)
		}
		if h.Phone == "" {
			h.Phone = findPhone(line)
		}
		if h.LinkedIn == "" {
			h.LinkedIn = linkedinRe.FindString(line)
		}
		if h.GitHub == "" {
			h.GitHub = githubRe.FindString(line)
		}
		if h.Name == "" && !emailRe.MatchString(line) && nameRe.MatchString(line) {
			h.Name = CollapseSpaces(line)
		}
		if h.Location == "" && locationRe.MatchString(line) && line != h.Name {
			h.Location = CollapseSpaces(line)
		}
	}
	return h
}

// findPhone returns the first phone-like run with at least seven digits.
// The digit floor keeps dates and zip codes from matching.
func findPhone(line string) string {
	for _, cand := range phoneRe.FindAllString(line, -1) {
		digits := 0
		for _, r := range cand {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 7 {
			return strings.TrimSpace(cand)
		}
	}
	return ""
}
