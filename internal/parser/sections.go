package parser

import (
	"regexp"
	"strings"

	"careerai/internal/types"
)

// experienceRecoveryLimit caps how many dated lines the permissive recovery
// pass may claim when no experience heading was recognized.
const experienceRecoveryLimit = 40

// sectionAliases maps heading spellings to canonical section keys. Matching
// is exact on the lowercased heading (trailing colon stripped); the first
// alias hit wins and there is no fuzzy matching.
var sectionAliases = []struct {
	key     types.SectionKey
	aliases []string
}{
	{types.SectionSummary, []string{"summary", "professional summary", "profile", "objective", "career objective", "about", "about me"}},
	{types.SectionExperience, []string{"experience", "work experience", "professional experience", "employment", "employment history", "work history"}},
	{types.SectionEducation, []string{"education", "academic background", "academics", "qualifications"}},
	{types.SectionSkills, []string{"skills", "technical skills", "core skills", "skills & tools", "technologies"}},
	{types.SectionProjects, []string{"projects", "personal projects", "key projects", "portfolio"}},
	{types.SectionAchievements, []string{"achievements", "accomplishments", "awards", "honors"}},
	{types.SectionCertifications, []string{"certifications", "certificates", "licenses", "courses"}},
}

var (
	yearRe          = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	companySuffixRe = regexp.MustCompile(`(?i)\b(inc|llc|ltd|corp)\b\.?`)
	inlineSkillsRe  = regexp.MustCompile(`(?i)^skills?\s*:\s*(.+)$`)
)

// GroupSections buckets normalized lines under canonical section headings.
// Lines before the first recognized heading open an implicit experience
// section when they look like experience entries; otherwise they land in the
// catch-all bucket. Two permissive recovery passes run afterwards so resumes
// with unrecognized headings still produce usable experience and skills
// bodies.
func GroupSections(lines []string) types.SectionMap {
	bodies := make(map[types.SectionKey][]string)
	var current types.SectionKey

	for _, line := range lines {
		if key, ok := classifyHeading(line); ok {
			current = key
			continue
		}
		if current == "" {
			if !looksLikeExperience(line) {
				bodies[types.SectionOther] = append(bodies[types.SectionOther], line)
				continue
			}
			current = types.SectionExperience
		}
		bodies[current] = append(bodies[current], line)
	}

	if len(bodies[types.SectionExperience]) == 0 {
		var recovered []string
		for _, line := range lines {
			if looksLikeExperience(line) {
				recovered = append(recovered, line)
				if len(recovered) == experienceRecoveryLimit {
					break
				}
			}
		}
		bodies[types.SectionExperience] = recovered
	}

	// "Skills: Go, SQL" inline label, used when no skills heading was found.
	if len(bodies[types.SectionSkills]) == 0 {
		for _, line := range lines {
			if m := inlineSkillsRe.FindStringSubmatch(line); m != nil {
				if rest := strings.TrimSpace(m[1]); rest != "" {
					bodies[types.SectionSkills] = []string{rest}
					break
				}
			}
		}
	}

	out := make(types.SectionMap, len(types.CanonicalSections)+1)
	for _, key := range types.CanonicalSections {
		out[key] = strings.Join(bodies[key], "\n")
	}
	if other := bodies[types.SectionOther]; len(other) > 0 {
		out[types.SectionOther] = strings.Join(other, "\n")
	}
	return out
}

// classifyHeading reports whether a line is a recognized section heading.
func classifyHeading(line string) (types.SectionKey, bool) {
	norm := strings.TrimSpace(line)
	norm = strings.TrimSuffix(norm, ":")
	norm = strings.ToLower(strings.TrimSpace(norm))
	if norm == "" {
		return "", false
	}
	for _, group := range sectionAliases {
		for _, alias := range group.aliases {
			if norm == alias {
				return group.key, true
			}
		}
	}
	return "", false
}

// looksLikeExperience reports whether a line resembles an experience entry:
// a plausible four-digit year or a company suffix like "Inc." or "LLC".
func looksLikeExperience(line string) bool {
	return yearRe.MatchString(line) || companySuffixRe.MatchString(line)
}
