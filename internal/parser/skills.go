package parser

import (
	"regexp"
	"strings"

	"careerai/internal/types"
)

// OtherCategory labels skills that match no known category pattern. It always
// renders last.
const OtherCategory = "Other"

// skillCategories is evaluated in order; a token lands in the first category
// whose pattern matches. Language names are anchored so "Java" never claims
// "JavaScript".
var skillCategories = []struct {
	label string
	re    *regexp.Regexp
}{
	{"Languages", regexp.MustCompile(`(?i)^(go(lang)?|python|java|javascript|typescript|c|c\+\+|c#|ruby|php|swift|kotlin|rust|scala|dart|sql|html|css|bash|shell|perl|matlab|objective-c)$`)},
	{"Frameworks", regexp.MustCompile(`(?i)(react|angular|vue|next\.?js|nuxt|svelte|django|flask|fastapi|spring|rails|laravel|express|nest\.?js|\.net|flutter|gin|fiber|hertz|bootstrap|tailwind)`)},
	{"Libraries", regexp.MustCompile(`(?i)(redux|jquery|pandas|numpy|scikit|matplotlib|lodash|axios|graphql|rxjs|three\.?js)`)},
	{"Tools", regexp.MustCompile(`(?i)(\bgit(hub|lab)?\b|docker|kubernetes|jenkins|webpack|vite|babel|jira|postman|terraform|ansible|maven|gradle|linux|grafana|prometheus)`)},
	{"Databases", regexp.MustCompile(`(?i)(mysql|postgres|postgresql|mongo|mongodb|redis|sqlite|oracle|cassandra|dynamo|elasticsearch|mariadb|firebase)`)},
	{"Cloud", regexp.MustCompile(`(?i)(aws|amazon web services|azure|gcp|google cloud|heroku|vercel|netlify|digitalocean|cloudflare)`)},
	{"AI", regexp.MustCompile(`(?i)(machine learning|deep learning|tensorflow|pytorch|keras|nlp|llm|openai|gemini|langchain|hugging ?face|computer vision)`)},
	{"Design", regexp.MustCompile(`(?i)(photoshop|illustrator|sketch|figma|ui/?ux|adobe xd|canva|after effects|premiere)`)},
}

var bulletReplacer = strings.NewReplacer(
	"•", " ", "●", " ", "▪", " ", "·", " ", "*", " ",
	"\r\n", ",", "\n", ",", "/", ",",
)

// CategorizeSkills tokenizes a raw skills blob and buckets each token into
// fixed, ordered categories. Empty categories are omitted; unmatched tokens
// collect under Other, which comes last. Duplicate tokens are dropped
// case-insensitively, keeping the first casing seen.
func CategorizeSkills(blob string) []types.SkillCategory {
	tokens := tokenizeSkills(blob)
	if len(tokens) == 0 {
		return nil
	}

	buckets := make(map[string][]string, len(skillCategories)+1)
	for _, tok := range tokens {
		label := categoryFor(tok)
		buckets[label] = append(buckets[label], tok)
	}

	var out []types.SkillCategory
	for _, cat := range skillCategories {
		if skills := buckets[cat.label]; len(skills) > 0 {
			out = append(out, types.SkillCategory{Label: cat.label, Skills: skills})
		}
	}
	if skills := buckets[OtherCategory]; len(skills) > 0 {
		out = append(out, types.SkillCategory{Label: OtherCategory, Skills: skills})
	}
	return out
}

// RenderSkills formats categorized skills as "Label: a, b" lines.
func RenderSkills(categories []types.SkillCategory) string {
	var b strings.Builder
	for i, cat := range categories {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(cat.Label)
		b.WriteString(": ")
		b.WriteString(strings.Join(cat.Skills, ", "))
	}
	return b.String()
}

func categoryFor(token string) string {
	for _, cat := range skillCategories {
		if cat.re.MatchString(token) {
			return cat.label
		}
	}
	return OtherCategory
}

// tokenizeSkills splits a skills blob on commas, semicolons, pipes, slashes
// and newlines, strips bullet characters, and de-dups case-insensitively.
// Plus and hash signs survive so "C++" and "C#" stay intact.
func tokenizeSkills(blob string) []string {
	cleaned := bulletReplacer.Replace(blob)
	fields := strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})

	seen := make(map[string]bool, len(fields))
	var tokens []string
	for _, f := range fields {
		tok := CollapseSpaces(strings.TrimLeft(strings.TrimSpace(f), "-– "))
		if tok == "" {
			continue
		}
		lower := strings.ToLower(tok)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		tokens = append(tokens, tok)
	}
	return tokens
}
