package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerai/internal/types"
)

func TestCategorizeSkills(t *testing.T) {
	categories := CategorizeSkills("Go, React, MySQL, Docker, AWS, TensorFlow, Figma, Interpretive Dance")

	labels := make([]string, 0, len(categories))
	byLabel := make(map[string][]string, len(categories))
	for _, cat := range categories {
		labels = append(labels, cat.Label)
		byLabel[cat.Label] = cat.Skills
	}

	assert.Equal(t, []string{"Languages", "Frameworks", "Tools", "Databases", "Cloud", "AI", "Design", "Other"}, labels)
	assert.Equal(t, []string{"Go"}, byLabel["Languages"])
	assert.Equal(t, []string{"React"}, byLabel["Frameworks"])
	assert.Equal(t, []string{"Docker"}, byLabel["Tools"])
	assert.Equal(t, []string{"MySQL"}, byLabel["Databases"])
	assert.Equal(t, []string{"AWS"}, byLabel["Cloud"])
	assert.Equal(t, []string{"TensorFlow"}, byLabel["AI"])
	assert.Equal(t, []string{"Figma"}, byLabel["Design"])
	assert.Equal(t, []string{"Interpretive Dance"}, byLabel["Other"])
}

func TestCategorizeSkillsEmptyCategoriesOmitted(t *testing.T) {
	categories := CategorizeSkills("Go; Python")

	require.Len(t, categories, 1)
	assert.Equal(t, "Languages", categories[0].Label)
	assert.Equal(t, []string{"Go", "Python"}, categories[0].Skills)
}

func TestCategorizeSkillsDedupe(t *testing.T) {
	categories := CategorizeSkills("Docker, docker, DOCKER, Git")

	require.Len(t, categories, 1)
	assert.Equal(t, []string{"Docker", "Git"}, categories[0].Skills)
}

func TestCategorizeSkillsSeparatorsAndBullets(t *testing.T) {
	blob := "• Go\n• C++ | C#\n- HTML/CSS"

	categories := CategorizeSkills(blob)

	require.Len(t, categories, 1)
	assert.Equal(t, "Languages", categories[0].Label)
	assert.Equal(t, []string{"Go", "C++", "C#", "HTML", "CSS"}, categories[0].Skills)
}

func TestCategorizeSkillsJavaDoesNotClaimJavaScript(t *testing.T) {
	categories := CategorizeSkills("JavaScript, Java")

	require.Len(t, categories, 1)
	assert.Equal(t, []string{"JavaScript", "Java"}, categories[0].Skills)
}

func TestCategorizeSkillsGitDoesNotClaimDigitalOcean(t *testing.T) {
	categories := CategorizeSkills("DigitalOcean, GitHub, Git, Digital Marketing")

	byLabel := make(map[string][]string, len(categories))
	for _, cat := range categories {
		byLabel[cat.Label] = cat.Skills
	}

	assert.Equal(t, []string{"GitHub", "Git"}, byLabel["Tools"])
	assert.Equal(t, []string{"DigitalOcean"}, byLabel["Cloud"])
	assert.Equal(t, []string{"Digital Marketing"}, byLabel["Other"])
}

func TestCategorizeSkillsEmptyInput(t *testing.T) {
	assert.Nil(t, CategorizeSkills(""))
	assert.Nil(t, CategorizeSkills("  •  , ; | "))
}

func TestRenderSkills(t *testing.T) {
	rendered := RenderSkills([]types.SkillCategory{
		{Label: "Languages", Skills: []string{"Go", "Python"}},
		{Label: "Other", Skills: []string{"Leadership"}},
	})

	assert.Equal(t, "Languages: Go, Python\nOther: Leadership", rendered)
}

func TestRenderSkillsEmpty(t *testing.T) {
	assert.Equal(t, "", RenderSkills(nil))
}
