package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestBuildRecipeListPrompt(t *testing.T) {
	prompt := BuildRecipeListPrompt("  chicken, rice, broccoli \n")

	assert.Equal(t,
		"Suggest up to 6 diverse and creative recipes I can cook with the following ingredients: chicken, rice, broccoli.",
		prompt)
}

func TestBuildPrompts(t *testing.T) {
	tests := []struct {
		name     string
		prompt   string
		contains []string
	}{
		{
			name:     "details",
			prompt:   BuildRecipeDetailsPrompt("Lemon Chicken"),
			contains: []string{`"Lemon Chicken"`, "measurements", "step-by-step"},
		},
		{
			name:     "cover image",
			prompt:   BuildCoverImagePrompt("Lemon Chicken"),
			contains: []string{`"Lemon Chicken"`, "food photograph", "well-lit"},
		},
		{
			name:     "step image",
			prompt:   BuildStepImagePrompt("Dice the onion."),
			contains: []string{`"Dice the onion."`, "2D animated", "no text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.contains {
				assert.Contains(t, tt.prompt, s)
			}
		})
	}
}

func TestRecipeListSchema(t *testing.T) {
	s := RecipeListSchema()

	assert.Equal(t, genai.TypeArray, s.Type)
	if assert.NotNil(t, s.Items) {
		assert.Equal(t, genai.TypeObject, s.Items.Type)
		assert.ElementsMatch(t, []string{"name", "description"}, s.Items.Required)
	}
}

func TestRecipeDetailsSchema(t *testing.T) {
	s := RecipeDetailsSchema()

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"ingredients", "instructions"}, s.Required)
	assert.Equal(t, genai.TypeArray, s.Properties["instructions"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["instructions"].Items.Type)
}

func TestDescribeSchema(t *testing.T) {
	desc := DescribeSchema(RecipeListSchema())

	assert.True(t, strings.HasPrefix(desc, "Respond with only JSON"))
	assert.Contains(t, desc, `[{"name": "string", "description": "string"}]`)

	desc = DescribeSchema(RecipeDetailsSchema())
	assert.Contains(t, desc, `{"ingredients": ["string"], "instructions": ["string"]}`)
}
