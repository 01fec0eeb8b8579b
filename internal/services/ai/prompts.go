package ai

import (
	"fmt"
	"slices"
	"strings"

	"google.golang.org/genai"
)

// Image output parameters shared by every image request.
const (
	ImageMIMEType        = "image/png"
	ImageCount           = 1
	CoverAspectRatio     = "4:3"
	StepAspectRatio      = "16:9"
	recipeListPrompt     = "Suggest up to 6 diverse and creative recipes I can cook with the following ingredients: %s."
	recipeDetailsPrompt  = "Provide detailed cooking instructions for \"%s\". I need a list of ingredients with measurements and a clear, step-by-step guide for the instructions."
	coverImagePrompt     = "A delicious, professional food photograph of \"%s\". Centered, well-lit, on a clean, light-colored background."
	stepImagePrompt      = "A minimalist, clean, 2D animated style illustration showing this cooking step: \"%s\". Flat design, simple colored background, no text."
	jsonOnlyInstructions = "Respond with only JSON that matches this schema. Do not include any explanation or text outside of the JSON.\n"
)

// BuildRecipeListPrompt asks for recipe suggestions for the given ingredient text.
func BuildRecipeListPrompt(ingredients string) string {
	return fmt.Sprintf(recipeListPrompt, strings.TrimSpace(ingredients))
}

// BuildRecipeDetailsPrompt asks for the ingredients and steps of one recipe.
func BuildRecipeDetailsPrompt(name string) string {
	return fmt.Sprintf(recipeDetailsPrompt, name)
}

func BuildCoverImagePrompt(name string) string {
	return fmt.Sprintf(coverImagePrompt, name)
}

func BuildStepImagePrompt(instruction string) string {
	return fmt.Sprintf(stepImagePrompt, instruction)
}

// RecipeListSchema is an array of {name, description} objects.
func RecipeListSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": {
					Type:        genai.TypeString,
					Description: "The name of the recipe.",
				},
				"description": {
					Type:        genai.TypeString,
					Description: "A short, enticing description of the recipe.",
				},
			},
			Required: []string{"name", "description"},
		},
	}
}

// RecipeDetailsSchema is an object with ingredients and instructions string arrays.
func RecipeDetailsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"ingredients": {
				Type:        genai.TypeArray,
				Description: "Ingredients with measurements.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"instructions": {
				Type:        genai.TypeArray,
				Description: "Step-by-step cooking instructions, one step per entry.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"ingredients", "instructions"},
	}
}

// DescribeSchema renders a schema as a compact JSON-shaped example for providers
// that cannot take a structured response schema.
func DescribeSchema(s *genai.Schema) string {
	var sb strings.Builder
	sb.WriteString(jsonOnlyInstructions)
	describe(&sb, s)
	return sb.String()
}

func describe(sb *strings.Builder, s *genai.Schema) {
	if s == nil {
		sb.WriteString("null")
		return
	}
	switch s.Type {
	case genai.TypeArray:
		sb.WriteString("[")
		describe(sb, s.Items)
		sb.WriteString("]")
	case genai.TypeObject:
		sb.WriteString("{")
		keys := orderedKeys(s)
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%q: ", k)
			describe(sb, s.Properties[k])
		}
		sb.WriteString("}")
	default:
		sb.WriteString(`"` + strings.ToLower(string(s.Type)) + `"`)
	}
}

// orderedKeys lists required properties first, in declared order, then the rest sorted.
func orderedKeys(s *genai.Schema) []string {
	seen := make(map[string]bool, len(s.Properties))
	keys := make([]string, 0, len(s.Properties))
	for _, k := range s.Required {
		if _, ok := s.Properties[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range s.Properties {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}
