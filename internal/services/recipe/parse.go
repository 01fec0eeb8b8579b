package recipe

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/socialchef/cookmate/internal/errors"
	"github.com/socialchef/cookmate/internal/validation"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// extractJSON strips surrounding whitespace and a Markdown code fence, if any.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if matches := jsonBlockRegex.FindStringSubmatch(raw); len(matches) > 1 {
		return matches[1]
	}
	return raw
}

type listItem struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type detailsPayload struct {
	Ingredients  *[]string `json:"ingredients"`
	Instructions *[]string `json:"instructions"`
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// parseRecipeList decodes a suggestion list. Every item needs a non-blank name and a
// description; items past MaxRecipes are dropped.
func parseRecipeList(raw string) ([]Recipe, error) {
	var items []listItem
	if err := json.Unmarshal([]byte(extractJSON(raw)), &items); err != nil {
		return nil, apperrors.NewGenerationError(
			fmt.Sprintf("recipe list is not valid JSON (response excerpt: %q)", truncate(raw, 200)),
			"INVALID_RECIPE_LIST",
			err,
		)
	}

	if len(items) > MaxRecipes {
		items = items[:MaxRecipes]
	}

	recipes := make([]Recipe, 0, len(items))
	for i, item := range items {
		if item.Name == nil || validation.IsBlank(*item.Name) || item.Description == nil {
			return nil, apperrors.NewGenerationError(
				fmt.Sprintf("recipe %d is missing a name or description", i),
				"INCOMPLETE_RECIPE",
				nil,
			)
		}
		recipes = append(recipes, Recipe{
			Name:        strings.TrimSpace(*item.Name),
			Description: strings.TrimSpace(*item.Description),
		})
	}
	return recipes, nil
}

// parseDetails decodes recipe details. Both arrays must be present; empty is allowed.
func parseDetails(raw string) (*Details, error) {
	var payload detailsPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, apperrors.NewGenerationError(
			fmt.Sprintf("recipe details are not valid JSON (response excerpt: %q)", truncate(raw, 200)),
			"INVALID_RECIPE_DETAILS",
			err,
		)
	}
	if payload.Ingredients == nil || payload.Instructions == nil {
		return nil, apperrors.NewGenerationError("recipe details are missing ingredients or instructions", "INCOMPLETE_DETAILS", nil)
	}

	return &Details{
		Ingredients:  validation.CleanEntries(*payload.Ingredients),
		Instructions: validation.CleanEntries(*payload.Instructions),
	}, nil
}
