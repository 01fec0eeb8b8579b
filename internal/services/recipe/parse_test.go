package recipe

import (
	"testing"

	apperrors "github.com/socialchef/cookmate/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `[{"a":1}]`, `[{"a":1}]`},
		{"whitespace", "\n  {\"a\":1}  \n", `{"a":1}`},
		{"json fence", "```json\n[1,2]\n```", `[1,2]`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence with prose", "Here you go:\n```json\n[]\n```\nEnjoy!", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.raw))
		})
	}
}

func TestParseRecipeList(t *testing.T) {
	recipes, err := parseRecipeList("```json\n[{\"name\":\"Chicken Fried Rice\",\"description\":\"Quick stir fry.\"},{\"name\":\" Broccoli Bake \",\"description\":\"\"}]\n```")

	require.NoError(t, err)
	assert.Equal(t, []Recipe{
		{Name: "Chicken Fried Rice", Description: "Quick stir fry."},
		{Name: "Broccoli Bake", Description: ""},
	}, recipes)
}

func TestParseRecipeListTruncates(t *testing.T) {
	raw := `[
		{"name":"1","description":"d"},{"name":"2","description":"d"},{"name":"3","description":"d"},
		{"name":"4","description":"d"},{"name":"5","description":"d"},{"name":"6","description":"d"},
		{"name":"7","description":"d"},{"name":"8","description":"d"}
	]`

	recipes, err := parseRecipeList(raw)

	require.NoError(t, err)
	assert.Len(t, recipes, MaxRecipes)
	assert.Equal(t, "6", recipes[5].Name)
}

func TestParseRecipeListEmpty(t *testing.T) {
	recipes, err := parseRecipeList(`[]`)

	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestParseRecipeListInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		code string
	}{
		{"not json", "I'm sorry, I can't help with that.", "INVALID_RECIPE_LIST"},
		{"object instead of array", `{"name":"x"}`, "INVALID_RECIPE_LIST"},
		{"missing name", `[{"description":"d"}]`, "INCOMPLETE_RECIPE"},
		{"blank name", `[{"name":"  ","description":"d"}]`, "INCOMPLETE_RECIPE"},
		{"missing description", `[{"name":"Soup"}]`, "INCOMPLETE_RECIPE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRecipeList(tt.raw)
			require.Error(t, err)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrorTypeGeneration, appErr.Type)
			assert.Equal(t, tt.code, appErr.Code())
		})
	}
}

func TestParseDetails(t *testing.T) {
	details, err := parseDetails(`{"ingredients":["2 eggs","N/A",""],"instructions":["Whisk the eggs.","  Cook gently. "]}`)

	require.NoError(t, err)
	assert.Equal(t, []string{"2 eggs"}, details.Ingredients)
	assert.Equal(t, []string{"Whisk the eggs.", "Cook gently."}, details.Instructions)
}

func TestParseDetailsEmptyArraysAreValid(t *testing.T) {
	details, err := parseDetails(`{"ingredients":[],"instructions":[]}`)

	require.NoError(t, err)
	assert.NotNil(t, details.Ingredients)
	assert.NotNil(t, details.Instructions)
	assert.Empty(t, details.Instructions)
}

func TestParseDetailsInvalid(t *testing.T) {
	for _, raw := range []string{
		`not json`,
		`{"ingredients":["x"]}`,
		`{"ingredients":null,"instructions":["x"]}`,
		`{"ingredients":["x"],"instructions":"stir"}`,
	} {
		_, err := parseDetails(raw)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeGeneration), "raw=%s", raw)
	}
}
