// Package recipe turns generative model output into recipes, details and image
// references.
package recipe

// MaxRecipes is the largest list kept from one suggestion response.
const MaxRecipes = 6

// Recipe is one suggestion. ImageURL is empty until its cover image resolves.
type Recipe struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Details is the expanded content of a selected recipe. Both slices are non-nil.
type Details struct {
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}
