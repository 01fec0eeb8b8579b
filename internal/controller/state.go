package controller

import (
	"github.com/socialchef/cookmate/internal/services/recipe"
)

type ListPhase string

const (
	ListIdle    ListPhase = "idle"
	ListLoading ListPhase = "recipes-loading"
	ListReady   ListPhase = "recipes-ready"
	ListError   ListPhase = "recipes-error"
)

type DetailPhase string

const (
	DetailNone    DetailPhase = "none"
	DetailLoading DetailPhase = "detail-loading"
	DetailReady   DetailPhase = "detail-ready"
	DetailError   DetailPhase = "detail-error"
)

// User-facing messages.
const (
	MessageNoRecipes      = "Could not find any recipes. Try different ingredients."
	MessageRecipesFailed  = "Failed to fetch recipes. Please check your connection and API key."
	messageDetailsFailed  = "Failed to fetch details for %s."
	messageNoInstructions = "No cooking instructions found for %s."
)

// State is what a session sees. The list and detail phases move independently.
type State struct {
	ListPhase ListPhase       `json:"listPhase"`
	Recipes   []recipe.Recipe `json:"recipes"`
	ListError string          `json:"listError,omitempty"`

	DetailPhase   DetailPhase     `json:"detailPhase"`
	Selected      *recipe.Recipe  `json:"selected,omitempty"`
	Details       *recipe.Details `json:"details,omitempty"`
	Illustrations []string        `json:"illustrations"`
	ImagesPending bool            `json:"imagesPending"`
	DetailError   string          `json:"detailError,omitempty"`
}

func initialState() State {
	return State{ListPhase: ListIdle, DetailPhase: DetailNone}
}

// Loading reports whether any fetch is still running.
func (s State) Loading() bool {
	return s.ListPhase == ListLoading || s.DetailPhase == DetailLoading || s.ImagesPending
}

// DetailOpen reports whether the detail modal is showing.
func (s State) DetailOpen() bool {
	return s.DetailPhase != DetailNone
}

func (s State) clone() State {
	out := s
	if s.Recipes != nil {
		out.Recipes = append([]recipe.Recipe(nil), s.Recipes...)
	}
	if s.Selected != nil {
		sel := *s.Selected
		out.Selected = &sel
	}
	if s.Details != nil {
		out.Details = &recipe.Details{
			Ingredients:  append([]string{}, s.Details.Ingredients...),
			Instructions: append([]string{}, s.Details.Instructions...),
		}
	}
	if s.Illustrations != nil {
		out.Illustrations = append([]string(nil), s.Illustrations...)
	}
	return out
}

func (s *State) clearDetail() {
	s.DetailPhase = DetailNone
	s.Selected = nil
	s.Details = nil
	s.Illustrations = nil
	s.ImagesPending = false
	s.DetailError = ""
}
