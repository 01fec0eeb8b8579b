package view

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/socialchef/cookmate/internal/controller"
	"github.com/socialchef/cookmate/internal/theme"
)

// RefreshSeconds is how often a page polls while something is loading.
const RefreshSeconds = 2

// Card is one recipe in the result grid.
type Card struct {
	Index       int
	Name        string
	Description string
	Image       template.URL
}

// Detail is the open recipe modal.
type Detail struct {
	Name          string
	Loading       bool
	Error         string
	Ingredients   []string
	Instructions  []string
	ImagesPending bool
	Step          Carousel
	StepImage     template.URL
	StepCaption   string
	PrevURL       string
	NextURL       string
}

// Page is everything the template renders. Building it never triggers a request.
type Page struct {
	Dark        bool
	ListLoading bool
	ListError   string
	Welcome     bool
	Cards       []Card
	Detail      *Detail
	Refresh     bool
	RefreshURL  string
}

// NewPage maps controller state to the view. step selects the carousel position and
// is clamped to the illustration set.
func NewPage(state controller.State, mode theme.Mode, step int) Page {
	p := Page{
		Dark:        mode == theme.Dark,
		ListLoading: state.ListPhase == controller.ListLoading,
		ListError:   state.ListError,
		Welcome:     state.ListPhase == controller.ListIdle,
		Refresh:     state.Loading(),
	}

	for i, r := range state.Recipes {
		p.Cards = append(p.Cards, Card{
			Index:       i,
			Name:        r.Name,
			Description: r.Description,
			Image:       imageURL(r.ImageURL),
		})
	}

	if state.DetailOpen() && state.Selected != nil {
		p.Detail = newDetail(state, step)
	}

	p.RefreshURL = "/"
	if p.Detail != nil && p.Detail.Step.Index > 0 {
		p.RefreshURL = stepURL(p.Detail.Step.Index)
	}
	return p
}

// RefreshSeconds exposes the poll interval to the template.
func (p Page) RefreshSeconds() int {
	return RefreshSeconds
}

func newDetail(state controller.State, step int) *Detail {
	d := &Detail{
		Name:          state.Selected.Name,
		Loading:       state.DetailPhase == controller.DetailLoading,
		Error:         state.DetailError,
		ImagesPending: state.ImagesPending,
	}
	if state.Details != nil {
		d.Ingredients = state.Details.Ingredients
		d.Instructions = state.Details.Instructions
	}

	if len(state.Illustrations) > 0 {
		d.Step = NewCarousel(step, len(state.Illustrations))
		d.StepImage = imageURL(state.Illustrations[d.Step.Index])
		if d.Step.Index < len(d.Instructions) {
			d.StepCaption = d.Instructions[d.Step.Index]
		}
		if d.Step.HasPrev() {
			d.PrevURL = stepURL(d.Step.Prev().Index)
		}
		if d.Step.HasNext() {
			d.NextURL = stepURL(d.Step.Next().Index)
		}
	}
	return d
}

func stepURL(index int) string {
	return fmt.Sprintf("/?step=%d", index)
}

// imageURL marks generated data URIs and https placeholders safe for src attributes.
// Anything else renders as an empty source.
func imageURL(ref string) template.URL {
	if strings.HasPrefix(ref, "data:image/png;base64,") || strings.HasPrefix(ref, "https://") {
		return template.URL(ref)
	}
	return ""
}
