// Package controller drives one session's recipe list and detail flows.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/socialchef/cookmate/internal/errors"
	"github.com/socialchef/cookmate/internal/metrics"
	"github.com/socialchef/cookmate/internal/sentry"
	"github.com/socialchef/cookmate/internal/services/recipe"
	"github.com/socialchef/cookmate/internal/theme"
	"github.com/socialchef/cookmate/internal/validation"
	"github.com/socialchef/cookmate/internal/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Adapter is the subset of recipe.Adapter the controller drives.
type Adapter interface {
	RequestRecipeList(ctx context.Context, ingredients string) ([]recipe.Recipe, error)
	RequestRecipeDetails(ctx context.Context, name string) (*recipe.Details, error)
	RequestCoverImages(ctx context.Context, recipes []recipe.Recipe) []recipe.Recipe
	RequestStepImages(ctx context.Context, instructions []string) []string
}

type ThemeToggler interface {
	Toggle(ctx context.Context) (theme.Mode, error)
}

// Controller owns a session's State. Every detail flow is tagged with the selection
// that started it; results carrying any other tag are dropped.
type Controller struct {
	adapter Adapter
	theme   ThemeToggler
	flows   *worker.Flows

	mu           sync.Mutex
	state        State
	selectionTag string
	cancelDetail context.CancelFunc
	closed       bool
}

func New(adapter Adapter, toggler ThemeToggler) *Controller {
	return &Controller{
		adapter: adapter,
		theme:   toggler,
		flows:   worker.NewFlows(),
		state:   initialState(),
	}
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// SubmitIngredients runs the list flow inline. It returns false without doing anything
// when text holds no ingredients or a list fetch is already running.
func (c *Controller) SubmitIngredients(ctx context.Context, text string) bool {
	ingredients, ok := c.beginList(text)
	if !ok {
		return false
	}
	c.runList(ctx, ingredients)
	return true
}

// SubmitIngredientsAsync enters recipes-loading and runs the fetch in the background.
func (c *Controller) SubmitIngredientsAsync(ctx context.Context, text string) bool {
	ingredients, ok := c.beginList(text)
	if !ok {
		return false
	}
	c.flows.Start(ctx, "recipe_list", func(ctx context.Context) {
		c.runList(ctx, ingredients)
	})
	return true
}

func (c *Controller) beginList(text string) (string, bool) {
	if validation.IsBlank(text) {
		return "", false
	}
	items := validation.NormalizeIngredients(text)
	if len(items) == 0 {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.ListPhase == ListLoading {
		return "", false
	}
	c.dropSelectionLocked()
	c.state.ListPhase = ListLoading
	c.state.Recipes = nil
	c.state.ListError = ""
	return validation.JoinIngredients(items), true
}

func (c *Controller) runList(ctx context.Context, ingredients string) {
	start := time.Now()
	outcome := "ready"
	defer func() {
		metrics.RecipeListDuration.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("outcome", outcome)))
	}()

	recipes, err := c.adapter.RequestRecipeList(ctx, ingredients)
	if err != nil {
		outcome = "error"
		slog.ErrorContext(ctx, "Recipe list request failed", "error", err)
		sentry.CaptureError(ctx, err)
		c.finishList(nil, MessageRecipesFailed)
		return
	}
	if len(recipes) == 0 {
		outcome = "empty"
		c.finishList(nil, MessageNoRecipes)
		return
	}

	withImages := c.adapter.RequestCoverImages(ctx, recipes)
	slog.InfoContext(ctx, "Recipe list ready", "count", len(withImages))
	c.finishList(withImages, "")
}

func (c *Controller) finishList(recipes []recipe.Recipe, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if message != "" {
		c.state.ListPhase = ListError
		c.state.ListError = message
		c.state.Recipes = nil
		return
	}
	c.state.ListPhase = ListReady
	c.state.Recipes = recipes
}

// RecipeAt returns the recipe at index in the current list.
func (c *Controller) RecipeAt(index int) (recipe.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.state.Recipes) {
		return recipe.Recipe{}, apperrors.NewNotFoundError(
			fmt.Sprintf("no recipe at index %d", index),
			"RECIPE_NOT_FOUND",
			"Submit ingredients and pick one of the listed recipes.",
		)
	}
	return c.state.Recipes[index], nil
}

// SelectRecipe opens the detail view for r and runs the detail flow inline.
func (c *Controller) SelectRecipe(ctx context.Context, r recipe.Recipe) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	tag := c.beginDetailLocked(r)
	ctx, cancel := context.WithCancel(ctx)
	c.cancelDetail = cancel
	c.mu.Unlock()

	defer cancel()
	c.runDetail(ctx, tag, r)
}

// SelectRecipeAsync opens the detail view for r and runs the detail flow in the background.
func (c *Controller) SelectRecipeAsync(ctx context.Context, r recipe.Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	tag := c.beginDetailLocked(r)
	c.cancelDetail = c.flows.Start(ctx, "recipe_detail", func(ctx context.Context) {
		c.runDetail(ctx, tag, r)
	})
}

func (c *Controller) beginDetailLocked(r recipe.Recipe) string {
	c.dropSelectionLocked()
	c.selectionTag = uuid.NewString()
	selected := r
	c.state.Selected = &selected
	c.state.DetailPhase = DetailLoading
	return c.selectionTag
}

// dropSelectionLocked cancels the running detail flow and clears the detail view.
func (c *Controller) dropSelectionLocked() {
	if c.cancelDetail != nil {
		c.cancelDetail()
		c.cancelDetail = nil
	}
	c.selectionTag = ""
	c.state.clearDetail()
}

func (c *Controller) runDetail(ctx context.Context, tag string, r recipe.Recipe) {
	details, err := c.adapter.RequestRecipeDetails(ctx, r.Name)

	c.mu.Lock()
	if !c.currentLocked(ctx, tag, "details") {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.state.DetailPhase = DetailError
		c.state.DetailError = fmt.Sprintf(messageDetailsFailed, r.Name)
		c.mu.Unlock()
		slog.ErrorContext(ctx, "Recipe details request failed", "recipe", r.Name, "error", err)
		sentry.CaptureError(ctx, err)
		return
	}
	if len(details.Instructions) == 0 {
		c.state.DetailPhase = DetailError
		c.state.DetailError = fmt.Sprintf(messageNoInstructions, r.Name)
		c.mu.Unlock()
		slog.WarnContext(ctx, "Recipe details had no instructions", "recipe", r.Name)
		return
	}
	c.state.Details = details
	c.state.DetailPhase = DetailReady
	c.state.ImagesPending = true
	instructions := append([]string(nil), details.Instructions...)
	c.mu.Unlock()

	illustrations := c.adapter.RequestStepImages(ctx, instructions)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.currentLocked(ctx, tag, "illustrations") {
		return
	}
	c.state.Illustrations = illustrations
	c.state.ImagesPending = false
}

func (c *Controller) currentLocked(ctx context.Context, tag, kind string) bool {
	if c.selectionTag == tag {
		return true
	}
	metrics.StaleResultsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	slog.DebugContext(ctx, "Discarding stale result", "kind", kind)
	return false
}

// CloseDetail clears the detail view and selection. The list is untouched.
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropSelectionLocked()
}

// ToggleTheme flips the shared theme preference. Fetch state is untouched.
func (c *Controller) ToggleTheme(ctx context.Context) (theme.Mode, error) {
	return c.theme.Toggle(ctx)
}

// Wait blocks until every background flow has returned.
func (c *Controller) Wait() {
	c.flows.Wait()
}

// Close cancels every running flow. Later async calls start nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	if c.cancelDetail != nil {
		c.cancelDetail()
		c.cancelDetail = nil
	}
	c.mu.Unlock()
	c.flows.Close()
}
