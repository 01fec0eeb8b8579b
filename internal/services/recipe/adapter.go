package recipe

import (
	"context"
	"log/slog"

	apperrors "github.com/socialchef/cookmate/internal/errors"
	"github.com/socialchef/cookmate/internal/metrics"
	"github.com/socialchef/cookmate/internal/services/ai"
	"github.com/socialchef/cookmate/internal/services/generation"
	"github.com/socialchef/cookmate/internal/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
)

// DefaultImageConcurrency bounds image fan-out when no option is given.
const DefaultImageConcurrency = 8

// Adapter builds prompts, calls the generative backends and shapes their output.
type Adapter struct {
	text        generation.TextGenerator
	images      generation.ImageGenerator
	limiter     *rate.Limiter
	concurrency int
	seed        func() string
}

type Option func(*Adapter)

// WithImageRate caps image requests per second. Zero or less disables the limit.
func WithImageRate(perSecond float64) Option {
	return func(a *Adapter) {
		if perSecond > 0 {
			burst := int(perSecond)
			if burst < 1 {
				burst = 1
			}
			a.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithImageConcurrency bounds how many image requests one fan-out keeps in flight.
func WithImageConcurrency(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithSeed replaces the source of step placeholder seeds.
func WithSeed(fn func() string) Option {
	return func(a *Adapter) {
		a.seed = fn
	}
}

func NewAdapter(text generation.TextGenerator, images generation.ImageGenerator, opts ...Option) *Adapter {
	a := &Adapter{
		text:        text,
		images:      images,
		concurrency: DefaultImageConcurrency,
		seed:        randomSeed,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RequestRecipeList asks for up to MaxRecipes suggestions for ingredients.
func (a *Adapter) RequestRecipeList(ctx context.Context, ingredients string) ([]Recipe, error) {
	status := "success"
	defer func() {
		metrics.RecipeListRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}()

	raw, err := a.text.GenerateJSON(ctx, ai.BuildRecipeListPrompt(ingredients), ai.RecipeListSchema())
	if err != nil {
		status = "error"
		return nil, apperrors.NewGenerationError("recipe list request failed", "RECIPE_LIST_FAILED", err)
	}

	recipes, err := parseRecipeList(raw)
	if err != nil {
		status = "invalid"
		return nil, err
	}
	return recipes, nil
}

// RequestRecipeDetails asks for the ingredients and steps of the named recipe.
func (a *Adapter) RequestRecipeDetails(ctx context.Context, name string) (*Details, error) {
	status := "success"
	defer func() {
		metrics.RecipeDetailRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}()

	raw, err := a.text.GenerateJSON(ctx, ai.BuildRecipeDetailsPrompt(name), ai.RecipeDetailsSchema())
	if err != nil {
		status = "error"
		return nil, apperrors.NewGenerationError("recipe details request failed", "RECIPE_DETAILS_FAILED", err)
	}

	details, err := parseDetails(raw)
	if err != nil {
		status = "invalid"
		return nil, err
	}
	return details, nil
}

// RequestCoverImage never fails: backend errors yield CoverPlaceholder(name).
func (a *Adapter) RequestCoverImage(ctx context.Context, name string) string {
	ref, ok := a.generateImage(ctx, "cover", ai.BuildCoverImagePrompt(name), ai.CoverAspectRatio)
	if !ok {
		return CoverPlaceholder(name)
	}
	return ref
}

// RequestStepImage never fails: backend errors yield a fresh StepPlaceholder.
func (a *Adapter) RequestStepImage(ctx context.Context, instruction string) string {
	ref, ok := a.generateImage(ctx, "step", ai.BuildStepImagePrompt(instruction), ai.StepAspectRatio)
	if !ok {
		return StepPlaceholder(a.seed())
	}
	return ref
}

// RequestCoverImages returns a copy of recipes with ImageURL set, in input order.
func (a *Adapter) RequestCoverImages(ctx context.Context, recipes []Recipe) []Recipe {
	return worker.Map(ctx, a.concurrency, len(recipes), func(ctx context.Context, i int) Recipe {
		r := recipes[i]
		r.ImageURL = a.RequestCoverImage(ctx, r.Name)
		return r
	})
}

// RequestStepImages returns one image reference per instruction, index-aligned.
func (a *Adapter) RequestStepImages(ctx context.Context, instructions []string) []string {
	return worker.Map(ctx, a.concurrency, len(instructions), func(ctx context.Context, i int) string {
		return a.RequestStepImage(ctx, instructions[i])
	})
}

func (a *Adapter) generateImage(ctx context.Context, kind, prompt, aspectRatio string) (string, bool) {
	kindAttr := attribute.String("kind", kind)
	metrics.ImageGenerationsTotal.Add(ctx, 1, metric.WithAttributes(kindAttr))

	fallback := func(reason string, err error) (string, bool) {
		metrics.ImageFallbacksTotal.Add(ctx, 1, metric.WithAttributes(kindAttr, attribute.String("reason", reason)))
		slog.WarnContext(ctx, "Image generation failed, using placeholder",
			"kind", kind,
			"reason", reason,
			"error", err)
		return "", false
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return fallback("rate_limit_wait", err)
		}
	}

	png, err := a.images.GenerateImage(ctx, prompt, generation.ImageOptions{
		AspectRatio: aspectRatio,
		MIMEType:    ai.ImageMIMEType,
	})
	if err != nil {
		return fallback(generation.ClassifyError(err, "gemini").Type, err)
	}
	return DataURI(png), true
}
