package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	meter = otel.Meter("cookmate/business")

	// Recipe metrics
	RecipeListRequestsTotal   metric.Int64Counter     = noop.Int64Counter{}
	RecipeListDuration        metric.Float64Histogram = noop.Float64Histogram{}
	RecipeDetailRequestsTotal metric.Int64Counter     = noop.Int64Counter{}
	AIGenerationDuration      metric.Float64Histogram = noop.Float64Histogram{}

	// Image metrics
	ImageGenerationsTotal metric.Int64Counter     = noop.Int64Counter{}
	ImageFallbacksTotal   metric.Int64Counter     = noop.Int64Counter{}
	ImageGenerationTime   metric.Float64Histogram = noop.Float64Histogram{}

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter     = noop.Int64Counter{}
	ExternalAPIDuration   metric.Float64Histogram = noop.Float64Histogram{}

	// Provider fallback metrics
	ProviderFallbackTotal metric.Int64Counter = noop.Int64Counter{}

	// Results dropped because the selection moved on
	StaleResultsTotal metric.Int64Counter = noop.Int64Counter{}
)

// Init replaces the no-op instruments with ones backed by the global meter provider.
func Init() error {
	var err error

	RecipeListRequestsTotal, err = meter.Int64Counter(
		"recipe.list.requests.total",
		metric.WithDescription("Total number of recipe list requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	RecipeListDuration, err = meter.Float64Histogram(
		"recipe.list.duration",
		metric.WithDescription("Duration of the ingredient submission flow including cover images"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	RecipeDetailRequestsTotal, err = meter.Int64Counter(
		"recipe.detail.requests.total",
		metric.WithDescription("Total number of recipe detail requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	AIGenerationDuration, err = meter.Float64Histogram(
		"ai.generation.duration",
		metric.WithDescription("Duration of structured text generation calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	ImageGenerationsTotal, err = meter.Int64Counter(
		"image.generations.total",
		metric.WithDescription("Total number of image generation requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ImageFallbacksTotal, err = meter.Int64Counter(
		"image.fallbacks.total",
		metric.WithDescription("Image requests answered with a placeholder"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ImageGenerationTime, err = meter.Float64Histogram(
		"image.generation.duration",
		metric.WithDescription("Duration of single image generation calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	// External API metrics
	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	// Provider fallback metrics
	ProviderFallbackTotal, err = meter.Int64Counter(
		"provider.fallback.total",
		metric.WithDescription("Total number of provider fallback events"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	StaleResultsTotal, err = meter.Int64Counter(
		"controller.stale_results.total",
		metric.WithDescription("Detail or image results discarded because the selection changed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	return nil
}
