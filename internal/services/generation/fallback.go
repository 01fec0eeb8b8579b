package generation

import (
	"context"
	"log/slog"

	apperrors "github.com/socialchef/cookmate/internal/errors"
	"github.com/socialchef/cookmate/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

// FallbackGenerator tries primary first and secondary on retryable errors.
type FallbackGenerator struct {
	primary       TextGenerator
	secondary     TextGenerator
	primaryName   string
	secondaryName string
}

func NewFallbackGenerator(primary TextGenerator, primaryName string, secondary TextGenerator, secondaryName string) *FallbackGenerator {
	return &FallbackGenerator{
		primary:       primary,
		secondary:     secondary,
		primaryName:   primaryName,
		secondaryName: secondaryName,
	}
}

func (f *FallbackGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	result, err := f.primary.GenerateJSON(ctx, prompt, schema)
	if err == nil {
		return result, nil
	}

	providerErr := ClassifyError(err, f.primaryName)

	if !IsRetryableError(err) || ctx.Err() != nil {
		slog.InfoContext(ctx, "Primary provider failed with non-retryable error, not attempting fallback",
			"provider", f.primaryName,
			"error_type", providerErr.Type,
			"error", err.Error())
		return "", err
	}

	slog.InfoContext(ctx, "Primary provider failed with retryable error, attempting fallback",
		"provider", f.primaryName,
		"fallback_provider", f.secondaryName,
		"error_type", providerErr.Type,
		"error", err.Error())

	metrics.ProviderFallbackTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from_provider", f.primaryName),
		attribute.String("to_provider", f.secondaryName),
		attribute.String("reason", providerErr.Type),
	))

	result, fallbackErr := f.secondary.GenerateJSON(ctx, prompt, schema)
	if fallbackErr == nil {
		slog.InfoContext(ctx, "Fallback provider succeeded",
			"fallback_provider", f.secondaryName,
			"primary_error_type", providerErr.Type)
		return result, nil
	}

	fallbackProviderErr := ClassifyError(fallbackErr, f.secondaryName)
	slog.ErrorContext(ctx, "Both primary and fallback providers failed",
		"primary_error_type", providerErr.Type,
		"primary_error", err.Error(),
		"fallback_error_type", fallbackProviderErr.Type,
		"fallback_error", fallbackErr.Error())

	return "", apperrors.NewGenerationError(
		"both primary and fallback providers failed",
		"PROVIDER_FALLBACK_FAILED",
		err,
	)
}
