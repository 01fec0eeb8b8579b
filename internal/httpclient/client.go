package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/socialchef/cookmate/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTransport is the base transport used by the instrumented client.
var DefaultTransport = http.DefaultTransport

// DefaultTimeout bounds a single upstream call. Image generation is the slowest one.
const DefaultTimeout = 120 * time.Second

type contextKey string

const providerKey contextKey = "httpclient.provider"

// WithProvider tags outgoing requests made with ctx with an upstream provider name.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, providerKey, provider)
}

// ProviderFrom returns the provider name set by WithProvider, or "unknown".
func ProviderFrom(ctx context.Context) string {
	if provider, ok := ctx.Value(providerKey).(string); ok && provider != "" {
		return provider
	}
	return "unknown"
}

// providerTransport annotates spans and records call counts and latency per provider.
type providerTransport struct {
	base http.RoundTripper
}

func (t *providerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	provider := ProviderFrom(ctx)
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("provider", provider))

	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	status := "error"
	if err == nil {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("status", status),
	)
	metrics.ExternalAPICallsTotal.Add(ctx, 1, attrs)
	metrics.ExternalAPIDuration.Record(ctx, time.Since(start).Seconds(), attrs)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP status %d", resp.StatusCode))
	}
	return resp, nil
}

func newOtelTransport(base http.RoundTripper) http.RoundTripper {
	return otelhttp.NewTransport(&providerTransport{base: base},
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			if provider, ok := r.Context().Value(providerKey).(string); ok && provider != "" {
				return fmt.Sprintf("%s: %s %s", provider, r.Method, r.URL.Path)
			}
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
	)
}

// New returns an instrumented client. A zero timeout uses DefaultTimeout.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Transport: newOtelTransport(DefaultTransport),
		Timeout:   timeout,
	}
}
