package worker

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("cookmate/worker")
)

// Flow outcomes.
const (
	statusCompleted = "completed"
	statusCancelled = "cancelled"
	statusPanicked  = "panicked"
)

type FlowMetrics struct {
	flowCounter  metric.Int64Counter
	flowDuration metric.Float64Histogram
}

func NewFlowMetrics() (*FlowMetrics, error) {
	flowCounter, err := meter.Int64Counter(
		"worker.flows.total",
		metric.WithDescription("Total number of background flows finished"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	flowDuration, err := meter.Float64Histogram(
		"worker.flow.duration",
		metric.WithDescription("Duration of background flows"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 30, 60, 120),
	)
	if err != nil {
		return nil, err
	}

	return &FlowMetrics{
		flowCounter:  flowCounter,
		flowDuration: flowDuration,
	}, nil
}

func (m *FlowMetrics) RecordFlow(ctx context.Context, name, status string, duration float64) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("flow.name", name),
	}

	m.flowCounter.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.String("status", status))...))
	m.flowDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
}
