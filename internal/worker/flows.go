package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/socialchef/cookmate/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Flows runs background fetch flows that outlive the request that started them.
type Flows struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	cancels map[uint64]context.CancelFunc
	next    uint64
	closed  bool
	metrics *FlowMetrics
}

func NewFlows() *Flows {
	m, err := NewFlowMetrics()
	if err != nil {
		slog.Warn("Failed to init flow metrics", "error", err)
	}
	return &Flows{cancels: make(map[uint64]context.CancelFunc), metrics: m}
}

// Start runs fn in a new goroutine under its own span. The flow keeps ctx's values but
// not its deadline or cancellation; it stops when the returned cancel func or Close is
// called. After Close, Start runs nothing and returns a no-op cancel.
func (f *Flows) Start(ctx context.Context, name string, fn func(ctx context.Context)) context.CancelFunc {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return func() {}
	}
	id := f.next
	f.next++
	flowCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f.cancels[id] = cancel
	f.wg.Add(1)
	f.mu.Unlock()

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub = hub.Clone()
	hub.Scope().SetTag("flow", name)
	flowCtx = sentry.SetHubOnContext(flowCtx, hub)

	go func() {
		start := time.Now()
		status := statusCompleted
		defer f.wg.Done()
		defer f.forget(id)
		defer func() {
			if r := recover(); r != nil {
				status = statusPanicked
				hub.RecoverWithContext(flowCtx, r)
				slog.ErrorContext(flowCtx, "Background flow panicked", "flow", name, "panic", fmt.Sprint(r))
			} else if flowCtx.Err() != nil {
				status = statusCancelled
			}
			f.metrics.RecordFlow(flowCtx, name, status, time.Since(start).Seconds())
		}()

		spanCtx, span := telemetry.Tracer("worker").Start(flowCtx, "flow:"+name,
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()
		span.SetAttributes(attribute.String("flow.name", name))

		fn(spanCtx)
	}()

	return cancel
}

func (f *Flows) forget(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cancel, ok := f.cancels[id]; ok {
		cancel()
		delete(f.cancels, id)
	}
}

// Wait blocks until every started flow has returned.
func (f *Flows) Wait() {
	f.wg.Wait()
}

// Close cancels every running flow and refuses new ones. It does not wait.
func (f *Flows) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for id, cancel := range f.cancels {
		cancel()
		delete(f.cancels, id)
	}
}
