package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the httpmachine tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("httpmachine")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartTraversalSpan starts a span for the whole traversal.
	// Returns the context with span and the span itself.
	StartTraversalSpan(ctx context.Context, requestID, method, path string) (context.Context, trace.Span)

	// StartDecisionSpan starts a span for one decision-node evaluation.
	// The decision span should be a child of the traversal span.
	StartDecisionSpan(ctx context.Context, node string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartTraversalSpan starts a span for the whole traversal.
func (m *otelSpanManager) StartTraversalSpan(ctx context.Context, requestID, method, path string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "httpmachine.traversal",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartDecisionSpan starts a span for one decision-node evaluation.
func (m *otelSpanManager) StartDecisionSpan(ctx context.Context, node string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "httpmachine.decision."+node,
		trace.WithAttributes(
			attribute.String("node", node),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
