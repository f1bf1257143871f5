package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest installs a tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Rebind the package-level tracer to the test provider.
	tracer = otel.Tracer("httpmachine")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		tracer = otel.Tracer("httpmachine")
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartTraversalSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()
	ctx := context.Background()
	newCtx, span := m.StartTraversalSpan(ctx, "req-1", "GET", "/widgets")
	require.NotNil(t, span)
	assert.NotEqual(t, ctx, newCtx)

	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	s := spans[0]
	assert.Equal(t, "httpmachine.traversal", s.Name)

	var requestID, method, path string
	for _, attr := range s.Attributes {
		switch attr.Key {
		case "request.id":
			requestID = attr.Value.AsString()
		case "http.method":
			method = attr.Value.AsString()
		case "http.path":
			path = attr.Value.AsString()
		}
	}
	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "GET", method)
	assert.Equal(t, "/widgets", path)
}

func TestStartDecisionSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()
	ctx, parent := m.StartTraversalSpan(context.Background(), "req-1", "GET", "/")
	_, child := m.StartDecisionSpan(ctx, "b13_service_available")

	child.End()
	parent.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	// The sync exporter records spans in end order.
	assert.Equal(t, "httpmachine.decision.b13_service_available", spans[0].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	t.Run("records error status", func(t *testing.T) {
		exporter.Reset()
		_, span := m.StartDecisionSpan(context.Background(), "g7_resource_exists")
		m.EndSpanWithError(span, errors.New("backend down"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		require.Len(t, spans[0].Events, 1)
		assert.Equal(t, "exception", spans[0].Events[0].Name)
	})

	t.Run("sets ok status on success", func(t *testing.T) {
		exporter.Reset()
		_, span := m.StartDecisionSpan(context.Background(), "g7_resource_exists")
		m.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("tolerates nil span", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.EndSpanWithError(nil, errors.New("x"))
		})
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()
	ctx, span := m.StartTraversalSpan(context.Background(), "req-1", "GET", "/")

	m.AddSpanEvent(ctx, "terminal reached", attribute.Int("status", 200))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "terminal reached", spans[0].Events[0].Name)
}

func TestAddSpanEvent_NoSpanInContext(t *testing.T) {
	_, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()
	assert.NotPanics(t, func() {
		m.AddSpanEvent(context.Background(), "orphan event")
	})
}
