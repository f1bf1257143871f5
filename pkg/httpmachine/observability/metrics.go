package observability

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records httpmachine metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordTraversal records a completed traversal with its terminal status.
	RecordTraversal(ctx context.Context, status int, duration time.Duration)

	// RecordDecision records one decision-node evaluation.
	RecordDecision(ctx context.Context, node string, outcome bool)

	// RecordAbort records a traversal that did not reach a terminal status.
	RecordAbort(ctx context.Context, reason string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	traversals       metric.Int64Counter
	traversalLatency metric.Float64Histogram
	decisions        metric.Int64Counter
	aborts           metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("httpmachine")

	traversals, err := meter.Int64Counter("httpmachine.traversals",
		metric.WithDescription("Number of completed traversals by terminal status"),
	)
	if err != nil {
		return nil, err
	}

	traversalLatency, err := meter.Float64Histogram("httpmachine.traversal.latency_ms",
		metric.WithDescription("Traversal latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	decisions, err := meter.Int64Counter("httpmachine.decisions",
		metric.WithDescription("Number of decision-node evaluations"),
	)
	if err != nil {
		return nil, err
	}

	aborts, err := meter.Int64Counter("httpmachine.aborts",
		metric.WithDescription("Number of aborted traversals"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		traversals:       traversals,
		traversalLatency: traversalLatency,
		decisions:        decisions,
		aborts:           aborts,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordTraversal records a completed traversal.
func (m *otelMetrics) RecordTraversal(ctx context.Context, status int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("status", strconv.Itoa(status)),
	}
	m.traversals.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.traversalLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordDecision records a decision-node evaluation.
func (m *otelMetrics) RecordDecision(ctx context.Context, node string, outcome bool) {
	m.decisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("node", node),
		attribute.Bool("outcome", outcome),
	))
}

// RecordAbort records an aborted traversal.
func (m *otelMetrics) RecordAbort(ctx context.Context, reason string) {
	m.aborts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}
