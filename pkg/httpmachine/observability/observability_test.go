package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	enriched := EnrichLogger(logger, "req-1", "GET", "/thing")
	require.NotNil(t, enriched)
	enriched.Info("hello")

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"path":"/thing"`)
}

func TestEnrichLogger_Nil(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "req-1", "GET", "/thing"))
}

// Every log helper tolerates a nil logger.
func TestLogHelpers_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		LogTraversalStart(nil, "r", "GET", "/")
		LogTraversalComplete(nil, "r", 200, 1.0, 10)
		LogTraversalError(nil, "r", errors.New("x"), 1.0, "b13")
		LogDecision(nil, "b13", true, "b12")
		LogCapabilityError(nil, "g7", "resource_exists", errors.New("x"))
		LogCacheError(nil, "/k", "put", errors.New("x"))
	})
}

func TestLogDecision_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	LogDecision(logger, "b13_service_available", true, "b12_known_method")

	out := buf.String()
	assert.Contains(t, out, `"node":"b13_service_available"`)
	assert.Contains(t, out, `"outcome":true`)
	assert.Contains(t, out, `"next":"b12_known_method"`)
}

func TestNoopMetrics(t *testing.T) {
	var m MetricsRecorder = NoopMetrics{}
	assert.NotPanics(t, func() {
		m.RecordTraversal(context.Background(), 200, time.Millisecond)
		m.RecordDecision(context.Background(), "b13", true)
		m.RecordAbort(context.Background(), "cancelled")
	})
}

func TestNoopSpanManager(t *testing.T) {
	var s SpanManager = NoopSpanManager{}
	ctx, span := s.StartTraversalSpan(context.Background(), "r", "GET", "/")
	assert.NotNil(t, ctx)
	assert.NotNil(t, span)

	_, decision := s.StartDecisionSpan(ctx, "b13")
	assert.NotPanics(t, func() {
		s.EndSpanWithError(decision, errors.New("x"))
		s.EndSpanWithError(span, nil)
		s.AddSpanEvent(ctx, "event")
	})
}

func TestNewMetricsRecorder(t *testing.T) {
	m := NewMetricsRecorder()
	require.NotNil(t, m)
	assert.NotPanics(t, func() {
		m.RecordTraversal(context.Background(), 200, time.Millisecond)
	})
}
