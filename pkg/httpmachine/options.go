package httpmachine

import (
	"log/slog"

	"github.com/randalmurphal/httpmachine/pkg/httpmachine/cache"
	"github.com/randalmurphal/httpmachine/pkg/httpmachine/observability"
)

// runConfig holds configuration for one traversal.
type runConfig struct {
	maxTransitions     int
	requestID          string
	logger             *slog.Logger
	cacheStore         cache.Store
	metrics            observability.MetricsRecorder
	spans              observability.SpanManager
	tracingEnabled     bool
	defaultContentType string
	defaultCharset     string
}

// defaultRunConfig returns the default traversal configuration.
func defaultRunConfig() runConfig {
	return runConfig{
		maxTransitions:     100,
		metrics:            observability.NoopMetrics{},
		spans:              observability.NoopSpanManager{},
		defaultContentType: "application/json",
		defaultCharset:     "ISO-8859-1",
	}
}

// RunOption configures traversal behavior.
type RunOption func(*runConfig)

// WithMaxTransitions sets the maximum number of graph transitions.
// Default: 100
//
// The bound is a backstop against a mis-configured graph; if a traversal
// exceeds it, Run returns ErrMaxTransitions.
func WithMaxTransitions(n int) RunOption {
	return func(c *runConfig) {
		if n > 0 {
			c.maxTransitions = n
		}
	}
}

// WithRequestID pins the traversal's request ID instead of generating one.
// Useful for propagating an upstream correlation ID.
func WithRequestID(id string) RunOption {
	return func(c *runConfig) {
		c.requestID = id
	}
}

// WithLogger sets the base logger for the traversal. The engine enriches
// it with the request ID, method and path. When unset the engine emits no
// logs; Context.Logger still returns slog.Default for resource code.
func WithLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithValidatorCache attaches a validator cache. After a successful GET or
// HEAD the engine records the response's ETag and Last-Modified under the
// request path; mutations invalidate the entry. Cache failures are logged
// and never affect the response.
func WithValidatorCache(store cache.Store) RunOption {
	return func(c *runConfig) {
		c.cacheStore = store
	}
}

// WithMetrics enables OpenTelemetry metrics for traversals, decisions and
// aborts.
func WithMetrics() RunOption {
	return func(c *runConfig) {
		c.metrics = observability.NewMetricsRecorder()
	}
}

// WithMetricsRecorder sets a custom metrics recorder, mainly for tests.
func WithMetricsRecorder(m observability.MetricsRecorder) RunOption {
	return func(c *runConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing enables OpenTelemetry spans: one per traversal and one per
// decision node.
func WithTracing() RunOption {
	return func(c *runConfig) {
		c.spans = observability.NewSpanManager()
		c.tracingEnabled = true
	}
}

// WithDefaultContentType overrides the Content-Type used when negotiation
// selected nothing. Default: application/json.
func WithDefaultContentType(ct string) RunOption {
	return func(c *runConfig) {
		if ct != "" {
			c.defaultContentType = ct
		}
	}
}

// WithDefaultCharset overrides the charset stamped on the Content-Type when
// negotiation selected none. Default: ISO-8859-1.
func WithDefaultCharset(cs string) RunOption {
	return func(c *runConfig) {
		if cs != "" {
			c.defaultCharset = cs
		}
	}
}
