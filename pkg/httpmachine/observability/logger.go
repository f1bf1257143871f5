// Package observability provides structured logging, metrics, and tracing
// for httpmachine traversals.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
)

// EnrichLogger adds traversal context to a logger.
// Returns a new logger with request_id, method, and path fields.
func EnrichLogger(logger *slog.Logger, requestID, method, path string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", path),
	)
}

// LogTraversalStart logs the start of a decision-graph traversal.
func LogTraversalStart(logger *slog.Logger, requestID, method, path string) {
	if logger == nil {
		return
	}
	logger.Debug("traversal starting",
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", path),
	)
}

// LogTraversalComplete logs a traversal that reached a terminal status.
func LogTraversalComplete(logger *slog.Logger, requestID string, status int, durationMs float64, decisions int) {
	if logger == nil {
		return
	}
	logger.Info("traversal completed",
		slog.String("request_id", requestID),
		slog.Int("status", status),
		slog.Float64("duration_ms", durationMs),
		slog.Int("decisions", decisions),
	)
}

// LogTraversalError logs a traversal that was aborted.
func LogTraversalError(logger *slog.Logger, requestID string, err error, durationMs float64, lastNode string) {
	if logger == nil {
		return
	}
	logger.Error("traversal aborted",
		slog.String("request_id", requestID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
		slog.String("last_node", lastNode),
	)
}

// LogDecision logs one decision-node evaluation.
func LogDecision(logger *slog.Logger, node string, outcome bool, next string) {
	if logger == nil {
		return
	}
	logger.Debug("decision evaluated",
		slog.String("node", node),
		slog.Bool("outcome", outcome),
		slog.String("next", next),
	)
}

// LogCapabilityError logs a capability query failure (surfaced as a 500).
func LogCapabilityError(logger *slog.Logger, node, capability string, err error) {
	if logger == nil {
		return
	}
	logger.Error("capability query failed",
		slog.String("node", node),
		slog.String("capability", capability),
		slog.String("error", err.Error()),
	)
}

// LogCacheError logs a validator-cache failure (non-fatal).
func LogCacheError(logger *slog.Logger, key, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("validator cache failed",
		slog.String("key", key),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}
