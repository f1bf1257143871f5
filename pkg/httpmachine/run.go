package httpmachine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/randalmurphal/httpmachine/pkg/httpmachine/cache"
	"github.com/randalmurphal/httpmachine/pkg/httpmachine/observability"
)

// Run evaluates one request against a resource and produces the response
// intent. The traversal starts at the top of the decision graph and follows
// decision outcomes until a terminal status is reached.
//
// Each resource capability is consulted at most once per traversal; its
// answer is reused wherever the graph asks again. A capability may force a
// terminal status with ForceStatus. Any other capability error terminates
// the traversal with a 500 response and the wrapped error.
//
// Cancelling ctx aborts the traversal before the next capability call; Run
// then returns a nil response and a CancellationError.
func Run(ctx context.Context, res Resource, req *Request, opts ...RunOption) (*Response, error) {
	if res == nil {
		return nil, ErrNilResource
	}
	if req == nil {
		return nil, ErrNilRequest
	}

	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	cx := buildContext(ctx, res, req, &cfg)
	logger := cx.logger

	spanCtx, span := cfg.spans.StartTraversalSpan(cx, cx.requestID, req.Method, req.Path)
	if cfg.tracingEnabled {
		cx.Context = spanCtx
	}

	observability.LogTraversalStart(logger, cx.requestID, req.Method, req.Path)
	start := time.Now()

	status, runErr := traverse(cx, &cfg)
	if runErr != nil {
		var cancelled *CancellationError
		if errors.As(runErr, &cancelled) {
			cfg.metrics.RecordAbort(cx, "cancelled")
			observability.LogTraversalError(logger, cx.requestID, runErr, msSince(start), string(cancelled.Node))
			cfg.spans.EndSpanWithError(span, runErr)
			return nil, runErr
		}
		var graphErr *GraphError
		if errors.As(runErr, &graphErr) {
			cfg.metrics.RecordAbort(cx, "graph_fault")
			observability.LogTraversalError(logger, cx.requestID, runErr, msSince(start), string(graphErr.Node))
			cfg.spans.EndSpanWithError(span, runErr)
			return nil, runErr
		}
		// Capability failure: the client still gets a 500.
		status = 500
	}

	cx.Response.Status = status

	if err := finalize(cx, &cfg); err != nil {
		if runErr == nil {
			runErr = err
		}
		cx.Response.Status = finalizeStatus(err)
	}

	updateValidatorCache(cx)

	if err := cx.finishRequest(); err != nil {
		observability.LogCapabilityError(logger, "finish", "finish_request", err)
	}

	cfg.metrics.RecordTraversal(cx, cx.Response.Status, time.Since(start))
	observability.LogTraversalComplete(logger, cx.requestID, cx.Response.Status, msSince(start), len(cx.memo))
	cfg.spans.EndSpanWithError(span, runErr)

	return cx.Response, runErr
}

// traverse walks the decision graph to a terminal status.
func traverse(cx *Context, cfg *runConfig) (int, error) {
	current := entryNode
	for transitions := 0; ; transitions++ {
		if transitions >= cfg.maxTransitions {
			return 0, &GraphError{Node: current, Err: fmt.Errorf("%w: %d", ErrMaxTransitions, cfg.maxTransitions)}
		}
		if err := cx.Err(); err != nil {
			return 0, &CancellationError{Node: current, Cause: err}
		}

		if current == nodeA3 {
			return runOptions(cx)
		}

		n, ok := decisionGraph[current]
		if !ok {
			return 0, &GraphError{Node: current, Err: ErrUnknownNode}
		}

		_, span := cfg.spans.StartDecisionSpan(cx, string(current))
		outcome, err := n.decide(cx)
		cfg.spans.EndSpanWithError(span, err)

		if err != nil {
			status, terminal, err := resolveDecisionError(cx, current, err)
			if !terminal {
				return 0, err
			}
			cfg.metrics.RecordDecision(cx, string(current), false)
			observability.LogDecision(cx.logger, string(current), false, fmt.Sprintf("end(%d)", status))
			return status, err
		}

		e := n.onFalse
		if outcome {
			e = n.onTrue
		}
		cfg.metrics.RecordDecision(cx, string(current), outcome)

		if e.terminal() {
			observability.LogDecision(cx.logger, string(current), outcome, fmt.Sprintf("end(%d)", e.status))
			return e.status, nil
		}
		observability.LogDecision(cx.logger, string(current), outcome, string(e.next))
		current = e.next
	}
}

// runOptions handles the OPTIONS terminal: 204 plus whatever extra headers
// the resource wants to advertise.
func runOptions(cx *Context) (int, error) {
	headers, err := cx.options()
	if err != nil {
		status, terminal, err := resolveDecisionError(cx, nodeA3, err)
		if terminal {
			return status, err
		}
		return 0, err
	}
	if headers != nil {
		cx.Response.AddHeaders(headers)
	}
	return 204, nil
}

// resolveDecisionError classifies an error out of a decision.
//
// A StatusError inside the terminal set jumps straight to that terminal and
// is consumed; outside the set it is a resource fault and becomes a 500
// carrying the fault. A cancellation aborts with no response. Anything else
// is a capability failure: a 500 terminal carrying the wrapped cause.
func resolveDecisionError(cx *Context, node NodeID, err error) (status int, terminal bool, out error) {
	var forced *StatusError
	if errors.As(err, &forced) {
		if terminalStatuses[forced.Status] {
			return forced.Status, true, nil
		}
		fault := &CapabilityError{Node: node, Capability: "status_override", Err: fmt.Errorf("%w: %d", ErrInvalidTerminal, forced.Status)}
		observability.LogCapabilityError(cx.logger, string(node), "status_override", fault.Err)
		return 500, true, fault
	}

	var cancelled *CancellationError
	if errors.As(err, &cancelled) {
		cancelled.Node = node
		return 0, false, cancelled
	}

	var capErr *CapabilityError
	if errors.As(err, &capErr) {
		capErr.Node = node
		observability.LogCapabilityError(cx.logger, string(node), capErr.Capability, capErr.Err)
		return 500, true, capErr
	}

	wrapped := &CapabilityError{Node: node, Err: err}
	observability.LogCapabilityError(cx.logger, string(node), "", err)
	return 500, true, wrapped
}

// finalizeStatus maps a finalization error to the status the client sees.
func finalizeStatus(err error) int {
	var forced *StatusError
	if errors.As(err, &forced) && terminalStatuses[forced.Status] {
		return forced.Status
	}
	return 500
}

// updateValidatorCache records fresh validators after a successful read and
// drops stale ones after a mutation. Failures are logged, never surfaced.
func updateValidatorCache(cx *Context) {
	store := cx.store
	if store == nil {
		return
	}
	key := cx.Request.FullPath()
	status := cx.Response.Status

	switch {
	case cx.Request.IsGetOrHead() && status == 200:
		etag, _ := cx.generateETag()
		lm, _ := cx.lastModified()
		if etag == "" && lm.IsZero() {
			return
		}
		err := store.Put(key, cache.Entry{ETag: etag, LastModified: lm, StoredAt: nowFunc()})
		if err != nil {
			observability.LogCacheError(cx.logger, key, "put", err)
		}
	case mutating(cx.Request) && status >= 200 && status < 300:
		if err := store.Delete(key); err != nil {
			observability.LogCacheError(cx.logger, key, "delete", err)
		}
	}
}

func mutating(r *Request) bool {
	return r.IsPut() || r.IsPost() || r.IsDelete()
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
