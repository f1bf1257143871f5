package httpmachine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/httpmachine/pkg/httpmachine/cache"
	"github.com/randalmurphal/httpmachine/pkg/httpmachine/header"
	"github.com/randalmurphal/httpmachine/pkg/httpmachine/observability"
)

// Context is the mutable state of one traversal. It is created from the
// request and the bound resource, mutated only by the engine and the modules
// it invokes, and read-only once a terminal node is reached. A Context never
// outlives its request and is never shared across traversals.
//
// Context implements context.Context; capability implementations should use
// it for any blocking I/O so cancellation propagates.
type Context struct {
	context.Context

	// Request is the inbound request the traversal runs against.
	Request *Request
	// Response is the response intent under construction.
	Response *Response

	// MediaType is the negotiated media type, empty if none chosen.
	MediaType string
	// Charset is the negotiated charset, empty when unconstrained.
	Charset string
	// Encoding is the negotiated content encoding.
	Encoding string
	// Language is the negotiated content language, empty when
	// unconstrained.
	Language string

	// Redirect makes a processed POST answer 303 instead of 2xx.
	// Resources set it from ProcessPost or CreatePath.
	Redirect bool
	// NewResource records that the traversal created a resource,
	// steering the success path toward 201.
	NewResource bool

	// Metadata is scratch space for resource implementations.
	Metadata map[string]string

	resource  Resource
	requestID string
	logger    *slog.Logger
	store     cache.Store

	// Parsed conditional header dates, carried between non-adjacent nodes.
	ifModifiedSince    time.Time
	ifUnmodifiedSince  time.Time
	hasModifiedSince   bool
	hasUnmodifiedSince bool

	memo map[string]memoEntry
}

// memoEntry caches one capability answer for the traversal.
type memoEntry struct {
	b    bool
	s    string
	t    time.Time
	list []string
	err  error
}

// RequestID returns the unique identifier of this traversal,
// auto-generated unless configured.
func (cx *Context) RequestID() string { return cx.requestID }

// Logger returns the traversal logger, enriched with request context.
// Never nil; falls back to slog.Default when no logger was configured.
func (cx *Context) Logger() *slog.Logger {
	if cx.logger == nil {
		return slog.Default()
	}
	return cx.logger
}

// Cache returns the validator cache handed to the traversal, or nil.
func (cx *Context) Cache() cache.Store { return cx.store }

func buildContext(ctx context.Context, res Resource, req *Request, cfg *runConfig) *Context {
	requestID := cfg.requestID
	if requestID == "" {
		requestID = uuid.New().String()
	}
	logger := observability.EnrichLogger(cfg.logger, requestID, req.Method, req.Path)
	if req.Headers == nil {
		req.Headers = header.Fields{}
	}
	return &Context{
		Context:   ctx,
		Request:   req,
		Response:  NewResponse(),
		Metadata:  make(map[string]string),
		resource:  res,
		requestID: requestID,
		logger:    logger,
		store:     cfg.cacheStore,
		memo:      make(map[string]memoEntry),
	}
}
