/*
Package httpmachine decides HTTP responses by walking a decision graph.

# Overview

httpmachine is a Go library that turns declarative resource descriptions
into correct HTTP/1.1 responses. Instead of hand-writing status code logic,
a resource answers simple questions (does it exist? which media types can it
produce? is the method allowed?) and the engine walks a fixed graph of those
questions until it reaches a terminal status. Content negotiation,
conditional requests (ETags and date preconditions), and the full status
code matrix fall out of the graph.

The library provides:
  - A fixed, validated decision graph covering the HTTP/1.1 semantics
  - Proactive content negotiation on four axes (media type, language,
    charset, encoding)
  - Conditional request evaluation with strong and weak validator matching
  - An optional validator cache (memory or SQLite)
  - OpenTelemetry integration for observability

# Basic Usage

Embed Defaults, override the capabilities the resource cares about, and run
a request through the engine:

	type Greeting struct {
	    httpmachine.Defaults
	}

	func (Greeting) ContentTypesProvided(cx *httpmachine.Context) []string {
	    return []string{"text/plain"}
	}

	func (Greeting) RenderResponse(cx *httpmachine.Context) ([]byte, error) {
	    return []byte("hello\n"), nil
	}

	func main() {
	    req := httpmachine.NewRequest("GET", "/greeting")
	    resp, err := httpmachine.Run(context.Background(), Greeting{}, req)
	    if err != nil {
	        log.Fatal(err)
	    }
	    fmt.Println(resp.Status) // 200
	}

# Serving net/http

The dispatch subpackage binds resources to path patterns and adapts the
engine to http.Handler:

	d := dispatch.New()
	d.Add("/api/users/{id}", &UserResource{})
	http.ListenAndServe(":8080", d)

Path bindings ({id} above) are available to capabilities via
cx.Request.Bindings.

# Capabilities

Every question the graph asks maps to one method on the Resource interface.
Each capability is invoked at most once per request; the engine reuses the
answer wherever the graph asks again. A capability can short-circuit the
graph by returning ForceStatus(code) as its error; any terminal status is
honored.

Answers that depend on I/O should respect cancellation: Context implements
context.Context, and the engine stops calling capabilities once the request
context is cancelled.

# Conditional Requests

If-Match uses the strong comparison function (a weak validator never
matches); If-None-Match uses the weak one. Date preconditions accept the
three standard HTTP-date formats, and an unparsable date simply disables
the precondition it guards. A conditional GET that misses returns 304
without the body ever being rendered.

# Validator Cache

Resources with expensive validators can keep the last produced ETag and
Last-Modified per path:

	store, err := cache.NewSQLiteStore("./validators.db")
	defer store.Close()

	resp, err := httpmachine.Run(ctx, res, req,
	    httpmachine.WithValidatorCache(store))

Entries are written after successful GET or HEAD responses and invalidated
by mutations. Capabilities read them back through cx.Cache().

# Observability

Enable logging, metrics, and tracing per run:

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	resp, err := httpmachine.Run(ctx, res, req,
	    httpmachine.WithLogger(logger),
	    httpmachine.WithMetrics(),
	    httpmachine.WithTracing())

Logs carry structured fields: request_id, node, outcome, duration_ms.
OpenTelemetry metrics: httpmachine.traversals, httpmachine.decisions,
httpmachine.traversal.latency_ms. Tracing produces one span per traversal
with a child span per decision.

# Error Handling

Errors identify the decision node and capability that failed:

	resp, err := httpmachine.Run(ctx, res, req)
	var capErr *httpmachine.CapabilityError
	if errors.As(err, &capErr) {
	    log.Printf("capability %s failed at %s: %v", capErr.Capability, capErr.Node, capErr.Err)
	}

A capability failure still yields a 500 response alongside the error. A
cancelled context yields a nil response and a CancellationError.

# Thread Safety

  - The decision graph is immutable and shared by all traversals
  - Context is confined to one traversal and must not be shared
  - Store implementations are safe for concurrent use
  - A Resource is shared across requests and must be safe for concurrent
    use if its capabilities mutate state

# Subpackages

  - dispatch: path routing and the net/http adapter
  - header: parsed header values, entity tags, field multimaps
  - conneg: content negotiation for the four axes
  - cache: validator storage (memory, SQLite)
  - config: engine configuration loading (YAML, JSON)
  - observability: logging, metrics, and tracing helpers
*/
package httpmachine
