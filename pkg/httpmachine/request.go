package httpmachine

import (
	"strings"

	"github.com/randalmurphal/httpmachine/pkg/httpmachine/header"
)

// Request is the already-parsed inbound request a traversal runs against.
// Routing has happened before the engine sees it: Path is relative to the
// resource and Bindings carries whatever the dispatcher extracted.
type Request struct {
	// Method is the HTTP method token, upper-cased by convention.
	Method string
	// Path is the request path relative to the resource's base path.
	Path string
	// BasePath is the dispatcher prefix the resource is mounted at.
	BasePath string
	// Headers is the request header multimap.
	Headers header.Fields
	// Body is the request entity, nil when absent.
	Body []byte
	// Query holds the decoded query parameters.
	Query map[string][]string
	// Bindings holds path variables extracted by the dispatcher.
	Bindings map[string]string
}

// NewRequest creates a GET request for the given path with empty headers.
func NewRequest(method, path string) *Request {
	return &Request{
		Method:   method,
		Path:     path,
		BasePath: "/",
		Headers:  header.Fields{},
	}
}

// ContentType returns the media type of the request body, defaulting to
// application/json when no Content-Type header is present.
func (r *Request) ContentType() string {
	if v, ok := r.Headers.First("Content-Type"); ok && v.Value != "" {
		return v.Value
	}
	return "application/json"
}

// IsGet reports whether the method is GET.
func (r *Request) IsGet() bool { return r.methodIs("GET") }

// IsGetOrHead reports whether the method is GET or HEAD.
func (r *Request) IsGetOrHead() bool { return r.methodIs("GET") || r.methodIs("HEAD") }

// IsPut reports whether the method is PUT.
func (r *Request) IsPut() bool { return r.methodIs("PUT") }

// IsPost reports whether the method is POST.
func (r *Request) IsPost() bool { return r.methodIs("POST") }

// IsPutOrPost reports whether the method carries a request entity.
func (r *Request) IsPutOrPost() bool { return r.IsPut() || r.IsPost() }

// IsDelete reports whether the method is DELETE.
func (r *Request) IsDelete() bool { return r.methodIs("DELETE") }

// IsOptions reports whether the method is OPTIONS.
func (r *Request) IsOptions() bool { return r.methodIs("OPTIONS") }

func (r *Request) methodIs(m string) bool {
	return strings.EqualFold(r.Method, m)
}

// FullPath joins the base path and the relative path into the
// request-URI path.
func (r *Request) FullPath() string {
	return joinPaths(r.BasePath, r.Path)
}

// joinPaths joins two URI path fragments, collapsing empty segments and
// guaranteeing a leading slash.
func joinPaths(base, path string) string {
	var segments []string
	for _, p := range [2]string{base, path} {
		for _, seg := range strings.Split(p, "/") {
			if seg != "" {
				segments = append(segments, seg)
			}
		}
	}
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

// equalMediaType compares two media types ignoring case and parameters.
func equalMediaType(a, b string) bool {
	a, _, _ = strings.Cut(a, ";")
	b, _, _ = strings.Cut(b, ";")
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
