package httpmachine

import (
	"github.com/randalmurphal/httpmachine/pkg/httpmachine/header"
)

// Response is the response intent a traversal produces: the terminal status,
// the headers to emit, and the body (or none). The transport adapter turns
// it into bytes on the wire.
type Response struct {
	// Status is the terminal status code. Zero until a terminal node is
	// reached.
	Status int
	// Headers is the response header multimap.
	Headers header.Fields
	// Body is the response entity, nil for bodiless responses.
	Body []byte
}

// NewResponse creates an empty response with initialized headers.
func NewResponse() *Response {
	return &Response{Headers: header.Fields{}}
}

// HasBody reports whether a non-empty body has been set.
func (r *Response) HasBody() bool {
	return len(r.Body) > 0
}

// SetHeader replaces the named header.
func (r *Response) SetHeader(name string, values ...header.Value) {
	r.Headers.Set(name, values...)
}

// AddHeaders merges plain string headers into the response,
// replacing any existing values.
func (r *Response) AddHeaders(headers map[string][]string) {
	for name, values := range headers {
		parsed := make([]header.Value, 0, len(values))
		for _, v := range values {
			parsed = append(parsed, header.Basic(v))
		}
		r.Headers.Set(name, parsed...)
	}
}

// CORSHeaders returns the standard permissive CORS header set for the given
// allowed methods, for resources that want to serve cross-origin clients
// from their Options capability.
func CORSHeaders(allowedMethods []string) map[string][]string {
	return map[string][]string{
		"Access-Control-Allow-Origin":  {"*"},
		"Access-Control-Allow-Methods": allowedMethods,
		"Access-Control-Allow-Headers": {"Content-Type"},
	}
}
