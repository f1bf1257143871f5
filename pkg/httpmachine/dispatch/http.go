package dispatch

import (
	"io"
	"net/http"
	"strings"

	"github.com/randalmurphal/httpmachine/pkg/httpmachine"
	"github.com/randalmurphal/httpmachine/pkg/httpmachine/header"
)

// listHeaders are the comma-separated list headers the adapter splits into
// elements. Everything else keeps its raw value: HTTP-dates in particular
// contain a comma ("Sun, 06 Nov 1994 ...") and must never be split.
var listHeaders = map[string]bool{
	"accept":           true,
	"accept-charset":   true,
	"accept-encoding":  true,
	"accept-language":  true,
	"allow":            true,
	"cache-control":    true,
	"if-match":         true,
	"if-none-match":    true,
	"vary":             true,
}

// ServeHTTP implements http.Handler: it resolves the route, runs the
// decision engine, and writes the response intent to the wire. An
// unroutable path is a plain 404; an engine fault is a plain 500.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m, ok := d.Resolve(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	req, err := fromHTTP(r, m)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusInternalServerError)
		return
	}

	resp, err := httpmachine.Run(r.Context(), m.Resource, req, d.runOpts...)
	if resp == nil {
		// Cancelled or engine fault; there is no response intent.
		if err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeResponse(w, resp)
}

// fromHTTP converts a net/http request into the engine's request form.
func fromHTTP(r *http.Request, m Match) (*httpmachine.Request, error) {
	req := httpmachine.NewRequest(r.Method, m.Path)
	req.BasePath = m.BasePath
	req.Bindings = m.Bindings
	req.Query = r.URL.Query()

	for name, values := range r.Header {
		var parsed []header.Value
		if listHeaders[strings.ToLower(name)] {
			for _, v := range values {
				parsed = append(parsed, header.ParseList(v)...)
			}
		} else {
			for _, v := range values {
				parsed = append(parsed, header.Parse(v))
			}
		}
		req.Headers[name] = parsed
	}

	if r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(body) > 0 {
			req.Body = body
		}
	}
	return req, nil
}

// writeResponse emits the response intent.
func writeResponse(w http.ResponseWriter, resp *httpmachine.Response) {
	for _, name := range resp.Headers.SortedNames() {
		rendered := make([]string, 0, len(resp.Headers.Get(name)))
		for _, v := range resp.Headers.Get(name) {
			rendered = append(rendered, v.String())
		}
		w.Header().Set(name, strings.Join(rendered, ", "))
	}
	w.WriteHeader(resp.Status)
	if resp.HasBody() {
		w.Write(resp.Body)
	}
}
