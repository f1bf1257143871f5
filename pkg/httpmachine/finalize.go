package httpmachine

import (
	"net/http"
	"strings"

	"github.com/randalmurphal/httpmachine/pkg/httpmachine/header"
)

// finalize shapes the response after the traversal reached its terminal:
// entity headers, validators, the rendered body, and the HEAD body strip.
func finalize(cx *Context, cfg *runConfig) error {
	status := cx.Response.Status

	// No representation is being transmitted on these, so no Content-Type.
	switch status {
	case 204, 304, 406:
	default:
		if !cx.Response.Headers.Has("Content-Type") {
			mediaType := cx.MediaType
			if mediaType == "" {
				mediaType = cfg.defaultContentType
			}
			charset := cx.Charset
			if charset == "" {
				charset = cfg.defaultCharset
			}
			cx.Response.SetHeader("Content-Type", header.Value{
				Value:  mediaType,
				Params: map[string]string{"charset": charset},
			})
		}
	}

	setVary(cx)

	if cx.Request.IsGetOrHead() {
		if tag, err := cx.generateETag(); err == nil && tag != "" {
			cx.Response.SetHeader("ETag", header.Basic(header.ParseETag(tag).String()))
		}
		if exp, err := cx.expires(); err == nil && !exp.IsZero() {
			cx.Response.SetHeader("Expires", header.Basic(exp.UTC().Format(http.TimeFormat)))
		}
		if lm, err := cx.lastModified(); err == nil && !lm.IsZero() {
			cx.Response.SetHeader("Last-Modified", header.Basic(lm.UTC().Format(http.TimeFormat)))
		}
	}

	if status == 201 && !cx.Response.Headers.Has("Location") {
		cx.Response.SetHeader("Location", header.Basic(cx.Request.FullPath()))
	}

	if status == 200 && cx.Request.IsGet() && !cx.Response.HasBody() {
		body, err := cx.renderResponse()
		if err != nil {
			return err
		}
		cx.Response.Body = body
	}

	if strings.EqualFold(cx.Request.Method, "HEAD") {
		cx.Response.Body = nil
	}

	return nil
}

// setVary advertises the negotiation axes that could change the selected
// representation: any axis with more than one variant, plus whatever the
// resource lists itself.
func setVary(cx *Context) {
	if cx.Response.Headers.Has("Vary") {
		return
	}
	var names []string
	if len(cx.ContentTypesProvided()) > 1 {
		names = append(names, "Accept")
	}
	if len(cx.LanguagesProvided()) > 1 {
		names = append(names, "Accept-Language")
	}
	if len(cx.CharsetsProvided()) > 1 {
		names = append(names, "Accept-Charset")
	}
	if len(cx.EncodingsProvided()) > 1 {
		names = append(names, "Accept-Encoding")
	}
	names = append(names, cx.Variances()...)

	seen := make(map[string]bool, len(names))
	values := make([]header.Value, 0, len(names))
	for _, n := range names {
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		values = append(values, header.Basic(n))
	}
	if len(values) > 0 {
		cx.Response.SetHeader("Vary", values...)
	}
}
