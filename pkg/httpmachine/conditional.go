package httpmachine

import (
	"net/http"
	"time"

	"github.com/randalmurphal/httpmachine/pkg/httpmachine/header"
)

// nowFunc is swapped out by tests that pin the clock.
var nowFunc = time.Now

// etagMatches reports whether the resource's current ETag satisfies any
// member of the given precondition header, under the supplied comparison.
// A resource without an ETag matches nothing.
func etagMatches(cx *Context, name string, cmp func(header.ETag, header.ETag) bool) (bool, error) {
	tag, err := cx.generateETag()
	if err != nil {
		return false, err
	}
	if tag == "" {
		return false, nil
	}
	current := header.ParseETag(tag)
	for _, v := range cx.Request.Headers.Get(name) {
		if cmp(header.ParseETag(v.Value), current) {
			return true, nil
		}
	}
	return false, nil
}

// parseDateHeader parses an HTTP-date header in any of the three allowed
// formats. An unparsable date reports false and the precondition it guards
// is ignored.
func parseDateHeader(cx *Context, name string) (time.Time, bool) {
	v, ok := cx.Request.Headers.First(name)
	if !ok {
		return time.Time{}, false
	}
	t, err := http.ParseTime(v.Value)
	if err != nil {
		cx.Logger().Debug("ignoring unparsable date header",
			"header", name,
			"value", v.Value,
			"error", err)
		return time.Time{}, false
	}
	return t, true
}

// modifiedAfter reports whether the resource's last-modified date is
// strictly after the given instant. HTTP-dates carry one-second resolution,
// so both sides are truncated before comparing. A resource without a
// last-modified date reports false.
func modifiedAfter(cx *Context, since time.Time) (bool, error) {
	lm, err := cx.lastModified()
	if err != nil {
		return false, err
	}
	if lm.IsZero() {
		return false, nil
	}
	return lm.Truncate(time.Second).After(since.Truncate(time.Second)), nil
}
