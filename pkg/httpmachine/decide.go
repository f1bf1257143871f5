package httpmachine

import (
	"strings"

	"github.com/randalmurphal/httpmachine/pkg/httpmachine/conneg"
	"github.com/randalmurphal/httpmachine/pkg/httpmachine/header"
)

// Decision predicates, one per graph node. Each answers the node's question
// against the request and the resource, applying the node's prescribed side
// effects (negotiation results, Allow, WWW-Authenticate and Location
// headers, entity processing) on the way.

func decideServiceAvailable(cx *Context) (bool, error) {
	return cx.serviceAvailable()
}

func decideKnownMethod(cx *Context) (bool, error) {
	return containsMethod(cx.KnownMethods(), cx.Request.Method), nil
}

func decideURITooLong(cx *Context) (bool, error) {
	return cx.uriTooLong()
}

func decideMethodAllowed(cx *Context) (bool, error) {
	allowed := cx.AllowedMethods()
	if containsMethod(allowed, cx.Request.Method) {
		return true, nil
	}
	values := make([]header.Value, 0, len(allowed))
	for _, m := range allowed {
		values = append(values, header.Basic(m))
	}
	cx.Response.SetHeader("Allow", values...)
	return false, nil
}

func decideMalformed(cx *Context) (bool, error) {
	return cx.malformedRequest()
}

func decideAuthorized(cx *Context) (bool, error) {
	ok, challenge, err := cx.isAuthorized()
	if err != nil {
		return false, err
	}
	if !ok && challenge != "" {
		cx.Response.SetHeader("WWW-Authenticate", header.Parse(challenge))
	}
	return ok, nil
}

func decideForbidden(cx *Context) (bool, error) {
	return cx.forbidden()
}

func decideValidContentHeaders(cx *Context) (bool, error) {
	return cx.validContentHeaders()
}

// decideKnownContentType only constrains requests that carry an entity.
func decideKnownContentType(cx *Context) (bool, error) {
	if !cx.Request.IsPutOrPost() {
		return true, nil
	}
	return cx.knownContentType()
}

func decideValidEntityLength(cx *Context) (bool, error) {
	if !cx.Request.IsPutOrPost() {
		return true, nil
	}
	return cx.validEntityLength()
}

func decideIsOptions(cx *Context) (bool, error) {
	return cx.Request.IsOptions(), nil
}

// With no Accept header the client takes whatever the resource prefers, so
// the false edge selects the first provided media type here.
func decideAcceptExists(cx *Context) (bool, error) {
	if cx.Request.Headers.Has("Accept") {
		return true, nil
	}
	if provided := cx.ContentTypesProvided(); len(provided) > 0 {
		cx.MediaType = provided[0]
	}
	return false, nil
}

func decideMediaTypeAvailable(cx *Context) (bool, error) {
	accept := cx.Request.Headers.Get("Accept")
	chosen, ok := conneg.SelectMediaType(accept, cx.ContentTypesProvided())
	if !ok {
		return false, nil
	}
	cx.MediaType = chosen
	return true, nil
}

func decideAcceptLanguageExists(cx *Context) (bool, error) {
	return cx.Request.Headers.Has("Accept-Language"), nil
}

// Language negotiation never fails: a miss falls back to the first provided
// language, so the false edge of this node is dead by construction.
func decideLanguageAvailable(cx *Context) (bool, error) {
	accept := cx.Request.Headers.Get("Accept-Language")
	chosen := conneg.SelectLanguage(accept, cx.LanguagesProvided())
	if chosen != "" && chosen != "*" {
		cx.Language = chosen
		cx.Response.SetHeader("Content-Language", header.Basic(chosen))
	}
	return true, nil
}

func decideAcceptCharsetExists(cx *Context) (bool, error) {
	return cx.Request.Headers.Has("Accept-Charset"), nil
}

// Charset negotiation never fails either; see decideLanguageAvailable.
func decideCharsetAvailable(cx *Context) (bool, error) {
	accept := cx.Request.Headers.Get("Accept-Charset")
	chosen := conneg.SelectCharset(accept, cx.CharsetsProvided())
	if chosen != "" && chosen != "*" {
		cx.Charset = chosen
	}
	return true, nil
}

func decideAcceptEncodingExists(cx *Context) (bool, error) {
	return cx.Request.Headers.Has("Accept-Encoding"), nil
}

// Encoding negotiation falls back to identity rather than failing.
func decideEncodingAvailable(cx *Context) (bool, error) {
	accept := cx.Request.Headers.Get("Accept-Encoding")
	chosen := conneg.SelectEncoding(accept, cx.EncodingsProvided())
	if chosen != "" {
		cx.Encoding = chosen
		if !strings.EqualFold(chosen, conneg.Identity) {
			cx.Response.SetHeader("Content-Encoding", header.Basic(chosen))
		}
	}
	return true, nil
}

func decideResourceExists(cx *Context) (bool, error) {
	return cx.resourceExists()
}

func decideIfMatchExists(cx *Context) (bool, error) {
	return cx.Request.Headers.Has("If-Match"), nil
}

func decideIfMatchStar(cx *Context) (bool, error) {
	return cx.Request.Headers.HasValue("If-Match", "*"), nil
}

// If-Match uses the strong comparison: a weak validator never matches.
func decideETagInIfMatch(cx *Context) (bool, error) {
	return etagMatches(cx, "If-Match", header.ETag.StrongMatch)
}

func decideIfUnmodifiedSinceExists(cx *Context) (bool, error) {
	return cx.Request.Headers.Has("If-Unmodified-Since"), nil
}

func decideIfUnmodifiedSinceValid(cx *Context) (bool, error) {
	t, ok := parseDateHeader(cx, "If-Unmodified-Since")
	if !ok {
		return false, nil
	}
	cx.ifUnmodifiedSince = t
	cx.hasUnmodifiedSince = true
	return true, nil
}

func decideModifiedAfterUnmodifiedSince(cx *Context) (bool, error) {
	if !cx.hasUnmodifiedSince {
		return false, nil
	}
	return modifiedAfter(cx, cx.ifUnmodifiedSince)
}

func decideMovedPermanently(cx *Context) (bool, error) {
	location, err := cx.movedPermanently()
	if err != nil {
		return false, err
	}
	if location == "" {
		return false, nil
	}
	cx.Response.SetHeader("Location", header.Basic(location))
	return true, nil
}

func decideMovedTemporarily(cx *Context) (bool, error) {
	location, err := cx.movedTemporarily()
	if err != nil {
		return false, err
	}
	if location == "" {
		return false, nil
	}
	cx.Response.SetHeader("Location", header.Basic(location))
	return true, nil
}

func decideIsPut(cx *Context) (bool, error) {
	return cx.Request.IsPut(), nil
}

// decidePutToMissing answers I7 only: a PUT here targets a resource that
// does not exist, so taking the true edge means the traversal is creating
// one. O16 asks the same question about an existing resource and must not
// set the flag.
func decidePutToMissing(cx *Context) (bool, error) {
	if cx.Request.IsPut() {
		cx.NewResource = true
		return true, nil
	}
	return false, nil
}

func decideIfNoneMatchExists(cx *Context) (bool, error) {
	return cx.Request.Headers.Has("If-None-Match"), nil
}

func decideIfNoneMatchStar(cx *Context) (bool, error) {
	return cx.Request.Headers.HasValue("If-None-Match", "*"), nil
}

func decideIsGetOrHead(cx *Context) (bool, error) {
	return cx.Request.IsGetOrHead(), nil
}

func decidePreviouslyExisted(cx *Context) (bool, error) {
	return cx.previouslyExisted()
}

// If-None-Match uses the weak comparison: W/"v" matches "v".
func decideETagInIfNoneMatch(cx *Context) (bool, error) {
	return etagMatches(cx, "If-None-Match", header.ETag.WeakMatch)
}

func decideIsPost(cx *Context) (bool, error) {
	return cx.Request.IsPost(), nil
}

func decideIfModifiedSinceExists(cx *Context) (bool, error) {
	return cx.Request.Headers.Has("If-Modified-Since"), nil
}

func decideIfModifiedSinceValid(cx *Context) (bool, error) {
	t, ok := parseDateHeader(cx, "If-Modified-Since")
	if !ok {
		return false, nil
	}
	cx.ifModifiedSince = t
	cx.hasModifiedSince = true
	return true, nil
}

func decideIfModifiedSinceInFuture(cx *Context) (bool, error) {
	return cx.hasModifiedSince && cx.ifModifiedSince.After(nowFunc()), nil
}

func decideModifiedAfterModifiedSince(cx *Context) (bool, error) {
	if !cx.hasModifiedSince {
		return false, nil
	}
	return modifiedAfter(cx, cx.ifModifiedSince)
}

func decideAllowMissingPost(cx *Context) (bool, error) {
	ok, err := cx.allowMissingPost()
	if err != nil {
		return false, err
	}
	if ok {
		cx.NewResource = true
	}
	return ok, nil
}

func decideIsDelete(cx *Context) (bool, error) {
	return cx.Request.IsDelete(), nil
}

func decideDeleteResource(cx *Context) (bool, error) {
	return cx.deleteResource()
}

func decideDeleteCompleted(cx *Context) (bool, error) {
	return cx.deleteCompleted()
}

// decideRedirect processes the POST entity. A creating POST resolves the
// new resource's path, rewrites the request path to it and sets Location; a
// plain POST runs ProcessPost. Either way the outcome is whether the
// resource asked for a 303 redirect.
func decideRedirect(cx *Context) (bool, error) {
	create, err := cx.postIsCreate()
	if err != nil {
		return false, err
	}
	if create {
		path, err := cx.createPath()
		if err != nil {
			return false, err
		}
		if path == "" {
			path = cx.Request.Path
		}
		location := joinPaths(cx.Request.BasePath, path)
		cx.Request.Path = path
		cx.Response.SetHeader("Location", header.Basic(location))
		return cx.Redirect, nil
	}
	if err := cx.processPost(); err != nil {
		return false, err
	}
	return cx.Redirect, nil
}

func decideConflict(cx *Context) (bool, error) {
	return cx.isConflict()
}

// decideNewResource processes the PUT entity, then reports whether the
// traversal created a resource (201) or updated one (204 or 200).
func decideNewResource(cx *Context) (bool, error) {
	if cx.Request.IsPut() {
		if err := cx.processPut(); err != nil {
			return false, err
		}
	}
	return cx.NewResource, nil
}

func decideMultipleChoices(cx *Context) (bool, error) {
	return cx.multipleChoices()
}

func decideResponseHasBody(cx *Context) (bool, error) {
	return cx.Response.HasBody(), nil
}

func containsMethod(methods []string, method string) bool {
	for _, m := range methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
