package httpmachine

import (
	"time"
)

// Capability accessors. Every resource query goes through one of these: the
// answer is memoized for the traversal so a capability runs at most once,
// and cancellation is checked before each first invocation so a cancelled
// request never triggers further (possibly side-effecting) resource calls.

func (cx *Context) capBool(name string, f func() (bool, error)) (bool, error) {
	if a, ok := cx.memo[name]; ok {
		return a.b, a.err
	}
	if err := cx.Err(); err != nil {
		return false, &CancellationError{Capability: name, Cause: err}
	}
	b, err := f()
	cx.memo[name] = memoEntry{b: b, err: wrapCapability(name, err)}
	return b, cx.memo[name].err
}

func (cx *Context) capString(name string, f func() (string, error)) (string, error) {
	if a, ok := cx.memo[name]; ok {
		return a.s, a.err
	}
	if err := cx.Err(); err != nil {
		return "", &CancellationError{Capability: name, Cause: err}
	}
	s, err := f()
	cx.memo[name] = memoEntry{s: s, err: wrapCapability(name, err)}
	return s, cx.memo[name].err
}

func (cx *Context) capTime(name string, f func() (time.Time, error)) (time.Time, error) {
	if a, ok := cx.memo[name]; ok {
		return a.t, a.err
	}
	if err := cx.Err(); err != nil {
		return time.Time{}, &CancellationError{Capability: name, Cause: err}
	}
	t, err := f()
	cx.memo[name] = memoEntry{t: t, err: wrapCapability(name, err)}
	return t, cx.memo[name].err
}

// capList cannot carry an error, so on cancellation it answers nil without
// invoking the resource; the traversal loop surfaces the cancellation.
func (cx *Context) capList(name string, f func() []string) []string {
	if a, ok := cx.memo[name]; ok {
		return a.list
	}
	if cx.Err() != nil {
		return nil
	}
	list := f()
	cx.memo[name] = memoEntry{list: list}
	return list
}

func (cx *Context) capErr(name string, f func() error) error {
	if a, ok := cx.memo[name]; ok {
		return a.err
	}
	if err := cx.Err(); err != nil {
		return &CancellationError{Capability: name, Cause: err}
	}
	err := wrapCapability(name, f())
	cx.memo[name] = memoEntry{err: err}
	return err
}

// wrapCapability turns a plain resource error into a CapabilityError.
// Status overrides and cancellations pass through untouched.
func wrapCapability(name string, err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *StatusError, *CancellationError, *CapabilityError:
		return err
	}
	return &CapabilityError{Capability: name, Err: err}
}

func (cx *Context) serviceAvailable() (bool, error) {
	return cx.capBool("service_available", func() (bool, error) { return cx.resource.ServiceAvailable(cx) })
}

func (cx *Context) uriTooLong() (bool, error) {
	return cx.capBool("uri_too_long", func() (bool, error) { return cx.resource.URITooLong(cx) })
}

func (cx *Context) malformedRequest() (bool, error) {
	return cx.capBool("malformed_request", func() (bool, error) { return cx.resource.MalformedRequest(cx) })
}

func (cx *Context) isAuthorized() (bool, string, error) {
	if a, ok := cx.memo["is_authorized"]; ok {
		return a.b, a.s, a.err
	}
	if err := cx.Err(); err != nil {
		return false, "", &CancellationError{Capability: "is_authorized", Cause: err}
	}
	ok, challenge, err := cx.resource.IsAuthorized(cx)
	cx.memo["is_authorized"] = memoEntry{b: ok, s: challenge, err: wrapCapability("is_authorized", err)}
	a := cx.memo["is_authorized"]
	return a.b, a.s, a.err
}

func (cx *Context) forbidden() (bool, error) {
	return cx.capBool("forbidden", func() (bool, error) { return cx.resource.Forbidden(cx) })
}

func (cx *Context) validContentHeaders() (bool, error) {
	return cx.capBool("valid_content_headers", func() (bool, error) { return cx.resource.ValidContentHeaders(cx) })
}

func (cx *Context) knownContentType() (bool, error) {
	return cx.capBool("known_content_type", func() (bool, error) { return cx.resource.KnownContentType(cx) })
}

func (cx *Context) validEntityLength() (bool, error) {
	return cx.capBool("valid_entity_length", func() (bool, error) { return cx.resource.ValidEntityLength(cx) })
}

func (cx *Context) resourceExists() (bool, error) {
	return cx.capBool("resource_exists", func() (bool, error) { return cx.resource.ResourceExists(cx) })
}

func (cx *Context) previouslyExisted() (bool, error) {
	return cx.capBool("previously_existed", func() (bool, error) { return cx.resource.PreviouslyExisted(cx) })
}

func (cx *Context) allowMissingPost() (bool, error) {
	return cx.capBool("allow_missing_post", func() (bool, error) { return cx.resource.AllowMissingPost(cx) })
}

func (cx *Context) postIsCreate() (bool, error) {
	return cx.capBool("post_is_create", func() (bool, error) { return cx.resource.PostIsCreate(cx) })
}

func (cx *Context) isConflict() (bool, error) {
	return cx.capBool("is_conflict", func() (bool, error) { return cx.resource.IsConflict(cx) })
}

func (cx *Context) multipleChoices() (bool, error) {
	return cx.capBool("multiple_choices", func() (bool, error) { return cx.resource.MultipleChoices(cx) })
}

func (cx *Context) deleteResource() (bool, error) {
	return cx.capBool("delete_resource", func() (bool, error) { return cx.resource.DeleteResource(cx) })
}

func (cx *Context) deleteCompleted() (bool, error) {
	return cx.capBool("delete_completed", func() (bool, error) { return cx.resource.DeleteCompleted(cx) })
}

func (cx *Context) generateETag() (string, error) {
	return cx.capString("generate_etag", func() (string, error) { return cx.resource.GenerateETag(cx) })
}

func (cx *Context) movedPermanently() (string, error) {
	return cx.capString("moved_permanently", func() (string, error) { return cx.resource.MovedPermanently(cx) })
}

func (cx *Context) movedTemporarily() (string, error) {
	return cx.capString("moved_temporarily", func() (string, error) { return cx.resource.MovedTemporarily(cx) })
}

func (cx *Context) createPath() (string, error) {
	return cx.capString("create_path", func() (string, error) { return cx.resource.CreatePath(cx) })
}

func (cx *Context) lastModified() (time.Time, error) {
	return cx.capTime("last_modified", func() (time.Time, error) { return cx.resource.LastModified(cx) })
}

func (cx *Context) expires() (time.Time, error) {
	return cx.capTime("expires", func() (time.Time, error) { return cx.resource.Expires(cx) })
}

func (cx *Context) processPost() error {
	return cx.capErr("process_post", func() error { return cx.resource.ProcessPost(cx) })
}

func (cx *Context) processPut() error {
	return cx.capErr("process_put", func() error { return cx.resource.ProcessPut(cx) })
}

func (cx *Context) finishRequest() error {
	return cx.capErr("finish_request", func() error { return cx.resource.FinishRequest(cx) })
}

func (cx *Context) renderResponse() ([]byte, error) {
	if a, ok := cx.memo["render_response"]; ok {
		return []byte(a.s), a.err
	}
	if err := cx.Err(); err != nil {
		return nil, &CancellationError{Capability: "render_response", Cause: err}
	}
	body, err := cx.resource.RenderResponse(cx)
	cx.memo["render_response"] = memoEntry{s: string(body), err: wrapCapability("render_response", err)}
	return body, cx.memo["render_response"].err
}

func (cx *Context) options() (map[string][]string, error) {
	if err := cx.Err(); err != nil {
		return nil, &CancellationError{Capability: "options", Cause: err}
	}
	headers, err := cx.resource.Options(cx)
	return headers, wrapCapability("options", err)
}

// KnownMethods returns the memoized known-method list.
func (cx *Context) KnownMethods() []string {
	return cx.capList("known_methods", func() []string { return cx.resource.KnownMethods(cx) })
}

// AllowedMethods returns the memoized allowed-method list.
func (cx *Context) AllowedMethods() []string {
	return cx.capList("allowed_methods", func() []string { return cx.resource.AllowedMethods(cx) })
}

// ContentTypesProvided returns the memoized provided media types.
func (cx *Context) ContentTypesProvided() []string {
	return cx.capList("content_types_provided", func() []string { return cx.resource.ContentTypesProvided(cx) })
}

// ContentTypesAccepted returns the memoized accepted media types.
func (cx *Context) ContentTypesAccepted() []string {
	return cx.capList("content_types_accepted", func() []string { return cx.resource.ContentTypesAccepted(cx) })
}

// CharsetsProvided returns the memoized provided charsets.
func (cx *Context) CharsetsProvided() []string {
	return cx.capList("charsets_provided", func() []string { return cx.resource.CharsetsProvided(cx) })
}

// EncodingsProvided returns the memoized provided encodings.
func (cx *Context) EncodingsProvided() []string {
	return cx.capList("encodings_provided", func() []string { return cx.resource.EncodingsProvided(cx) })
}

// LanguagesProvided returns the memoized provided languages.
func (cx *Context) LanguagesProvided() []string {
	return cx.capList("languages_provided", func() []string { return cx.resource.LanguagesProvided(cx) })
}

// Variances returns the memoized extra Vary header names.
func (cx *Context) Variances() []string {
	return cx.capList("variances", func() []string { return cx.resource.Variances(cx) })
}
