package httpmachine

import (
	"time"
)

// Resource answers the capability queries the decision graph asks about one
// addressed entity. One Resource value serves one traversal; implementations
// own any locking over their backing state.
//
// Capability methods may block on I/O. The engine calls each one at most
// once per traversal and only along the path that needs it; the *Context
// argument carries cancellation, the request, and the response under
// construction. Any method returning an error aborts the graph: a plain
// error surfaces as 500 with the error as cause, while ForceStatus(code)
// jumps straight to that terminal status.
//
// Embed Defaults and override only what the resource needs:
//
//	type Item struct {
//	    httpmachine.Defaults
//	}
//
//	func (Item) AllowedMethods(*httpmachine.Context) []string {
//	    return []string{"GET", "HEAD", "PUT", "DELETE"}
//	}
type Resource interface {
	// ServiceAvailable reports whether the service backing the resource is
	// up. False produces 503.
	ServiceAvailable(cx *Context) (bool, error)

	// KnownMethods lists the HTTP methods the resource recognizes at all.
	// An unknown method produces 501.
	KnownMethods(cx *Context) []string

	// URITooLong reports whether the request URI is too long to process.
	// True produces 414.
	URITooLong(cx *Context) (bool, error)

	// AllowedMethods lists the methods allowed on this resource.
	// A known but disallowed method produces 405 with an Allow header.
	AllowedMethods(cx *Context) []string

	// MalformedRequest reports whether the request is malformed.
	// True produces 400.
	MalformedRequest(cx *Context) (bool, error)

	// IsAuthorized reports whether the client may access the resource.
	// When it returns false, challenge (if non-empty) becomes the
	// WWW-Authenticate header of the 401 response.
	IsAuthorized(cx *Context) (authorized bool, challenge string, err error)

	// Forbidden reports whether access is forbidden regardless of
	// authorization. True produces 403.
	Forbidden(cx *Context) (bool, error)

	// ValidContentHeaders reports whether the Content-* headers of the
	// request are valid. False produces 501.
	ValidContentHeaders(cx *Context) (bool, error)

	// KnownContentType reports whether the request body's content type is
	// one the resource can accept. Only consulted for PUT and POST; false
	// produces 415.
	KnownContentType(cx *Context) (bool, error)

	// ValidEntityLength reports whether the request entity length is
	// acceptable. Only consulted for PUT and POST; false produces 413.
	ValidEntityLength(cx *Context) (bool, error)

	// Options returns the headers for an OPTIONS response.
	Options(cx *Context) (map[string][]string, error)

	// ContentTypesProvided lists the media types the resource can render,
	// preferred first. Empty means unconstrained.
	ContentTypesProvided(cx *Context) []string

	// ContentTypesAccepted lists the media types the resource accepts in
	// request bodies. Empty means any type is accepted.
	ContentTypesAccepted(cx *Context) []string

	// CharsetsProvided lists the charsets the resource can produce,
	// preferred first. Empty means all charsets are acceptable.
	CharsetsProvided(cx *Context) []string

	// EncodingsProvided lists the content encodings the resource can
	// apply, preferred first. Empty means identity only.
	EncodingsProvided(cx *Context) []string

	// LanguagesProvided lists the content languages available, preferred
	// first. Empty means all languages are acceptable.
	LanguagesProvided(cx *Context) []string

	// Variances lists extra header names for the Vary response header.
	// The Accept* axes are added automatically.
	Variances(cx *Context) []string

	// ResourceExists reports whether the addressed resource exists.
	ResourceExists(cx *Context) (bool, error)

	// GenerateETag returns the entity tag for the current representation,
	// without quotes. Empty means the resource has no ETag.
	GenerateETag(cx *Context) (string, error)

	// LastModified returns when the resource last changed.
	// The zero time means unknown.
	LastModified(cx *Context) (time.Time, error)

	// Expires returns when the representation expires.
	// The zero time means it does not.
	Expires(cx *Context) (time.Time, error)

	// MovedPermanently returns the permanent new location of the
	// resource, or empty if it has not moved. Non-empty produces 301.
	MovedPermanently(cx *Context) (string, error)

	// MovedTemporarily returns the temporary new location of the
	// resource, or empty. Non-empty produces 307.
	MovedTemporarily(cx *Context) (string, error)

	// PreviouslyExisted reports whether a now-missing resource used to
	// exist, steering toward 301/307/410 instead of 404.
	PreviouslyExisted(cx *Context) (bool, error)

	// AllowMissingPost reports whether POST to a missing resource is
	// allowed.
	AllowMissingPost(cx *Context) (bool, error)

	// PostIsCreate reports whether POST should be treated as creation at
	// the path returned by CreatePath, rather than generic processing.
	PostIsCreate(cx *Context) (bool, error)

	// CreatePath creates the new resource for a creating POST and returns
	// its path relative to the dispatcher prefix. It becomes the Location
	// header and replaces the request path for the rest of the traversal.
	// Empty falls back to the current request path.
	CreatePath(cx *Context) (string, error)

	// ProcessPost handles a non-creating POST. Set cx.Redirect to turn
	// the result into a 303.
	ProcessPost(cx *Context) error

	// ProcessPut handles the body of a PUT.
	ProcessPut(cx *Context) error

	// DeleteResource enacts a DELETE. Returning false means the delete
	// could not be enacted and produces 500.
	DeleteResource(cx *Context) (bool, error)

	// DeleteCompleted reports whether an enacted delete has finished.
	// False produces 202.
	DeleteCompleted(cx *Context) (bool, error)

	// IsConflict reports whether a PUT (or creating POST) conflicts with
	// the current state. True produces 409.
	IsConflict(cx *Context) (bool, error)

	// MultipleChoices reports whether several representations exist and
	// none can be chosen automatically, turning a 200 into a 300.
	MultipleChoices(cx *Context) (bool, error)

	// RenderResponse produces the response body for a successful GET.
	// Nil means no body.
	RenderResponse(cx *Context) ([]byte, error)

	// FinishRequest runs after the traversal, before the response intent
	// is handed to the transport. It may adjust the response.
	FinishRequest(cx *Context) error
}

// Defaults implements every Resource capability with its default answer.
// Embed it so a minimal resource compiles by overriding only what it needs.
type Defaults struct{}

var _ Resource = Defaults{}

// ServiceAvailable defaults to true.
func (Defaults) ServiceAvailable(*Context) (bool, error) { return true, nil }

// KnownMethods defaults to the standard HTTP methods.
func (Defaults) KnownMethods(*Context) []string {
	return []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS", "TRACE", "CONNECT"}
}

// URITooLong defaults to false.
func (Defaults) URITooLong(*Context) (bool, error) { return false, nil }

// AllowedMethods defaults to GET and HEAD.
func (Defaults) AllowedMethods(*Context) []string { return []string{"GET", "HEAD"} }

// MalformedRequest defaults to false.
func (Defaults) MalformedRequest(*Context) (bool, error) { return false, nil }

// IsAuthorized defaults to authorized.
func (Defaults) IsAuthorized(*Context) (bool, string, error) { return true, "", nil }

// Forbidden defaults to false.
func (Defaults) Forbidden(*Context) (bool, error) { return false, nil }

// ValidContentHeaders defaults to true.
func (Defaults) ValidContentHeaders(*Context) (bool, error) { return true, nil }

// KnownContentType accepts the request content type when the resource
// lists no accepted types, and otherwise requires an exact match.
func (d Defaults) KnownContentType(cx *Context) (bool, error) {
	accepted := cx.ContentTypesAccepted()
	if len(accepted) == 0 {
		return true, nil
	}
	ct := cx.Request.ContentType()
	for _, a := range accepted {
		if equalMediaType(a, ct) {
			return true, nil
		}
	}
	return false, nil
}

// ValidEntityLength defaults to true.
func (Defaults) ValidEntityLength(*Context) (bool, error) { return true, nil }

// Options defaults to no extra headers.
func (Defaults) Options(*Context) (map[string][]string, error) { return nil, nil }

// ContentTypesProvided defaults to unconstrained.
func (Defaults) ContentTypesProvided(*Context) []string { return nil }

// ContentTypesAccepted defaults to any type.
func (Defaults) ContentTypesAccepted(*Context) []string { return nil }

// CharsetsProvided defaults to all charsets acceptable.
func (Defaults) CharsetsProvided(*Context) []string { return nil }

// EncodingsProvided defaults to identity only.
func (Defaults) EncodingsProvided(*Context) []string { return []string{"identity"} }

// LanguagesProvided defaults to all languages acceptable.
func (Defaults) LanguagesProvided(*Context) []string { return nil }

// Variances defaults to none beyond the Accept* axes.
func (Defaults) Variances(*Context) []string { return nil }

// ResourceExists defaults to true.
func (Defaults) ResourceExists(*Context) (bool, error) { return true, nil }

// GenerateETag defaults to no ETag.
func (Defaults) GenerateETag(*Context) (string, error) { return "", nil }

// LastModified defaults to unknown.
func (Defaults) LastModified(*Context) (time.Time, error) { return time.Time{}, nil }

// Expires defaults to never.
func (Defaults) Expires(*Context) (time.Time, error) { return time.Time{}, nil }

// MovedPermanently defaults to not moved.
func (Defaults) MovedPermanently(*Context) (string, error) { return "", nil }

// MovedTemporarily defaults to not moved.
func (Defaults) MovedTemporarily(*Context) (string, error) { return "", nil }

// PreviouslyExisted defaults to false.
func (Defaults) PreviouslyExisted(*Context) (bool, error) { return false, nil }

// AllowMissingPost defaults to false.
func (Defaults) AllowMissingPost(*Context) (bool, error) { return false, nil }

// PostIsCreate defaults to false.
func (Defaults) PostIsCreate(*Context) (bool, error) { return false, nil }

// CreatePath defaults to the current request path.
func (Defaults) CreatePath(cx *Context) (string, error) { return cx.Request.Path, nil }

// ProcessPost is not implemented by default and produces 405.
func (Defaults) ProcessPost(*Context) error { return ForceStatus(405) }

// ProcessPut defaults to accepting the PUT without further work.
func (Defaults) ProcessPut(*Context) error { return nil }

// DeleteResource defaults to not enacting the delete.
func (Defaults) DeleteResource(*Context) (bool, error) { return false, nil }

// DeleteCompleted defaults to true.
func (Defaults) DeleteCompleted(*Context) (bool, error) { return true, nil }

// IsConflict defaults to false.
func (Defaults) IsConflict(*Context) (bool, error) { return false, nil }

// MultipleChoices defaults to false.
func (Defaults) MultipleChoices(*Context) (bool, error) { return false, nil }

// RenderResponse defaults to no body.
func (Defaults) RenderResponse(*Context) ([]byte, error) { return nil, nil }

// FinishRequest defaults to doing nothing.
func (Defaults) FinishRequest(*Context) error { return nil }
