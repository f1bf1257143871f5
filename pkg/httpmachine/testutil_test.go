package httpmachine

import (
	"context"
	"time"

	"github.com/randalmurphal/httpmachine/pkg/httpmachine/header"
)

// testResource overrides individual capabilities via function fields and
// counts how often each capability was invoked.
type testResource struct {
	Defaults

	serviceAvailable  func(*Context) (bool, error)
	allowedMethods    func(*Context) []string
	knownMethods      func(*Context) []string
	malformed         func(*Context) (bool, error)
	authorized        func(*Context) (bool, string, error)
	forbidden         func(*Context) (bool, error)
	knownContentType  func(*Context) (bool, error)
	validEntityLength func(*Context) (bool, error)
	options           func(*Context) (map[string][]string, error)

	contentTypesProvided func(*Context) []string
	charsetsProvided     func(*Context) []string
	encodingsProvided    func(*Context) []string
	languagesProvided    func(*Context) []string
	variances            func(*Context) []string

	resourceExists    func(*Context) (bool, error)
	previouslyExisted func(*Context) (bool, error)
	generateETag      func(*Context) (string, error)
	lastModified      func(*Context) (time.Time, error)
	expires           func(*Context) (time.Time, error)
	movedPermanently  func(*Context) (string, error)
	movedTemporarily  func(*Context) (string, error)

	allowMissingPost func(*Context) (bool, error)
	postIsCreate     func(*Context) (bool, error)
	createPath       func(*Context) (string, error)
	processPost      func(*Context) error
	processPut       func(*Context) error
	deleteResource   func(*Context) (bool, error)
	deleteCompleted  func(*Context) (bool, error)
	isConflict       func(*Context) (bool, error)
	multipleChoices  func(*Context) (bool, error)
	renderResponse   func(*Context) ([]byte, error)
	finishRequest    func(*Context) error

	calls map[string]int
}

func (r *testResource) count(name string) {
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[name]++
}

func (r *testResource) ServiceAvailable(cx *Context) (bool, error) {
	r.count("service_available")
	if r.serviceAvailable != nil {
		return r.serviceAvailable(cx)
	}
	return r.Defaults.ServiceAvailable(cx)
}

func (r *testResource) AllowedMethods(cx *Context) []string {
	r.count("allowed_methods")
	if r.allowedMethods != nil {
		return r.allowedMethods(cx)
	}
	return r.Defaults.AllowedMethods(cx)
}

func (r *testResource) KnownMethods(cx *Context) []string {
	r.count("known_methods")
	if r.knownMethods != nil {
		return r.knownMethods(cx)
	}
	return r.Defaults.KnownMethods(cx)
}

func (r *testResource) MalformedRequest(cx *Context) (bool, error) {
	r.count("malformed_request")
	if r.malformed != nil {
		return r.malformed(cx)
	}
	return r.Defaults.MalformedRequest(cx)
}

func (r *testResource) IsAuthorized(cx *Context) (bool, string, error) {
	r.count("is_authorized")
	if r.authorized != nil {
		return r.authorized(cx)
	}
	return r.Defaults.IsAuthorized(cx)
}

func (r *testResource) Forbidden(cx *Context) (bool, error) {
	r.count("forbidden")
	if r.forbidden != nil {
		return r.forbidden(cx)
	}
	return r.Defaults.Forbidden(cx)
}

func (r *testResource) KnownContentType(cx *Context) (bool, error) {
	r.count("known_content_type")
	if r.knownContentType != nil {
		return r.knownContentType(cx)
	}
	return r.Defaults.KnownContentType(cx)
}

func (r *testResource) ValidEntityLength(cx *Context) (bool, error) {
	r.count("valid_entity_length")
	if r.validEntityLength != nil {
		return r.validEntityLength(cx)
	}
	return r.Defaults.ValidEntityLength(cx)
}

func (r *testResource) Options(cx *Context) (map[string][]string, error) {
	r.count("options")
	if r.options != nil {
		return r.options(cx)
	}
	return r.Defaults.Options(cx)
}

func (r *testResource) ContentTypesProvided(cx *Context) []string {
	r.count("content_types_provided")
	if r.contentTypesProvided != nil {
		return r.contentTypesProvided(cx)
	}
	return r.Defaults.ContentTypesProvided(cx)
}

func (r *testResource) CharsetsProvided(cx *Context) []string {
	r.count("charsets_provided")
	if r.charsetsProvided != nil {
		return r.charsetsProvided(cx)
	}
	return r.Defaults.CharsetsProvided(cx)
}

func (r *testResource) EncodingsProvided(cx *Context) []string {
	r.count("encodings_provided")
	if r.encodingsProvided != nil {
		return r.encodingsProvided(cx)
	}
	return r.Defaults.EncodingsProvided(cx)
}

func (r *testResource) LanguagesProvided(cx *Context) []string {
	r.count("languages_provided")
	if r.languagesProvided != nil {
		return r.languagesProvided(cx)
	}
	return r.Defaults.LanguagesProvided(cx)
}

func (r *testResource) Variances(cx *Context) []string {
	r.count("variances")
	if r.variances != nil {
		return r.variances(cx)
	}
	return r.Defaults.Variances(cx)
}

func (r *testResource) ResourceExists(cx *Context) (bool, error) {
	r.count("resource_exists")
	if r.resourceExists != nil {
		return r.resourceExists(cx)
	}
	return r.Defaults.ResourceExists(cx)
}

func (r *testResource) PreviouslyExisted(cx *Context) (bool, error) {
	r.count("previously_existed")
	if r.previouslyExisted != nil {
		return r.previouslyExisted(cx)
	}
	return r.Defaults.PreviouslyExisted(cx)
}

func (r *testResource) GenerateETag(cx *Context) (string, error) {
	r.count("generate_etag")
	if r.generateETag != nil {
		return r.generateETag(cx)
	}
	return r.Defaults.GenerateETag(cx)
}

func (r *testResource) LastModified(cx *Context) (time.Time, error) {
	r.count("last_modified")
	if r.lastModified != nil {
		return r.lastModified(cx)
	}
	return r.Defaults.LastModified(cx)
}

func (r *testResource) Expires(cx *Context) (time.Time, error) {
	r.count("expires")
	if r.expires != nil {
		return r.expires(cx)
	}
	return r.Defaults.Expires(cx)
}

func (r *testResource) MovedPermanently(cx *Context) (string, error) {
	r.count("moved_permanently")
	if r.movedPermanently != nil {
		return r.movedPermanently(cx)
	}
	return r.Defaults.MovedPermanently(cx)
}

func (r *testResource) MovedTemporarily(cx *Context) (string, error) {
	r.count("moved_temporarily")
	if r.movedTemporarily != nil {
		return r.movedTemporarily(cx)
	}
	return r.Defaults.MovedTemporarily(cx)
}

func (r *testResource) AllowMissingPost(cx *Context) (bool, error) {
	r.count("allow_missing_post")
	if r.allowMissingPost != nil {
		return r.allowMissingPost(cx)
	}
	return r.Defaults.AllowMissingPost(cx)
}

func (r *testResource) PostIsCreate(cx *Context) (bool, error) {
	r.count("post_is_create")
	if r.postIsCreate != nil {
		return r.postIsCreate(cx)
	}
	return r.Defaults.PostIsCreate(cx)
}

func (r *testResource) CreatePath(cx *Context) (string, error) {
	r.count("create_path")
	if r.createPath != nil {
		return r.createPath(cx)
	}
	return r.Defaults.CreatePath(cx)
}

func (r *testResource) ProcessPost(cx *Context) error {
	r.count("process_post")
	if r.processPost != nil {
		return r.processPost(cx)
	}
	return r.Defaults.ProcessPost(cx)
}

func (r *testResource) ProcessPut(cx *Context) error {
	r.count("process_put")
	if r.processPut != nil {
		return r.processPut(cx)
	}
	return r.Defaults.ProcessPut(cx)
}

func (r *testResource) DeleteResource(cx *Context) (bool, error) {
	r.count("delete_resource")
	if r.deleteResource != nil {
		return r.deleteResource(cx)
	}
	return r.Defaults.DeleteResource(cx)
}

func (r *testResource) DeleteCompleted(cx *Context) (bool, error) {
	r.count("delete_completed")
	if r.deleteCompleted != nil {
		return r.deleteCompleted(cx)
	}
	return r.Defaults.DeleteCompleted(cx)
}

func (r *testResource) IsConflict(cx *Context) (bool, error) {
	r.count("is_conflict")
	if r.isConflict != nil {
		return r.isConflict(cx)
	}
	return r.Defaults.IsConflict(cx)
}

func (r *testResource) MultipleChoices(cx *Context) (bool, error) {
	r.count("multiple_choices")
	if r.multipleChoices != nil {
		return r.multipleChoices(cx)
	}
	return r.Defaults.MultipleChoices(cx)
}

func (r *testResource) RenderResponse(cx *Context) ([]byte, error) {
	r.count("render_response")
	if r.renderResponse != nil {
		return r.renderResponse(cx)
	}
	return r.Defaults.RenderResponse(cx)
}

func (r *testResource) FinishRequest(cx *Context) error {
	r.count("finish_request")
	if r.finishRequest != nil {
		return r.finishRequest(cx)
	}
	return r.Defaults.FinishRequest(cx)
}

// writableResource allows any method and accepts writes, the usual base
// for mutation tests.
func writableResource() *testResource {
	return &testResource{
		allowedMethods: func(*Context) []string {
			return []string{"GET", "HEAD", "PUT", "POST", "DELETE", "OPTIONS"}
		},
	}
}

func testCtx() context.Context {
	return context.Background()
}

// newRequest builds a request with the given headers. List-valued headers
// are comma-split the way the dispatcher would.
func newRequest(method, path string, headers map[string]string) *Request {
	req := NewRequest(method, path)
	for name, value := range headers {
		switch name {
		case "Accept", "Accept-Charset", "Accept-Encoding", "Accept-Language",
			"If-Match", "If-None-Match":
			req.Headers[name] = header.ParseList(value)
		default:
			req.Headers[name] = []header.Value{header.Parse(value)}
		}
	}
	return req
}

// headerValue returns the rendered first value of a response header, or "".
func headerValue(resp *Response, name string) string {
	if v, ok := resp.Headers.First(name); ok {
		return v.String()
	}
	return ""
}
