package benchmarks

import (
	"context"
	"testing"
	"time"

	"github.com/randalmurphal/httpmachine/pkg/httpmachine"
	"github.com/randalmurphal/httpmachine/pkg/httpmachine/header"
)

// benchResource is a small read-only resource for measuring engine overhead.
type benchResource struct {
	httpmachine.Defaults
}

func (benchResource) AllowedMethods(*httpmachine.Context) []string {
	return []string{"GET", "HEAD", "OPTIONS"}
}

func (benchResource) ContentTypesProvided(*httpmachine.Context) []string {
	return []string{"application/json", "text/html", "text/plain"}
}

func (benchResource) LanguagesProvided(*httpmachine.Context) []string {
	return []string{"en", "de", "fr"}
}

func (benchResource) GenerateETag(*httpmachine.Context) (string, error) {
	return "v1", nil
}

func (benchResource) LastModified(*httpmachine.Context) (time.Time, error) {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func (benchResource) RenderResponse(*httpmachine.Context) ([]byte, error) {
	return []byte(`{"ok":true}`), nil
}

// BenchmarkRun_Get measures a plain GET traversal end to end.
func BenchmarkRun_Get(b *testing.B) {
	ctx := context.Background()
	res := benchResource{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httpmachine.NewRequest("GET", "/bench")
		_, _ = httpmachine.Run(ctx, res, req)
	}
}

// BenchmarkRun_Negotiated measures a GET with a full set of Accept headers.
func BenchmarkRun_Negotiated(b *testing.B) {
	ctx := context.Background()
	res := benchResource{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httpmachine.NewRequest("GET", "/bench")
		req.Headers.Set("Accept", header.ParseList("text/html;q=0.9, application/json, */*;q=0.1")...)
		req.Headers.Set("Accept-Language", header.ParseList("de, en;q=0.8")...)
		_, _ = httpmachine.Run(ctx, res, req)
	}
}

// BenchmarkRun_NotModified measures the conditional 304 path.
func BenchmarkRun_NotModified(b *testing.B) {
	ctx := context.Background()
	res := benchResource{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httpmachine.NewRequest("GET", "/bench")
		req.Headers.Set("If-None-Match", header.Parse(`"v1"`))
		_, _ = httpmachine.Run(ctx, res, req)
	}
}

// BenchmarkRun_MethodNotAllowed measures the short 405 path.
func BenchmarkRun_MethodNotAllowed(b *testing.B) {
	ctx := context.Background()
	res := benchResource{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httpmachine.NewRequest("DELETE", "/bench")
		_, _ = httpmachine.Run(ctx, res, req)
	}
}

// BenchmarkRun_Options measures the OPTIONS terminal.
func BenchmarkRun_Options(b *testing.B) {
	ctx := context.Background()
	res := benchResource{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httpmachine.NewRequest("OPTIONS", "/bench")
		_, _ = httpmachine.Run(ctx, res, req)
	}
}
