package dispatch

import (
	"fmt"

	"github.com/randalmurphal/httpmachine/pkg/httpmachine"
	"github.com/randalmurphal/httpmachine/pkg/httpmachine/cache"
	"github.com/randalmurphal/httpmachine/pkg/httpmachine/config"
)

// FromConfig builds a Dispatcher from a loaded configuration: engine
// defaults, the selected validator cache backing, and observability
// switches. Call Close when done to release the cache backing.
func FromConfig(cfg config.Config) (*Dispatcher, error) {
	normalized, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}

	opts := []httpmachine.RunOption{
		httpmachine.WithMaxTransitions(normalized.MaxTransitions),
		httpmachine.WithDefaultContentType(normalized.DefaultContentType),
		httpmachine.WithDefaultCharset(normalized.DefaultCharset),
	}

	var store cache.Store
	switch normalized.ValidatorCache {
	case "":
	case "memory":
		store = cache.NewMemoryStore()
	default:
		s, err := cache.NewSQLiteStore(normalized.ValidatorCache)
		if err != nil {
			return nil, fmt.Errorf("open validator cache: %w", err)
		}
		store = s
	}
	if store != nil {
		opts = append(opts, httpmachine.WithValidatorCache(store))
	}

	if normalized.Metrics {
		opts = append(opts, httpmachine.WithMetrics())
	}
	if normalized.Tracing {
		opts = append(opts, httpmachine.WithTracing())
	}

	d := New(opts...)
	d.store = store
	return d, nil
}

// Close releases the validator cache backing, if any. A Dispatcher built
// with New has nothing to release.
func (d *Dispatcher) Close() error {
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}
