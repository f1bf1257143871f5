// Package dispatch routes requests to resources and adapts the decision
// engine to net/http.
package dispatch

import (
	"strings"
	"sync"

	"github.com/randalmurphal/httpmachine/pkg/httpmachine"
	"github.com/randalmurphal/httpmachine/pkg/httpmachine/cache"
)

// Dispatcher maps path patterns to resources. Patterns are segment-wise
// prefixes; a segment of the form {name} matches any single segment and
// binds it. The most specific matching pattern wins: more segments first,
// then more literal (unbound) segments, then registration order.
//
// Dispatcher is safe for concurrent use once routes are registered.
// Registering routes while serving is not supported.
type Dispatcher struct {
	mu      sync.RWMutex
	routes  []route
	runOpts []httpmachine.RunOption
	store   cache.Store
}

type route struct {
	pattern  string
	segments []segment
	literals int
	resource httpmachine.Resource
}

type segment struct {
	literal string
	binding string // nonempty for {name} segments
}

// New creates a Dispatcher. The given run options apply to every request
// it dispatches.
func New(opts ...httpmachine.RunOption) *Dispatcher {
	return &Dispatcher{runOpts: opts}
}

// Add registers a resource under a path pattern.
//
// Panics if the pattern does not start with "/" or the resource is nil;
// route tables are static and a bad registration is a programming error.
func (d *Dispatcher) Add(pattern string, res httpmachine.Resource) *Dispatcher {
	if !strings.HasPrefix(pattern, "/") {
		panic("dispatch: pattern must start with /")
	}
	if res == nil {
		panic("dispatch: resource cannot be nil")
	}

	segs := parsePattern(pattern)
	literals := 0
	for _, s := range segs {
		if s.binding == "" {
			literals++
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.routes = append(d.routes, route{
		pattern:  pattern,
		segments: segs,
		literals: literals,
		resource: res,
	})
	return d
}

func parsePattern(pattern string) []segment {
	var segs []segment
	for _, part := range strings.Split(strings.Trim(pattern, "/"), "/") {
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			segs = append(segs, segment{binding: part[1 : len(part)-1]})
		} else {
			segs = append(segs, segment{literal: part})
		}
	}
	return segs
}

// Match is a resolved route: the resource to run and the request paths and
// bindings it should see.
type Match struct {
	// Resource is the bound resource.
	Resource httpmachine.Resource
	// BasePath is the part of the path the pattern consumed.
	BasePath string
	// Path is the remainder, always starting with "/".
	Path string
	// Bindings holds the values captured by {name} segments.
	Bindings map[string]string
}

// Resolve finds the most specific route matching the path.
func (d *Dispatcher) Resolve(path string) (Match, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	parts := splitPath(path)

	best := -1
	var bestMatch Match
	for i, rt := range d.routes {
		m, ok := matchRoute(rt, parts)
		if !ok {
			continue
		}
		if best >= 0 && !moreSpecific(rt, d.routes[best]) {
			continue
		}
		best = i
		bestMatch = m
	}
	if best < 0 {
		return Match{}, false
	}
	return bestMatch, true
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(strings.Trim(path, "/"), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func matchRoute(rt route, parts []string) (Match, bool) {
	if len(parts) < len(rt.segments) {
		return Match{}, false
	}
	var bindings map[string]string
	for i, seg := range rt.segments {
		if seg.binding != "" {
			if bindings == nil {
				bindings = make(map[string]string)
			}
			bindings[seg.binding] = parts[i]
			continue
		}
		if seg.literal != parts[i] {
			return Match{}, false
		}
	}
	base := "/" + strings.Join(parts[:len(rt.segments)], "/")
	if len(rt.segments) == 0 {
		base = ""
	}
	rest := "/" + strings.Join(parts[len(rt.segments):], "/")
	return Match{
		Resource: rt.resource,
		BasePath: base,
		Path:     rest,
		Bindings: bindings,
	}, true
}

func moreSpecific(a, b route) bool {
	if len(a.segments) != len(b.segments) {
		return len(a.segments) > len(b.segments)
	}
	return a.literals > b.literals
}
