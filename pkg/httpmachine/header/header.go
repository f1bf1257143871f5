// Package header provides parsed HTTP header values and case-insensitive
// header field maps as used by the httpmachine decision engine.
package header

import (
	"sort"
	"strconv"
	"strings"
)

// Value is a single parsed header element: the bare value plus any
// semicolon-separated parameters (e.g. "text/html;q=0.8;level=1").
type Value struct {
	// Value is the element with parameters stripped.
	Value string
	// Params holds the parameters keyed by lower-cased name.
	Params map[string]string
}

// Parse parses a single header element into a Value.
// Parameters are split on ';' and lower-cased by name. Surrounding
// whitespace is trimmed. Quoted parameter values are unquoted.
func Parse(s string) Value {
	parts := strings.Split(s, ";")
	v := Value{Value: strings.TrimSpace(parts[0])}
	for _, p := range parts[1:] {
		name, val, found := strings.Cut(p, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if v.Params == nil {
			v.Params = make(map[string]string)
		}
		if found {
			v.Params[name] = unquote(strings.TrimSpace(val))
		} else {
			v.Params[name] = ""
		}
	}
	return v
}

// ParseList parses a comma-separated header value into its elements.
// Empty elements are dropped. An empty input yields a nil slice.
func ParseList(s string) []Value {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var values []Value
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		values = append(values, Parse(part))
	}
	return values
}

// Basic returns a Value with no parameters.
func Basic(s string) Value {
	return Value{Value: s}
}

// Quality returns the q parameter as a float in [0, 1].
// Missing or unparsable q values default to 1.0; out-of-range
// values are clamped.
func (v Value) Quality() float64 {
	q, ok := v.Params["q"]
	if !ok {
		return 1.0
	}
	f, err := strconv.ParseFloat(q, 64)
	if err != nil {
		return 1.0
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1.0
	}
	return f
}

// Param returns the named parameter (case-insensitive) and whether it was set.
func (v Value) Param(name string) (string, bool) {
	val, ok := v.Params[strings.ToLower(name)]
	return val, ok
}

// String renders the value with its parameters in a stable order.
func (v Value) String() string {
	if len(v.Params) == 0 {
		return v.Value
	}
	names := make([]string, 0, len(v.Params))
	for name := range v.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(v.Value)
	for _, name := range names {
		b.WriteString(";")
		b.WriteString(name)
		if val := v.Params[name]; val != "" {
			b.WriteString("=")
			b.WriteString(val)
		}
	}
	return b.String()
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// Fields is a header multimap. Keys keep their original spelling;
// lookups are case-insensitive.
type Fields map[string][]Value

// Has reports whether the named header is present.
func (f Fields) Has(name string) bool {
	_, ok := f.lookup(name)
	return ok
}

// Get returns the values of the named header, or nil when absent.
func (f Fields) Get(name string) []Value {
	key, ok := f.lookup(name)
	if !ok {
		return nil
	}
	return f[key]
}

// First returns the first value of the named header and whether one exists.
func (f Fields) First(name string) (Value, bool) {
	values := f.Get(name)
	if len(values) == 0 {
		return Value{}, false
	}
	return values[0], true
}

// HasValue reports whether the named header contains the exact value.
func (f Fields) HasValue(name, value string) bool {
	for _, v := range f.Get(name) {
		if v.Value == value {
			return true
		}
	}
	return false
}

// Set replaces the named header with the given values.
// An existing key with different casing is replaced, not duplicated.
func (f Fields) Set(name string, values ...Value) {
	if key, ok := f.lookup(name); ok && key != name {
		delete(f, key)
	}
	f[name] = values
}

// SortedNames returns the header names in lexicographic order.
func (f Fields) SortedNames() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f Fields) lookup(name string) (string, bool) {
	if _, ok := f[name]; ok {
		return name, true
	}
	for key := range f {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}
