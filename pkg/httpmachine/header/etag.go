package header

import "strings"

// ETag is a parsed entity-tag. Weak tags carry the W/ prefix on the wire.
type ETag struct {
	// Tag is the opaque tag with quotes and any W/ prefix removed.
	Tag string
	// Weak marks a weak validator.
	Weak bool
}

// ParseETag parses an entity-tag as it appears in If-Match, If-None-Match
// or the ETag header. Quotes are optional, W/ marks a weak tag.
func ParseETag(s string) ETag {
	s = strings.TrimSpace(s)
	weak := false
	if strings.HasPrefix(s, "W/") || strings.HasPrefix(s, "w/") {
		weak = true
		s = s[2:]
	}
	return ETag{Tag: unquote(s), Weak: weak}
}

// StrongMatch reports whether both tags match under the strong comparison
// function: equal opaque tags and neither weak.
func (e ETag) StrongMatch(other ETag) bool {
	return !e.Weak && !other.Weak && e.Tag == other.Tag
}

// WeakMatch reports whether the tags match under the weak comparison
// function: equal opaque tags, weakness ignored.
func (e ETag) WeakMatch(other ETag) bool {
	return e.Tag == other.Tag
}

// String renders the tag as it appears on the wire.
func (e ETag) String() string {
	if e.Weak {
		return `W/"` + e.Tag + `"`
	}
	return `"` + e.Tag + `"`
}
