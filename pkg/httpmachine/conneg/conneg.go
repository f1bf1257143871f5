// Package conneg implements proactive content negotiation over the four
// Accept* axes (media type, charset, encoding, language).
//
// Each Select function takes the parsed client preferences for one axis and
// the resource's ordered variant list, and picks a single variant. Selection
// is deterministic: quality descending, then specificity descending, then
// resource-list order ascending. Entries with q=0 are excluded but never
// error. The media-type axis is the only fatal one; the other axes fall back
// rather than fail.
package conneg

import (
	"strings"

	"github.com/randalmurphal/httpmachine/pkg/httpmachine/header"
)

// Identity is the encoding every client implicitly accepts.
const Identity = "identity"

// DefaultCharset is assumed when the resource does not constrain charsets.
const DefaultCharset = "ISO-8859-1"

// Specificity ranks for preference entries. Exact ranges outrank
// subtype wildcards, which outrank the full wildcard.
const (
	specExact   = 2
	specSubStar = 1
	specStar    = 0
)

// Entry is one parsed preference from an Accept* header: a range, its
// quality, and how specific the range is. Entries are built fresh for each
// negotiation and not cached.
type Entry struct {
	Range       string
	Quality     float64
	Specificity int
}

// entries converts header values into preference entries for one axis.
// The specificity function ranks a range; media types and plain tokens
// rank differently.
func entries(values []header.Value, specificity func(string) int) []Entry {
	parsed := make([]Entry, 0, len(values))
	for _, v := range values {
		if v.Value == "" {
			continue
		}
		parsed = append(parsed, Entry{
			Range:       v.Value,
			Quality:     v.Quality(),
			Specificity: specificity(v.Value),
		})
	}
	return parsed
}

func tokenSpecificity(r string) int {
	if r == "*" {
		return specStar
	}
	return specExact
}

func mediaSpecificity(r string) int {
	main, sub := splitMediaType(r)
	switch {
	case main == "*":
		return specStar
	case sub == "*":
		return specSubStar
	default:
		return specExact
	}
}

func splitMediaType(s string) (main, sub string) {
	main, sub, found := strings.Cut(s, "/")
	if main == "" {
		main = "*"
	}
	if !found || sub == "" {
		sub = "*"
	}
	return main, sub
}

// choose picks the best provided variant. For each variant the best matching
// entry (highest quality, then highest specificity) is found; variants with
// no matching entry of quality > 0 are skipped. Among the remainder the
// winner has the highest (quality, specificity), with the variant's position
// in the provided list as the final tie-break.
func choose(provided []string, prefs []Entry, matches func(variant, rng string) bool) (string, bool) {
	bestIdx := -1
	var bestQ float64
	var bestSpec int
	for i, variant := range provided {
		found := false
		var q float64
		var spec int
		for _, e := range prefs {
			if e.Quality <= 0 || !matches(variant, e.Range) {
				continue
			}
			if !found || e.Quality > q || (e.Quality == q && e.Specificity > spec) {
				found = true
				q = e.Quality
				spec = e.Specificity
			}
		}
		if !found {
			continue
		}
		if bestIdx < 0 || q > bestQ || (q == bestQ && spec > bestSpec) {
			bestIdx = i
			bestQ = q
			bestSpec = spec
		}
	}
	if bestIdx < 0 {
		return "", false
	}
	return provided[bestIdx], true
}

// MediaTypeMatches reports whether the provided media type falls within the
// accept range. Ranges may be exact ("text/html"), subtype wildcards
// ("text/*") or the full wildcard ("*/*" or "*").
func MediaTypeMatches(provided, rng string) bool {
	pMain, pSub := splitMediaType(provided)
	rMain, rSub := splitMediaType(rng)
	if rMain == "*" {
		return true
	}
	if !strings.EqualFold(pMain, rMain) {
		return false
	}
	return rSub == "*" || strings.EqualFold(pSub, rSub)
}

// SelectMediaType negotiates the media-type axis.
//
// With no Accept header (nil accept) the first provided type wins. An empty
// provided list is unconstrained and selects nothing. Otherwise the standard
// selection rule applies, and a miss is a failure (the caller turns it into
// 406).
func SelectMediaType(accept []header.Value, provided []string) (string, bool) {
	if len(provided) == 0 {
		return "", true
	}
	if len(accept) == 0 {
		return provided[0], true
	}
	return choose(provided, entries(accept, mediaSpecificity), MediaTypeMatches)
}

// SelectCharset negotiates the charset axis. Non-fatal: when nothing
// matches, the first provided charset wins anyway. An empty provided list
// means all charsets are acceptable and selects nothing.
func SelectCharset(accept []header.Value, provided []string) string {
	if len(provided) == 0 {
		return ""
	}
	if len(accept) == 0 {
		return provided[0]
	}
	chosen, ok := choose(provided, entries(accept, tokenSpecificity), tokenMatches)
	if !ok {
		return provided[0]
	}
	return chosen
}

// SelectEncoding negotiates the encoding axis. Non-fatal: when nothing
// matches, identity is selected. Clients always accept identity unless they
// exclude it explicitly, so it is appended to the candidate list when absent.
func SelectEncoding(accept []header.Value, provided []string) string {
	if len(provided) == 0 {
		provided = []string{Identity}
	}
	if len(accept) == 0 {
		return provided[0]
	}
	candidates := provided
	if !containsFold(candidates, Identity) {
		candidates = append(append([]string{}, candidates...), Identity)
	}
	chosen, ok := choose(candidates, entries(accept, tokenSpecificity), tokenMatches)
	if !ok {
		return Identity
	}
	return chosen
}

// SelectLanguage negotiates the language axis. Non-fatal: when nothing
// matches, the first provided language wins. An empty provided list means
// all languages are acceptable and selects nothing.
func SelectLanguage(accept []header.Value, provided []string) string {
	if len(provided) == 0 {
		return ""
	}
	if len(accept) == 0 {
		return provided[0]
	}
	chosen, ok := choose(provided, entries(accept, languageSpecificity), LanguageMatches)
	if !ok {
		return provided[0]
	}
	return chosen
}

// LanguageMatches reports whether a provided language tag satisfies an
// Accept-Language range. "en" satisfies "en" and any of its subtags such as
// "en-gb"; "*" satisfies everything.
func LanguageMatches(provided, rng string) bool {
	if rng == "*" {
		return true
	}
	if strings.EqualFold(provided, rng) {
		return true
	}
	return strings.HasPrefix(strings.ToLower(rng), strings.ToLower(provided)+"-")
}

func languageSpecificity(r string) int {
	if r == "*" {
		return specStar
	}
	if strings.Contains(r, "-") {
		return specExact
	}
	return specSubStar
}

func tokenMatches(provided, rng string) bool {
	return rng == "*" || strings.EqualFold(provided, rng)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
