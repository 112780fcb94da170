// Package selector synthesizes, evaluates, and validates CSS selectors
// against parsed HTML documents.
package selector

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/scrapefeed/internal/dom"
)

// MarkerClassPrefix is the class prefix the element picker injects while
// the user is pointing at markup. Synthesized selectors must never
// depend on it.
const MarkerClassPrefix = "scrapefeed-"

const (
	hashLikeMinLength = 8
	hashLikeMinDigits = 2
)

// defaultDenyPrefixes lists class prefixes that build tools stamp onto
// generated markup. Selectors built on them go stale on every rebuild of
// the source site.
var defaultDenyPrefixes = []string{
	"_",
	"css-",
	"jsx-",
	"sc-",
	"svelte-",
	"ng-",
	"jss",
	MarkerClassPrefix,
}

// ClassFilter decides which class tokens are stable enough to appear in
// a synthesized selector. The rules are tuning heuristics, not
// invariants, so every list is overridable.
type ClassFilter struct {
	// DenyPrefixes rejects classes by prefix.
	DenyPrefixes []string
	// DenyPatterns rejects classes matching any of the expressions.
	DenyPatterns []*regexp.Regexp
	// DenyHashLike rejects long mixed digit/letter tokens that look
	// like content hashes.
	DenyHashLike bool
}

// DefaultClassFilter returns the filter used when the caller does not
// override the heuristics.
func DefaultClassFilter() *ClassFilter {
	return &ClassFilter{
		DenyPrefixes: defaultDenyPrefixes,
		DenyHashLike: true,
	}
}

// WithExtraPrefixes returns a copy of the filter with additional deny
// prefixes appended.
func (f *ClassFilter) WithExtraPrefixes(prefixes ...string) *ClassFilter {
	clone := *f
	clone.DenyPrefixes = append(append([]string{}, f.DenyPrefixes...), prefixes...)

	return &clone
}

// Usable reports whether a class token may appear in a selector.
func (f *ClassFilter) Usable(class string) bool {
	if class == "" {
		return false
	}

	for _, prefix := range f.DenyPrefixes {
		if strings.HasPrefix(class, prefix) {
			return false
		}
	}

	for _, re := range f.DenyPatterns {
		if re.MatchString(class) {
			return false
		}
	}

	if f.DenyHashLike && looksHashLike(class) {
		return false
	}

	return true
}

// FilteredClasses returns the element's usable class tokens in
// attribute order.
func (f *ClassFilter) FilteredClasses(el *dom.Element) []string {
	var usable []string
	for _, class := range el.Classes() {
		if f.Usable(class) {
			usable = append(usable, class)
		}
	}

	return usable
}

// looksHashLike reports whether a token resembles a generated content
// hash: long, purely alphanumeric, with several digits mixed in.
func looksHashLike(class string) bool {
	if len(class) < hashLikeMinLength {
		return false
	}

	digits, letters := 0, 0
	for _, r := range class {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letters++
		default:
			return false
		}
	}

	return digits >= hashLikeMinDigits && letters > 0
}
