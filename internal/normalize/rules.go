package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"grantcli/pkg/contracts/domain"
)

// NA re-exports the sentinel for callers that only import this package
const NA = domain.NA

// rule is one (label, matcher) pair of an ordered rule table
type rule struct {
	label string
	match func(string) bool
}

// firstMatch returns the label of the first matching rule, or fallback
func firstMatch(rules []rule, s, fallback string) string {
	for _, r := range rules {
		if r.match(s) {
			return r.label
		}
	}
	return fallback
}

// allMatches returns every matching label in declaration order
func allMatches(rules []rule, s string) []string {
	var labels []string
	for _, r := range rules {
		if r.match(s) {
			labels = append(labels, r.label)
		}
	}
	return labels
}

// contains matches when any of the keywords is a substring
func contains(keywords ...string) func(string) bool {
	return func(s string) bool {
		for _, k := range keywords {
			if strings.Contains(s, k) {
				return true
			}
		}
		return false
	}
}

// exact matches when s equals one of the values
func exact(values ...string) func(string) bool {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(s string) bool {
		_, ok := set[s]
		return ok
	}
}

// pattern matches when the expression is found anywhere in s
func pattern(expr string) func(string) bool {
	return regexp.MustCompile(expr).MatchString
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Clean applies NFKC normalization, collapses runs of whitespace and trims.
// Spreadsheet exports often carry non-breaking spaces and full-width forms.
func Clean(raw string) string {
	s := norm.NFKC.String(raw)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// lowered returns the cleaned, lower-cased cell
func lowered(raw string) string {
	return strings.ToLower(Clean(raw))
}

// IsBlank reports whether the cell is empty after cleaning
func IsBlank(raw string) bool {
	return Clean(raw) == ""
}

// isPlaceholder reports whether the cell is blank or one of the given tokens
// (compared lower-cased)
func isPlaceholder(raw string, tokens ...string) bool {
	s := lowered(raw)
	if s == "" {
		return true
	}
	for _, t := range tokens {
		if s == t {
			return true
		}
	}
	return false
}
