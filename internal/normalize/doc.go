// Package normalize maps raw grant-application cells onto the closed vocabulary
// of each cleaned column.
//
// Every exported function is a pure, total normalizer for one source column:
// it never panics and never returns an error. Blank cells, whitespace and the
// column's placeholder tokens ("na", "n/a", "missing", "?") resolve to the NA
// sentinel, or to the column-specific equivalent (Missing for distance,
// Missing value for the remaining balance, Unknown for unrecognised languages).
//
// # Rule tables
//
// Free-text columns are bucketed with ordered rule tables. Each rule pairs a
// label with a matcher and the first matching rule wins, so declaration order
// is the tie-break:
//
//	var maritalRules = []rule{
//	    {"Divorced", pattern(`(?i)(divorced|separated|dissolved)`)},
//	    {"Married", pattern(`(?i)(married|husband|wife|spouse)`)},
//	}
//
// "never married" therefore resolves to Married, exactly as the rule order says.
//
// # Vocabulary
//
// Vocabulary lists the closed set of every categorical column. It backs the
// category validation that runs on each record before it is written.
package normalize
