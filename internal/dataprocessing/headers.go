package dataprocessing

import (
	"strings"
	"unicode"
)

// headerRenames maps normalized intake headers to their short names
var headerRenames = map[string]string{
	"reason__pendingno":        "reason_pending",
	"distance_roundtriptx":     "distance",
	"type_of_assistance_class": "assistance_type",
	"patient_letter_notified_directlyindirectly_through_rep": "notified",
}

// NormalizeHeader turns an intake header into a column name: trimmed, lower
// case, spaces become underscores and punctuation is dropped.
//
//	"Reason - Pending/No" -> "reason_pending"
//	"Patient ID#"         -> "patient_id"
func NormalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, h)

	if renamed, ok := headerRenames[h]; ok {
		return renamed
	}
	return h
}

// NormalizeHeaders normalizes every header in order
func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = NormalizeHeader(h)
	}
	return out
}
