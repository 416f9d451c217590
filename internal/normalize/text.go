package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nameAcronyms stay upper-case when names are title-cased
var nameAcronyms = map[string]struct{}{
	"LLC": {}, "PC": {}, "MD": {}, "INC": {}, "DBA": {}, "PLLC": {}, "PA": {},
}

// capitalize upper-cases the first rune and lower-cases the rest
func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}

// titleName title-cases a person or organisation name, keeping business and
// credential acronyms upper-case
func titleName(name string) string {
	// cases.Caser is stateful; one per call keeps normalizers goroutine safe
	caser := cases.Title(language.Und)
	words := strings.Fields(name)
	for i, w := range words {
		if _, ok := nameAcronyms[strings.ToUpper(strings.TrimRight(w, ".,"))]; ok {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

// PatientID returns the trimmed identifier or NA
func PatientID(raw string) string {
	if IsBlank(raw) {
		return NA
	}
	return Clean(raw)
}

// Notes returns the free-text note or NA
func Notes(raw string) string {
	if IsBlank(raw) {
		return NA
	}
	return Clean(raw)
}

// PayableTo title-cases the payee name
func PayableTo(raw string) string {
	if isPlaceholder(raw, "na", "missing", "?") {
		return NA
	}
	return titleName(Clean(raw))
}

// ReferredBy title-cases the referring person
func ReferredBy(raw string) string {
	if isPlaceholder(raw, "missing", "na", "n/a", "not available") {
		return NA
	}
	return titleName(Clean(raw))
}

var referralRules = []rule{
	{"Pediatric Hospitals", pattern(`(children|pediatric)`)},
	{"Cancer Centers", pattern(`(cancer|oncology|hematology|nebraska cancer|morrison cancer|june e nylen|heartland oncology|ncs|cpn|mcc|meccspecialists|nebraska hematology|heartland hematology|nho)`)},
	{"Hospital Networks", pattern(`(health|hospital|medical center|clinic|community|practice|mje|st|medical|nemed)`)},
}

// ReferralSource classifies the referring organisation
func ReferralSource(raw string) string {
	if isPlaceholder(raw, "missing") {
		return NA
	}
	return firstMatch(referralRules, lowered(raw), "Other")
}

var assistanceRules = []rule{
	{"Car Payment", pattern(`car payment`)},
	{"Housing", pattern(`housing`)},
	{"Phone/Internet", pattern(`(phone|internet)`)},
	{"Food/Groceries", pattern(`(food|grocer)`)},
	{"Gas", pattern(`\bgas\b`)},
	{"Medical Supplies/Prescription Co-pay(s)", pattern(`(medical|prescription|co-pay)`)},
	{"Utilities", pattern(`utilit`)},
}

// AssistanceType classifies the requested assistance. A comma-separated list
// or several matching categories resolve to Multiple.
func AssistanceType(raw string) string {
	if isPlaceholder(raw, "na", "missing", "n/a") {
		return NA
	}
	s := lowered(raw)
	if s == "multiple" || strings.Contains(s, ",") {
		return "Multiple"
	}
	matches := allMatches(assistanceRules, s)
	switch len(matches) {
	case 0:
		return "Other"
	case 1:
		return matches[0]
	default:
		return "Multiple"
	}
}
