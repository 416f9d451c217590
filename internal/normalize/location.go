package normalize

import (
	"regexp"
	"strings"
)

var nonLetterRe = regexp.MustCompile(`[^a-zA-Z\s]`)

// City strips everything but letters and spaces and capitalizes each word
func City(raw string) string {
	if isPlaceholder(raw, "missing") {
		return NA
	}
	letters := nonLetterRe.ReplaceAllString(Clean(raw), "")
	words := strings.Fields(letters)
	if len(words) == 0 {
		return NA
	}
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

var stateAbbreviations = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
}

var stateCodes = func() map[string]struct{} {
	codes := make(map[string]struct{}, len(stateAbbreviations))
	for _, code := range stateAbbreviations {
		codes[code] = struct{}{}
	}
	return codes
}()

// State returns the two-letter state code for a code or full state name
func State(raw string) string {
	if isPlaceholder(raw, "missing") {
		return NA
	}
	s := Clean(raw)
	if _, ok := stateCodes[strings.ToUpper(s)]; ok {
		return strings.ToUpper(s)
	}
	if code, ok := stateAbbreviations[strings.ToLower(s)]; ok {
		return code
	}
	return NA
}

var (
	zipRe       = regexp.MustCompile(`^(\d{5})(-\d{4})?$`)
	shortZipRe  = regexp.MustCompile(`^\d{1,4}$`)
	floatZipSfx = regexp.MustCompile(`\.0+$`)
)

// Zip returns the five-digit zip code. Numeric cells that lost their leading
// zeros in the spreadsheet are padded back; ZIP+4 keeps the first five digits.
// Anything else is passed through unchanged.
func Zip(raw string) string {
	if isPlaceholder(raw, "missing", "na", "n/a") {
		return NA
	}
	s := floatZipSfx.ReplaceAllString(Clean(raw), "")
	if m := zipRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if shortZipRe.MatchString(s) {
		return strings.Repeat("0", 5-len(s)) + s
	}
	return s
}
