package normalize

import (
	"regexp"
	"sort"
	"strings"
)

var genderRules = []rule{
	{"Female", exact("female", "woman", "girl", "f")},
	{"Male", exact("male", "man", "boy", "m")},
	{"Transgender Female", exact("transgender female", "trans woman", "transwoman", "ftm")},
	{"Transgender Male", exact("transgender male", "trans man", "transman", "mtf")},
	{"Non-Binary", exact("non-binary", "nonbinary", "genderqueer", "agender", "queer", "non binary")},
}

// Gender maps exact gender terms onto the gender vocabulary. The ftm/mtf
// placement follows the intake form's historical coding.
func Gender(raw string) string {
	return firstMatch(genderRules, lowered(raw), NA)
}

var raceRules = []rule{
	{"Native American or Alaska Native", pattern(`american indian|alaska native|native american`)},
	{"Asian", pattern(`asian|chinese|japanese|korean`)},
	{"Black or African American", pattern(`black|african american|african`)},
	{"White", pattern(`white|whiate|caucasian|european|european american`)},
	{"Two or More Races", pattern(`two or more races|multiracial|mixed|biracial`)},
	{"Middle Eastern or North African", pattern(`middle eastern|north african|arab|mena`)},
	{"Pacific Islander", pattern(`pacific islander|polynesian|micronesian|melanesian|native hawaiian|hawaiian`)},
	{"Jewish", pattern(`jewish|jew`)},
	{"Romani", pattern(`romani|gypsy`)},
	{"Afro-Caribbean", pattern(`afro-caribbean|caribbean`)},
	{"South Asian", pattern(`south asian|indian|pakistani|bangladeshi|sri lankan`)},
}

// Race buckets free-text race into the race groups; anything unrecognised is Other
func Race(raw string) string {
	if isPlaceholder(raw, "missing", "decline to answer") {
		return NA
	}
	return firstMatch(raceRules, lowered(raw), "Other")
}

var hispanicRules = []rule{
	{"No", contains("non-hispanic", "non hispanic", "not hispanic")},
	{"No", exact("no")},
	{"Yes", contains("hispanic", "latino")},
	{"Yes", exact("yes")},
}

// HispanicLatino resolves ethnicity to Yes, No or NA. Declined answers are NA.
func HispanicLatino(raw string) string {
	if isPlaceholder(raw, "blanks", "missing") {
		return NA
	}
	return firstMatch(hispanicRules, lowered(raw), NA)
}

var orientationRules = []rule{
	{NA, exact("missing", "n/a", "decline to answer", "male", "female")},
	{"Heterosexual", contains("straight", "heterosexual")},
	{"Homosexual", contains("gay", "lesbian", "homosexual", "queer")},
	{"Bisexual", contains("bisexual")},
}

// SexualOrientation buckets orientation answers. Gender answers entered in the
// orientation column are treated as missing.
func SexualOrientation(raw string) string {
	return firstMatch(orientationRules, lowered(raw), NA)
}

var maritalRules = []rule{
	{"Divorced", pattern(`(?i)(divorced|separated|dissolved)`)},
	{"Married", pattern(`(?i)(married|husband|wife|spouse)`)},
	{"Domestic Partnership", pattern(`(?i)(domestic partnership|partner|civil union)`)},
	{"Single/Widowed", pattern(`(?i)(single|widowed|never married)`)},
}

// MaritalStatus buckets marital status; "never married" hits the Married rule first
func MaritalStatus(raw string) string {
	if IsBlank(raw) {
		return NA
	}
	return firstMatch(maritalRules, Clean(raw), NA)
}

// Languages is the set of languages recognised in the language column
var Languages = []string{
	"english", "spanish", "russian", "romanian", "bosnian", "karen",
	"somali", "ukrainian", "vietnamese", "chinese", "arabic", "french",
	"german", "portuguese", "mandarin", "cantonese", "japanese", "korean",
	"polish", "thai", "swahili", "tagalog", "urdu", "bengali",
}

var languageRe = regexp.MustCompile(`\b(` + strings.Join(Languages, "|") + `)\b`)

// Language returns the single language named in the cell, Bilingual when
// several distinct languages are named, and Unknown when none is recognised.
func Language(raw string) string {
	if isPlaceholder(raw, "na", "n/a", "missing", "?") {
		return NA
	}
	found := languageRe.FindAllString(lowered(raw), -1)
	distinct := make(map[string]struct{}, len(found))
	for _, f := range found {
		distinct[f] = struct{}{}
	}
	switch len(distinct) {
	case 0:
		return "Unknown"
	case 1:
		return capitalize(found[0])
	default:
		return "Bilingual"
	}
}

// languageNames returns the title-cased language labels, sorted
func languageNames() []string {
	names := make([]string, 0, len(Languages))
	for _, l := range Languages {
		names = append(names, capitalize(l))
	}
	sort.Strings(names)
	return names
}

var insuranceRules = []rule{
	{"Public Insurance", pattern(`(?i)medicare.*(medicaid|other)`)},
	{"Military Insurance", pattern(`(?i)military`)},
	{"Private Insurance", pattern(`(?i)private`)},
	{"Uninsured", pattern(`(?i)(uninsured|unisurred|unisured|missing)`)},
	{NA, pattern(`(?i)unknown`)},
}

// InsuranceType buckets insurance coverage. A literal "missing" means the
// applicant reported no coverage and maps to Uninsured.
func InsuranceType(raw string) string {
	if IsBlank(raw) {
		return NA
	}
	return firstMatch(insuranceRules, Clean(raw), NA)
}
