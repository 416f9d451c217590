package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"grantcli/pkg/contracts/domain"
)

// parseNumber parses a numeric cell, tolerating currency formatting
func parseNumber(raw string) (float64, bool) {
	s := strings.NewReplacer("$", "", ",", "").Replace(Clean(raw))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseWhole parses a whole number. Spreadsheet numbers such as "6.0" count.
func parseWhole(raw string) (int, bool) {
	v, ok := parseNumber(raw)
	if !ok || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}

var amountRe = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// Amount parses a non-negative dollar amount with at most two decimals
func Amount(raw string) domain.NullFloat {
	if isPlaceholder(raw, "na", "missing", "n/a") {
		return domain.NullFloat{}
	}
	s := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(Clean(raw)))
	if !amountRe.MatchString(s) {
		return domain.NullFloat{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.NullFloat{}
	}
	return domain.FloatOf(v)
}

// Balance is the resolved remaining-balance cell
type Balance struct {
	Value  domain.NullFloat
	Over   domain.NullBool
	Status domain.BalanceStatus
}

// RemainingBalance resolves the remaining grant balance. A negative balance
// means the patient overspent their grant.
func RemainingBalance(raw string) Balance {
	if isPlaceholder(raw, "nan") {
		return Balance{Status: domain.BalanceMissingValue}
	}
	v, ok := parseNumber(raw)
	if !ok {
		return Balance{Status: domain.BalanceInvalidEntry}
	}
	if v < 0 {
		return Balance{
			Value:  domain.FloatOf(v),
			Over:   domain.NullBool{Value: true, Valid: true},
			Status: domain.BalanceOver,
		}
	}
	return Balance{
		Value:  domain.FloatOf(v),
		Over:   domain.NullBool{Value: false, Valid: true},
		Status: domain.BalanceOK,
	}
}

// AppYear returns the application year when it is a positive whole number
func AppYear(raw string) domain.NullInt {
	if isPlaceholder(raw, "missing") {
		return domain.NullInt{}
	}
	v, ok := parseWhole(raw)
	if !ok || v <= 0 {
		return domain.NullInt{}
	}
	return domain.IntOf(v)
}

// HouseholdSize buckets the household size; sizes outside 1..30 are NA
func HouseholdSize(raw string) string {
	n, ok := parseWhole(raw)
	switch {
	case !ok || n < 1 || n > 30:
		return NA
	case n <= 4:
		return strconv.Itoa(n)
	case n <= 7:
		return "5-7"
	case n <= 10:
		return "8-10"
	default:
		return "10+"
	}
}

// Income buckets total household gross monthly income.
// The High bucket starts at 7000 inclusive.
func Income(raw string) string {
	if isPlaceholder(raw, "missing", "na", "nan", "none") {
		return NA
	}
	v, ok := parseNumber(raw)
	switch {
	case !ok || v < 0:
		return NA
	case v < 3000:
		return "Low"
	case v < 7000:
		return "Middle"
	default:
		return "High"
	}
}

// Distance buckets the round-trip distance in miles. Negative or implausible
// distances (over 3000) are flagged Missing rather than NA.
func Distance(raw string) string {
	if IsBlank(raw) {
		return NA
	}
	v, ok := parseNumber(raw)
	switch {
	case !ok:
		return NA
	case v < 0 || v > 3000:
		return "Missing"
	case v < 20:
		return "Short"
	case v < 120:
		return "Medium"
	default:
		return "Long"
	}
}
