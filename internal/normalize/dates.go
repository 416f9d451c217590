package normalize

import (
	"regexp"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"grantcli/pkg/contracts/domain"
)

// dateLayouts are tried in order; US month-first layouts win over day-first
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"01-02-2006",
	"1-2-2006",
	"1/2/06",
	"01/02/06",
	"1/2/06 15:04",
	"1/2/06 15:04:05",
	"1-2-06",
	"01-02-06",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Jan-2006",
	"Jan-06",
}

var (
	yearOnlyRe    = regexp.MustCompile(`^(19|20)\d{2}$`)
	excelSerialRe = regexp.MustCompile(`^\d{1,7}(\.\d+)?$`)
)

// maxExcelSerial is 9999-12-31 in the 1900 date system
const maxExcelSerial = 2958465

// ParseDate parses a date cell. Besides the textual layouts it accepts a bare
// four-digit year (January 1st) and Excel serial day numbers left behind when
// a cell lost its date format.
func ParseDate(raw string) (time.Time, bool) {
	s := Clean(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if yearOnlyRe.MatchString(s) {
		year, _ := strconv.Atoi(s)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	if excelSerialRe.MatchString(s) {
		serial, err := strconv.ParseFloat(s, 64)
		if err != nil || serial < 1 || serial > maxExcelSerial {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// Date normalizes a date cell to a calendar date or NA
func Date(raw string) domain.NullDate {
	t, ok := ParseDate(raw)
	if !ok {
		return domain.NullDate{}
	}
	return domain.NewDate(t)
}
