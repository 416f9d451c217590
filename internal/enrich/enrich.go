// Package enrich derives computed fields from already-normalized columns:
// age and age category from the date of birth, days to support from the
// request and payment dates, and coordinates from the zip code.
package enrich

import (
	"time"

	"grantcli/internal/geocode"
	"grantcli/pkg/contracts/domain"
)

// Enricher computes derived fields. Zips is read-only and shared; Clock pins
// "today" for age calculations.
type Enricher struct {
	Zips  *geocode.Table
	Clock func() time.Time
}

// New returns an enricher over the given zip table using the wall clock
func New(zips *geocode.Table) *Enricher {
	return &Enricher{Zips: zips, Clock: time.Now}
}

// Today returns the current date according to the enricher's clock
func (e *Enricher) Today() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock()
}

// Age returns whole years between dob and today, one less when today's
// (month, day) falls before the birthday
func Age(dob domain.NullDate, today time.Time) domain.NullInt {
	if !dob.Valid {
		return domain.NullInt{}
	}
	years := today.Year() - dob.Time.Year()
	if today.Month() < dob.Time.Month() || (today.Month() == dob.Time.Month() && today.Day() < dob.Time.Day()) {
		years--
	}
	return domain.IntOf(years)
}

// AgeCategory buckets an age: 12 and under Child, 13-19 Teen, 20-35 Young
// Adult, 36-50 Adult, 51-65 Middle-aged, otherwise Senior
func AgeCategory(age domain.NullInt) string {
	if !age.Valid {
		return domain.NA
	}
	switch a := age.Value; {
	case a <= 12:
		return "Child"
	case a <= 19:
		return "Teen"
	case a <= 35:
		return "Young Adult"
	case a <= 50:
		return "Adult"
	case a <= 65:
		return "Middle-aged"
	default:
		return "Senior"
	}
}

// DaysToSupport returns the days from request to payment. It is null unless the
// payment resolved to a date and the request date is present; negative spans
// pass through.
func DaysToSupport(paid domain.PaymentSubmitted, requested domain.NullDate) domain.NullInt {
	if !paid.IsDate() || !requested.Valid {
		return domain.NullInt{}
	}
	hours := paid.Date.Time.Sub(requested.Time).Hours()
	return domain.IntOf(int(hours / 24))
}

// Coordinates looks up the zip's latitude and longitude; misses are null
func (e *Enricher) Coordinates(zip string) (lat, lng domain.NullFloat) {
	la, lo, ok := e.Zips.Lookup(zip)
	if !ok {
		return domain.NullFloat{}, domain.NullFloat{}
	}
	return domain.FloatOf(la), domain.FloatOf(lo)
}

// Apply fills every derived field of the record in dependency order
func (e *Enricher) Apply(rec *domain.ApplicationRecord) {
	rec.Age = Age(rec.DOB, e.Today())
	rec.AgeCategory = AgeCategory(rec.Age)
	rec.DaysToSupport = DaysToSupport(rec.PaymentSubmitted, rec.GrantReqDate)
	rec.Lat, rec.Lng = e.Coordinates(rec.Zip)
}
