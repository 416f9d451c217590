package dataprocessing

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"

	apperrors "grantcli/internal/errors"
	"grantcli/pkg/contracts/domain"
)

// Presentation age buckets, in display order
var PresentationAgeBuckets = []string{"Child", "Young Adult", "Adult", "Senior"}

// PresentationAgeBucket places an age in the coarse 4-bucket scheme used for
// display: Child 0-19, Young Adult 20-35, Adult 36-65, Senior 66+. It differs
// from enrich.AgeCategory on purpose. Unknown or negative ages return "".
func PresentationAgeBucket(age domain.NullInt) string {
	if !age.Valid || age.Value < 0 {
		return ""
	}
	switch a := age.Value; {
	case a <= 19:
		return "Child"
	case a <= 35:
		return "Young Adult"
	case a <= 65:
		return "Adult"
	default:
		return "Senior"
	}
}

// dimensions maps each groupable column to its key
var dimensions = map[string]func(*domain.ApplicationRecord) string{
	"gender":                               func(r *domain.ApplicationRecord) string { return r.Gender },
	"pt_state":                             func(r *domain.ApplicationRecord) string { return r.State },
	"pt_zip":                               func(r *domain.ApplicationRecord) string { return r.Zip },
	"language":                             func(r *domain.ApplicationRecord) string { return r.Language },
	"hispaniclatino":                       func(r *domain.ApplicationRecord) string { return r.HispanicLatino },
	"sexual_orientation":                   func(r *domain.ApplicationRecord) string { return r.SexualOrientation },
	"race":                                 func(r *domain.ApplicationRecord) string { return r.Race },
	"insurance_type":                       func(r *domain.ApplicationRecord) string { return r.InsuranceType },
	"total_household_gross_monthly_income": func(r *domain.ApplicationRecord) string { return r.Income },
	"marital_status":                       func(r *domain.ApplicationRecord) string { return r.MaritalStatus },
	"household_size":                       func(r *domain.ApplicationRecord) string { return r.HouseholdSize },
	"age":                                  func(r *domain.ApplicationRecord) string { return PresentationAgeBucket(r.Age) },
}

// Dimensions returns the columns SupportBy accepts, sorted
func Dimensions() []string {
	out := make([]string, 0, len(dimensions))
	for name := range dimensions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// balanceBins are right-closed: (0,300], (300,600], ... (1500,+inf)
var balanceBins = []struct {
	label string
	upper float64
}{
	{"0-300", 300},
	{"301-600", 600},
	{"601-900", 900},
	{"901-1200", 1200},
	{"1201-1500", 1500},
	{"1501+", math.Inf(1)},
}

// Analyzer computes the dashboard views over a fixed set of records
type Analyzer struct {
	records []*domain.ApplicationRecord
}

// NewAnalyzer creates an analyzer. The records must not be modified afterwards.
func NewAnalyzer(records []*domain.ApplicationRecord) *Analyzer {
	return &Analyzer{records: records}
}

// Records returns every record
func (a *Analyzer) Records() []*domain.ApplicationRecord {
	return a.records
}

// ReadyForReview returns pending applications matching the signature filter
func (a *Analyzer) ReadyForReview(filter SignatureFilter) ([]*domain.ApplicationRecord, error) {
	var want func(signed string) bool
	switch filter {
	case SignatureAll, "":
		want = func(string) bool { return true }
	case SignatureSigned:
		want = func(s string) bool { return s == "Yes" }
	case SignatureNotSigned:
		want = func(s string) bool { return s == "No" }
	case SignatureMissing:
		want = func(s string) bool { return isMissing(s) }
	default:
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("unknown signature filter %q", filter)).
			WithContext("allowed", SignatureFilters)
	}

	out := []*domain.ApplicationRecord{}
	for _, r := range a.records {
		if r.RequestStatus == "Pending" && want(r.ApplicationSigned) {
			out = append(out, r)
		}
	}
	return out, nil
}

// SupportBy sums grant amounts per value of a dimension. NA values are
// left out. Groups are sorted by key, except age which follows the
// presentation bucket order and always lists all four buckets.
func (a *Analyzer) SupportBy(dimension string) ([]GroupTotal, error) {
	key, ok := dimensions[dimension]
	if !ok {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("unknown dimension %q", dimension)).
			WithContext("allowed", Dimensions())
	}

	groups := make(map[string]*GroupTotal)
	if dimension == "age" {
		for _, b := range PresentationAgeBuckets {
			groups[b] = &GroupTotal{Key: b}
		}
	}
	for _, r := range a.records {
		k := key(r)
		if isMissing(k) {
			continue
		}
		g, ok := groups[k]
		if !ok {
			g = &GroupTotal{Key: k}
			groups[k] = g
		}
		g.Count++
		if r.Amount.Valid {
			g.Amount += r.Amount.Value
		}
	}

	out := make([]GroupTotal, 0, len(groups))
	if dimension == "age" {
		for _, b := range PresentationAgeBuckets {
			out = append(out, *groups[b])
		}
		return out, nil
	}
	for _, g := range groups {
		out = append(out, *g)
	}
	slices.SortFunc(out, func(x, y GroupTotal) int { return cmp.Compare(x.Key, y.Key) })
	return out, nil
}

// Map returns every application with coordinates and an amount
func (a *Analyzer) Map() MapView {
	view := MapView{Points: []MapPoint{}}
	for _, r := range a.records {
		if !r.Lat.Valid || !r.Lng.Valid || !r.Amount.Valid {
			continue
		}
		view.Points = append(view.Points, MapPoint{
			Lat:    r.Lat.Value,
			Lng:    r.Lng.Value,
			Amount: r.Amount.Value,
			Zip:    r.Zip,
		})
		view.CenterLat += r.Lat.Value
		view.CenterLng += r.Lng.Value
	}
	if n := float64(len(view.Points)); n > 0 {
		view.CenterLat /= n
		view.CenterLng /= n
	}
	return view
}

// ResponseTime summarizes days to support over rows where it is known
func (a *Analyzer) ResponseTime() ResponseTime {
	var values []float64
	counts := make(map[int]int)
	for _, r := range a.records {
		if !r.DaysToSupport.Valid {
			continue
		}
		values = append(values, float64(r.DaysToSupport.Value))
		counts[r.DaysToSupport.Value]++
	}

	hist := make([]DayCount, 0, len(counts))
	for days, n := range counts {
		hist = append(hist, DayCount{Days: days, Count: n})
	}
	slices.SortFunc(hist, func(x, y DayCount) int { return cmp.Compare(x.Days, y.Days) })

	return ResponseTime{Stats: describe(values), Histogram: hist}
}

// Utilization reports positive remaining balances and grant counts by
// assistance type
func (a *Analyzer) Utilization() Utilization {
	bins := make([]LabelCount, len(balanceBins))
	for i, b := range balanceBins {
		bins[i].Label = b.label
	}

	patients := make(map[string]struct{})
	types := make(map[string]int)
	for _, r := range a.records {
		if !isMissing(r.AssistanceType) {
			types[r.AssistanceType]++
		}

		if !r.RemainingBalance.Valid || r.RemainingBalance.Value <= 0 {
			continue
		}
		if !isMissing(r.PatientID) {
			patients[r.PatientID] = struct{}{}
		}
		for i, b := range balanceBins {
			if r.RemainingBalance.Value <= b.upper {
				bins[i].Count++
				break
			}
		}
	}

	return Utilization{
		PatientsWithBalance: len(patients),
		BalanceBins:         bins,
		ByAssistanceType:    sortedCounts(types),
	}
}

// Impact computes the all-time summary metrics
func (a *Analyzer) Impact() ImpactSummary {
	var s ImpactSummary
	perPatient := make(map[string]int)

	var daysSum float64
	var daysN int
	months := make(map[string]int)

	for _, r := range a.records {
		if r.DaysToSupport.Valid {
			daysSum += float64(r.DaysToSupport.Value)
			daysN++
		}
		if r.GrantReqDate.Valid {
			months[r.GrantReqDate.Time.Format("2006-01")]++
		}

		if r.RequestStatus != "Approved" {
			continue
		}
		s.ApprovedGrants++
		if r.Amount.Valid {
			s.TotalAwarded += r.Amount.Value
		}
		if r.RemainingBalance.Valid {
			switch v := r.RemainingBalance.Value; {
			case v > 0:
				s.TotalRemaining += v
			case v < 0:
				s.Overspent += -v
			}
		}
		if !isMissing(r.PatientID) {
			perPatient[r.PatientID]++
		}
	}

	s.UniquePatients = len(perPatient)
	for _, n := range perPatient {
		if n > 1 {
			s.ReturningPatients++
		}
	}
	if daysN > 0 {
		avg := daysSum / float64(daysN)
		s.AvgDaysToSupport = &avg
	}

	s.Monthly = make([]MonthCount, 0, len(months))
	for m, n := range months {
		s.Monthly = append(s.Monthly, MonthCount{Month: m, Count: n})
	}
	slices.SortFunc(s.Monthly, func(x, y MonthCount) int { return cmp.Compare(x.Month, y.Month) })
	return s
}

func isMissing(s string) bool {
	return s == "" || s == domain.NA
}

// sortedCounts orders counts descending, ties by label
func sortedCounts(counts map[string]int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, LabelCount{Label: label, Count: n})
	}
	slices.SortFunc(out, func(x, y LabelCount) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(x.Label, y.Label)
	})
	return out
}

// describe computes count, mean, sample std, min, quartiles and max.
// Quartiles interpolate linearly between closest ranks.
func describe(values []float64) Describe {
	d := Describe{Count: len(values)}
	if d.Count == 0 {
		return d
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	d.Mean = sum / float64(d.Count)

	if d.Count > 1 {
		var sq float64
		for _, v := range sorted {
			sq += (v - d.Mean) * (v - d.Mean)
		}
		d.Std = math.Sqrt(sq / float64(d.Count-1))
	}

	d.Min = sorted[0]
	d.Max = sorted[len(sorted)-1]
	d.Q1 = quantile(sorted, 0.25)
	d.Median = quantile(sorted, 0.5)
	d.Q3 = quantile(sorted, 0.75)
	return d
}

func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
