package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "grantcli/internal/errors"
	"grantcli/pkg/contracts/domain"
)

func day(y int, m time.Month, d int) domain.NullDate {
	return domain.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// analyticsRecords is a small cleaned table covering every view
func analyticsRecords() []*domain.ApplicationRecord {
	return []*domain.ApplicationRecord{
		{
			PatientID: "1", RequestStatus: "Approved", ApplicationSigned: "Yes",
			Gender: "Female", State: "NE", Zip: "68102", Age: domain.IntOf(44),
			Amount: domain.FloatOf(500), RemainingBalance: domain.FloatOf(250),
			DaysToSupport: domain.IntOf(10), GrantReqDate: day(2024, time.January, 15),
			Lat: domain.FloatOf(41.0), Lng: domain.FloatOf(-96.0), AssistanceType: "Housing",
		},
		{
			PatientID: "1", RequestStatus: "Approved", ApplicationSigned: "No",
			Gender: "Female", State: "NE", Zip: "68102", Age: domain.IntOf(45),
			Amount: domain.FloatOf(300), RemainingBalance: domain.FloatOf(-50),
			DaysToSupport: domain.IntOf(4), GrantReqDate: day(2024, time.January, 30),
			Lat: domain.FloatOf(43.0), Lng: domain.FloatOf(-98.0), AssistanceType: "Gas",
		},
		{
			PatientID: "2", RequestStatus: "Pending", ApplicationSigned: "Yes",
			Gender: "Male", State: "IA", Zip: "51501", Age: domain.IntOf(15),
			Amount: domain.FloatOf(200), RemainingBalance: domain.FloatOf(1600),
			DaysToSupport: domain.IntOf(10), GrantReqDate: day(2024, time.February, 2),
			AssistanceType: "Housing",
		},
		{
			PatientID: "3", RequestStatus: "Pending", ApplicationSigned: domain.NA,
			Gender: domain.NA, State: domain.NA, Zip: domain.NA, Age: domain.IntOf(70),
			Amount: domain.NullFloat{}, RemainingBalance: domain.FloatOf(300),
			AssistanceType: domain.NA,
		},
		{
			PatientID: domain.NA, RequestStatus: "Denied", ApplicationSigned: "No",
			Gender: "Male", State: "NE", Zip: "68102", Age: domain.NullInt{},
			Amount: domain.FloatOf(100), RemainingBalance: domain.NullFloat{},
			Lat: domain.FloatOf(42.0), AssistanceType: "Gas",
		},
	}
}

func TestPresentationAgeBucket(t *testing.T) {
	tests := []struct {
		age  domain.NullInt
		want string
	}{
		{domain.IntOf(0), "Child"},
		{domain.IntOf(19), "Child"},
		{domain.IntOf(20), "Young Adult"},
		{domain.IntOf(35), "Young Adult"},
		{domain.IntOf(36), "Adult"},
		{domain.IntOf(65), "Adult"},
		{domain.IntOf(66), "Senior"},
		{domain.IntOf(-1), ""},
		{domain.NullInt{}, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PresentationAgeBucket(tt.age), "%+v", tt.age)
	}
}

func TestAnalyzer_ReadyForReview(t *testing.T) {
	a := NewAnalyzer(analyticsRecords())

	tests := []struct {
		filter SignatureFilter
		want   []string
	}{
		{SignatureAll, []string{"2", "3"}},
		{"", []string{"2", "3"}},
		{SignatureSigned, []string{"2"}},
		{SignatureNotSigned, []string{}},
		{SignatureMissing, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got, err := a.ReadyForReview(tt.filter)
			require.NoError(t, err)
			ids := []string{}
			for _, r := range got {
				ids = append(ids, r.PatientID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	_, err := a.ReadyForReview("Maybe")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestAnalyzer_SupportBy(t *testing.T) {
	a := NewAnalyzer(analyticsRecords())

	gender, err := a.SupportBy("gender")
	require.NoError(t, err)
	assert.Equal(t, []GroupTotal{
		{Key: "Female", Amount: 800, Count: 2},
		{Key: "Male", Amount: 300, Count: 2},
	}, gender)

	state, err := a.SupportBy("pt_state")
	require.NoError(t, err)
	assert.Equal(t, []GroupTotal{
		{Key: "IA", Amount: 200, Count: 1},
		{Key: "NE", Amount: 900, Count: 3},
	}, state)

	age, err := a.SupportBy("age")
	require.NoError(t, err)
	assert.Equal(t, []GroupTotal{
		{Key: "Child", Amount: 200, Count: 1},
		{Key: "Young Adult", Amount: 0, Count: 0},
		{Key: "Adult", Amount: 800, Count: 2},
		{Key: "Senior", Amount: 0, Count: 1},
	}, age)

	_, err = a.SupportBy("shoe_size")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestDimensions(t *testing.T) {
	dims := Dimensions()
	assert.Len(t, dims, 12)
	assert.Contains(t, dims, "age")
	assert.Contains(t, dims, "total_household_gross_monthly_income")
	assert.IsNonDecreasing(t, dims)
}

func TestAnalyzer_Map(t *testing.T) {
	view := NewAnalyzer(analyticsRecords()).Map()

	require.Len(t, view.Points, 2, "rows without lng or amount are dropped")
	assert.Equal(t, MapPoint{Lat: 41, Lng: -96, Amount: 500, Zip: "68102"}, view.Points[0])
	assert.InDelta(t, 42.0, view.CenterLat, 1e-9)
	assert.InDelta(t, -97.0, view.CenterLng, 1e-9)

	empty := NewAnalyzer(nil).Map()
	assert.Empty(t, empty.Points)
	assert.Zero(t, empty.CenterLat)
}

func TestAnalyzer_ResponseTime(t *testing.T) {
	rt := NewAnalyzer(analyticsRecords()).ResponseTime()

	assert.Equal(t, 3, rt.Stats.Count)
	assert.InDelta(t, 8.0, rt.Stats.Mean, 1e-9)
	assert.InDelta(t, 3.4641016, rt.Stats.Std, 1e-6)
	assert.Equal(t, 4.0, rt.Stats.Min)
	assert.Equal(t, 7.0, rt.Stats.Q1)
	assert.Equal(t, 10.0, rt.Stats.Median)
	assert.Equal(t, 10.0, rt.Stats.Q3)
	assert.Equal(t, 10.0, rt.Stats.Max)
	assert.Equal(t, []DayCount{{Days: 4, Count: 1}, {Days: 10, Count: 2}}, rt.Histogram)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, Describe{}, describe(nil))

	one := describe([]float64{5})
	assert.Equal(t, Describe{Count: 1, Mean: 5, Min: 5, Q1: 5, Median: 5, Q3: 5, Max: 5}, one)

	four := describe([]float64{4, 1, 3, 2})
	assert.Equal(t, 1.75, four.Q1)
	assert.Equal(t, 2.5, four.Median)
	assert.Equal(t, 3.25, four.Q3)
}

func TestAnalyzer_Utilization(t *testing.T) {
	u := NewAnalyzer(analyticsRecords()).Utilization()

	assert.Equal(t, 3, u.PatientsWithBalance)
	assert.Equal(t, []LabelCount{
		{Label: "0-300", Count: 2},
		{Label: "301-600", Count: 0},
		{Label: "601-900", Count: 0},
		{Label: "901-1200", Count: 0},
		{Label: "1201-1500", Count: 0},
		{Label: "1501+", Count: 1},
	}, u.BalanceBins)
	assert.Equal(t, []LabelCount{
		{Label: "Gas", Count: 2},
		{Label: "Housing", Count: 2},
	}, u.ByAssistanceType)
}

func TestAnalyzer_Impact(t *testing.T) {
	s := NewAnalyzer(analyticsRecords()).Impact()

	assert.Equal(t, 800.0, s.TotalAwarded)
	assert.Equal(t, 50.0, s.Overspent)
	assert.Equal(t, 250.0, s.TotalRemaining)
	assert.Equal(t, 2, s.ApprovedGrants)
	assert.Equal(t, 1, s.UniquePatients)
	assert.Equal(t, 1, s.ReturningPatients)
	require.NotNil(t, s.AvgDaysToSupport)
	assert.InDelta(t, 8.0, *s.AvgDaysToSupport, 1e-9)
	assert.Equal(t, []MonthCount{{Month: "2024-01", Count: 2}, {Month: "2024-02", Count: 1}}, s.Monthly)

	empty := NewAnalyzer(nil).Impact()
	assert.Nil(t, empty.AvgDaysToSupport)
	assert.Empty(t, empty.Monthly)
}
