package dataprocessing

// SignatureFilter selects review applications by committee signature
type SignatureFilter string

const (
	SignatureAll       SignatureFilter = "All"
	SignatureSigned    SignatureFilter = "Signed"
	SignatureNotSigned SignatureFilter = "Not Signed"
	SignatureMissing   SignatureFilter = "Missing"
)

// SignatureFilters lists the accepted filters in display order
var SignatureFilters = []SignatureFilter{SignatureAll, SignatureSigned, SignatureNotSigned, SignatureMissing}

// GroupTotal is the summed grant amount of one dimension value
type GroupTotal struct {
	Key    string  `json:"key"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// MapPoint is one application with coordinates and an amount
type MapPoint struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Amount float64 `json:"amount"`
	Zip    string  `json:"zip"`
}

// MapView holds the plotted points and their mean position
type MapView struct {
	Points    []MapPoint `json:"points"`
	CenterLat float64    `json:"center_lat"`
	CenterLng float64    `json:"center_lng"`
}

// Describe is a summary of a numeric column. Std is the sample standard
// deviation and is zero with fewer than two values.
type Describe struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// DayCount is how many applications took a given number of days
type DayCount struct {
	Days  int `json:"days"`
	Count int `json:"count"`
}

// ResponseTime describes days from request to payment
type ResponseTime struct {
	Stats     Describe   `json:"stats"`
	Histogram []DayCount `json:"histogram"`
}

// LabelCount is a labeled count
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Utilization describes how much of the awarded grants is left
type Utilization struct {
	PatientsWithBalance int          `json:"patients_with_balance"`
	BalanceBins         []LabelCount `json:"balance_bins"`
	ByAssistanceType    []LabelCount `json:"by_assistance_type"`
}

// MonthCount is the number of requests made in a month (YYYY-MM)
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// ImpactSummary holds the all-time program metrics. Money figures are over
// approved grants; AvgDaysToSupport and Monthly cover every application.
type ImpactSummary struct {
	TotalAwarded      float64      `json:"total_awarded"`
	Overspent         float64      `json:"overspent"`
	TotalRemaining    float64      `json:"total_remaining"`
	ApprovedGrants    int          `json:"approved_grants"`
	UniquePatients    int          `json:"unique_patients"`
	ReturningPatients int          `json:"returning_patients"`
	AvgDaysToSupport  *float64     `json:"avg_days_to_support"`
	Monthly           []MonthCount `json:"monthly"`
}
