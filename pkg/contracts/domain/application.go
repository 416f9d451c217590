package domain

// ApplicationRecord is one cleaned grant application. Categorical fields carry
// a value from the column's closed vocabulary or NA; the category tag names the
// vocabulary checked before a record is written.
type ApplicationRecord struct {
	// Identity
	PatientID string `json:"patient_id" validate:"required"`

	// Dates
	GrantReqDate NullDate `json:"grant_req_date"`
	AppYear      NullInt  `json:"app_year"`
	DOB          NullDate `json:"dob"`
	Age          NullInt  `json:"age"`
	AgeCategory  string   `json:"age_category" validate:"category=age_category"`

	// Financial
	Amount           NullFloat     `json:"amount"`
	RemainingBalance NullFloat     `json:"remaining_balance"`
	OverBalance      NullBool      `json:"over_balance"`
	BalanceStatus    BalanceStatus `json:"balance_status" validate:"category=balance_status"`

	// Status
	RequestStatus     string           `json:"request_status" validate:"category=request_status"`
	PaymentSubmitted  PaymentSubmitted `json:"payment_submitted"`
	DaysToSupport     NullInt          `json:"days_to_support"`
	ReasonPending     string           `json:"reason_pending" validate:"category=reason_pending"`
	ApplicationSigned string           `json:"application_signed" validate:"category=application_signed"`
	Notified          string           `json:"notified" validate:"category=notified"`

	// Demographics
	Gender            string `json:"gender" validate:"category=gender"`
	Race              string `json:"race" validate:"category=race"`
	HispanicLatino    string `json:"hispaniclatino" validate:"category=hispaniclatino"`
	SexualOrientation string `json:"sexual_orientation" validate:"category=sexual_orientation"`
	MaritalStatus     string `json:"marital_status" validate:"category=marital_status"`
	Language          string `json:"language" validate:"category=language"`
	InsuranceType     string `json:"insurance_type" validate:"category=insurance_type"`
	HouseholdSize     string `json:"household_size" validate:"category=household_size"`
	Income            string `json:"total_household_gross_monthly_income" validate:"category=total_household_gross_monthly_income"`

	// Location
	City  string    `json:"pt_city" validate:"required"`
	State string    `json:"pt_state" validate:"required,len=2|eq=NA"`
	Zip   string    `json:"pt_zip" validate:"required"`
	Lat   NullFloat `json:"lat"`
	Lng   NullFloat `json:"lng"`

	// Administrative
	AssistanceType string `json:"assistance_type" validate:"category=assistance_type"`
	PaymentMethod  string `json:"payment_method" validate:"category=payment_method"`
	PayableTo      string `json:"payable_to" validate:"required"`
	ReferralSource string `json:"referral_source" validate:"category=referral_source"`
	ReferredBy     string `json:"referred_by" validate:"required"`
	Notes          string `json:"notes" validate:"required"`
	Distance       string `json:"distance" validate:"category=distance"`
}

// BalanceStatus describes how the remaining balance cell resolved
type BalanceStatus string

const (
	BalanceOK           BalanceStatus = "OK"
	BalanceOver         BalanceStatus = "Over balance"
	BalanceMissingValue BalanceStatus = "Missing value"
	BalanceInvalidEntry BalanceStatus = "Invalid entry"
)

// Payment submission codes. Any other submitted value is a date.
const (
	PaymentYes = "Yes"
	PaymentNo  = "No"
)

// PaymentSubmitted is either one of the Yes/No/NA codes or the date the payment went out
type PaymentSubmitted struct {
	Code string
	Date NullDate
}

// IsDate reports whether the submission resolved to an actual date
func (p PaymentSubmitted) IsDate() bool {
	return p.Code == "" && p.Date.Valid
}

// String returns the date in ISO form or the status code
func (p PaymentSubmitted) String() string {
	if p.IsDate() {
		return p.Date.String()
	}
	if p.Code == "" {
		return NA
	}
	return p.Code
}
