package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "grantcli/internal/errors"
	"grantcli/internal/shared/testutil"
	"grantcli/pkg/contracts/domain"
)

func validRecord() *domain.ApplicationRecord {
	return &domain.ApplicationRecord{
		PatientID:         "1001",
		AgeCategory:       "Adult",
		BalanceStatus:     domain.BalanceOK,
		RequestStatus:     "Approved",
		ReasonPending:     domain.NA,
		ApplicationSigned: "Yes",
		Notified:          "Pending",
		Gender:            "Female",
		Race:              "White",
		HispanicLatino:    "No",
		SexualOrientation: domain.NA,
		MaritalStatus:     "Married",
		Language:          "English",
		InsuranceType:     "Uninsured",
		HouseholdSize:     "5-7",
		Income:            "Middle",
		City:              "Omaha",
		State:             "NE",
		Zip:               "68102",
		AssistanceType:    "Housing",
		PaymentMethod:     "Check",
		PayableTo:         domain.NA,
		ReferralSource:    "Other",
		ReferredBy:        domain.NA,
		Notes:             domain.NA,
		Distance:          "Short",
	}
}

func TestNewRecordValidator_RegistersCategoryRule(t *testing.T) {
	var v *RecordValidator
	require.NotPanics(t, func() { v = NewRecordValidator(nil) })

	type tagged struct {
		Gender string `json:"gender" validate:"category=gender"`
	}
	assert.NoError(t, v.validate.Struct(tagged{Gender: "Female"}))
	assert.Error(t, v.validate.Struct(tagged{Gender: "F"}))
}

func TestRecordValidator_Check(t *testing.T) {
	v := NewRecordValidator(nil)

	tests := []struct {
		name   string
		mutate func(r *domain.ApplicationRecord)
		column string
		rule   string
	}{
		{"valid", func(*domain.ApplicationRecord) {}, "", ""},
		{"state NA allowed", func(r *domain.ApplicationRecord) { r.State = domain.NA }, "", ""},
		{"gender outside vocabulary", func(r *domain.ApplicationRecord) { r.Gender = "F" }, "gender", "category=gender"},
		{"empty categorical", func(r *domain.ApplicationRecord) { r.Race = "" }, "race", "category=race"},
		{"balance status", func(r *domain.ApplicationRecord) { r.BalanceStatus = "Weird" }, "balance_status", "category=balance_status"},
		{"income label", func(r *domain.ApplicationRecord) { r.Income = "Very High" }, "total_household_gross_monthly_income", "category=total_household_gross_monthly_income"},
		{"state too long", func(r *domain.ApplicationRecord) { r.State = "Nebraska" }, "pt_state", "len=2|eq=NA"},
		{"empty notes", func(r *domain.ApplicationRecord) { r.Notes = "" }, "notes", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)

			got := v.Check(4, rec)
			if tt.column == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, 4, got[0].Row)
			assert.Equal(t, tt.column, got[0].Column)
			assert.Equal(t, tt.rule, got[0].Rule)
		})
	}
}

func TestRecordValidator_ValidateAll(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	v := NewRecordValidator(logger)

	violations, err := v.ValidateAll([]*domain.ApplicationRecord{validRecord(), validRecord()})
	assert.NoError(t, err)
	assert.Empty(t, violations)

	bad := validRecord()
	bad.Gender = "female"
	bad.Language = "Klingon"
	violations, err = v.ValidateAll([]*domain.ApplicationRecord{validRecord(), bad})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	assert.Contains(t, err.Error(), "2 cleaned values")
	require.Len(t, violations, 2)
	assert.Equal(t, 1, violations[0].Row)
	assert.Equal(t, `row 1: gender="female" fails category=gender`, violations[0].String())
	assert.True(t, handler.ContainsMessage("Record failed validation"))
}
