package exporter

import (
	"grantcli/pkg/contracts/domain"
)

// Columns is the cleaned file schema in output order
var Columns = []string{
	"patient_id", "grant_req_date", "app_year", "remaining_balance", "over_balance", "balance_status",
	"request_status", "payment_submitted", "days_to_support", "reason_pending", "pt_city", "pt_state",
	"pt_zip", "lat", "lng", "language", "dob", "age", "age_category", "marital_status", "gender", "race",
	"hispaniclatino", "sexual_orientation", "insurance_type", "household_size",
	"total_household_gross_monthly_income", "distance", "referral_source", "referred_by",
	"assistance_type", "amount", "payment_method", "payable_to", "notified", "application_signed", "notes",
}

// EncodeRecord renders a record as one row in Columns order. Nullable
// coordinates, age and days to support are written empty; every other
// missing value is NA.
func EncodeRecord(rec *domain.ApplicationRecord) []string {
	return []string{
		text(rec.PatientID),
		rec.GrantReqDate.String(),
		rec.AppYear.Format(domain.NA),
		rec.RemainingBalance.Format(domain.NA),
		rec.OverBalance.Format(),
		text(string(rec.BalanceStatus)),
		text(rec.RequestStatus),
		rec.PaymentSubmitted.String(),
		rec.DaysToSupport.Format(""),
		text(rec.ReasonPending),
		text(rec.City),
		text(rec.State),
		text(rec.Zip),
		formatCoordinate(rec.Lat),
		formatCoordinate(rec.Lng),
		text(rec.Language),
		rec.DOB.String(),
		rec.Age.Format(""),
		text(rec.AgeCategory),
		text(rec.MaritalStatus),
		text(rec.Gender),
		text(rec.Race),
		text(rec.HispanicLatino),
		text(rec.SexualOrientation),
		text(rec.InsuranceType),
		text(rec.HouseholdSize),
		text(rec.Income),
		text(rec.Distance),
		text(rec.ReferralSource),
		text(rec.ReferredBy),
		text(rec.AssistanceType),
		rec.Amount.Format(domain.NA),
		text(rec.PaymentMethod),
		text(rec.PayableTo),
		text(rec.Notified),
		text(rec.ApplicationSigned),
		text(rec.Notes),
	}
}

// EncodeRecords renders every record in order
func EncodeRecords(records []*domain.ApplicationRecord) [][]string {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = EncodeRecord(rec)
	}
	return rows
}

// CountNA counts NA cells per column. Columns without any NA are omitted.
func CountNA(rows [][]string) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		for i, cell := range row {
			if cell == domain.NA && i < len(Columns) {
				counts[Columns[i]]++
			}
		}
	}
	return counts
}
