package normalize

import (
	"regexp"

	"grantcli/pkg/contracts/domain"
)

var requestStatuses = map[string]string{
	"approved": "Approved",
	"denied":   "Denied",
	"pending":  "Pending",
}

// RequestStatus keeps Approved, Denied and Pending (any case); everything else is NA
func RequestStatus(raw string) string {
	if status, ok := requestStatuses[lowered(raw)]; ok {
		return status
	}
	return NA
}

// PaymentSubmitted resolves the submission cell to Yes, No, a payment date or NA
func PaymentSubmitted(raw string) domain.PaymentSubmitted {
	switch lowered(raw) {
	case "yes":
		return domain.PaymentSubmitted{Code: domain.PaymentYes}
	case "no":
		return domain.PaymentSubmitted{Code: domain.PaymentNo}
	}
	if d := Date(raw); d.Valid {
		return domain.PaymentSubmitted{Date: d}
	}
	return domain.PaymentSubmitted{Code: NA}
}

var reasonRules = []rule{
	{"Hospice/Deceased", contains("hospice", "deceased")},
	{"Ineligible", contains("over income", "over limit", "not eligible", "no balance", "not charged", "request too high")},
	{"Follow-up", contains("pfa", "follow up", "waiting on payment")},
	{"Missing Docs", contains("poi", "ev", "hs", "missing", "verify", "needs", "documentation")},
}

// ReasonPending buckets the reason an application is still pending
func ReasonPending(raw string) string {
	return firstMatch(reasonRules, lowered(raw), NA)
}

var (
	notifiedDateRe = regexp.MustCompile(`^(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2})`)

	notifiedRules = []rule{
		{"No", exact("no")},
		{"Yes", exact("yes")},
		{"Pending", exact("hold")},
		{"Yes", notifiedDateRe.MatchString},
	}
)

// Notified resolves whether the patient was notified. A notification date counts as Yes.
func Notified(raw string) string {
	if isPlaceholder(raw, "missing", "?", "na", "n/a") {
		return NA
	}
	return firstMatch(notifiedRules, lowered(raw), NA)
}

// ApplicationSigned resolves the signature column to Yes, No or NA
func ApplicationSigned(raw string) string {
	if isPlaceholder(raw, "missing", "?", "na", "n/a", "not available") {
		return NA
	}
	switch lowered(raw) {
	case "yes", "yeah", "y":
		return "Yes"
	case "no", "n":
		return "No"
	}
	return NA
}

var (
	digitsRe = regexp.MustCompile(`^\d+$`)

	paymentMethodRules = []rule{
		{"Pending", contains("pending")},
		{"Cash", contains("cash")},
		{"Credit Card", pattern(`\bcc\b|\bcredit\b|\bc/c\b`)},
		{"Bank Transfer", contains("ach", "bank transaction", "eft")},
		{"Check", pattern(`^ck\b.*|^check$`)},
		{"Gift Card", contains("gc")},
		{"Journal Entry", exact("je", "journal entry")},
		{"Internal Transfer", contains("ncs due")},
	}
)

// PaymentMethod buckets how the grant was paid. Bare numbers (check numbers
// without context) are NA.
func PaymentMethod(raw string) string {
	if isPlaceholder(raw, "?", "na", "missing") {
		return NA
	}
	s := lowered(raw)
	if digitsRe.MatchString(s) {
		return NA
	}
	return firstMatch(paymentMethodRules, s, "Other")
}
