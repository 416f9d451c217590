package normalize

import "grantcli/pkg/contracts/domain"

// Vocabulary is the closed value set of each categorical output column
var Vocabulary = map[string][]string{
	"request_status":     {"Approved", "Denied", "Pending", NA},
	"reason_pending":     {"Hospice/Deceased", "Ineligible", "Follow-up", "Missing Docs", NA},
	"application_signed": {"Yes", "No", NA},
	"notified":           {"Yes", "No", "Pending", NA},
	"balance_status": {
		string(domain.BalanceOK), string(domain.BalanceOver),
		string(domain.BalanceMissingValue), string(domain.BalanceInvalidEntry),
	},
	"gender": {"Female", "Male", "Transgender Female", "Transgender Male", "Non-Binary", NA},
	"race": {
		"Native American or Alaska Native", "Asian", "Black or African American", "White",
		"Two or More Races", "Middle Eastern or North African", "Pacific Islander", "Jewish",
		"Romani", "Afro-Caribbean", "South Asian", "Other", NA,
	},
	"hispaniclatino":     {"Yes", "No", NA},
	"sexual_orientation": {"Heterosexual", "Homosexual", "Bisexual", NA},
	"marital_status":     {"Divorced", "Married", "Domestic Partnership", "Single/Widowed", NA},
	"language":           append(languageNames(), "Bilingual", "Unknown", NA),
	"insurance_type": {
		"Public Insurance", "Military Insurance", "Private Insurance", "Uninsured", NA,
	},
	"household_size":                       {"1", "2", "3", "4", "5-7", "8-10", "10+", NA},
	"total_household_gross_monthly_income": {"Low", "Middle", "High", NA},
	"distance":                             {"Short", "Medium", "Long", "Missing", NA},
	"referral_source": {
		"Pediatric Hospitals", "Cancer Centers", "Hospital Networks", "Other", NA,
	},
	"assistance_type": {
		"Car Payment", "Housing", "Phone/Internet", "Food/Groceries", "Gas",
		"Medical Supplies/Prescription Co-pay(s)", "Utilities", "Multiple", "Other", NA,
	},
	"payment_method": {
		"Pending", "Cash", "Credit Card", "Bank Transfer", "Check", "Gift Card",
		"Journal Entry", "Internal Transfer", "Other", NA,
	},
	"age_category": {"Child", "Teen", "Young Adult", "Adult", "Middle-aged", "Senior", NA},
}

var vocabularySets = func() map[string]map[string]struct{} {
	sets := make(map[string]map[string]struct{}, len(Vocabulary))
	for column, values := range Vocabulary {
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		sets[column] = set
	}
	return sets
}()

// InVocabulary reports whether value belongs to the column's closed set.
// Unknown columns never match.
func InVocabulary(column, value string) bool {
	set, ok := vocabularySets[column]
	if !ok {
		return false
	}
	_, ok = set[value]
	return ok
}
