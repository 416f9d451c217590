package validation

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "grantcli/internal/errors"
	"grantcli/internal/normalize"
	"grantcli/pkg/contracts/domain"
)

// maxReportedViolations caps the violations carried on a returned error
const maxReportedViolations = 20

// Violation is one record field outside its allowed values
type Violation struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value"`
	Rule   string `json:"rule"`
}

func (v Violation) String() string {
	return fmt.Sprintf("row %d: %s=%q fails %s", v.Row, v.Column, v.Value, v.Rule)
}

// RecordValidator checks cleaned records against the column vocabularies
// before they are written
type RecordValidator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewRecordValidator creates a validator with the category rule registered.
// `validate:"category=gender"` passes when the field is in the gender vocabulary.
func NewRecordValidator(logger *slog.Logger) *RecordValidator {
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("category", isInCategory); err != nil {
		panic(fmt.Sprintf("register category validation: %v", err))
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RecordValidator{
		validate: v,
		logger:   logger.With(slog.String("component", "record_validator")),
	}
}

// isInCategory checks a string (or string-kinded) field against the
// vocabulary named by the tag parameter
func isInCategory(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return normalize.InVocabulary(fl.Param(), field.String())
}

// Check validates one record and returns its violations
func (v *RecordValidator) Check(row int, rec *domain.ApplicationRecord) []Violation {
	err := v.validate.Struct(rec)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Violation{{Row: row, Column: "record", Rule: err.Error()}}
	}

	out := make([]Violation, 0, len(errs))
	for _, fe := range errs {
		rule := fe.Tag()
		// or-chains already carry their params in the tag
		if fe.Param() != "" && !strings.Contains(rule, "|") {
			rule += "=" + fe.Param()
		}
		out = append(out, Violation{
			Row:    row,
			Column: fe.Field(),
			Value:  fmt.Sprint(fe.Value()),
			Rule:   rule,
		})
	}
	return out
}

// ValidateAll checks every record. It returns every violation found and, when
// there is at least one, a VALIDATION error describing the first few.
func (v *RecordValidator) ValidateAll(records []*domain.ApplicationRecord) ([]Violation, error) {
	var violations []Violation
	for i, rec := range records {
		violations = append(violations, v.Check(i, rec)...)
	}
	if len(violations) == 0 {
		return nil, nil
	}

	reported := violations[:min(len(violations), maxReportedViolations)]
	for _, vi := range reported {
		v.logger.Warn("Record failed validation",
			slog.Int("row", vi.Row),
			slog.String("column", vi.Column),
			slog.String("value", vi.Value),
			slog.String("rule", vi.Rule))
	}

	return violations, apperrors.NewAppValidationError(
		fmt.Sprintf("%d cleaned values outside their column vocabulary", len(violations))).
		WithContext("violations", reported)
}
