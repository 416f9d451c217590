package dataprocessing

import (
	"context"
	"log/slog"

	"grantcli/internal/enrich"
	"grantcli/internal/normalize"
	"grantcli/internal/operations"
	"grantcli/pkg/contracts/domain"
)

// NewStepRegistry registers one step per intake column plus the derived steps.
// Registration order follows the intake layout; Build moves derived steps after
// the columns they read.
func NewStepRegistry(e *enrich.Enricher) *operations.Registry {
	reg := operations.NewRegistry()
	reg.MustRegister(
		operations.NewColumnStep("patient_id", func(rec *domain.ApplicationRecord, raw string) {
			rec.PatientID = normalize.PatientID(raw)
		}),
		operations.NewColumnStep("grant_req_date", func(rec *domain.ApplicationRecord, raw string) {
			rec.GrantReqDate = normalize.Date(raw)
		}),
		operations.NewColumnStep("app_year", func(rec *domain.ApplicationRecord, raw string) {
			rec.AppYear = normalize.AppYear(raw)
		}),
		operations.NewFuncStep("remaining_balance", "Remaining balance",
			[]string{"remaining_balance"},
			[]string{"remaining_balance", "over_balance", "balance_status"},
			func(row *operations.Row) {
				b := normalize.RemainingBalance(row.Cell("remaining_balance"))
				row.Record.RemainingBalance = b.Value
				row.Record.OverBalance = b.Over
				row.Record.BalanceStatus = b.Status
			}),
		operations.NewColumnStep("request_status", func(rec *domain.ApplicationRecord, raw string) {
			rec.RequestStatus = normalize.RequestStatus(raw)
		}),
		operations.NewColumnStep("payment_submitted", func(rec *domain.ApplicationRecord, raw string) {
			rec.PaymentSubmitted = normalize.PaymentSubmitted(raw)
		}),
		operations.NewFuncStep("days_to_support", "Days to support",
			[]string{"payment_submitted", "grant_req_date"},
			[]string{"days_to_support"},
			func(row *operations.Row) {
				row.Record.DaysToSupport = enrich.DaysToSupport(row.Record.PaymentSubmitted, row.Record.GrantReqDate)
			}),
		operations.NewColumnStep("reason_pending", func(rec *domain.ApplicationRecord, raw string) {
			rec.ReasonPending = normalize.ReasonPending(raw)
		}),
		operations.NewColumnStep("pt_city", func(rec *domain.ApplicationRecord, raw string) {
			rec.City = normalize.City(raw)
		}),
		operations.NewColumnStep("pt_state", func(rec *domain.ApplicationRecord, raw string) {
			rec.State = normalize.State(raw)
		}),
		operations.NewColumnStep("pt_zip", func(rec *domain.ApplicationRecord, raw string) {
			rec.Zip = normalize.Zip(raw)
		}),
		operations.NewFuncStep("coordinates", "Coordinates",
			[]string{"pt_zip"},
			[]string{"lat", "lng"},
			func(row *operations.Row) {
				row.Record.Lat, row.Record.Lng = e.Coordinates(row.Record.Zip)
			}),
		operations.NewColumnStep("language", func(rec *domain.ApplicationRecord, raw string) {
			rec.Language = normalize.Language(raw)
		}),
		operations.NewColumnStep("dob", func(rec *domain.ApplicationRecord, raw string) {
			rec.DOB = normalize.Date(raw)
		}),
		operations.NewFuncStep("age", "Age",
			[]string{"dob"},
			[]string{"age", "age_category"},
			func(row *operations.Row) {
				row.Record.Age = enrich.Age(row.Record.DOB, e.Today())
				row.Record.AgeCategory = enrich.AgeCategory(row.Record.Age)
			}),
		operations.NewColumnStep("marital_status", func(rec *domain.ApplicationRecord, raw string) {
			rec.MaritalStatus = normalize.MaritalStatus(raw)
		}),
		operations.NewColumnStep("gender", func(rec *domain.ApplicationRecord, raw string) {
			rec.Gender = normalize.Gender(raw)
		}),
		operations.NewColumnStep("race", func(rec *domain.ApplicationRecord, raw string) {
			rec.Race = normalize.Race(raw)
		}),
		operations.NewColumnStep("hispaniclatino", func(rec *domain.ApplicationRecord, raw string) {
			rec.HispanicLatino = normalize.HispanicLatino(raw)
		}),
		operations.NewColumnStep("sexual_orientation", func(rec *domain.ApplicationRecord, raw string) {
			rec.SexualOrientation = normalize.SexualOrientation(raw)
		}),
		operations.NewColumnStep("insurance_type", func(rec *domain.ApplicationRecord, raw string) {
			rec.InsuranceType = normalize.InsuranceType(raw)
		}),
		operations.NewColumnStep("household_size", func(rec *domain.ApplicationRecord, raw string) {
			rec.HouseholdSize = normalize.HouseholdSize(raw)
		}),
		operations.NewColumnStep("total_household_gross_monthly_income", func(rec *domain.ApplicationRecord, raw string) {
			rec.Income = normalize.Income(raw)
		}),
		operations.NewColumnStep("distance", func(rec *domain.ApplicationRecord, raw string) {
			rec.Distance = normalize.Distance(raw)
		}),
		operations.NewColumnStep("referral_source", func(rec *domain.ApplicationRecord, raw string) {
			rec.ReferralSource = normalize.ReferralSource(raw)
		}),
		operations.NewColumnStep("referred_by", func(rec *domain.ApplicationRecord, raw string) {
			rec.ReferredBy = normalize.ReferredBy(raw)
		}),
		operations.NewColumnStep("assistance_type", func(rec *domain.ApplicationRecord, raw string) {
			rec.AssistanceType = normalize.AssistanceType(raw)
		}),
		operations.NewColumnStep("amount", func(rec *domain.ApplicationRecord, raw string) {
			rec.Amount = normalize.Amount(raw)
		}),
		operations.NewColumnStep("payment_method", func(rec *domain.ApplicationRecord, raw string) {
			rec.PaymentMethod = normalize.PaymentMethod(raw)
		}),
		operations.NewColumnStep("payable_to", func(rec *domain.ApplicationRecord, raw string) {
			rec.PayableTo = normalize.PayableTo(raw)
		}),
		operations.NewColumnStep("notified", func(rec *domain.ApplicationRecord, raw string) {
			rec.Notified = normalize.Notified(raw)
		}),
		operations.NewColumnStep("application_signed", func(rec *domain.ApplicationRecord, raw string) {
			rec.ApplicationSigned = normalize.ApplicationSigned(raw)
		}),
		operations.NewColumnStep("notes", func(rec *domain.ApplicationRecord, raw string) {
			rec.Notes = normalize.Notes(raw)
		}),
	)
	return reg
}

// TransformOptions configures a transform run
type TransformOptions struct {
	// AllowMissingColumns lets steps whose source column is absent run
	// against blank cells instead of failing the build
	AllowMissingColumns bool
}

// TransformResult holds the cleaned records in input order
type TransformResult struct {
	Records []*domain.ApplicationRecord
	Steps   []operations.StepRun
	Missing []string
}

// Transformer cleans a loaded table through the step plan
type Transformer struct {
	registry *operations.Registry
	tracer   *operations.StepTracer
	options  TransformOptions
}

// NewTransformer creates a transformer. tracer may be nil.
func NewTransformer(reg *operations.Registry, tracer *operations.StepTracer, opts TransformOptions) *Transformer {
	return &Transformer{registry: reg, tracer: tracer, options: opts}
}

// Transform builds the plan against the table's header and runs it over every row
func (t *Transformer) Transform(ctx context.Context, table *Table) (*TransformResult, error) {
	plan, err := operations.Build(t.registry, table.Header, operations.BuildOptions{
		AllowMissing: t.options.AllowMissingColumns,
	})
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "Transform plan built",
		slog.Any("steps", plan.StepIDs()),
		slog.Int("rows", len(table.Rows)))
	if missing := plan.Missing(); len(missing) > 0 {
		slog.WarnContext(ctx, "Source columns missing, cells read as blank",
			slog.Any("columns", missing))
	}

	raws := table.Records()
	rows := make([]*operations.Row, len(raws))
	for i, raw := range raws {
		rows[i] = operations.NewRow(i, raw)
	}

	runs, err := plan.Execute(ctx, rows, t.tracer)
	if err != nil {
		return nil, err
	}

	result := &TransformResult{
		Records: make([]*domain.ApplicationRecord, len(rows)),
		Steps:   runs,
		Missing: plan.Missing(),
	}
	for i, row := range rows {
		result.Records[i] = row.Record
	}
	return result, nil
}
