package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "grantcli/internal/errors"
	"grantcli/internal/infrastructure"
	"grantcli/pkg/contracts/domain"
)

// Dataset is the read-only table behind the dashboard: every cleaned file
// concatenated in the order given.
type Dataset struct {
	Files   []string
	Records []*domain.ApplicationRecord
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// LoadCleanedFiles reads cleaned files concurrently and concatenates them in
// the order of paths.
func LoadCleanedFiles(ctx context.Context, paths []string) (*Dataset, error) {
	parts := make([][]*domain.ApplicationRecord, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := ReadCleanedFile(path)
			if err != nil {
				return err
			}
			parts[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := &Dataset{Files: paths}
	for _, part := range parts {
		ds.Records = append(ds.Records, part...)
	}

	infrastructure.LoggerWithContext(ctx).InfoContext(ctx, "Cleaned files loaded",
		slog.Int("files", len(paths)),
		slog.Int("records", len(ds.Records)))
	return ds, nil
}

// ReadCleanedFile decodes one cleaned CSV back into records
func ReadCleanedFile(path string) ([]*domain.ApplicationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("cleaned file " + path)
		}
		return nil, apperrors.NewStorageError("failed to open cleaned file", err).WithContext("path", path)
	}
	defer f.Close()

	rows, err := ParseCSV(f)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to parse cleaned file", err).WithContext("path", path)
	}

	table := newTable(path, rows)
	raws := table.Records()
	records := make([]*domain.ApplicationRecord, len(raws))
	for i, raw := range raws {
		records[i] = DecodeRecord(raw)
	}
	return records, nil
}

// DecodeRecord parses one cleaned row keyed by column name. Absent columns
// decode as missing values.
func DecodeRecord(row map[string]string) *domain.ApplicationRecord {
	return &domain.ApplicationRecord{
		PatientID:         row["patient_id"],
		GrantReqDate:      decodeDate(row["grant_req_date"]),
		AppYear:           decodeInt(row["app_year"]),
		DOB:               decodeDate(row["dob"]),
		Age:               decodeInt(row["age"]),
		AgeCategory:       row["age_category"],
		Amount:            decodeFloat(row["amount"]),
		RemainingBalance:  decodeFloat(row["remaining_balance"]),
		OverBalance:       decodeBool(row["over_balance"]),
		BalanceStatus:     domain.BalanceStatus(row["balance_status"]),
		RequestStatus:     row["request_status"],
		PaymentSubmitted:  decodePayment(row["payment_submitted"]),
		DaysToSupport:     decodeInt(row["days_to_support"]),
		ReasonPending:     row["reason_pending"],
		ApplicationSigned: row["application_signed"],
		Notified:          row["notified"],
		Gender:            row["gender"],
		Race:              row["race"],
		HispanicLatino:    row["hispaniclatino"],
		SexualOrientation: row["sexual_orientation"],
		MaritalStatus:     row["marital_status"],
		Language:          row["language"],
		InsuranceType:     row["insurance_type"],
		HouseholdSize:     row["household_size"],
		Income:            row["total_household_gross_monthly_income"],
		City:              row["pt_city"],
		State:             row["pt_state"],
		Zip:               row["pt_zip"],
		Lat:               decodeFloat(row["lat"]),
		Lng:               decodeFloat(row["lng"]),
		AssistanceType:    row["assistance_type"],
		PaymentMethod:     row["payment_method"],
		PayableTo:         row["payable_to"],
		ReferralSource:    row["referral_source"],
		ReferredBy:        row["referred_by"],
		Notes:             row["notes"],
		Distance:          row["distance"],
	}
}

func decodeDate(s string) domain.NullDate {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return domain.NullDate{}
	}
	return domain.NewDate(t)
}

func decodeInt(s string) domain.NullInt {
	v, err := strconv.Atoi(s)
	if err != nil {
		return domain.NullInt{}
	}
	return domain.IntOf(v)
}

func decodeFloat(s string) domain.NullFloat {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.NullFloat{}
	}
	return domain.FloatOf(v)
}

func decodeBool(s string) domain.NullBool {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return domain.NullBool{}
	}
	return domain.NullBool{Value: v, Valid: true}
}

func decodePayment(s string) domain.PaymentSubmitted {
	switch s {
	case domain.PaymentYes, domain.PaymentNo:
		return domain.PaymentSubmitted{Code: s}
	}
	if d := decodeDate(s); d.Valid {
		return domain.PaymentSubmitted{Date: d}
	}
	return domain.PaymentSubmitted{Code: domain.NA}
}
