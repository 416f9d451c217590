package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// ApplicationSheet is the sheet the intake workbook keeps its applications in
const ApplicationSheet = "Support_Application_Data"

// RawApplicationHeader is the header row of an intake export, before normalization
var RawApplicationHeader = []string{
	"Patient ID#", "Grant Req Date", "App Year", "Remaining Balance", "Request Status",
	"Payment Submitted?", "Reason - Pending/No", "Pt City", "Pt State", "Pt Zip", "Language",
	"DOB", "Marital Status", "Gender", "Race", "Hispanic/Latino", "Sexual Orientation",
	"Insurance Type", "Household Size", "Total Household Gross Monthly Income",
	"Distance roundtrip/Tx", "Referral Source", "Referred By:", "Type of Assistance (CLASS)",
	"AMOUNT", "Payment Method", "Payable to:",
	"Patient Letter Notified? (Directly/Indirectly through rep)", "Application Signed?", "Notes",
}

// RawApplicationRows are intake rows covering the common messy cases
var RawApplicationRows = [][]string{
	{
		"1001", "1/15/2024", "2024", "250", "Approved",
		"1/25/2024", "", "omaha", "Nebraska", "68102", "English",
		"3/1/1980", "Married", "F", "White", "Non-Hispanic", "Straight",
		"Private", "3", "2500",
		"15", "Nebraska Cancer Specialists", "dr. smith", "Housing",
		"$1,200.00", "CK", "acme rentals llc",
		"Yes", "Yes", "first grant",
	},
	{
		"1002", "2024-02-01", "2024", "-50", "Pending",
		"Yes", "needs POI", "Lincoln", "NE", "68508.0", "Spanish, English",
		"2010-06-30", "single", "male", "Hispanic", "Hispanic or Latino", "",
		"Medicare/Medicaid", "6", "4000",
		"150", "Children's Hospital", "", "food, gas",
		"300", "cash", "",
		"hold", "No", "",
	},
	{
		"", "not a date", "missing", "", "withdrawn",
		"", "", "", "", "", "",
		"", "", "", "", "", "",
		"", "", "",
		"", "", "", "",
		"", "", "",
		"", "", "",
	},
}

// WriteWorkbook writes rows (header first) to a single sheet of a new xlsx file
// and returns its path
func WriteWorkbook(t *testing.T, dir, name, sheet string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	require.NoError(t, err)
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// WriteCSV writes rows (header first) to a CSV file and returns its path
func WriteCSV(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	return path
}

// ApplicationTable returns the raw header followed by the raw rows
func ApplicationTable() [][]string {
	rows := make([][]string, 0, len(RawApplicationRows)+1)
	rows = append(rows, RawApplicationHeader)
	rows = append(rows, RawApplicationRows...)
	return rows
}
