package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "grantcli/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a raw intake sheet: a normalized header and string cells.
// Every row has exactly len(Header) cells.
type Table struct {
	Source string
	Header []string
	Rows   [][]string
}

// Records returns each row keyed by header name
func (t *Table) Records() []map[string]string {
	out := make([]map[string]string, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]string, len(t.Header))
		for j, col := range t.Header {
			rec[col] = row[j]
		}
		out[i] = rec
	}
	return out
}

// Column returns the index of a header, or -1
func (t *Table) Column(name string) int {
	return slices.Index(t.Header, name)
}

// LoadTable reads an intake file. Workbooks (.xlsx, .xlsm) must contain the
// named sheet; any other extension is read as CSV.
func LoadTable(path, sheet string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("input file %s", path)).
				WithContext("path", path)
		}
		return nil, apperrors.NewStorageError("failed to stat input file", err).WithContext("path", path)
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readSheet(path, sheet)
	default:
		rows, err = readCSVFile(path)
	}
	if err != nil {
		return nil, err
	}

	table := newTable(path, rows)
	slog.Debug("Intake table loaded",
		slog.String("path", path),
		slog.Int("columns", len(table.Header)),
		slog.Int("rows", len(table.Rows)))
	return table, nil
}

func readSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	if !slices.Contains(f.GetSheetList(), sheet) {
		return nil, apperrors.NewParsingError(fmt.Sprintf("workbook has no sheet %q", sheet), nil).
			WithContext("path", path).
			WithContext("sheets", f.GetSheetList())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet rows", err).
			WithContext("path", path).
			WithContext("sheet", sheet)
	}
	return rows, nil
}

func readCSVFile(path string) ([][]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read input file", err).WithContext("path", path)
	}
	rows, err := ParseCSV(bytes.NewReader(content))
	if err != nil {
		return nil, apperrors.NewParsingError("failed to parse CSV", err).WithContext("path", path)
	}
	return rows, nil
}

// ParseCSV reads all records, dropping a leading UTF-8 BOM. Ragged rows are allowed.
func ParseCSV(r io.Reader) ([][]string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// newTable normalizes the header and pads or trims every row to its width.
// Rows with no content at all are dropped.
func newTable(source string, rows [][]string) *Table {
	table := &Table{Source: source}
	if len(rows) == 0 {
		return table
	}

	table.Header = NormalizeHeaders(rows[0])
	width := len(table.Header)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		cells := make([]string, width)
		copy(cells, row)
		table.Rows = append(table.Rows, cells)
	}
	return table
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
