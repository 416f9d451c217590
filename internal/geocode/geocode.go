// Package geocode resolves US zip codes to coordinates from a static
// reference table loaded once per process.
package geocode

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "grantcli/internal/errors"
	"grantcli/internal/normalize"
)

// Point is a latitude/longitude pair
type Point struct {
	Lat float64
	Lng float64
}

// Table is a read-only zip code lookup. The zero value is an empty table.
type Table struct {
	points map[string]Point
}

// NewTable builds a table from an in-memory mapping; keys are normalized zips
func NewTable(points map[string]Point) *Table {
	t := &Table{points: make(map[string]Point, len(points))}
	for zip, p := range points {
		t.points[normalize.Zip(zip)] = p
	}
	return t
}

// Lookup returns the coordinates for a zip code. Unknown and missing zips are
// not an error; ok is false.
func (t *Table) Lookup(zip string) (lat, lng float64, ok bool) {
	if t == nil || zip == "" || zip == normalize.NA {
		return 0, 0, false
	}
	p, ok := t.points[zip]
	if !ok {
		return 0, 0, false
	}
	return p.Lat, p.Lng, true
}

// Len returns the number of zips in the table
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.points)
}

// Load reads a reference table with zip, lat and lng columns. CSV files and
// XLSX workbooks (first sheet) are supported.
func Load(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("zip reference file %s", path)).WithCause(err)
	}

	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readWorkbook(path)
	} else {
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read zip reference %s", path), err)
	}
	return fromRows(rows)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads CSV reference rows, header first
func Parse(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// fromRows builds the table from a header row followed by data rows. Rows
// with unparseable coordinates are skipped.
func fromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("zip reference is empty", nil)
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range []string{"zip", "lat", "lng"} {
		if _, ok := index[col]; !ok {
			return nil, apperrors.NewParsingError(fmt.Sprintf("zip reference is missing column %q", col), nil)
		}
	}

	t := &Table{points: make(map[string]Point, len(rows)-1)}
	for _, row := range rows[1:] {
		zipCell, latCell, lngCell := cell(row, index["zip"]), cell(row, index["lat"]), cell(row, index["lng"])
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(latCell), 64)
		lng, lngErr := strconv.ParseFloat(strings.TrimSpace(lngCell), 64)
		zip := normalize.Zip(zipCell)
		if latErr != nil || lngErr != nil || zip == normalize.NA {
			continue
		}
		t.points[zip] = Point{Lat: lat, Lng: lng}
	}
	return t, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
