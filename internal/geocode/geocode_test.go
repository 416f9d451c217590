package geocode

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "grantcli/internal/errors"
	"grantcli/internal/shared/testutil"
)

func TestLoad_CSV(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteCSV(t, dir, "uszips.csv", [][]string{
		{"zip", "lat", "lng", "city"},
		{"68102", "41.2587", "-95.9378", "Omaha"},
		{"501", "40.8154", "-73.0451", "Holtsville"},
		{"99999", "not-a-number", "0", "Nowhere"},
	})

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	lat, lng, ok := table.Lookup("68102")
	require.True(t, ok)
	assert.InDelta(t, 41.2587, lat, 1e-9)
	assert.InDelta(t, -95.9378, lng, 1e-9)

	_, _, ok = table.Lookup("00501")
	assert.True(t, ok, "short zips are zero-padded on load")

	_, _, ok = table.Lookup("99999")
	assert.False(t, ok, "rows with bad coordinates are skipped")
}

func TestLoad_Workbook(t *testing.T) {
	path := testutil.WriteWorkbook(t, t.TempDir(), "zips.xlsx", "zips", [][]string{
		{"zip", "lat", "lng"},
		{"68508", "40.8146", "-96.7006"},
	})

	table, err := Load(path)
	require.NoError(t, err)

	lat, _, ok := table.Lookup("68508")
	require.True(t, ok)
	assert.InDelta(t, 40.8146, lat, 1e-9)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("does-not-exist.csv")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))

	path := testutil.WriteCSV(t, t.TempDir(), "bad.csv", [][]string{{"postal", "lat", "lng"}})
	_, err = Load(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestLookup_Misses(t *testing.T) {
	table := NewTable(map[string]Point{"68102": {Lat: 1, Lng: 2}})

	for _, zip := range []string{"", "NA", "12345"} {
		_, _, ok := table.Lookup(zip)
		assert.False(t, ok, zip)
	}

	var empty *Table
	_, _, ok := empty.Lookup("68102")
	assert.False(t, ok)
	assert.Equal(t, 0, empty.Len())
}

func TestParse(t *testing.T) {
	rows, err := Parse(strings.NewReader("zip,lat,lng\n\"68102\",1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"zip", "lat", "lng"}, {"68102", "1", "2"}}, rows)
}

func TestLoad_BOMHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uszips.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeffzip,lat,lng\n68102,41.2587,-95.9378\n"), 0o644))

	table, err := Load(path)
	require.NoError(t, err, "a byte order mark before the zip column must not hide it")

	lat, lng, ok := table.Lookup("68102")
	require.True(t, ok)
	assert.InDelta(t, 41.2587, lat, 1e-9)
	assert.InDelta(t, -95.9378, lng, 1e-9)
}
