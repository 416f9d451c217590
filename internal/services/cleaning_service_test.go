package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantcli/internal/config"
	apperrors "grantcli/internal/errors"
	"grantcli/internal/exporter"
	"grantcli/internal/geocode"
	"grantcli/internal/operations"
	"grantcli/internal/shared/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Pipeline.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.Pipeline.Today = "2024-06-01"
	cfg.Pipeline.WriteManifest = true
	return cfg
}

func testZips() *geocode.Table {
	return geocode.NewTable(map[string]geocode.Point{
		"68102": {Lat: 41.2627, Lng: -95.9311},
	})
}

func newTestCleaningService(t *testing.T, cfg *config.Config) *CleaningService {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return NewCleaningService(cfg, testZips(), nil, logger)
}

func TestCleaningService_Clean(t *testing.T) {
	cfg := testConfig(t)
	logger, logs := testutil.NewTestLogger(t)
	svc := NewCleaningService(cfg, testZips(), nil, logger)
	input := testutil.WriteWorkbook(t, t.TempDir(), "intake.xlsx", testutil.ApplicationSheet, testutil.ApplicationTable())

	result, err := svc.Clean(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.Pipeline.OutputDir, "intake_CLEANED.csv"), result.Output)
	assert.Equal(t, 3, result.Rows)
	assert.NotEmpty(t, result.RunID)
	assert.Len(t, result.Digest, 64)
	assert.Empty(t, result.Missing)
	assert.Equal(t, 1, result.NACounts["patient_id"])

	content, err := os.ReadFile(result.Output)
	require.NoError(t, err)
	assert.Equal(t, operations.Digest(content), result.Digest)

	manifest, err := operations.LoadManifestFromFile(result.Manifest)
	require.NoError(t, err)
	assert.Equal(t, "completed", manifest.Status)
	assert.Equal(t, result.RunID, manifest.RunID)
	assert.Equal(t, result.Digest, manifest.Digest)
	assert.Equal(t, exporter.Columns, manifest.Columns)
	assert.Len(t, manifest.Steps, len(svc.Steps()))
	testutil.AssertNoErrors(t, logs)
}

func TestCleaningService_Deterministic(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pipeline.WriteManifest = false
	svc := newTestCleaningService(t, cfg)
	input := testutil.WriteCSV(t, t.TempDir(), "intake.csv", testutil.ApplicationTable())

	first, err := svc.Clean(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.Clean(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.Digest, second.Digest)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Empty(t, first.Manifest)
}

func TestCleaningService_CleanErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		input    func(t *testing.T) string
		wantType apperrors.ErrorType
	}{
		{
			name:     "missing file",
			input:    func(t *testing.T) string { return filepath.Join(dir, "nope.xlsx") },
			wantType: apperrors.ErrTypeNotFound,
		},
		{
			name:     "no argument",
			input:    func(t *testing.T) string { return "" },
			wantType: apperrors.ErrTypeUsage,
		},
		{
			name: "missing sheet",
			input: func(t *testing.T) string {
				return testutil.WriteWorkbook(t, dir, "other.xlsx", "Other", testutil.ApplicationTable())
			},
			wantType: apperrors.ErrTypeParsing,
		},
	}

	logger, logs := testutil.NewTestLogger(t)
	svc := NewCleaningService(testConfig(t), testZips(), nil, logger)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Clean(context.Background(), tt.input(t))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsType(err, tt.wantType), err.Error())
			testutil.AssertLogAttr(t, logs, "component", "cleaning_service")
			testutil.AssertLogContains(t, logs, slog.LevelError, "Cleaning run failed")
		})
	}
}

func TestCleaningService_MissingColumns(t *testing.T) {
	rows := [][]string{{"Patient ID#", "Gender"}, {"7", "m"}}
	input := testutil.WriteCSV(t, t.TempDir(), "partial.csv", rows)

	strict := newTestCleaningService(t, testConfig(t))
	_, err := strict.Clean(context.Background(), input)
	assert.Equal(t, operations.ErrorTypeDependency, operations.GetErrorType(err))

	cfg := testConfig(t)
	cfg.Pipeline.AllowMissingColumns = true
	result, err := newTestCleaningService(t, cfg).Clean(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows)
	assert.Contains(t, result.Missing, "race")
}

func TestCleaningService_CleanDirectory(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteCSV(t, dir, "b.csv", testutil.ApplicationTable())
	testutil.WriteWorkbook(t, dir, "a.xlsx", testutil.ApplicationSheet, testutil.ApplicationTable())
	testutil.WriteCSV(t, dir, "old_CLEANED.csv", [][]string{{"patient_id"}})

	cfg := testConfig(t)
	results, err := newTestCleaningService(t, cfg).CleanDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join(cfg.Pipeline.OutputDir, "a_CLEANED.csv"), results[0].Output)
	assert.Equal(t, filepath.Join(cfg.Pipeline.OutputDir, "b_CLEANED.csv"), results[1].Output)
	assert.Equal(t, results[0].Digest, results[1].Digest, "same rows give the same output")

	_, err = newTestCleaningService(t, cfg).CleanDirectory(context.Background(), t.TempDir())
	assert.True(t, errors.Is(err, ErrNoInputFiles))
}

func TestLoadZipTable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "uszips.csv")

	zips, err := LoadZipTable(config.GeocodeConfig{Path: missing}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, zips.Len())

	_, err = LoadZipTable(config.GeocodeConfig{Path: missing, Required: true}, nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))

	path := testutil.WriteCSV(t, t.TempDir(), "uszips.csv", [][]string{
		{"zip", "lat", "lng"},
		{"68102", "41.2627", "-95.9311"},
	})
	zips, err = LoadZipTable(config.GeocodeConfig{Path: path, Required: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, zips.Len())
}
