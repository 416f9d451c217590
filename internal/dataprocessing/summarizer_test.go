package dataprocessing

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantcli/internal/exporter"
	"grantcli/internal/shared/testutil"
)

func testSummarizer(t *testing.T) *Summarizer {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	s := NewSummarizer(logger, exporter.NewCSVWriter(false))
	s.clock = func() time.Time { return pinnedToday }
	return s
}

func testDataset() *Dataset {
	return &Dataset{Files: []string{"a_CLEANED.csv"}, Records: analyticsRecords()}
}

func TestSummarizer_Summarize(t *testing.T) {
	s := testSummarizer(t)

	report, err := s.Summarize(context.Background(), testDataset(), "gender")
	require.NoError(t, err)
	assert.Equal(t, "gender", report.Dimension)
	assert.Equal(t, 5, report.Records)
	assert.Equal(t, 1100.0, report.TotalAmount)
	assert.Equal(t, pinnedToday, report.GeneratedAt)
	assert.Len(t, report.Groups, 2)

	_, err = s.Summarize(context.Background(), testDataset(), "nope")
	assert.Error(t, err)
}

func TestSummarizer_Render(t *testing.T) {
	s := testSummarizer(t)
	report, err := s.Summarize(context.Background(), testDataset(), "gender")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf, report))

	want := "" +
		"gender  applications     amount\n" +
		"------  ------------  ---------\n" +
		"Female             2    $800.00\n" +
		"Male               2    $300.00\n" +
		"Total              5  $1,100.00\n"
	assert.Equal(t, want, buf.String())
}

func TestSummarizer_Export(t *testing.T) {
	s := testSummarizer(t)
	report, err := s.Summarize(context.Background(), testDataset(), "pt_state")
	require.NoError(t, err)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "by_state.csv")
	require.NoError(t, s.Export(context.Background(), csvPath, report))
	content, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "pt_state,applications,amount\nIA,1,200.00\nNE,3,900.00\n", string(content))

	jsonPath := filepath.Join(dir, "nested", "by_state.JSON")
	require.NoError(t, s.Export(context.Background(), jsonPath, report))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var decoded SummaryReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.Groups, decoded.Groups)
	assert.Equal(t, "pt_state", decoded.Dimension)
}
