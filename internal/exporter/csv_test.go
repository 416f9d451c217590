package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantcli/pkg/contracts/domain"
)

func TestCSVWriter_WriteRecords(t *testing.T) {
	tests := []struct {
		name string
		bom  bool
	}{
		{"without BOM", false},
		{"with BOM", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "intake_CLEANED.csv")
			w := NewCSVWriter(tt.bom)

			res, err := w.WriteRecords(path, []*domain.ApplicationRecord{fullRecord(), {}})
			require.NoError(t, err)
			assert.Equal(t, 2, res.Rows)
			assert.Equal(t, 1, res.NACounts["gender"])

			onDisk, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, res.Content, onDisk)
			assert.Equal(t, tt.bom, bytes.HasPrefix(onDisk, utf8BOM))

			rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(onDisk, utf8BOM))).ReadAll()
			require.NoError(t, err)
			require.Len(t, rows, 3)
			assert.Equal(t, Columns, rows[0])
			assert.Equal(t, "1001", rows[1][0])
			assert.Equal(t, domain.NA, rows[2][0])
		})
	}
}

func TestCSVWriter_Deterministic(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(false)
	records := []*domain.ApplicationRecord{fullRecord()}

	a, err := w.WriteRecords(filepath.Join(dir, "a.csv"), records)
	require.NoError(t, err)
	b, err := w.WriteRecords(filepath.Join(dir, "b.csv"), records)
	require.NoError(t, err)

	assert.Equal(t, a.Content, b.Content)
}

func TestCSVWriter_WriteSimpleCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	w := NewCSVWriter(false)

	require.NoError(t, w.WriteSimpleCSV(path, []string{"gender", "amount"}, [][]string{
		{"Female", "1200.00"},
		{"Male, other", "300.00"},
	}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gender,amount\nFemale,1200.00\n\"Male, other\",300.00\n", string(content))
}

func TestEncode_EmptyHeaders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, WriteOptions{Records: [][]string{{"a", "b"}}}))
	assert.Equal(t, "a,b\n", buf.String())
}
