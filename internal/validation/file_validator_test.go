package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "grantcli/internal/errors"
)

func TestFileValidator_ValidateInputFile(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		wantType apperrors.ErrorType
		contains string
	}{
		{
			name: "workbook",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "intake.xlsx")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				return path
			},
		},
		{
			name: "csv",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "intake.csv")
				require.NoError(t, os.WriteFile(path, []byte("a\n"), 0644))
				return path
			},
		},
		{
			name:     "empty argument",
			setup:    func(t *testing.T) string { return "  " },
			wantType: apperrors.ErrTypeUsage,
			contains: "no input file",
		},
		{
			name:     "missing",
			setup:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.xlsx") },
			wantType: apperrors.ErrTypeNotFound,
			contains: "not found",
		},
		{
			name:     "directory",
			setup:    func(t *testing.T) string { return t.TempDir() },
			wantType: apperrors.ErrTypeUsage,
			contains: "is a directory",
		},
		{
			name: "lock file",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "~$intake.xlsx")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				return path
			},
			wantType: apperrors.ErrTypeUsage,
			contains: "lock file",
		},
		{
			name: "legacy workbook",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "intake.XLS")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				return path
			},
			wantType: apperrors.ErrTypeUsage,
			contains: ".xlsx",
		},
	}

	v := NewFileValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateInputFile(tt.setup(t))
			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantType), err.Error())
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestFileValidator_ValidateInputDirectory(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()
	file := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.NoError(t, v.ValidateInputDirectory(dir))

	err := v.ValidateInputDirectory(filepath.Join(dir, "missing"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))

	err = v.ValidateInputDirectory(file)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeUsage))
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)
	dir := filepath.Join(t.TempDir(), "nested", "out")

	require.NoError(t, v.ValidateOutputDirectory(dir))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file is removed")

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	err = v.ValidateOutputDirectory(filepath.Join(blocker, "sub"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}
