package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CleanedPath returns where the cleaned CSV for input goes:
// <outputDir>/<input basename without extension>_CLEANED.csv. An empty
// outputDir means the working directory.
func CleanedPath(input, outputDir string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+CleanedSuffix)
}

// ManifestPath returns the run manifest path that sits next to a cleaned CSV
func ManifestPath(cleaned string) string {
	return strings.TrimSuffix(cleaned, CleanedSuffix) + ManifestSuffix
}

// IsCleanedFile reports whether name follows the cleaned CSV naming
func IsCleanedFile(name string) bool {
	return strings.HasSuffix(filepath.Base(name), CleanedSuffix)
}

// EnsureDir creates dir (and parents) if it does not exist. Empty means the
// working directory and is a no-op.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
