package operations

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/blake2b"

	"grantcli/pkg/contracts"
)

// RunManifest records what a cleaning run read, wrote and how long each step
// took. Two runs over the same input with the same pinned date produce the
// same Digest.
type RunManifest struct {
	RunID      string         `json:"run_id"`
	DataFormat string         `json:"data_format"`
	Input      string         `json:"input"`
	Output     string         `json:"output"`
	StartTime  time.Time      `json:"start_time"`
	EndTime    time.Time      `json:"end_time"`
	Duration   string         `json:"duration"`
	Rows       int            `json:"rows"`
	Columns    []string       `json:"columns"`
	Missing    []string       `json:"missing_columns,omitempty"`
	NACounts   map[string]int `json:"na_counts"`
	Digest     string         `json:"digest"`
	Steps      []StepRun      `json:"steps"`
	Status     string         `json:"status"`
	Error      string         `json:"error,omitempty"`
}

// NewRunManifest starts a manifest for a run
func NewRunManifest(runID, input string) *RunManifest {
	return &RunManifest{
		RunID:      runID,
		DataFormat: contracts.DataFormatVersion,
		Input:      input,
		StartTime:  time.Now(),
		NACounts:   make(map[string]int),
		Status:     "running",
	}
}

// Complete stamps the end of a successful run
func (m *RunManifest) Complete(output string, digest string) {
	m.Output = output
	m.Digest = digest
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime).String()
	m.Status = "completed"
}

// Fail stamps the end of a failed run
func (m *RunManifest) Fail(err error) {
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime).String()
	m.Status = "failed"
	if err != nil {
		m.Error = err.Error()
	}
}

// Digest returns the hex blake2b-256 digest of data
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SaveToFile saves the manifest to a JSON file
func (m *RunManifest) SaveToFile(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}

	return nil
}

// LoadManifestFromFile loads a manifest from a JSON file
func LoadManifestFromFile(path string) (*RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var manifest RunManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &manifest, nil
}
